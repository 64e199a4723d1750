package utils

import (
	"strings"
	"time"
)

// ParseDate interpreta datas no formato YYYY-MM-DD; vazio retorna nil
func ParseDate(dateStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// Yesterday retorna o início do dia anterior no fuso de referência
func Yesterday(reference time.Time) time.Time {
	previous := reference.AddDate(0, 0, -1)
	return time.Date(previous.Year(), previous.Month(), previous.Day(), 0, 0, 0, 0, reference.Location())
}
