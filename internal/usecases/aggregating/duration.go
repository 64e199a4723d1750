package aggregating

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	leadingInt   = regexp.MustCompile(`^\s*[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// ParseDurationSeconds converte a duração gravada em segundos. Aceita "HH:MM:SS[.mmm]",
// "MM:SS[.mmm]", número e colunas TIME (segundos desde a meia-noite).
// Valores vazios ou inválidos resultam em 0. Minutos e segundos fora da faixa
// não são validados: "1:90:00" vira 9000.
func ParseDurationSeconds(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case string:
		return parseDurationText(v)
	case []byte:
		return parseDurationText(string(v))
	case float64:
		return finiteOrZero(v)
	case float32:
		return finiteOrZero(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case time.Time:
		return secondsSinceMidnight(v)
	default:
		return 0
	}
}

func parseDurationText(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	parts := strings.Split(text, ":")
	switch {
	case len(parts) == 2:
		return parseLeadingInt(parts[0])*60 + parseLeadingFloat(parts[1])
	case len(parts) > 2:
		return parseLeadingInt(parts[0])*3600 + parseLeadingInt(parts[1])*60 + parseLeadingFloat(parts[2])
	}

	return parseLeadingFloat(text)
}

// secondsSinceMidnight lê o relógio de uma coluna TIME, que o lib/pq entrega como time.Time
func secondsSinceMidnight(t time.Time) float64 {
	return float64(t.Hour()*3600+t.Minute()*60+t.Second()) + float64(t.Nanosecond())/float64(time.Second)
}

// parseLeadingInt lê o prefixo inteiro do texto ("01x" -> 1), 0 se não houver dígitos.
// Prefixos maiores que int64 viram um float grande em vez de 0.
func parseLeadingInt(text string) float64 {
	match := leadingInt.FindString(text)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(match), 64)
	if err != nil {
		return 0
	}

	return finiteOrZero(value)
}

func parseLeadingFloat(text string) float64 {
	match := leadingFloat.FindString(text)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(match), 64)
	if err != nil {
		return 0
	}

	return finiteOrZero(value)
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
