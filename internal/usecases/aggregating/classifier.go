package aggregating

import (
	"strings"

	"github.com/vfg2006/finops-kpi-api/internal/domain"
)

const (
	automationMarker = "automation"
	staffMarker      = "staff"
)

// Classify marca a linha como automação e/ou staff e verifica se está em atraso.
// Apenas linhas de automação podem ficar em atraso.
func Classify(row *domain.TransactionRow, thresholdSeconds float64) domain.ClassifiedRow {
	durationSeconds := ParseDurationSeconds(row.DurationRaw)
	operatorGroup := strings.ToLower(row.OperatorGroup)

	isAutomation := strings.Contains(operatorGroup, automationMarker)
	isStaff := strings.Contains(operatorGroup, staffMarker)

	return domain.ClassifiedRow{
		TransactionRow:  row,
		DurationSeconds: durationSeconds,
		IsAutomation:    isAutomation,
		IsStaff:         isStaff,
		IsOverdue:       isAutomation && durationSeconds > thresholdSeconds,
	}
}
