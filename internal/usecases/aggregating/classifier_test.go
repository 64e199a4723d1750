package aggregating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/finops-kpi-api/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		row           *domain.TransactionRow
		threshold     float64
		isAutomation  bool
		isStaff       bool
		isOverdue     bool
		durationValue float64
	}{
		{
			name:          "automação dentro do limite",
			row:           &domain.TransactionRow{OperatorGroup: "Automation", DurationRaw: "00:00:45"},
			threshold:     60,
			isAutomation:  true,
			durationValue: 45,
		},
		{
			name:          "automação acima do limite",
			row:           &domain.TransactionRow{OperatorGroup: "automation-bot", DurationRaw: "00:01:30"},
			threshold:     60,
			isAutomation:  true,
			isOverdue:     true,
			durationValue: 90,
		},
		{
			name:          "automação e staff ao mesmo tempo",
			row:           &domain.TransactionRow{OperatorGroup: "AUTOMATION STAFF", DurationRaw: "00:05:00"},
			threshold:     60,
			isAutomation:  true,
			isStaff:       true,
			isOverdue:     true,
			durationValue: 300,
		},
		{
			name:          "staff nunca fica em atraso",
			row:           &domain.TransactionRow{OperatorGroup: "Staff", DurationRaw: "01:00:00"},
			threshold:     60,
			isStaff:       true,
			durationValue: 3600,
		},
		{
			name:          "sem grupo de operador",
			row:           &domain.TransactionRow{DurationRaw: "00:10:00"},
			threshold:     60,
			durationValue: 600,
		},
		{
			name:          "igual ao limite não está em atraso",
			row:           &domain.TransactionRow{OperatorGroup: "Automation", DurationRaw: 60},
			threshold:     60,
			isAutomation:  true,
			durationValue: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := Classify(tt.row, tt.threshold)

			assert.Equal(t, tt.isAutomation, classified.IsAutomation)
			assert.Equal(t, tt.isStaff, classified.IsStaff)
			assert.Equal(t, tt.isOverdue, classified.IsOverdue)
			assert.Equal(t, tt.durationValue, classified.DurationSeconds)
			assert.Same(t, tt.row, classified.TransactionRow)
		})
	}
}

func TestClassify_OverdueDependsOnlyOnAutomation(t *testing.T) {
	for _, group := range []string{"Staff", "", "Manual", "operator"} {
		row := &domain.TransactionRow{OperatorGroup: group, DurationRaw: "10:00:00"}
		assert.False(t, Classify(row, 60).IsOverdue, group)
	}
}
