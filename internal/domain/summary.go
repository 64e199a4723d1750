package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySummary é o resumo diário de KPIs gravado pelo agendador
type DailySummary struct {
	ID                   int             `json:"id"`
	Kind                 TransactionKind `json:"type"`
	Currency             string          `json:"currency"`
	Date                 time.Time       `json:"date"`
	TotalTransaction     int             `json:"total_transaction"`
	TotalAutomation      int             `json:"total_automation"`
	OverdueCount         int             `json:"overdue_count"`
	AvgProcessingTime    float64         `json:"avg_processing_time"`
	CoverageRate         *float64        `json:"coverage_rate"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	SlowTransactionCount int             `json:"slow_transaction_count"`
	SlowestBrand         string          `json:"slowest_brand"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
