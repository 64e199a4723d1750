// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "deposit"
	TransactionKindWithdraw TransactionKind = "withdraw"
)

// UnknownBrand é usado quando a linha não possui marca
const UnknownBrand = "UNKNOWN"

// NotAvailable é o valor exibido para campos textuais ausentes
const NotAvailable = "N/A"

func (k TransactionKind) IsValid() bool {
	return k == TransactionKindDeposit || k == TransactionKindWithdraw
}

// TransactionRow representa uma linha bruta das tabelas de depósito/saque
type TransactionRow struct {
	ID            string
	Date          string // YYYY-MM-DD, usado como chave opaca de agrupamento
	DurationRaw   any    // "HH:MM:SS[.mmm]", número ou nil
	OperatorGroup string
	Brand         string
	Amount        decimal.Decimal
	CustomerName  string
}

// ClassifiedRow é a linha já com duração em segundos e marcações de operador
type ClassifiedRow struct {
	*TransactionRow
	DurationSeconds float64
	IsAutomation    bool
	IsStaff         bool
	IsOverdue       bool
}

type ReportFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Currency  string
	Brand     string
}
