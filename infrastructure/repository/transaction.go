// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/finops-kpi-api/infrastructure/database/postgres"
	"github.com/vfg2006/finops-kpi-api/internal/config"
	"github.com/vfg2006/finops-kpi-api/internal/domain"
)

var (
	ErrInvalidTransactionTable = errors.New("tabela de transações inválida")

	currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

//go:generate mockgen -source=transaction.go -destination=mocks/mock_transaction.go -package=mocks

type TransactionRepository interface {
	ListByPeriod(ctx context.Context, kind domain.TransactionKind, filters *domain.ReportFilters) ([]*domain.TransactionRow, error)
	ListBrands(ctx context.Context, kind domain.TransactionKind, currency string) ([]string, error)
}

type transactionRepository struct {
	conn    postgres.Queryer
	timeout time.Duration
	maxRows uint64
}

func NewTransactionRepository(conn postgres.Queryer, cfg config.Query) TransactionRepository {
	return &transactionRepository{
		conn:    conn,
		timeout: cfg.Timeout,
		maxRows: cfg.MaxRows,
	}
}

// transactionsTable resolve a tabela do tipo e moeda, ex.: deposit + MYR -> deposit_myr.
// Só aceita tipos conhecidos e códigos de moeda com três letras.
func transactionsTable(kind domain.TransactionKind, currency string) (string, error) {
	currency = strings.TrimSpace(currency)
	if !kind.IsValid() || !currencyPattern.MatchString(currency) {
		return "", errors.Wrapf(ErrInvalidTransactionTable, "tipo=%s moeda=%s", kind, currency)
	}

	return fmt.Sprintf("%s_%s", kind, strings.ToLower(currency)), nil
}

func buildListByPeriodQuery(table string, filters *domain.ReportFilters, maxRows uint64) (string, []any, error) {
	builder := squirrel.
		Select("t.id", "t.date", "t.process_time", "t.operator_group", "t.line", "t.amount", "t.customer_name").
		From(table + " t").
		Where(squirrel.GtOrEq{"t.date": filters.StartDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"t.date": filters.EndDate.Format(time.DateOnly)}).
		OrderBy("t.date ASC", "t.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if brand := strings.TrimSpace(filters.Brand); brand != "" {
		builder = builder.Where(squirrel.ILike{"t.line": "%" + brand + "%"})
	}

	if maxRows > 0 {
		builder = builder.Limit(maxRows)
	}

	return builder.ToSql()
}

func (r *transactionRepository) ListByPeriod(ctx context.Context, kind domain.TransactionKind, filters *domain.ReportFilters) ([]*domain.TransactionRow, error) {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil, errors.New("período obrigatório para buscar transações")
	}

	table, err := transactionsTable(kind, filters.Currency)
	if err != nil {
		return nil, err
	}

	query, args, err := buildListByPeriodQuery(table, filters, r.maxRows)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err)
	}
	defer rows.Close()

	transactions := make([]*domain.TransactionRow, 0)
	for rows.Next() {
		transaction, err := r.scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear transação: %w", err)
		}
		transactions = append(transactions, transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return transactions, nil
}

func (r *transactionRepository) ListBrands(ctx context.Context, kind domain.TransactionKind, currency string) ([]string, error) {
	table, err := transactionsTable(kind, currency)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("t.line").
		Distinct().
		From(table + " t").
		Where(squirrel.NotEq{"t.line": nil}).
		Where(squirrel.NotEq{"t.line": ""}).
		OrderBy("t.line ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err)
	}
	defer rows.Close()

	brands := make([]string, 0)
	for rows.Next() {
		var brand string
		if err := rows.Scan(&brand); err != nil {
			return nil, fmt.Errorf("erro ao escanear marca: %w", err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return brands, nil
}

func (r *transactionRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *transactionRepository) scanTransaction(rows *sql.Rows) (*domain.TransactionRow, error) {
	var (
		id, date, duration, amount         any
		operatorGroup, brand, customerName sql.NullString
	)

	err := rows.Scan(
		&id,
		&date,
		&duration,
		&operatorGroup,
		&brand,
		&amount,
		&customerName,
	)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionRow{
		ID:            textOf(id),
		Date:          dateOf(date),
		DurationRaw:   duration,
		OperatorGroup: operatorGroup.String,
		Brand:         brand.String,
		Amount:        amountOf(amount),
		CustomerName:  customerName.String,
	}, nil
}

func wrapQueryError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return errors.Wrapf(err, "erro no banco de dados (código: %s)", pqErr.Code)
	}
	return errors.Wrap(err, "erro ao executar a query")
}

func textOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// dateOf mantém a data como texto YYYY-MM-DD; colunas DATE chegam como time.Time
func dateOf(value any) string {
	if date, ok := value.(time.Time); ok {
		return date.Format(time.DateOnly)
	}
	return textOf(value)
}

// amountOf converte o valor da coluna amount, usando zero quando ausente ou inválido
func amountOf(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case []byte, string:
		amount, err := decimal.NewFromString(strings.TrimSpace(textOf(v)))
		if err != nil {
			return decimal.Zero
		}
		return amount
	default:
		return decimal.Zero
	}
}
