package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/finops-kpi-api/infrastructure/database/postgres"
	"github.com/vfg2006/finops-kpi-api/internal/domain"
)

const (
	dailySummaryTable = "kpi_daily_summary ds"
)

//go:generate mockgen -source=daily_summary.go -destination=mocks/mock_daily_summary.go -package=mocks

type DailySummaryRepository interface {
	SaveOrUpdate(ctx context.Context, summaries []*domain.DailySummary) error
	ListByPeriod(ctx context.Context, kind domain.TransactionKind, filters *domain.ReportFilters) ([]*domain.DailySummary, error)
}

type dailySummaryRepository struct {
	conn postgres.Queryer
}

func NewDailySummaryRepository(conn postgres.Queryer) DailySummaryRepository {
	return &dailySummaryRepository{
		conn: conn,
	}
}

func buildSaveDailySummariesQuery(summaries []*domain.DailySummary) (string, []any, error) {
	query := squirrel.StatementBuilder.
		Insert("kpi_daily_summary").
		Columns(
			"kind",
			"currency",
			"date",
			"total_transaction",
			"total_automation",
			"overdue_count",
			"avg_processing_time",
			"coverage_rate",
			"total_amount",
			"slow_transaction_count",
			"slowest_brand",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, summary := range summaries {
		query = query.Values(
			string(summary.Kind),
			summary.Currency,
			summary.Date.Format(time.DateOnly),
			summary.TotalTransaction,
			summary.TotalAutomation,
			summary.OverdueCount,
			summary.AvgProcessingTime,
			summary.CoverageRate,
			summary.TotalAmount,
			summary.SlowTransactionCount,
			summary.SlowestBrand,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (kind, currency, date) DO UPDATE SET
			total_transaction = EXCLUDED.total_transaction,
			total_automation = EXCLUDED.total_automation,
			overdue_count = EXCLUDED.overdue_count,
			avg_processing_time = EXCLUDED.avg_processing_time,
			coverage_rate = EXCLUDED.coverage_rate,
			total_amount = EXCLUDED.total_amount,
			slow_transaction_count = EXCLUDED.slow_transaction_count,
			slowest_brand = EXCLUDED.slowest_brand,
			updated_at = CURRENT_TIMESTAMP
	`)

	return query.ToSql()
}

func (r *dailySummaryRepository) SaveOrUpdate(ctx context.Context, summaries []*domain.DailySummary) error {
	if len(summaries) == 0 {
		return nil
	}

	sqlQuery, args, err := buildSaveDailySummariesQuery(summaries)
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *dailySummaryRepository) ListByPeriod(ctx context.Context, kind domain.TransactionKind, filters *domain.ReportFilters) ([]*domain.DailySummary, error) {
	queryBuilder := squirrel.
		Select(
			"ds.id",
			"ds.kind",
			"ds.currency",
			"ds.date",
			"ds.total_transaction",
			"ds.total_automation",
			"ds.overdue_count",
			"ds.avg_processing_time",
			"ds.coverage_rate",
			"ds.total_amount",
			"ds.slow_transaction_count",
			"ds.slowest_brand",
			"ds.created_at",
			"ds.updated_at",
		).
		From(dailySummaryTable).
		Where(squirrel.Eq{"ds.kind": string(kind)}).
		OrderBy("ds.date ASC", "ds.currency ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if currency := strings.TrimSpace(filters.Currency); currency != "" {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"ds.currency": strings.ToUpper(currency)})
		}
		if filters.StartDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"ds.date": filters.StartDate.Format(time.DateOnly)})
		}
		if filters.EndDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"ds.date": filters.EndDate.Format(time.DateOnly)})
		}
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	summaries := make([]*domain.DailySummary, 0)
	for rows.Next() {
		summary, err := r.scanDailySummary(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear resumo diário: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return summaries, nil
}

func (r *dailySummaryRepository) scanDailySummary(rows *sql.Rows) (*domain.DailySummary, error) {
	summary := &domain.DailySummary{}
	var kind string
	var coverageRate sql.NullFloat64

	err := rows.Scan(
		&summary.ID,
		&kind,
		&summary.Currency,
		&summary.Date,
		&summary.TotalTransaction,
		&summary.TotalAutomation,
		&summary.OverdueCount,
		&summary.AvgProcessingTime,
		&coverageRate,
		&summary.TotalAmount,
		&summary.SlowTransactionCount,
		&summary.SlowestBrand,
		&summary.CreatedAt,
		&summary.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	summary.Kind = domain.TransactionKind(kind)
	if coverageRate.Valid {
		summary.CoverageRate = &coverageRate.Float64
	}

	return summary, nil
}
