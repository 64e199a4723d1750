package aggregating

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/finops-kpi-api/infrastructure/repository"
	"github.com/vfg2006/finops-kpi-api/internal/config"
	"github.com/vfg2006/finops-kpi-api/internal/domain"
	"github.com/vfg2006/finops-kpi-api/pkg/log"
)

var (
	ErrFetchTransactions = errors.New("erro ao buscar transações")
	ErrInvalidPeriod     = errors.New("período inválido")
	ErrUnsupportedMarket = errors.New("moeda não suportada")
	ErrUnknownKind       = errors.New("tipo de transação desconhecido")
)

//go:generate mockgen -source=service.go -destination=mocks/mock_reporter.go -package=mocks

type Reporter interface {
	GetReport(ctx context.Context, kind domain.TransactionKind, filters *domain.ReportFilters) (*domain.Report, error)
	SummarizeDay(ctx context.Context, kind domain.TransactionKind, currency string, day time.Time) (*domain.DailySummary, error)
	ListBrands(ctx context.Context, kind domain.TransactionKind, currency string) ([]string, error)
	ListDailySummaries(ctx context.Context, kind domain.TransactionKind, filters *domain.ReportFilters) ([]*domain.DailySummary, error)
	Markets() []string
}

type Service struct {
	transactionRepo repository.TransactionRepository
	summaryRepo     repository.DailySummaryRepository
	profiles        domain.Profiles
	markets         config.Markets
}

func NewService(
	transactionRepo repository.TransactionRepository,
	summaryRepo repository.DailySummaryRepository,
	cfg *config.Config,
) Reporter {
	return &Service{
		transactionRepo: transactionRepo,
		summaryRepo:     summaryRepo,
		profiles:        domain.NewProfiles(cfg.Profiles.DepositOverdueThreshold, cfg.Profiles.WithdrawOverdueThreshold),
		markets:         cfg.Markets,
	}
}

func (s *Service) GetReport(ctx context.Context, kind domain.TransactionKind, filters *domain.ReportFilters) (*domain.Report, error) {
	profile, err := s.resolveProfile(kind)
	if err != nil {
		return nil, err
	}

	if err := s.validateFilters(filters); err != nil {
		return nil, err
	}

	rows, err := s.transactionRepo.ListByPeriod(ctx, kind, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchTransactions, err)
	}

	report := Aggregate(rows, profile)

	log.ForContext(ctx).WithFields(log.Fields{
		"kind":              kind,
		"currency":          filters.Currency,
		"brand":             filters.Brand,
		"total_transaction": report.TotalTransaction,
		"overdue_count":     report.OverdueCount,
	}).Debug("Relatório agregado")

	return report, nil
}

// SummarizeDay agrega um único dia e soma o valor movimentado
func (s *Service) SummarizeDay(ctx context.Context, kind domain.TransactionKind, currency string, day time.Time) (*domain.DailySummary, error) {
	profile, err := s.resolveProfile(kind)
	if err != nil {
		return nil, err
	}

	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	filters := &domain.ReportFilters{
		StartDate: &date,
		EndDate:   &date,
		Currency:  currency,
	}

	if err := s.validateFilters(filters); err != nil {
		return nil, err
	}

	rows, err := s.transactionRepo.ListByPeriod(ctx, kind, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchTransactions, err)
	}

	report := Aggregate(rows, profile)

	totalAmount := decimal.Zero
	for _, row := range rows {
		if row != nil {
			totalAmount = totalAmount.Add(row.Amount)
		}
	}

	return &domain.DailySummary{
		Kind:                 kind,
		Currency:             filters.Currency,
		Date:                 date,
		TotalTransaction:     report.TotalTransaction,
		TotalAutomation:      report.TotalTransAutomation,
		OverdueCount:         report.OverdueCount,
		AvgProcessingTime:    report.AvgProcessingTime,
		CoverageRate:         report.CoverageRate,
		TotalAmount:          totalAmount,
		SlowTransactionCount: report.SlowTransactionSummary.TotalSlowTransaction,
		SlowestBrand:         report.SlowTransactionSummary.Brand,
	}, nil
}

func (s *Service) ListBrands(ctx context.Context, kind domain.TransactionKind, currency string) ([]string, error) {
	if _, err := s.resolveProfile(kind); err != nil {
		return nil, err
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !s.markets.HasCurrency(currency) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMarket, currency)
	}

	brands, err := s.transactionRepo.ListBrands(ctx, kind, currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchTransactions, err)
	}

	return brands, nil
}

func (s *Service) ListDailySummaries(ctx context.Context, kind domain.TransactionKind, filters *domain.ReportFilters) ([]*domain.DailySummary, error) {
	if _, err := s.resolveProfile(kind); err != nil {
		return nil, err
	}

	if filters == nil {
		filters = &domain.ReportFilters{}
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return nil, fmt.Errorf("%w: data inicial posterior à data final", ErrInvalidPeriod)
	}

	if filters.Currency != "" {
		filters.Currency = strings.ToUpper(strings.TrimSpace(filters.Currency))
		if !s.markets.HasCurrency(filters.Currency) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedMarket, filters.Currency)
		}
	}

	summaries, err := s.summaryRepo.ListByPeriod(ctx, kind, filters)
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

func (s *Service) Markets() []string {
	markets := make([]string, len(s.markets.Currencies))
	copy(markets, s.markets.Currencies)
	return markets
}

func (s *Service) resolveProfile(kind domain.TransactionKind) (domain.AggregationProfile, error) {
	profile, ok := s.profiles.ProfileByKind(kind)
	if !ok {
		return domain.AggregationProfile{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return profile, nil
}

// validateFilters exige período completo e moeda configurada; a moeda é normalizada em maiúsculas
func (s *Service) validateFilters(filters *domain.ReportFilters) error {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return fmt.Errorf("%w: data inicial e final são obrigatórias", ErrInvalidPeriod)
	}

	if filters.StartDate.After(*filters.EndDate) {
		return fmt.Errorf("%w: data inicial posterior à data final", ErrInvalidPeriod)
	}

	filters.Currency = strings.ToUpper(strings.TrimSpace(filters.Currency))
	if !s.markets.HasCurrency(filters.Currency) {
		return fmt.Errorf("%w: %s", ErrUnsupportedMarket, filters.Currency)
	}

	return nil
}
