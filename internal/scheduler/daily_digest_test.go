package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/finops-kpi-api/infrastructure/repository/mocks"
	"github.com/vfg2006/finops-kpi-api/internal/config"
	"github.com/vfg2006/finops-kpi-api/internal/domain"
	"github.com/vfg2006/finops-kpi-api/internal/usecases/aggregating/mocks"
	"go.uber.org/mock/gomock"
)

func newTestDigest(ctrl *gomock.Controller, lookbackDays int) (*DailyDigestService, *mocks.MockReporter, *repomocks.MockDailySummaryRepository) {
	reporter := mocks.NewMockReporter(ctrl)
	summaryRepo := repomocks.NewMockDailySummaryRepository(ctrl)

	service := NewDailyDigestService(reporter, summaryRepo, &config.Config{
		DailyDigest: config.DailyDigest{
			CronSchedule: "0 2 * * *",
			LookbackDays: lookbackDays,
		},
	})
	// Data de referência: 16 de janeiro às 2h, ontem é 15 de janeiro
	service.now = func() time.Time { return time.Date(2024, 1, 16, 2, 0, 0, 0, time.UTC) }

	return service, reporter, summaryRepo
}

func summaryFor(kind domain.TransactionKind, currency string, day time.Time) *domain.DailySummary {
	return &domain.DailySummary{Kind: kind, Currency: currency, Date: day, TotalTransaction: 5}
}

func TestDailyDigestService_run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, reporter, summaryRepo := newTestDigest(ctrl, 1)
	yesterday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	reporter.EXPECT().Markets().Return([]string{"MYR", "SGD"})
	reporter.EXPECT().
		SummarizeDay(gomock.Any(), gomock.Any(), gomock.Any(), yesterday).
		DoAndReturn(func(_ context.Context, kind domain.TransactionKind, currency string, day time.Time) (*domain.DailySummary, error) {
			return summaryFor(kind, currency, day), nil
		}).
		Times(4)

	summaryRepo.EXPECT().
		SaveOrUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, summaries []*domain.DailySummary) error {
			require.Len(t, summaries, 4)
			assert.Equal(t, domain.TransactionKindDeposit, summaries[0].Kind)
			assert.Equal(t, "MYR", summaries[0].Currency)
			assert.Equal(t, domain.TransactionKindWithdraw, summaries[1].Kind)
			assert.Equal(t, "SGD", summaries[3].Currency)
			return nil
		})

	require.NoError(t, service.run(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, 4, status["last_saved_summaries"])
	assert.Equal(t, 0, status["last_failures"])
	assert.NotEmpty(t, status["last_run_id"])
	assert.Equal(t, false, status["running"])
}

func TestDailyDigestService_run_PartialFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, reporter, summaryRepo := newTestDigest(ctrl, 2)
	day14 := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	day15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	reporter.EXPECT().Markets().Return([]string{"MYR"}).Times(2)

	gomock.InOrder(
		reporter.EXPECT().SummarizeDay(gomock.Any(), domain.TransactionKindDeposit, "MYR", day14).
			Return(nil, errors.New("timeout")),
		reporter.EXPECT().SummarizeDay(gomock.Any(), domain.TransactionKindWithdraw, "MYR", day14).
			Return(summaryFor(domain.TransactionKindWithdraw, "MYR", day14), nil),
		summaryRepo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Len(1)).Return(errors.New("deadlock")),
		reporter.EXPECT().SummarizeDay(gomock.Any(), domain.TransactionKindDeposit, "MYR", day15).
			Return(summaryFor(domain.TransactionKindDeposit, "MYR", day15), nil),
		reporter.EXPECT().SummarizeDay(gomock.Any(), domain.TransactionKindWithdraw, "MYR", day15).
			Return(summaryFor(domain.TransactionKindWithdraw, "MYR", day15), nil),
		summaryRepo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Len(2)).Return(nil),
	)

	require.NoError(t, service.run(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, 2, status["last_saved_summaries"])
	assert.Equal(t, 2, status["last_failures"])
}

func TestDailyDigestService_run_AlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _ := newTestDigest(ctrl, 1)
	service.syncRunning = true

	assert.ErrorIs(t, service.run(context.Background()), ErrDigestAlreadyRunning)
	assert.ErrorIs(t, service.TriggerManualSync(), ErrDigestAlreadyRunning)
}

func TestDailyDigestService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _ := newTestDigest(ctrl, 0)

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, 1, service.GetStatus()["lookback_days"])
	assert.Equal(t, false, service.GetStatus()["enabled"])
}
