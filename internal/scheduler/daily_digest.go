package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finops-kpi-api/infrastructure/repository"
	"github.com/vfg2006/finops-kpi-api/internal/config"
	"github.com/vfg2006/finops-kpi-api/internal/domain"
	"github.com/vfg2006/finops-kpi-api/internal/usecases/aggregating"
	"github.com/vfg2006/finops-kpi-api/pkg/utils"
)

var ErrDigestAlreadyRunning = errors.New("resumo diário já em andamento")

var digestKinds = []domain.TransactionKind{
	domain.TransactionKindDeposit,
	domain.TransactionKindWithdraw,
}

// DailyDigestConfig representa a configuração do agendador de resumos diários
type DailyDigestConfig struct {
	CronSchedule string
	LookbackDays int
	Enabled      bool
}

// DailyDigestService grava o resumo de KPIs de cada moeda e tipo de transação
type DailyDigestService struct {
	scheduler   *gocron.Scheduler
	config      DailyDigestConfig
	reporter    aggregating.Reporter
	summaryRepo repository.DailySummaryRepository
	now         func() time.Time

	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastRunID           string
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSavedSummaries  int
	lastFailures        int
}

func NewDailyDigestService(
	reporter aggregating.Reporter,
	summaryRepo repository.DailySummaryRepository,
	appConfig *config.Config,
) *DailyDigestService {
	digestConfig := DailyDigestConfig{
		CronSchedule: appConfig.DailyDigest.CronSchedule,
		LookbackDays: appConfig.DailyDigest.LookbackDays,
		Enabled:      appConfig.DailyDigest.Enabled,
	}
	if digestConfig.LookbackDays < 1 {
		digestConfig.LookbackDays = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": digestConfig.CronSchedule,
		"lookback_days": digestConfig.LookbackDays,
		"enabled":       digestConfig.Enabled,
	}).Info("Configuração do agendador de resumo diário carregada")

	return &DailyDigestService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      digestConfig,
		reporter:    reporter,
		summaryRepo: summaryRepo,
		now:         time.Now,
		baseCtx:     context.Background(),
	}
}

// Start agenda o resumo diário; o agendador para quando o contexto é cancelado
func (s *DailyDigestService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.Enabled {
		logrus.Info("Resumo diário desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de resumo diário")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.run(s.baseCtx); err != nil && !errors.Is(err, ErrDigestAlreadyRunning) {
			logrus.WithError(err).Error("Erro no resumo diário agendado")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar resumo diário: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de resumo diário")
		s.scheduler.Stop()
	}()

	return nil
}

// run processa os últimos LookbackDays dias, do mais antigo para ontem
func (s *DailyDigestService) run(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Resumo diário já em andamento, ignorando")
		return ErrDigestAlreadyRunning
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	runID, err := utils.GenerateID()
	if err != nil {
		return fmt.Errorf("erro ao gerar ID da execução: %w", err)
	}

	startTime := s.now()
	s.setRunStarted(runID, startTime)

	logger := logrus.WithField("run_id", runID)
	logger.Info("Iniciando resumo diário")

	yesterday := utils.Yesterday(startTime)
	saved, failures := 0, 0
	for offset := s.config.LookbackDays - 1; offset >= 0; offset-- {
		day := yesterday.AddDate(0, 0, -offset)

		summaries, dayFailures := s.summarizeDay(ctx, logger, day)
		failures += dayFailures

		if len(summaries) == 0 {
			continue
		}

		if err := s.summaryRepo.SaveOrUpdate(ctx, summaries); err != nil {
			failures += len(summaries)
			logger.WithError(err).WithField("date", day.Format(time.DateOnly)).Error("Erro ao salvar resumos diários")
			continue
		}
		saved += len(summaries)
	}

	s.setRunCompleted(saved, failures)

	logger.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"saved":    saved,
		"failures": failures,
	}).Info("Resumo diário concluído")

	return nil
}

func (s *DailyDigestService) summarizeDay(ctx context.Context, logger *logrus.Entry, day time.Time) ([]*domain.DailySummary, int) {
	summaries := make([]*domain.DailySummary, 0)
	failures := 0

	for _, currency := range s.reporter.Markets() {
		for _, kind := range digestKinds {
			fields := logrus.Fields{
				"kind":     kind,
				"currency": currency,
				"date":     day.Format(time.DateOnly),
			}

			summary, err := s.reporter.SummarizeDay(ctx, kind, currency, day)
			if err != nil {
				failures++
				logger.WithFields(fields).WithError(err).Error("Erro ao calcular resumo diário")
				continue
			}

			logger.WithFields(fields).WithField("total_transaction", summary.TotalTransaction).Debug("Resumo diário calculado")
			summaries = append(summaries, summary)
		}
	}

	return summaries, failures
}

func (s *DailyDigestService) setRunStarted(runID string, startedAt time.Time) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.lastRunID = runID
	s.lastSyncStartedAt = startedAt
}

func (s *DailyDigestService) setRunCompleted(saved, failures int) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.lastSyncCompletedAt = s.now()
	s.lastSavedSummaries = saved
	s.lastFailures = failures
}

// TriggerManualSync inicia o resumo diário em background
func (s *DailyDigestService) TriggerManualSync() error {
	if s.IsRunning() {
		logrus.Info("Resumo diário já em andamento, ignorando solicitação manual")
		return ErrDigestAlreadyRunning
	}

	logrus.Info("Iniciando resumo diário manual")
	go func() {
		if err := s.run(s.baseCtx); err != nil && !errors.Is(err, ErrDigestAlreadyRunning) {
			logrus.WithError(err).Error("Erro no resumo diário manual")
		}
	}()

	return nil
}

func (s *DailyDigestService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *DailyDigestService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":                s.config.Enabled,
		"cron":                   s.config.CronSchedule,
		"lookback_days":          s.config.LookbackDays,
		"running":                s.syncRunning,
		"last_run_id":            s.lastRunID,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_saved_summaries":   s.lastSavedSummaries,
		"last_failures":          s.lastFailures,
	}
}
