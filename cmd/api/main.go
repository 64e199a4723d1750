package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finops-kpi-api/infrastructure/database/postgres"
	"github.com/vfg2006/finops-kpi-api/infrastructure/repository"
	"github.com/vfg2006/finops-kpi-api/internal/api"
	"github.com/vfg2006/finops-kpi-api/internal/config"
	"github.com/vfg2006/finops-kpi-api/internal/scheduler"
	"github.com/vfg2006/finops-kpi-api/internal/usecases/aggregating"
	"github.com/vfg2006/finops-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/finops-kpi-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	transactionRepo := repository.NewTransactionRepository(pgConn, cfg.Query)
	dailySummaryRepo := repository.NewDailySummaryRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	reporter := aggregating.NewService(transactionRepo, dailySummaryRepo, cfg)

	dailyDigestService := scheduler.NewDailyDigestService(reporter, dailySummaryRepo, cfg)
	if err := dailyDigestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do resumo diário de KPIs")
	} else {
		logrus.Info("Agendador do resumo diário de KPIs iniciado com sucesso")
	}

	server, err := api.New(cfg, reporter, authenticator, dailyDigestService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
