package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finops-kpi-api/internal/api/handler"
	"github.com/vfg2006/finops-kpi-api/internal/api/handler/router"
	"github.com/vfg2006/finops-kpi-api/internal/config"
	"github.com/vfg2006/finops-kpi-api/internal/generators"
	"github.com/vfg2006/finops-kpi-api/internal/scheduler"
	"github.com/vfg2006/finops-kpi-api/internal/usecases/aggregating"
	"github.com/vfg2006/finops-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/finops-kpi-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o router com as rotas e a cadeia de middlewares globais
func NewHandler(
	config *config.Config,
	reporter aggregating.Reporter,
	authenticator authenticating.Authenticator,
	cronServices handler.CronJobServices,
) http.Handler {
	exporters := handler.Exporters{
		Excel: generators.NewExcelGenerator(),
		CSV:   generators.NewCSVGenerator(),
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Reports(reporter, exporters)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(
	config *config.Config,
	reporter aggregating.Reporter,
	authenticator authenticating.Authenticator,
	dailyDigestService *scheduler.DailyDigestService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		handler.CronJobTypeDailyDigest: dailyDigestService,
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, reporter, authenticator, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
			// Relatórios de períodos longos e exportações podem demorar
			WriteTimeout: config.Query.Timeout + 30*time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
