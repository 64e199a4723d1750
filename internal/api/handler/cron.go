package handler

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/finops-kpi-api/internal/scheduler"
	"github.com/vfg2006/finops-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/finops-kpi-api/pkg/log"
)

const (
	CronJobTypeDailyDigest = "daily-digest"
	CronJobTypeAll         = "all"
)

// CronJob é o contrato dos agendadores que podem ser executados manualmente
type CronJob interface {
	TriggerManualSync() error
	GetStatus() map[string]any
}

// CronJobServices mapeia o tipo da cron job para o serviço
type CronJobServices map[string]CronJob

func (s CronJobServices) types() []string {
	types := make([]string, 0, len(s))
	for cronType := range s {
		types = append(types, cronType)
	}
	sort.Strings(types)
	return types
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		logger := log.ForContext(r.Context()).WithField("cron_type", cronType)

		var jobs []string
		switch {
		case cronType == CronJobTypeAll:
			jobs = services.types()
		case services[cronType] != nil:
			jobs = []string{cronType}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido", map[string]any{
				"accepted": append(services.types(), CronJobTypeAll),
			})
			return
		}

		started := make([]string, 0, len(jobs))
		for _, job := range jobs {
			if err := services[job].TriggerManualSync(); err != nil {
				if errors.Is(err, scheduler.ErrDigestAlreadyRunning) && cronType != CronJobTypeAll {
					apiErrors.WriteError(w, apiErrors.ErrConflict, err.Error(), nil)
					return
				}
				logger.WithError(err).Warnf("Cron job %s não iniciada", job)
				continue
			}
			started = append(started, job)
		}

		logger.Info("Cron job iniciada manualmente")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for cronType, service := range services {
			status[cronType] = service.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
