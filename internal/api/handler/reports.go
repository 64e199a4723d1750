package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/finops-kpi-api/internal/domain"
	"github.com/vfg2006/finops-kpi-api/internal/generators"
	"github.com/vfg2006/finops-kpi-api/internal/usecases/aggregating"
	"github.com/vfg2006/finops-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/finops-kpi-api/pkg/log"
	"github.com/vfg2006/finops-kpi-api/pkg/middleware"
	"github.com/vfg2006/finops-kpi-api/pkg/utils"
)

// Exporters agrupa os geradores usados no download do relatório
type Exporters struct {
	Excel *generators.ExcelGenerator
	CSV   *generators.CSVGenerator
}

func kindFromPath(r *http.Request) domain.TransactionKind {
	kind := httprouter.ParamsFromContext(r.Context()).ByName("kind")
	return domain.TransactionKind(strings.ToLower(kind))
}

// parseReportFilters lê start_date, end_date, currency e brand da query string
func parseReportFilters(r *http.Request, requirePeriod bool) (*domain.ReportFilters, string, error) {
	query := r.URL.Query()

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		return nil, apiErrors.ErrInvalidFormat, errors.New("start_date inválida, use YYYY-MM-DD")
	}

	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		return nil, apiErrors.ErrInvalidFormat, errors.New("end_date inválida, use YYYY-MM-DD")
	}

	currency := strings.TrimSpace(query.Get("currency"))

	if requirePeriod {
		if startDate == nil || endDate == nil {
			return nil, apiErrors.ErrMissingRequiredData, errors.New("start_date e end_date são obrigatórias")
		}
		if currency == "" {
			return nil, apiErrors.ErrMissingRequiredData, errors.New("currency é obrigatória")
		}
	}

	return &domain.ReportFilters{
		StartDate: startDate,
		EndDate:   endDate,
		Currency:  currency,
		Brand:     strings.TrimSpace(query.Get("brand")),
	}, "", nil
}

// writeServiceError converte os erros do serviço de relatórios em respostas padronizadas
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, aggregating.ErrUnknownKind):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)
	case errors.Is(err, aggregating.ErrInvalidPeriod):
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
	case errors.Is(err, aggregating.ErrUnsupportedMarket):
		apiErrors.WriteError(w, apiErrors.ErrUnsupportedMarket, err.Error(), nil)
	case errors.Is(err, aggregating.ErrFetchTransactions):
		log.ForContext(r.Context()).WithError(err).Error("Erro ao buscar transações")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar transações", nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro inesperado no relatório")
		writeInternalError(w, "Erro ao gerar relatório")
	}
}

// loadReport valida os parâmetros e busca o relatório; devolve false quando a resposta já foi escrita
func loadReport(w http.ResponseWriter, r *http.Request, service aggregating.Reporter) (*domain.Report, *domain.ReportFilters, bool) {
	kind := kindFromPath(r)
	logger := log.ForContext(r.Context())

	filters, code, err := parseReportFilters(r, true)
	if err != nil {
		logger.WithFields(log.Fields{
			"kind":  kind,
			"query": r.URL.RawQuery,
			"error": err.Error(),
		}).Warn("Parâmetros inválidos para relatório")
		apiErrors.WriteError(w, code, err.Error(), nil)
		return nil, nil, false
	}

	report, err := service.GetReport(r.Context(), kind, filters)
	if err != nil {
		writeServiceError(w, r, err)
		return nil, nil, false
	}

	logger.WithFields(log.Fields{
		"kind":              kind,
		"currency":          filters.Currency,
		"start_date":        filters.StartDate.Format(time.DateOnly),
		"end_date":          filters.EndDate.Format(time.DateOnly),
		"total_transaction": report.TotalTransaction,
	}).Info("Relatório gerado")

	return report, filters, true
}

func GetReport(service aggregating.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, _, ok := loadReport(w, r, service)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

func ExportReport(service aggregating.Reporter, exporters Exporters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, ok := generators.ParseFormat(r.URL.Query().Get("format"))
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de exportação inválido. Valores aceitos: xlsx, csv", nil)
			return
		}

		report, filters, ok := loadReport(w, r, service)
		if !ok {
			return
		}

		meta := generators.ExportMeta{
			Kind:        report.Kind,
			Currency:    filters.Currency,
			Brand:       filters.Brand,
			StartDate:   *filters.StartDate,
			EndDate:     *filters.EndDate,
			GeneratedAt: time.Now(),
		}
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			meta.GeneratedBy = claims.UserEmail
		}

		filename, err := generators.Filename(meta, format)
		if err != nil {
			writeInternalError(w, "Erro ao gerar nome do arquivo")
			return
		}

		var content *bytes.Buffer
		switch format {
		case generators.FormatCSV:
			content = new(bytes.Buffer)
			err = exporters.CSV.WriteSlowTransactions(content, report)
		default:
			content, err = exporters.Excel.GenerateReport(report, meta)
		}
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao exportar relatório")
			writeInternalError(w, "Erro ao exportar relatório")
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := content.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar arquivo exportado")
		}
	}
}

func ListBrands(service aggregating.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		kind := domain.TransactionKind(strings.ToLower(strings.TrimSpace(query.Get("kind"))))
		currency := strings.TrimSpace(query.Get("currency"))

		if kind == "" || currency == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "kind e currency são obrigatórios", nil)
			return
		}

		brands, err := service.ListBrands(r.Context(), kind, currency)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"brands": brands})
	}
}

func ListMarkets(service aggregating.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{"currencies": service.Markets()})
	}
}

func ListDailySummaries(service aggregating.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, code, err := parseReportFilters(r, false)
		if err != nil {
			apiErrors.WriteError(w, code, err.Error(), nil)
			return
		}

		summaries, err := service.ListDailySummaries(r.Context(), kindFromPath(r), filters)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, summaries)
	}
}
