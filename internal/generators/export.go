// Package generators exporta o relatório do dashboard em planilha e CSV
package generators

import (
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/finops-kpi-api/internal/domain"
	"github.com/vfg2006/finops-kpi-api/pkg/utils"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat aceita xlsx (padrão quando vazio) e csv
func ParseFormat(value string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatXLSX:
		return FormatXLSX, true
	case FormatCSV:
		return FormatCSV, true
	default:
		return "", false
	}
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// ExportMeta descreve os filtros usados para gerar o relatório exportado
type ExportMeta struct {
	Kind        domain.TransactionKind
	Currency    string
	Brand       string
	StartDate   time.Time
	EndDate     time.Time
	GeneratedBy string
	GeneratedAt time.Time
}

func (m ExportMeta) period() string {
	return fmt.Sprintf("%s a %s", m.StartDate.Format(time.DateOnly), m.EndDate.Format(time.DateOnly))
}

// Filename monta o nome do arquivo, ex.: deposit_myr_2024-01-01_2024-01-31_Ab12Cd34.xlsx
func Filename(meta ExportMeta, format Format) (string, error) {
	suffix, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar sufixo do arquivo: %w", err)
	}

	return fmt.Sprintf(
		"%s_%s_%s_%s_%s.%s",
		meta.Kind,
		strings.ToLower(meta.Currency),
		meta.StartDate.Format(time.DateOnly),
		meta.EndDate.Format(time.DateOnly),
		suffix,
		format,
	), nil
}
