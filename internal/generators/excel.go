package generators

import (
	"bytes"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finops-kpi-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary          = "Summary"
	SheetDaily            = "Daily"
	SheetBrands           = "Brands"
	SheetSlowTransactions = "Slow Transactions"
	SheetCaseVolume       = "Case Volume"
)

type ExcelGenerator struct{}

func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

type sheetStyles struct {
	title  int
	header int
}

// GenerateReport monta a planilha do relatório; a aba Case Volume só existe quando o relatório a possui
func (g *ExcelGenerator) GenerateReport(report *domain.Report, meta ExportMeta) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []string{SheetSummary, SheetDaily, SheetBrands, SheetSlowTransactions}
	if report.CaseVolume != nil {
		sheets = append(sheets, SheetCaseVolume)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("erro ao criar aba %s: %w", sheet, err)
		}
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	if err := g.writeSummary(f, styles, report, meta); err != nil {
		return nil, fmt.Errorf("erro ao gerar aba de resumo: %w", err)
	}

	if err := g.writeDaily(f, styles, report); err != nil {
		return nil, fmt.Errorf("erro ao gerar aba diária: %w", err)
	}

	if err := g.writeBrands(f, styles, report); err != nil {
		return nil, fmt.Errorf("erro ao gerar aba de marcas: %w", err)
	}

	if err := g.writeSlowTransactions(f, styles, report); err != nil {
		return nil, fmt.Errorf("erro ao gerar aba de transações lentas: %w", err)
	}

	if report.CaseVolume != nil {
		if err := g.writeCaseVolume(f, styles, report); err != nil {
			return nil, fmt.Errorf("erro ao gerar aba de volume de casos: %w", err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("erro ao escrever planilha: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"kind":         report.Kind,
		"currency":     meta.Currency,
		"period":       meta.period(),
		"transactions": report.TotalTransaction,
	}).Info("Planilha do relatório gerada")

	return buf, nil
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	title, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "#FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2C3E50"}, Pattern: 1},
	})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("erro ao criar estilo de título: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#34495E"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Style: 1, Color: "#000000"},
		},
	})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("erro ao criar estilo de cabeçalho: %w", err)
	}

	return sheetStyles{title: title, header: header}, nil
}

// writeTable escreve o cabeçalho na linha 1 e as linhas a partir da linha 2
func writeTable(f *excelize.File, styles sheetStyles, sheet string, headers []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, styles.header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	lastColumn, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastColumn, 20)
}

func (g *ExcelGenerator) writeSummary(f *excelize.File, styles sheetStyles, report *domain.Report, meta ExportMeta) error {
	brand := meta.Brand
	if brand == "" {
		brand = "Todas"
	}

	rows := [][]any{
		{"Relatório", string(report.Kind)},
		{"Moeda", meta.Currency},
		{"Período", meta.period()},
		{"Marca", brand},
		{"Gerado em", meta.GeneratedAt.Format(time.RFC3339)},
		{"Gerado por", meta.GeneratedBy},
		{},
		{"Total de transações", report.TotalTransaction},
		{"Transações de automação", report.TotalTransAutomation},
		{"Tempo médio de processamento (s)", report.AvgProcessingTime},
		{fmt.Sprintf("Em atraso (> %gs)", report.OverdueThreshold), report.OverdueCount},
	}
	if report.CoverageRate != nil {
		rows = append(rows, []any{"Taxa de cobertura (%)", *report.CoverageRate})
	}
	rows = append(rows,
		[]any{"Transações lentas", report.SlowTransactionSummary.TotalSlowTransaction},
		[]any{"Tempo médio das lentas (s)", report.SlowTransactionSummary.AvgProcessingTime},
		[]any{"Marca mais lenta", report.SlowTransactionSummary.Brand},
	)

	if err := f.SetCellValue(SheetSummary, "A1", "KPI Dashboard"); err != nil {
		return err
	}
	if err := f.MergeCell(SheetSummary, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", styles.title); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetSummary, "A", "A", 36); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "B", "B", 28)
}

func (g *ExcelGenerator) writeDaily(f *excelize.File, styles sheetStyles, report *domain.Report) error {
	headers := []any{"Data", "Transações", "Em atraso", "Tempo médio (s)"}
	if report.ChartData.CoverageRate != nil {
		headers = append(headers, "Cobertura (%)")
	}

	rows := make([][]any, 0, len(report.DailyData))
	for _, day := range report.DailyData {
		row := []any{
			day.Date,
			day.Count,
			report.ChartData.OverdueTrans[day.Date],
			report.ChartData.AvgProcessingTime[day.Date],
		}
		if report.ChartData.CoverageRate != nil {
			row = append(row, report.ChartData.CoverageRate[day.Date])
		}
		rows = append(rows, row)
	}

	return writeTable(f, styles, SheetDaily, headers, rows)
}

func (g *ExcelGenerator) writeBrands(f *excelize.File, styles sheetStyles, report *domain.Report) error {
	headers := []any{"Marca", "Tempo médio (s)", "Transações", "Automação", "Em atraso"}
	withCoverage := len(report.BrandComparison) > 0 && report.BrandComparison[0].CoverageRate != nil
	if withCoverage {
		headers = append(headers, "Cobertura (%)")
	}

	rows := make([][]any, 0, len(report.BrandComparison))
	for _, item := range report.BrandComparison {
		row := []any{item.Brand, item.AvgTime, item.TotalTransaction, item.TotalAutomation, item.TotalOverdue}
		if withCoverage && item.CoverageRate != nil {
			row = append(row, *item.CoverageRate)
		}
		rows = append(rows, row)
	}

	return writeTable(f, styles, SheetBrands, headers, rows)
}

func (g *ExcelGenerator) writeSlowTransactions(f *excelize.File, styles sheetStyles, report *domain.Report) error {
	headers := []any{"Marca", "Cliente", "Valor", "Tempo de processamento (s)", "Data", "Grupo de operador"}

	rows := make([][]any, 0, len(report.SlowTransactions))
	for _, transaction := range report.SlowTransactions {
		rows = append(rows, []any{
			transaction.Brand,
			transaction.CustomerName,
			transaction.Amount,
			transaction.ProcessingTime,
			transaction.Date,
			transaction.OperatorGroup,
		})
	}

	return writeTable(f, styles, SheetSlowTransactions, headers, rows)
}

func (g *ExcelGenerator) writeCaseVolume(f *excelize.File, styles sheetStyles, report *domain.Report) error {
	headers := []any{"Marca", "Casos (%)", "Automação", "Em atraso"}

	rows := make([][]any, 0, len(report.CaseVolume))
	for _, item := range report.CaseVolume {
		rows = append(rows, []any{item.Brand, item.TotalCase, item.TotalTransAutomation, item.TotalOverdue})
	}

	return writeTable(f, styles, SheetCaseVolume, headers, rows)
}
