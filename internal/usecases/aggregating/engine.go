// Package aggregating transforma as linhas de transação de um período no relatório do dashboard
package aggregating

import (
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/finops-kpi-api/internal/domain"
	"github.com/vfg2006/finops-kpi-api/pkg/utils"
)

const (
	// slowTransactionScanLimit limita quantas transações em atraso são formatadas.
	// O corte acontece na ordem de origem, antes da ordenação por tempo.
	slowTransactionScanLimit = 200
	// slowTransactionListLimit limita a lista devolvida ao cliente
	slowTransactionListLimit = 100
)

// metrics acumula os contadores de um grupo (período, dia ou marca)
type metrics struct {
	total         int
	automation    int
	staff         int
	overdue       int
	durationSum   float64
	durationCount int
}

func (m *metrics) add(row domain.ClassifiedRow) {
	m.total++

	if row.IsAutomation {
		m.automation++
		// Duração zero é tratada como desconhecida e fica fora da média
		if row.DurationSeconds > 0 {
			m.durationSum += row.DurationSeconds
			m.durationCount++
		}
	}

	if row.IsStaff {
		m.staff++
	}

	if row.IsOverdue {
		m.overdue++
	}
}

func (m *metrics) avgProcessingTime() float64 {
	if m.durationCount == 0 {
		return 0
	}
	return m.durationSum / float64(m.durationCount)
}

func (m *metrics) coverageRate(basis domain.CoverageBasis) float64 {
	if m.total == 0 {
		return 0
	}

	covered := m.total - m.staff
	if basis == domain.CoverageAutomationOnly {
		covered = m.automation
	}

	return float64(covered) / float64(m.total) * 100
}

// groups mantém os grupos na ordem em que foram encontrados
type groups struct {
	keys  []string
	byKey map[string]*metrics
}

func newGroups() *groups {
	return &groups{byKey: make(map[string]*metrics)}
}

func (g *groups) get(key string) *metrics {
	m, exists := g.byKey[key]
	if !exists {
		m = &metrics{}
		g.byKey[key] = m
		g.keys = append(g.keys, key)
	}
	return m
}

// Aggregate monta o relatório completo a partir das linhas do período.
// Nunca falha: campos ausentes ou inválidos viram valores padrão.
func Aggregate(rows []*domain.TransactionRow, profile domain.AggregationProfile) *domain.Report {
	classified := make([]domain.ClassifiedRow, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		classified = append(classified, Classify(row, profile.OverdueThresholdSeconds))
	}

	totals := &metrics{}
	daily := newGroups()
	brands := newGroups()

	for _, row := range classified {
		totals.add(row)
		daily.get(row.Date).add(row)
		brands.get(brandOf(row.TransactionRow)).add(row)
	}

	report := &domain.Report{
		Kind:                 profile.Kind,
		TotalTransaction:     totals.total,
		TotalTransAutomation: totals.automation,
		AvgProcessingTime:    utils.RoundWithOneDecimalPlace(totals.avgProcessingTime()),
		OverdueCount:         totals.overdue,
		OverdueThreshold:     profile.OverdueThresholdSeconds,
	}

	if profile.IncludeCoverageRate {
		coverage := utils.RoundWithOneDecimalPlace(totals.coverageRate(profile.CoverageBasis))
		report.CoverageRate = &coverage
	}

	report.DailyData, report.ChartData = buildDailySeries(daily, profile)
	report.BrandComparison = buildBrandComparison(brands, profile)
	report.SlowTransactions, report.SlowTransactionSummary = buildSlowTransactions(classified)

	if profile.IncludeCaseVolume {
		report.CaseVolume = buildCaseVolume(report.BrandComparison)
	}

	return report
}

// brandOf usa UNKNOWN apenas quando a marca está ausente; texto em branco é mantido
func brandOf(row *domain.TransactionRow) string {
	if row.Brand == "" {
		return domain.UnknownBrand
	}
	return row.Brand
}

func buildDailySeries(daily *groups, profile domain.AggregationProfile) ([]domain.DailyVolume, domain.ChartData) {
	dates := make([]string, len(daily.keys))
	copy(dates, daily.keys)
	sort.SliceStable(dates, func(i, j int) bool {
		return dateBefore(dates[i], dates[j])
	})

	chart := domain.ChartData{
		OverdueTrans:      make(map[string]int, len(dates)),
		AvgProcessingTime: make(map[string]float64, len(dates)),
		TransactionVolume: make(map[string]int, len(dates)),
	}
	if profile.IncludeCoverageRate {
		chart.CoverageRate = make(map[string]float64, len(dates))
	}

	volumes := make([]domain.DailyVolume, 0, len(dates))
	for _, date := range dates {
		day := daily.byKey[date]

		volumes = append(volumes, domain.DailyVolume{Date: date, Count: day.total})
		chart.OverdueTrans[date] = day.overdue
		chart.AvgProcessingTime[date] = utils.RoundWithOneDecimalPlace(day.avgProcessingTime())
		chart.TransactionVolume[date] = day.total

		if profile.IncludeCoverageRate {
			chart.CoverageRate[date] = utils.RoundWithOneDecimalPlace(day.coverageRate(profile.CoverageBasis))
		}
	}

	return volumes, chart
}

// dateBefore ordena cronologicamente quando as duas datas são YYYY-MM-DD,
// caso contrário compara o texto
func dateBefore(a, b string) bool {
	dateA, errA := time.Parse(time.DateOnly, strings.TrimSpace(a))
	dateB, errB := time.Parse(time.DateOnly, strings.TrimSpace(b))
	if errA == nil && errB == nil {
		return dateA.Before(dateB)
	}
	return a < b
}

func buildBrandComparison(brands *groups, profile domain.AggregationProfile) []domain.BrandComparison {
	comparison := make([]domain.BrandComparison, 0, len(brands.keys))

	for _, brand := range brands.keys {
		group := brands.byKey[brand]

		item := domain.BrandComparison{
			Brand:            brand,
			AvgTime:          utils.RoundWithOneDecimalPlace(group.avgProcessingTime()),
			TotalTransaction: group.total,
			TotalAutomation:  group.automation,
			TotalOverdue:     group.overdue,
		}

		if profile.IncludeCoverageRate {
			coverage := utils.RoundWithOneDecimalPlace(group.coverageRate(profile.CoverageBasis))
			item.CoverageRate = &coverage
		}

		comparison = append(comparison, item)
	}

	sort.SliceStable(comparison, func(i, j int) bool {
		return comparison[i].AvgTime < comparison[j].AvgTime
	})

	return comparison
}

func buildSlowTransactions(rows []domain.ClassifiedRow) ([]domain.SlowTransaction, domain.SlowTransactionSummary) {
	slow := make([]domain.SlowTransaction, 0)
	for _, row := range rows {
		if !row.IsOverdue {
			continue
		}
		if len(slow) >= slowTransactionScanLimit {
			break
		}
		slow = append(slow, toSlowTransaction(row))
	}

	sort.SliceStable(slow, func(i, j int) bool {
		return slow[i].ProcessingTime > slow[j].ProcessingTime
	})

	summary := summarizeSlowTransactions(slow)

	if len(slow) > slowTransactionListLimit {
		slow = slow[:slowTransactionListLimit]
	}

	return slow, summary
}

func toSlowTransaction(row domain.ClassifiedRow) domain.SlowTransaction {
	customerName := row.CustomerName
	if customerName == "" {
		customerName = domain.NotAvailable
	}

	return domain.SlowTransaction{
		Brand:          brandOf(row.TransactionRow),
		CustomerName:   customerName,
		Amount:         row.Amount.InexactFloat64(),
		ProcessingTime: utils.RoundWithOneDecimalPlace(row.DurationSeconds),
		Date:           row.Date,
		OperatorGroup:  row.OperatorGroup,
	}
}

func summarizeSlowTransactions(slow []domain.SlowTransaction) domain.SlowTransactionSummary {
	summary := domain.SlowTransactionSummary{
		TotalSlowTransaction: len(slow),
		Brand:                domain.NotAvailable,
	}

	if len(slow) == 0 {
		return summary
	}

	total := 0.0
	brandOrder := make([]string, 0)
	brandCount := make(map[string]int)
	for _, transaction := range slow {
		total += transaction.ProcessingTime

		if _, seen := brandCount[transaction.Brand]; !seen {
			brandOrder = append(brandOrder, transaction.Brand)
		}
		brandCount[transaction.Brand]++
	}

	summary.AvgProcessingTime = utils.RoundWithOneDecimalPlace(total / float64(len(slow)))

	// Em caso de empate vence a marca encontrada primeiro
	topCount := 0
	for _, brand := range brandOrder {
		if brandCount[brand] > topCount {
			topCount = brandCount[brand]
			summary.Brand = brand
		}
	}

	return summary
}

func buildCaseVolume(comparison []domain.BrandComparison) []domain.CaseVolume {
	volume := make([]domain.CaseVolume, 0, len(comparison))

	for _, item := range comparison {
		totalCase := 0.0
		if item.TotalAutomation > 0 {
			totalCase = utils.RoundWithTwoDecimalPlace(float64(item.TotalOverdue) / float64(item.TotalAutomation) * 100)
		}

		volume = append(volume, domain.CaseVolume{
			Brand:                item.Brand,
			TotalCase:            totalCase,
			TotalTransAutomation: item.TotalAutomation,
			TotalOverdue:         item.TotalOverdue,
		})
	}

	sort.SliceStable(volume, func(i, j int) bool {
		return volume[i].TotalCase > volume[j].TotalCase
	})

	return volume
}
