package aggregating

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finops-kpi-api/internal/domain"
)

func automationRow(date, duration, brand string) *domain.TransactionRow {
	return &domain.TransactionRow{
		Date:          date,
		DurationRaw:   duration,
		OperatorGroup: "Automation",
		Brand:         brand,
		Amount:        decimal.NewFromInt(10),
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	report := Aggregate([]*domain.TransactionRow{}, domain.DepositProfile)

	assert.Equal(t, domain.TransactionKindDeposit, report.Kind)
	assert.Equal(t, 0, report.TotalTransaction)
	assert.Equal(t, 0, report.TotalTransAutomation)
	assert.Equal(t, 0.0, report.AvgProcessingTime)
	assert.Equal(t, 0, report.OverdueCount)
	require.NotNil(t, report.CoverageRate)
	assert.Equal(t, 0.0, *report.CoverageRate)
	assert.Empty(t, report.DailyData)
	assert.NotNil(t, report.DailyData)
	assert.Empty(t, report.BrandComparison)
	assert.NotNil(t, report.BrandComparison)
	assert.Empty(t, report.SlowTransactions)
	assert.NotNil(t, report.SlowTransactions)
	assert.Empty(t, report.ChartData.TransactionVolume)
	assert.Equal(t, domain.SlowTransactionSummary{
		TotalSlowTransaction: 0,
		AvgProcessingTime:    0,
		Brand:                "N/A",
	}, report.SlowTransactionSummary)
}

func TestAggregate_NilRowsAreIgnored(t *testing.T) {
	report := Aggregate([]*domain.TransactionRow{nil, automationRow("2024-01-01", "00:00:10", "X")}, domain.DepositProfile)

	assert.Equal(t, 1, report.TotalTransaction)
}

func TestAggregate_SingleAutomationWithinThreshold(t *testing.T) {
	rows := []*domain.TransactionRow{automationRow("2024-01-01", "00:00:45", "X")}

	report := Aggregate(rows, domain.DepositProfile)

	assert.Equal(t, 1, report.TotalTransaction)
	assert.Equal(t, 1, report.TotalTransAutomation)
	assert.Equal(t, 45.0, report.AvgProcessingTime)
	assert.Equal(t, 0, report.OverdueCount)
	require.NotNil(t, report.CoverageRate)
	assert.Equal(t, 100.0, *report.CoverageRate)
	assert.Empty(t, report.SlowTransactions)
}

func TestAggregate_SingleAutomationOverThreshold(t *testing.T) {
	rows := []*domain.TransactionRow{automationRow("2024-01-01", "00:01:30", "X")}

	report := Aggregate(rows, domain.DepositProfile)

	assert.Equal(t, 1, report.OverdueCount)
	require.Len(t, report.SlowTransactions, 1)
	assert.Equal(t, domain.SlowTransaction{
		Brand:          "X",
		CustomerName:   "N/A",
		Amount:         10,
		ProcessingTime: 90.0,
		Date:           "2024-01-01",
		OperatorGroup:  "Automation",
	}, report.SlowTransactions[0])
	assert.Equal(t, domain.SlowTransactionSummary{
		TotalSlowTransaction: 1,
		AvgProcessingTime:    90,
		Brand:                "X",
	}, report.SlowTransactionSummary)
}

func TestAggregate_CoverageIsNonStaffFraction(t *testing.T) {
	rows := []*domain.TransactionRow{
		{Date: "2024-01-01", OperatorGroup: "Staff", DurationRaw: "00:00:20", Brand: "X"},
		{Date: "2024-01-01", OperatorGroup: "Automation", DurationRaw: "00:00:20", Brand: "X"},
	}

	report := Aggregate(rows, domain.DepositProfile)

	require.NotNil(t, report.CoverageRate)
	assert.Equal(t, 50.0, *report.CoverageRate)
	assert.Equal(t, 50.0, report.ChartData.CoverageRate["2024-01-01"])
}

func TestAggregate_CoverageCountsRowsThatAreNeitherAutomationNorStaff(t *testing.T) {
	rows := []*domain.TransactionRow{
		{Date: "2024-01-01", OperatorGroup: "Manual desk"},
		{Date: "2024-01-01", OperatorGroup: "Staff"},
		{Date: "2024-01-01", OperatorGroup: "Automation"},
		{Date: "2024-01-01", OperatorGroup: "Automation"},
	}

	deposit := Aggregate(rows, domain.DepositProfile)
	require.NotNil(t, deposit.CoverageRate)
	assert.Equal(t, 75.0, *deposit.CoverageRate)

	automationOnly := domain.DepositProfile
	automationOnly.CoverageBasis = domain.CoverageAutomationOnly
	report := Aggregate(rows, automationOnly)
	require.NotNil(t, report.CoverageRate)
	assert.Equal(t, 50.0, *report.CoverageRate)
}

func TestAggregate_AverageExcludesZeroDurations(t *testing.T) {
	rows := []*domain.TransactionRow{
		automationRow("2024-01-01", "00:00:00", "X"),
		automationRow("2024-01-01", "garbage", "X"),
		automationRow("2024-01-01", "00:00:30", "X"),
	}

	report := Aggregate(rows, domain.DepositProfile)

	assert.Equal(t, 30.0, report.AvgProcessingTime)
	assert.Equal(t, 30.0, report.ChartData.AvgProcessingTime["2024-01-01"])
	assert.Equal(t, 30.0, report.BrandComparison[0].AvgTime)
}

func TestAggregate_StaffDurationsDoNotCountInAverage(t *testing.T) {
	rows := []*domain.TransactionRow{
		{Date: "2024-01-01", OperatorGroup: "Staff", DurationRaw: "00:10:00"},
		automationRow("2024-01-01", "00:00:20", "X"),
	}

	report := Aggregate(rows, domain.DepositProfile)

	assert.Equal(t, 20.0, report.AvgProcessingTime)
	assert.Equal(t, 0, report.OverdueCount)
}

func TestAggregate_DailySeries(t *testing.T) {
	rows := []*domain.TransactionRow{
		automationRow("2024-01-03", "00:02:00", "X"),
		automationRow("2024-01-01", "00:00:10", "X"),
		{Date: "2024-01-03", OperatorGroup: "Staff", Brand: "Y"},
		automationRow("2024-01-02", "00:00:20", "Y"),
		automationRow("2024-01-01", "00:00:30", "Y"),
	}

	report := Aggregate(rows, domain.DepositProfile)

	assert.Equal(t, []domain.DailyVolume{
		{Date: "2024-01-01", Count: 2},
		{Date: "2024-01-02", Count: 1},
		{Date: "2024-01-03", Count: 2},
	}, report.DailyData)

	assert.Equal(t, map[string]int{"2024-01-01": 0, "2024-01-02": 0, "2024-01-03": 1}, report.ChartData.OverdueTrans)
	assert.Equal(t, map[string]float64{"2024-01-01": 20, "2024-01-02": 20, "2024-01-03": 120}, report.ChartData.AvgProcessingTime)
	assert.Equal(t, map[string]float64{"2024-01-01": 100, "2024-01-02": 100, "2024-01-03": 50}, report.ChartData.CoverageRate)
	assert.Equal(t, map[string]int{"2024-01-01": 2, "2024-01-02": 1, "2024-01-03": 2}, report.ChartData.TransactionVolume)
}

func TestAggregate_DailyCountsAddUpToTotal(t *testing.T) {
	rows := make([]*domain.TransactionRow, 0)
	for i := 0; i < 57; i++ {
		rows = append(rows, automationRow(fmt.Sprintf("2024-02-%02d", i%9+1), fmt.Sprintf("%d", i), "X"))
	}

	report := Aggregate(rows, domain.WithdrawProfile)

	sum := 0
	for _, day := range report.DailyData {
		sum += day.Count
	}
	assert.Equal(t, report.TotalTransaction, sum)
	assert.Len(t, report.DailyData, 9)
}

func TestAggregate_BrandComparisonSortedByAverageTime(t *testing.T) {
	rows := []*domain.TransactionRow{
		automationRow("2024-01-01", "00:01:20", "B"),
		automationRow("2024-01-01", "00:00:20", "A"),
		{Date: "2024-01-01", OperatorGroup: "Staff"},
	}

	report := Aggregate(rows, domain.DepositProfile)

	require.Len(t, report.BrandComparison, 3)
	assert.Equal(t, "UNKNOWN", report.BrandComparison[0].Brand)
	assert.Equal(t, "A", report.BrandComparison[1].Brand)
	assert.Equal(t, 20.0, report.BrandComparison[1].AvgTime)
	assert.Equal(t, "B", report.BrandComparison[2].Brand)
	assert.Equal(t, 80.0, report.BrandComparison[2].AvgTime)
	assert.Equal(t, 1, report.BrandComparison[2].TotalOverdue)
	require.NotNil(t, report.BrandComparison[0].CoverageRate)
	assert.Equal(t, 0.0, *report.BrandComparison[0].CoverageRate)
}

func TestAggregate_CaseVolume(t *testing.T) {
	rows := []*domain.TransactionRow{
		automationRow("2024-01-01", "00:00:20", "A"),
		automationRow("2024-01-01", "00:01:20", "B"),
		automationRow("2024-01-01", "00:00:10", "C"),
		automationRow("2024-01-01", "00:05:00", "C"),
		automationRow("2024-01-01", "00:00:05", "C"),
		{Date: "2024-01-01", OperatorGroup: "Staff", Brand: "D"},
	}

	report := Aggregate(rows, domain.DepositProfile)

	assert.Equal(t, []domain.CaseVolume{
		{Brand: "B", TotalCase: 100, TotalTransAutomation: 1, TotalOverdue: 1},
		{Brand: "C", TotalCase: 33.33, TotalTransAutomation: 3, TotalOverdue: 1},
		{Brand: "D", TotalCase: 0, TotalTransAutomation: 0, TotalOverdue: 0},
		{Brand: "A", TotalCase: 0, TotalTransAutomation: 1, TotalOverdue: 0},
	}, report.CaseVolume)
}

func TestAggregate_WithdrawProfileOmitsCoverageAndCaseVolume(t *testing.T) {
	rows := []*domain.TransactionRow{
		automationRow("2024-01-01", "00:04:00", "A"),
		automationRow("2024-01-01", "00:06:00", "A"),
	}

	report := Aggregate(rows, domain.WithdrawProfile)

	assert.Equal(t, domain.TransactionKindWithdraw, report.Kind)
	assert.Nil(t, report.CoverageRate)
	assert.Nil(t, report.ChartData.CoverageRate)
	assert.Nil(t, report.CaseVolume)
	assert.Nil(t, report.BrandComparison[0].CoverageRate)
	assert.Equal(t, 1, report.OverdueCount)
	assert.Equal(t, 300.0, report.OverdueThreshold)
}

func TestAggregate_SlowTransactionsCapBeforeSort(t *testing.T) {
	rows := make([]*domain.TransactionRow, 0, 250)
	for i := 0; i < 250; i++ {
		rows = append(rows, &domain.TransactionRow{
			Date:          "2024-01-01",
			DurationRaw:   float64(61 + i),
			OperatorGroup: "Automation",
			Brand:         "X",
		})
	}

	report := Aggregate(rows, domain.DepositProfile)

	require.Len(t, report.SlowTransactions, 100)
	// Apenas as 200 primeiras entram na ordenação: 260s..161s
	for i, transaction := range report.SlowTransactions {
		assert.Equal(t, float64(260-i), transaction.ProcessingTime)
	}

	assert.Equal(t, 250, report.OverdueCount)
	assert.Equal(t, 200, report.SlowTransactionSummary.TotalSlowTransaction)
	assert.Equal(t, 160.5, report.SlowTransactionSummary.AvgProcessingTime)
}

func TestAggregate_SlowTransactionSummaryBrand(t *testing.T) {
	rows := []*domain.TransactionRow{
		automationRow("2024-01-01", "00:02:00", "Y"),
		automationRow("2024-01-01", "00:03:00", "X"),
		automationRow("2024-01-01", "00:01:10", "Y"),
		automationRow("2024-01-01", "00:04:00", "Z"),
		automationRow("2024-01-01", "00:05:00", "X"),
	}

	report := Aggregate(rows, domain.DepositProfile)

	// X e Y empatam com 2, X aparece primeiro na lista ordenada
	assert.Equal(t, "X", report.SlowTransactionSummary.Brand)
	assert.Equal(t, 5, report.SlowTransactionSummary.TotalSlowTransaction)
	assert.Equal(t, 182.0, report.SlowTransactionSummary.AvgProcessingTime)
	assert.Equal(t, 300.0, report.SlowTransactions[0].ProcessingTime)
}

func TestAggregate_SlowTransactionDefaults(t *testing.T) {
	rows := []*domain.TransactionRow{
		{Date: "2024-01-01", DurationRaw: "00:02:00.26", OperatorGroup: "Automation", CustomerName: "John", Amount: decimal.RequireFromString("150.25")},
		{Date: "2024-01-01", DurationRaw: "00:02:00", OperatorGroup: "Automation"},
	}

	report := Aggregate(rows, domain.DepositProfile)

	require.Len(t, report.SlowTransactions, 2)
	assert.Equal(t, "UNKNOWN", report.SlowTransactions[0].Brand)
	assert.Equal(t, "John", report.SlowTransactions[0].CustomerName)
	assert.Equal(t, 150.25, report.SlowTransactions[0].Amount)
	assert.Equal(t, 120.3, report.SlowTransactions[0].ProcessingTime)
	assert.Equal(t, "N/A", report.SlowTransactions[1].CustomerName)
	assert.Equal(t, 0.0, report.SlowTransactions[1].Amount)
}

func TestAggregate_BlankTextIsKeptAsIs(t *testing.T) {
	rows := []*domain.TransactionRow{
		{Date: "2024-01-01", DurationRaw: "00:02:00", OperatorGroup: "Automation", Brand: "  ", CustomerName: " "},
	}

	report := Aggregate(rows, domain.DepositProfile)

	require.Len(t, report.SlowTransactions, 1)
	assert.Equal(t, "  ", report.SlowTransactions[0].Brand)
	assert.Equal(t, " ", report.SlowTransactions[0].CustomerName)
	require.Len(t, report.BrandComparison, 1)
	assert.Equal(t, "  ", report.BrandComparison[0].Brand)
}

func TestAggregate_TimeColumnDurations(t *testing.T) {
	rows := []*domain.TransactionRow{
		{Date: "2024-01-01", DurationRaw: time.Date(0, 1, 1, 0, 1, 30, 0, time.UTC), OperatorGroup: "Automation", Brand: "Acme"},
	}

	report := Aggregate(rows, domain.DepositProfile)

	assert.Equal(t, 1, report.OverdueCount)
	assert.Equal(t, 90.0, report.AvgProcessingTime)
	require.Len(t, report.SlowTransactions, 1)
	assert.Equal(t, 90.0, report.SlowTransactions[0].ProcessingTime)
}
