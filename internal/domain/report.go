package domain

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Report é o resultado da agregação de um período, montado a cada requisição.
// CoverageRate e CaseVolume ficam nil quando o perfil não os calcula.
type Report struct {
	Kind                   TransactionKind        `json:"type"`
	TotalTransaction       int                    `json:"totalTransaction"`
	TotalTransAutomation   int                    `json:"totalTransAutomation"`
	AvgProcessingTime      float64                `json:"avgProcessingTime"`
	OverdueCount           int                    `json:"overdueCount"`
	OverdueThreshold       float64                `json:"overdueThreshold"`
	CoverageRate           *float64               `json:"coverageRate,omitempty"`
	DailyData              []DailyVolume          `json:"dailyData"`
	ChartData              ChartData              `json:"chartData"`
	BrandComparison        []BrandComparison      `json:"brandComparison"`
	SlowTransactions       []SlowTransaction      `json:"slowTransactions"`
	SlowTransactionSummary SlowTransactionSummary `json:"slowTransactionSummary"`
	CaseVolume             []CaseVolume           `json:"caseVolume,omitempty"`
}

// MarshalJSON omite caseVolume apenas quando o perfil não o calcula; vazio vira []
func (r Report) MarshalJSON() ([]byte, error) {
	var caseVolume *[]CaseVolume
	if r.CaseVolume != nil {
		caseVolume = &r.CaseVolume
	}

	return json.Marshal(struct {
		Kind                   TransactionKind        `json:"type"`
		TotalTransaction       int                    `json:"totalTransaction"`
		TotalTransAutomation   int                    `json:"totalTransAutomation"`
		AvgProcessingTime      float64                `json:"avgProcessingTime"`
		OverdueCount           int                    `json:"overdueCount"`
		OverdueThreshold       float64                `json:"overdueThreshold"`
		CoverageRate           *float64               `json:"coverageRate,omitempty"`
		DailyData              []DailyVolume          `json:"dailyData"`
		ChartData              ChartData              `json:"chartData"`
		BrandComparison        []BrandComparison      `json:"brandComparison"`
		SlowTransactions       []SlowTransaction      `json:"slowTransactions"`
		SlowTransactionSummary SlowTransactionSummary `json:"slowTransactionSummary"`
		CaseVolume             *[]CaseVolume          `json:"caseVolume,omitempty"`
	}{
		Kind:                   r.Kind,
		TotalTransaction:       r.TotalTransaction,
		TotalTransAutomation:   r.TotalTransAutomation,
		AvgProcessingTime:      r.AvgProcessingTime,
		OverdueCount:           r.OverdueCount,
		OverdueThreshold:       r.OverdueThreshold,
		CoverageRate:           r.CoverageRate,
		DailyData:              r.DailyData,
		ChartData:              r.ChartData,
		BrandComparison:        r.BrandComparison,
		SlowTransactions:       r.SlowTransactions,
		SlowTransactionSummary: r.SlowTransactionSummary,
		CaseVolume:             caseVolume,
	})
}

type DailyVolume struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ChartData contém as séries diárias indexadas por data
type ChartData struct {
	OverdueTrans      map[string]int     `json:"overdueTrans"`
	AvgProcessingTime map[string]float64 `json:"avgProcessingTime"`
	CoverageRate      map[string]float64 `json:"coverageRate,omitempty"`
	TransactionVolume map[string]int     `json:"transactionVolume"`
}

// MarshalJSON omite coverageRate apenas quando o perfil não o calcula; vazio vira {}
func (c ChartData) MarshalJSON() ([]byte, error) {
	var coverageRate *map[string]float64
	if c.CoverageRate != nil {
		coverageRate = &c.CoverageRate
	}

	return json.Marshal(struct {
		OverdueTrans      map[string]int      `json:"overdueTrans"`
		AvgProcessingTime map[string]float64  `json:"avgProcessingTime"`
		CoverageRate      *map[string]float64 `json:"coverageRate,omitempty"`
		TransactionVolume map[string]int      `json:"transactionVolume"`
	}{
		OverdueTrans:      c.OverdueTrans,
		AvgProcessingTime: c.AvgProcessingTime,
		CoverageRate:      coverageRate,
		TransactionVolume: c.TransactionVolume,
	})
}

type BrandComparison struct {
	Brand            string   `json:"brand"`
	AvgTime          float64  `json:"avgTime"`
	CoverageRate     *float64 `json:"coverageRate,omitempty"`
	TotalTransaction int      `json:"totalTransaction"`
	TotalAutomation  int      `json:"totalAutomation"`
	TotalOverdue     int      `json:"totalOverdue"`
}

type SlowTransaction struct {
	Brand          string  `json:"brand"`
	CustomerName   string  `json:"customerName"`
	Amount         float64 `json:"amount"`
	ProcessingTime float64 `json:"processingTime"`
	Date           string  `json:"date"`
	OperatorGroup  string  `json:"operatorGroup"`
}

type SlowTransactionSummary struct {
	TotalSlowTransaction int     `json:"totalSlowTransaction"`
	AvgProcessingTime    float64 `json:"avgProcessingTime"`
	Brand                string  `json:"brand"`
}

type CaseVolume struct {
	Brand                string  `json:"brand"`
	TotalCase            float64 `json:"totalCase"`
	TotalTransAutomation int     `json:"totalTransAutomation"`
	TotalOverdue         int     `json:"totalOverdue"`
}
