package generators

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/vfg2006/finops-kpi-api/internal/domain"
)

var slowTransactionHeaders = []string{
	"brand",
	"customerName",
	"amount",
	"processingTime",
	"date",
	"operatorGroup",
}

type CSVGenerator struct{}

func NewCSVGenerator() *CSVGenerator {
	return &CSVGenerator{}
}

// WriteSlowTransactions escreve a lista de transações lentas na ordem do relatório
func (g *CSVGenerator) WriteSlowTransactions(w io.Writer, report *domain.Report) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(slowTransactionHeaders); err != nil {
		return err
	}

	for _, transaction := range report.SlowTransactions {
		record := []string{
			transaction.Brand,
			transaction.CustomerName,
			strconv.FormatFloat(transaction.Amount, 'f', -1, 64),
			strconv.FormatFloat(transaction.ProcessingTime, 'f', 1, 64),
			transaction.Date,
			transaction.OperatorGroup,
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
