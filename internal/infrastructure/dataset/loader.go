package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/models"
)

// CSV column headers of the customer data file. These match the upstream
// export and are looked up by name, not position.
const (
	colCustomerID     = "Customer ID"
	colUtilization    = "Utilisation %"
	colPaymentRatio   = "Avg Payment Ratio"
	colMinDueFreq     = "Min Due Paid Frequency"
	colMerchantMix    = "Merchant Mix Index"
	colCashWithdrawal = "Cash Withdrawal %"
	colSpendChange    = "Recent Spend Change %"
	colCreditLimit    = "Credit Limit"
	colDPDBucket      = "DPD Bucket Next Month"
)

var requiredColumns = []string{
	colCustomerID,
	colUtilization,
	colPaymentRatio,
	colMinDueFreq,
	colMerchantMix,
	colCashWithdrawal,
	colSpendChange,
	colCreditLimit,
	colDPDBucket,
}

// ReadCSV loads customer records from the data file. Numeric cells that are
// empty or unparsable load as NaN rather than failing the row; a missing
// required header fails the whole load, since the table would be unusable.
func ReadCSV(path string) ([]models.CustomerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]models.CustomerRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("data file is missing required column %q", col)
		}
	}

	var records []models.CustomerRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}

		cell := func(col string) string { return strings.TrimSpace(row[index[col]]) }

		records = append(records, models.CustomerRecord{
			CustomerID:           cell(colCustomerID),
			UtilizationPct:       parseFloat(cell(colUtilization)),
			AvgPaymentRatio:      parseFloat(cell(colPaymentRatio)),
			MinDuePaidFrequency:  parseFloat(cell(colMinDueFreq)),
			MerchantMixIndex:     parseFloat(cell(colMerchantMix)),
			CashWithdrawalPct:    parseFloat(cell(colCashWithdrawal)),
			RecentSpendChangePct: parseFloat(cell(colSpendChange)),
			CreditLimit:          parseFloat(cell(colCreditLimit)),
			IsDelinquent:         parseFloat(cell(colDPDBucket)) > 0,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("data file contains no customer rows")
	}
	return records, nil
}

// parseFloat maps empty or malformed cells to NaN. NaN comparisons are false
// everywhere downstream, so an absent measurement never triggers a signal and
// never counts toward a delinquency label.
func parseFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
