package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"github.com/zwennpay/statements/src/logger"
)

// rowReader turns one tabular input into raw rows, first row being the header.
type rowReader func(file io.Reader) ([][]string, error)

func readXLSXRows(file io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSVRows(file io.Reader) ([][]string, error) {
	r := csv.NewReader(file)
	r.FieldsPerRecord = -1 // ragged rows are handled by the column mapping
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv rows: %w", err)
	}
	return rows, nil
}

// normalizeHeader folds a header cell so that "Total TransactionAmount",
// "total_transaction_amount" and "TotalTransactionAmount" all map the same.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

// columnIndex maps canonical field names to column positions in the header row.
type columnIndex map[string]int

func buildColumnIndex(header []string, aliases map[string][]string) columnIndex {
	idx := make(columnIndex)
	for col, cell := range header {
		normalized := normalizeHeader(cell)
		for field, names := range aliases {
			if _, found := idx[field]; found {
				continue
			}
			for _, name := range names {
				if normalized == name {
					idx[field] = col
					break
				}
			}
		}
	}
	return idx
}

// cell returns the raw value of a mapped column in a row, or "" when the
// column is unmapped or the row is short.
func (idx columnIndex) cell(row []string, field string) string {
	col, ok := idx[field]
	if !ok || col >= len(row) {
		return ""
	}
	return row[col]
}

// moneyCell coerces a monetary cell to a decimal. Missing or non-numeric
// values coerce to zero with a data-quality warning rather than failing the
// batch.
func (idx columnIndex) moneyCell(row []string, field string, rowNum int) decimal.Decimal {
	raw := strings.TrimSpace(idx.cell(row, field))
	if raw == "" {
		logger.L.Warn("Missing monetary cell coerced to zero", "field", field, "row", rowNum)
		return decimal.Zero
	}
	// Tolerate pre-grouped values like "1,234.50"
	value, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		logger.L.Warn("Non-numeric monetary cell coerced to zero", "field", field, "row", rowNum, "value", raw)
		return decimal.Zero
	}
	return value
}
