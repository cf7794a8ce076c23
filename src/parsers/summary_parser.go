package parsers

import (
	"fmt"
	"io"

	"github.com/zwennpay/statements/src/logger"
	"github.com/zwennpay/statements/src/models"
)

// summaryColumnAliases maps canonical summary fields to the header spellings
// of the periodic summary workbook.
var summaryColumnAliases = map[string][]string{
	"tradename":     {"tradename"},
	"merchantname":  {"merchant", "merchantname"},
	"bankaccountno": {"merchantbankaccountno", "bankaccountno", "accountno"},
	"amount":        {"totaltransactionamount", "transactionamount"},
	"charges":       {"totaltransactioncharges", "transactioncharges"},
	"tax":           {"totaltransactiontax", "transactiontax", "vat"},
	"settled":       {"totalsettledamount", "settledamount", "amountcredited"},
}

type summaryParser struct {
	readRows rowReader
}

func (p *summaryParser) Parse(file io.Reader) ([]models.SummaryRecord, error) {
	rows, err := p.readRows(file)
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("summary dataset is empty")
	}

	idx := buildColumnIndex(rows[0], summaryColumnAliases)
	if _, hasTrade := idx["tradename"]; !hasTrade {
		if _, hasMerchant := idx["merchantname"]; !hasMerchant {
			return nil, fmt.Errorf("summary dataset has no identity column (expected TradeName or Merchant), header: %v", rows[0])
		}
	}

	records := make([]models.SummaryRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2

		tradeName := cleanIdentity(idx.cell(row, "tradename"))
		merchantName := cleanIdentity(idx.cell(row, "merchantname"))
		if tradeName == "" && merchantName == "" {
			logger.L.Warn("Skipping summary row with no identity fields", "row", rowNum)
			continue
		}

		records = append(records, models.SummaryRecord{
			TradeName:          tradeName,
			MerchantName:       merchantName,
			BankAccountNo:      models.OptionalFromCell(idx.cell(row, "bankaccountno")),
			TransactionAmount:  idx.moneyCell(row, "amount", rowNum),
			TransactionCharges: idx.moneyCell(row, "charges", rowNum),
			TransactionTax:     idx.moneyCell(row, "tax", rowNum),
			SettledAmount:      idx.moneyCell(row, "settled", rowNum),
		})
	}

	logger.L.Info("Summary dataset parsed", "records", len(records))
	return records, nil
}
