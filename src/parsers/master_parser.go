package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/zwennpay/statements/src/logger"
	"github.com/zwennpay/statements/src/models"
	"github.com/zwennpay/statements/src/security/validation"
)

// masterColumnAliases maps canonical master fields to the header spellings
// seen in the wild for the master workbook.
var masterColumnAliases = map[string][]string{
	"tradename":     {"tradename"},
	"merchantname":  {"merchantname", "merchant"},
	"address":       {"address"},
	"contact":       {"contact", "phone", "contactno"},
	"email":         {"email", "emailaddress"},
	"bankaccountno": {"merchantbankaccountno", "bankaccountno", "accountno"},
}

type masterParser struct {
	readRows rowReader
}

func (p *masterParser) Parse(file io.Reader) ([]models.MasterRecord, error) {
	rows, err := p.readRows(file)
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("master dataset is empty")
	}

	idx := buildColumnIndex(rows[0], masterColumnAliases)
	if _, hasTrade := idx["tradename"]; !hasTrade {
		if _, hasMerchant := idx["merchantname"]; !hasMerchant {
			return nil, fmt.Errorf("master dataset has no identity column (expected TradeName or Merchant_Name), header: %v", rows[0])
		}
	}

	records := make([]models.MasterRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after header

		tradeName := cleanIdentity(idx.cell(row, "tradename"))
		merchantName := cleanIdentity(idx.cell(row, "merchantname"))
		if tradeName == "" && merchantName == "" {
			logger.L.Warn("Skipping master row with no identity fields", "row", rowNum)
			continue
		}

		records = append(records, models.MasterRecord{
			TradeName:     tradeName,
			MerchantName:  merchantName,
			Address:       models.OptionalFromCell(idx.cell(row, "address")),
			Contact:       models.OptionalFromCell(idx.cell(row, "contact")),
			Email:         models.OptionalFromCell(idx.cell(row, "email")),
			BankAccountNo: models.OptionalFromCell(idx.cell(row, "bankaccountno")),
		})
	}

	logger.L.Info("Master dataset parsed", "records", len(records))
	return records, nil
}

// cleanIdentity strips unprintable characters and surrounding whitespace from
// an identity cell before it is used for matching or display.
func cleanIdentity(cell string) string {
	return strings.TrimSpace(validation.StripUnprintable(cell))
}
