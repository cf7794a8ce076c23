package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasterParserCSV(t *testing.T) {
	input := strings.Join([]string{
		"Merchant_Name,Address,Contact,Email,MerchantBankAccountNo",
		"Acme Trading Ltd,Port Louis,+230 555 0001,billing@acme.mu,000123456",
		"Beta Stores,,,beta@stores.mu,",
	}, "\n")

	parser, err := GetMasterParser("Email_master.csv")
	require.NoError(t, err)

	records, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	acme := records[0]
	assert.Equal(t, "Acme Trading Ltd", acme.MerchantName)
	assert.Equal(t, "Port Louis", acme.Address.Value)
	assert.True(t, acme.BankAccountNo.Present)
	assert.Equal(t, "000123456", acme.BankAccountNo.Value)

	beta := records[1]
	assert.False(t, beta.Address.Present, "empty address cell must be absent, not empty string")
	assert.False(t, beta.Contact.Present)
	assert.False(t, beta.BankAccountNo.Present)
	assert.Equal(t, "beta@stores.mu", beta.Email.Value)
}

func TestMasterParserTradeNameColumn(t *testing.T) {
	input := "TradeName,Merchant,Email\nAcme,Acme Trading Ltd,billing@acme.mu\n"

	parser, err := GetMasterParser("master.csv")
	require.NoError(t, err)

	records, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].TradeName)
	assert.Equal(t, "Acme Trading Ltd", records[0].MerchantName)
}

func TestMasterParserSkipsRowsWithoutIdentity(t *testing.T) {
	input := "Merchant_Name,Email\nAcme,a@x.com\n,orphan@x.com\n"

	parser, err := GetMasterParser("master.csv")
	require.NoError(t, err)

	records, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestMasterParserRejectsMissingIdentityColumn(t *testing.T) {
	input := "Address,Email\nPort Louis,a@x.com\n"

	parser, err := GetMasterParser("master.csv")
	require.NoError(t, err)

	_, err = parser.Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestGetMasterParserUnknownExtension(t *testing.T) {
	_, err := GetMasterParser("master.pdf")
	assert.Error(t, err)
}
