package validation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType("text/csv"))
	assert.NoError(t, ValidateClientContentType("TEXT/CSV; charset=utf-8"))
	assert.NoError(t, ValidateClientContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	assert.Error(t, ValidateClientContentType("application/pdf"))
	assert.Error(t, ValidateClientContentType("image/png"))
}

func TestValidateDatasetContentCSV(t *testing.T) {
	file := bytes.NewReader([]byte("Merchant_Name,Email\nAcme,a@x.com\n"))
	_, err := ValidateDatasetContent(file, "master.csv")
	require.NoError(t, err)

	// read pointer must be back at the start for the parser
	pos, err := file.Seek(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func TestValidateDatasetContentXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "TradeName"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ValidateDatasetContent(bytes.NewReader(buf.Bytes()), "summary.xlsx")
	assert.NoError(t, err)
}

func TestValidateDatasetContentRejectsMislabeledXLSX(t *testing.T) {
	file := bytes.NewReader([]byte("just,a,csv\n1,2,3\n"))
	_, err := ValidateDatasetContent(file, "summary.xlsx")
	assert.Error(t, err)
}

func TestValidateDatasetContentRejectsBinaryCSV(t *testing.T) {
	file := bytes.NewReader([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0})
	_, err := ValidateDatasetContent(file, "master.csv")
	assert.Error(t, err)
}

func TestValidateDatasetContentUnsupportedExtension(t *testing.T) {
	file := bytes.NewReader([]byte("data"))
	_, err := ValidateDatasetContent(file, "master.xls")
	assert.Error(t, err)
}
