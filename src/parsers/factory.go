package parsers

import (
	"fmt"
	"path/filepath"
	"strings"
)

func rowReaderFor(filename string) (rowReader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSXRows, nil
	case ".csv":
		return readCSVRows, nil
	default:
		return nil, fmt.Errorf("no parser available for dataset file: %s", filename)
	}
}

// GetMasterParser returns a master-dataset parser for the given filename,
// chosen by extension (.xlsx or .csv).
func GetMasterParser(filename string) (MasterParser, error) {
	reader, err := rowReaderFor(filename)
	if err != nil {
		return nil, err
	}
	return &masterParser{readRows: reader}, nil
}

// GetSummaryParser returns a summary-dataset parser for the given filename,
// chosen by extension (.xlsx or .csv).
func GetSummaryParser(filename string) (SummaryParser, error) {
	reader, err := rowReaderFor(filename)
	if err != nil {
		return nil, err
	}
	return &summaryParser{readRows: reader}, nil
}
