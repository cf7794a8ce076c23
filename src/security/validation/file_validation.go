package validation

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/zwennpay/statements/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed
// client-declared MIME types for dataset uploads.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true, // often used for both CSV and legacy Excel
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true, // .xlsx
	"text/plain":               true, // CSVs are often plain text
	"application/octet-stream": true, // fallback; magic-byte check still applies
}

// xlsx workbooks are zip containers
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	normalized := strings.ToLower(strings.Split(contentType, ";")[0])
	if !AllowedClientContentTypes[normalized] {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for dataset upload", contentType)
	}
	return nil
}

// ValidateDatasetContent checks the actual file content signature (magic
// bytes) against the filename extension: .xlsx uploads must carry the zip
// signature, .csv uploads must look like text. It returns the detected
// content type and an error if validation fails.
func ValidateDatasetContent(file io.ReadSeeker, filename string) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 512) // first 512 bytes for MIME detection
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// IMPORTANT: reset the read pointer so the actual parser gets the full file.
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	detectedContentType := http.DetectContentType(buffer[:n])
	detectedContentType = strings.ToLower(strings.Split(detectedContentType, ";")[0])

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		if !bytes.HasPrefix(buffer[:n], zipMagic) {
			logger.L.Warn("xlsx upload does not carry a zip signature", "filename", filename, "detectedContentType", detectedContentType)
			return detectedContentType, fmt.Errorf("file content of %q is not a valid xlsx workbook", filename)
		}
	case ".csv":
		allowedDetectedTypes := map[string]bool{
			"text/plain":               true,
			"text/csv":                 true,
			"application/csv":          true,
			"application/octet-stream": true, // strict parsing catches the rest
		}
		if !allowedDetectedTypes[detectedContentType] {
			logger.L.Warn("Disallowed detected file content type (magic bytes)", "filename", filename, "detectedContentType", detectedContentType)
			return detectedContentType, fmt.Errorf("detected file content type '%s' is not consistent with a CSV file", detectedContentType)
		}
	default:
		return detectedContentType, fmt.Errorf("unsupported dataset file extension for %q (expected .xlsx or .csv)", filename)
	}

	logger.L.Debug("File content type (magic bytes) validated", "filename", filename, "detectedContentType", detectedContentType)
	return detectedContentType, nil
}
