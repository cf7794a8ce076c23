package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/zwennpay/statements/src/logger"
	"github.com/zwennpay/statements/src/models"
)

// zipPackager implements the Packager interface with a zip archive.
//
// Filename collisions between distinct documents are disambiguated with a
// numeric suffix (_2, _3, ...) rather than rejected: a collision is a
// data-quality issue in the inputs and rejecting the whole batch for it would
// contradict the collect-don't-abort posture of the rest of the pipeline.
type zipPackager struct{}

func NewZipPackager() Packager {
	return &zipPackager{}
}

func (p *zipPackager) Package(documents []*models.StatementDocument) ([]byte, error) {
	if len(documents) == 0 {
		return nil, ErrNoDocuments
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	used := make(map[string]bool, len(documents))

	for _, doc := range documents {
		name := doc.Filename
		if used[name] {
			name = disambiguate(doc.Filename, used)
			logger.L.Warn("Archive filename collision disambiguated", "original", doc.Filename, "renamed", name)
		}
		used[name] = true

		entry, err := w.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %q: %w", name, err)
		}
		if _, err := entry.Write(doc.Content); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %q: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	logger.L.Info("Archive packaged", "documents", len(documents), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// disambiguate inserts _2, _3, ... before the extension until the name is
// unused.
func disambiguate(filename string, used map[string]bool) string {
	base := filename
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		base, ext = filename[:i], filename[i:]
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", base, n, ext)
		if !used[candidate] {
			return candidate
		}
	}
}
