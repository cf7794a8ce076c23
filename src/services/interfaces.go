package services

import (
	"errors"
	"io"

	"github.com/zwennpay/statements/src/models"
)

var (
	// ErrValidationFailed marks a batch that was rejected before any
	// processing: missing datasets or period boundaries, wrong input format.
	ErrValidationFailed = errors.New("batch input validation failed")
	// ErrParsingFailed wraps dataset loader errors.
	ErrParsingFailed = errors.New("dataset parsing failed")
	// ErrBatchFailed marks a completed run that produced zero documents. The
	// accumulated per-entry error list travels in the BatchResult.
	ErrBatchFailed = errors.New("batch produced no statements")
	// ErrNoDocuments is returned by the packager when given zero documents.
	// Callers must have confirmed SuccessCount() > 0 beforehand.
	ErrNoDocuments = errors.New("no documents to package")
)

// StatementService runs one full batch: load both datasets, reconcile,
// aggregate, render, collect outcomes, optionally notify, and package.
type StatementService interface {
	GenerateStatements(
		masterFile io.Reader, masterFilename string,
		summaryFile io.Reader, summaryFilename string,
		period models.PeriodWindow, notify bool,
	) (*models.BatchResult, []byte, error)

	// GetBatchResult returns a recently finished batch result by id.
	GetBatchResult(batchID string) (*models.BatchResult, bool)
}

// StatementNotifier delivers one rendered statement to its merchant. It is
// called at most once per produced document, only when notification was
// requested for the batch. A delivery failure is recorded against that entry
// and never escalated to a batch-level failure.
type StatementNotifier interface {
	Notify(recipientEmail, recipientName string, document *models.StatementDocument, period models.PeriodWindow) error
}

// Packager bundles produced documents into a single compressed archive.
type Packager interface {
	Package(documents []*models.StatementDocument) ([]byte, error)
}
