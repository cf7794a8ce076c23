package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/zwennpay/statements/src/logger"
	"github.com/zwennpay/statements/src/models"
	"github.com/zwennpay/statements/src/parsers"
	"github.com/zwennpay/statements/src/processors"
	"github.com/zwennpay/statements/src/renderer"
)

// ResultCacheCleanupInterval is how often expired batch results are evicted.
const ResultCacheCleanupInterval = 2 * time.Hour

type statementServiceImpl struct {
	matcher     processors.MerchantMatcher
	aggregator  processors.TotalsAggregator
	renderer    renderer.StatementRenderer
	notifier    StatementNotifier
	packager    Packager
	resultCache *cache.Cache
}

func NewStatementService(
	matcher processors.MerchantMatcher,
	aggregator processors.TotalsAggregator,
	statementRenderer renderer.StatementRenderer,
	notifier StatementNotifier,
	packager Packager,
	resultCache *cache.Cache,
) StatementService {
	return &statementServiceImpl{
		matcher:     matcher,
		aggregator:  aggregator,
		renderer:    statementRenderer,
		notifier:    notifier,
		packager:    packager,
		resultCache: resultCache,
	}
}

// GenerateStatements runs one batch. Rows are processed strictly sequentially
// in dataset order; per-entry failures are collected and never abort the run.
// The batch as a whole fails only when input validation rejects it up front or
// when zero documents were produced after processing every row.
func (s *statementServiceImpl) GenerateStatements(
	masterFile io.Reader, masterFilename string,
	summaryFile io.Reader, summaryFilename string,
	period models.PeriodWindow, notify bool,
) (*models.BatchResult, []byte, error) {
	overallStartTime := time.Now()
	batchID := uuid.NewString()
	logger.L.Info("GenerateStatements START", "batchID", batchID, "master", masterFilename, "summary", summaryFilename, "notify", notify)

	if masterFile == nil || summaryFile == nil {
		return nil, nil, fmt.Errorf("%w: both master and summary datasets are required", ErrValidationFailed)
	}
	if period.IsZero() {
		return nil, nil, fmt.Errorf("%w: both period boundaries are required", ErrValidationFailed)
	}

	masters, summaries, err := s.loadDatasets(masterFile, masterFilename, summaryFile, summaryFilename)
	if err != nil {
		return nil, nil, err
	}

	// Rows sharing one match key are summed into a single set of totals; a
	// duplicate-key row therefore yields an identical statement, which the
	// packager disambiguates by filename suffix.
	rowsByKey := make(map[models.MatchKey][]models.SummaryRecord)
	for _, row := range summaries {
		key := s.matcher.Key(row)
		rowsByKey[key] = append(rowsByKey[key], row)
	}

	collector := NewResultCollector()
	var deliveries []models.DeliveryOutcome

	for _, row := range summaries {
		key := s.matcher.Key(row)

		master, err := s.matcher.Match(row, masters)
		if err != nil {
			logger.L.Warn("Summary row unmatched", "batchID", batchID, "key", string(key))
			collector.RecordUnmatched(key)
			continue
		}

		// Work on a copy: the master dataset is immutable and shared across rows.
		m := *master
		if !m.BankAccountNo.Present && row.BankAccountNo.Present {
			m.BankAccountNo = row.BankAccountNo
		}

		totals := s.aggregator.Aggregate(rowsByKey[key])

		doc, err := s.renderer.Render(m, totals, period)
		if err != nil {
			logger.L.Error("Statement rendering failed", "batchID", batchID, "key", string(key), "error", err)
			collector.RecordRenderFailed(key, err)
			continue
		}
		collector.RecordProduced(key, doc)

		if notify {
			if outcome, attempted := s.notifyMerchant(m, doc, period); attempted {
				deliveries = append(deliveries, outcome)
			}
		}
	}

	result := &models.BatchResult{
		BatchID:      batchID,
		Period:       period,
		Outcomes:     collector.Outcomes(),
		Errors:       collector.Errors(),
		Deliveries:   deliveries,
		SuccessCount: collector.SuccessCount(),
	}
	s.resultCache.Set(batchID, result, cache.DefaultExpiration)

	if collector.BatchFailed() {
		logger.L.Warn("GenerateStatements END: batch failed, no statements produced",
			"batchID", batchID, "rows", len(summaries), "errors", len(result.Errors), "duration", time.Since(overallStartTime))
		return result, nil, fmt.Errorf("%w: %s", ErrBatchFailed, strings.Join(result.Errors, "; "))
	}

	archive, err := s.packager.Package(collector.ProducedDocuments())
	if err != nil {
		return result, nil, fmt.Errorf("failed to package statements: %w", err)
	}

	logger.L.Info("GenerateStatements END", "batchID", batchID,
		"rows", len(summaries), "produced", result.SuccessCount, "errors", len(result.Errors),
		"deliveries", len(deliveries), "duration", time.Since(overallStartTime))
	return result, archive, nil
}

func (s *statementServiceImpl) loadDatasets(
	masterFile io.Reader, masterFilename string,
	summaryFile io.Reader, summaryFilename string,
) ([]models.MasterRecord, []models.SummaryRecord, error) {
	masterParser, err := parsers.GetMasterParser(masterFilename)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	summaryParser, err := parsers.GetSummaryParser(summaryFilename)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	masters, err := masterParser.Parse(masterFile)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: master dataset: %v", ErrParsingFailed, err)
	}
	summaries, err := summaryParser.Parse(summaryFile)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: summary dataset: %v", ErrParsingFailed, err)
	}
	return masters, summaries, nil
}

// notifyMerchant attempts delivery for one produced statement. It reports
// whether an attempt was made: records without a syntactically valid email
// address are skipped, not failed.
func (s *statementServiceImpl) notifyMerchant(master models.MasterRecord, doc *models.StatementDocument, period models.PeriodWindow) (models.DeliveryOutcome, bool) {
	if !master.Email.Present || !strings.Contains(master.Email.Value, "@") {
		logger.L.Debug("Skipping notification, no valid email address", "merchant", master.DisplayName())
		return models.DeliveryOutcome{}, false
	}

	outcome := models.DeliveryOutcome{
		Recipient: master.Email.Value,
		Filename:  doc.Filename,
	}
	if err := s.notifier.Notify(master.Email.Value, master.DisplayName(), doc, period); err != nil {
		outcome.Reason = err.Error()
		return outcome, true
	}
	outcome.Delivered = true
	return outcome, true
}

func (s *statementServiceImpl) GetBatchResult(batchID string) (*models.BatchResult, bool) {
	if cached, found := s.resultCache.Get(batchID); found {
		if result, ok := cached.(*models.BatchResult); ok {
			return result, true
		}
	}
	return nil, false
}
