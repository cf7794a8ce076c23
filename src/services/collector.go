package services

import (
	"fmt"

	"github.com/zwennpay/statements/src/models"
)

// ResultCollector accumulates one ProcessingOutcome per summary row, in
// processing order. It never aborts early: the batch keeps consuming rows
// even if every prior entry failed.
type ResultCollector struct {
	outcomes []models.ProcessingOutcome
	errors   []string
	docs     []*models.StatementDocument
}

func NewResultCollector() *ResultCollector {
	return &ResultCollector{}
}

func (c *ResultCollector) RecordProduced(key models.MatchKey, doc *models.StatementDocument) {
	c.outcomes = append(c.outcomes, models.ProcessingOutcome{
		Kind:     models.OutcomeProduced,
		Key:      key,
		Document: doc,
	})
	c.docs = append(c.docs, doc)
}

func (c *ResultCollector) RecordUnmatched(key models.MatchKey) {
	c.outcomes = append(c.outcomes, models.ProcessingOutcome{
		Kind: models.OutcomeUnmatched,
		Key:  key,
	})
	c.errors = append(c.errors, fmt.Sprintf("no master record found for %q", string(key)))
}

func (c *ResultCollector) RecordRenderFailed(key models.MatchKey, cause error) {
	c.outcomes = append(c.outcomes, models.ProcessingOutcome{
		Kind:  models.OutcomeRenderFailed,
		Key:   key,
		Error: cause.Error(),
	})
	c.errors = append(c.errors, fmt.Sprintf("failed to render statement for %q: %v", string(key), cause))
}

// Outcomes returns the recorded outcomes in processing order.
func (c *ResultCollector) Outcomes() []models.ProcessingOutcome {
	return c.outcomes
}

// ProducedDocuments returns the documents of all Produced outcomes, in order.
func (c *ResultCollector) ProducedDocuments() []*models.StatementDocument {
	return c.docs
}

// Errors returns human-readable messages for the Unmatched and RenderFailed
// outcomes.
func (c *ResultCollector) Errors() []string {
	return c.errors
}

func (c *ResultCollector) SuccessCount() int {
	return len(c.docs)
}

// BatchFailed reports whether the whole run must be treated as failed: no
// documents were produced after processing the entire dataset.
func (c *ResultCollector) BatchFailed() bool {
	return len(c.docs) == 0
}
