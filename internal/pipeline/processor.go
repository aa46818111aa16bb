package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-auditor/internal/common"
	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
	"github.com/joseph-ayodele/invoice-auditor/internal/repository"
)

// Processor coordinates one document's run: field extraction and line-item
// extraction (mutually independent), then verification, which requires both.
// Outcomes are recorded in the run index when one is attached.
type Processor struct {
	Logger    *slog.Logger
	Fields    *FieldsStage
	LineItems *LineItemsStage
	Verify    *VerifyStage
	Runs      repository.RunRepository // optional
}

func NewProcessor(logger *slog.Logger, fields *FieldsStage, lineItems *LineItemsStage, verify *VerifyStage, runs repository.RunRepository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Fields: fields, LineItems: lineItems, Verify: verify, Runs: runs}
}

// ProcessDocument runs the full pipeline for prefix. An error wrapping
// common.ErrMissingInput means the document was skipped, not failed; callers
// separate the two when aggregating.
func (p *Processor) ProcessDocument(ctx context.Context, runID uuid.UUID, prefix string) (entity.VerificationReport, error) {
	var docID uuid.UUID
	if p.Runs != nil {
		var err error
		docID, err = p.Runs.StartDocument(ctx, runID, prefix)
		if err != nil {
			return entity.VerificationReport{}, err
		}
	}

	if _, err := p.Fields.Run(ctx, prefix); err != nil {
		p.recordError(ctx, docID, err)
		return entity.VerificationReport{}, err
	}

	items, err := p.LineItems.Run(prefix)
	if err != nil {
		p.recordError(ctx, docID, err)
		return entity.VerificationReport{}, err
	}
	if p.Runs != nil {
		_ = p.Runs.MarkExtracted(ctx, docID, len(items))
	}

	report, err := p.Verify.Run(prefix)
	if err != nil {
		p.recordError(ctx, docID, err)
		return entity.VerificationReport{}, err
	}
	if p.Runs != nil {
		_ = p.Runs.FinishVerified(ctx, docID, report.Verified, report.Confidence)
	}

	p.Logger.Info("document.ok", "prefix", prefix, "items", len(items), "verified", report.Verified)
	return report, nil
}

func (p *Processor) recordError(ctx context.Context, docID uuid.UUID, err error) {
	if p.Runs == nil {
		return
	}
	if errors.Is(err, common.ErrMissingInput) {
		_ = p.Runs.FinishSkipped(ctx, docID, err.Error())
		return
	}
	_ = p.Runs.FinishFailed(ctx, docID, err.Error())
}
