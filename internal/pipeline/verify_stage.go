package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/invoice-auditor/internal/common"
	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
	"github.com/joseph-ayodele/invoice-auditor/internal/verify"
)

// VerifyStage reads a document's persisted FieldSet and line items, runs the
// verification engine, and persists the report. Both input artifacts must
// exist; a missing one means the document is skipped with no report written.
type VerifyStage struct {
	Engine    *verify.Engine
	OutputDir string
	Logger    *slog.Logger
}

func NewVerifyStage(engine *verify.Engine, outputDir string, logger *slog.Logger) *VerifyStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &VerifyStage{Engine: engine, OutputDir: outputDir, Logger: logger}
}

// Run verifies prefix from its persisted artifacts. A missing input artifact
// returns an error wrapping common.ErrMissingInput so the caller can skip
// rather than fail the document.
func (s *VerifyStage) Run(prefix string) (entity.VerificationReport, error) {
	fieldsPath := FieldsPath(s.OutputDir, prefix)
	itemsPath := LineItemsPath(s.OutputDir, prefix)
	for _, p := range []string{fieldsPath, itemsPath} {
		if _, err := os.Stat(p); err != nil {
			return entity.VerificationReport{}, common.NewAppError("VERIFY_INPUT",
				fmt.Sprintf("required file %s not found for prefix %q", p, prefix), common.ErrMissingInput)
		}
	}

	fields, err := ReadFields(fieldsPath)
	if err != nil {
		return entity.VerificationReport{}, fmt.Errorf("read fields: %w", err)
	}
	items, err := ReadLineItems(itemsPath)
	if err != nil {
		return entity.VerificationReport{}, fmt.Errorf("read line items: %w", err)
	}

	report := s.Engine.Verify(fields, items)

	out := ReportPath(s.OutputDir, prefix)
	if err := writeJSON(out, report); err != nil {
		return entity.VerificationReport{}, err
	}

	if report.Verified {
		s.Logger.Info("verify.ok", "prefix", prefix, "confidence", report.Confidence, "out", out)
	} else {
		s.Logger.Warn("verify.unverified", "prefix", prefix, "confidence", report.Confidence, "error", report.Error, "out", out)
	}
	return report, nil
}
