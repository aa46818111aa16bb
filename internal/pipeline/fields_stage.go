package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
	"github.com/joseph-ayodele/invoice-auditor/internal/extract"
	"github.com/joseph-ayodele/invoice-auditor/internal/ocr"
)

// FieldsStage loads a document's OCR pages, extracts header fields from the
// joined text, and persists the FieldSet artifact.
type FieldsStage struct {
	Loader    *ocr.Loader
	Extractor *extract.FieldExtractor
	OutputDir string
	Logger    *slog.Logger
}

func NewFieldsStage(loader *ocr.Loader, extractor *extract.FieldExtractor, outputDir string, logger *slog.Logger) *FieldsStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldsStage{Loader: loader, Extractor: extractor, OutputDir: outputDir, Logger: logger}
}

// Run extracts and persists the FieldSet for prefix.
func (s *FieldsStage) Run(ctx context.Context, prefix string) (entity.FieldSet, error) {
	pages, err := s.Loader.LoadPages(prefix)
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}

	fields, err := s.Extractor.Extract(ctx, ocr.DocumentText(pages))
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}

	out := FieldsPath(s.OutputDir, prefix)
	if err := writeJSON(out, fields); err != nil {
		return nil, err
	}

	present := 0
	for _, fv := range fields {
		if fv.Present {
			present++
		}
	}
	s.Logger.Info("fields.ok", "prefix", prefix, "pages", len(pages), "present", present, "out", out)
	return fields, nil
}
