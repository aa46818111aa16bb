package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
	"github.com/joseph-ayodele/invoice-auditor/internal/extract"
	"github.com/joseph-ayodele/invoice-auditor/internal/ocr"
)

// LineItemsStage loads a document's word sequence, reconstructs table rows,
// and persists the line-item artifact.
type LineItemsStage struct {
	Loader    *ocr.Loader
	Extractor *extract.LineItemExtractor
	OutputDir string
	Logger    *slog.Logger
}

func NewLineItemsStage(loader *ocr.Loader, extractor *extract.LineItemExtractor, outputDir string, logger *slog.Logger) *LineItemsStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &LineItemsStage{Loader: loader, Extractor: extractor, OutputDir: outputDir, Logger: logger}
}

// Run extracts and persists the line items for prefix.
func (s *LineItemsStage) Run(prefix string) ([]entity.LineItem, error) {
	words, err := s.Loader.LoadWords(prefix)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}

	items := s.Extractor.Extract(words)

	out := LineItemsPath(s.OutputDir, prefix)
	if err := writeJSON(out, items); err != nil {
		return nil, err
	}

	s.Logger.Info("lineitems.ok", "prefix", prefix, "words", len(words), "items", len(items), "out", out)
	return items, nil
}
