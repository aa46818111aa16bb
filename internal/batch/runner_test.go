package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-auditor/constants"
	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
	"github.com/joseph-ayodele/invoice-auditor/internal/extract"
	"github.com/joseph-ayodele/invoice-auditor/internal/ocr"
	"github.com/joseph-ayodele/invoice-auditor/internal/pipeline"
	"github.com/joseph-ayodele/invoice-auditor/internal/repository"
	"github.com/joseph-ayodele/invoice-auditor/internal/tagger"
	"github.com/joseph-ayodele/invoice-auditor/internal/verify"
)

func writePage(t *testing.T, dir, prefix string, texts []string) {
	t.Helper()
	records := make([]entity.WordRecord, len(texts))
	for i, txt := range texts {
		records[i] = entity.WordRecord{Text: txt, Left: i * 40, Top: 10, Width: 38, Height: 12, Confidence: 90}
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)
	name := fmt.Sprintf("%s_page_1%s", prefix, constants.SuffixRawPage)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func newRunner(t *testing.T, ocrDir, outDir string, runs repository.RunRepository, workers int) *Runner {
	t.Helper()
	loader := ocr.NewLoader(ocrDir, nil)
	processor := pipeline.NewProcessor(nil,
		pipeline.NewFieldsStage(loader, extract.NewFieldExtractor(tagger.NewRuleTagger(), nil), outDir, nil),
		pipeline.NewLineItemsStage(loader, extract.NewLineItemExtractor(extract.Config{}, nil), outDir, nil),
		pipeline.NewVerifyStage(verify.NewEngine(verify.Config{}, nil), outDir, nil),
		runs,
	)
	return NewRunner(nil, processor, runs, workers)
}

func TestRunSeparatesSkippedFromProcessed(t *testing.T) {
	ocrDir := t.TempDir()
	outDir := t.TempDir()
	writePage(t, ocrDir, "doc", strings.Fields("Invoice No: INV-1 1 Pen Box 2 50 100"))

	runner := newRunner(t, ocrDir, outDir, nil, 2)
	_, stats, err := runner.Run(context.Background(), []string{"doc", "missing"})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 0, stats.Verified)
}

func TestRunRecordsOutcomes(t *testing.T) {
	ctx := context.Background()
	ocrDir := t.TempDir()
	outDir := t.TempDir()
	writePage(t, ocrDir, "doc", strings.Fields("Invoice No: INV-1 1 Pen Box 2 50 100"))

	db, err := repository.Open(ctx, ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(db, nil) })
	runs := repository.NewRunRepository(db, nil)

	runner := newRunner(t, ocrDir, outDir, runs, 1)
	runID, stats, err := runner.Run(ctx, []string{"doc", "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Skipped)

	docs, err := runs.ListDocuments(ctx, runID)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	statuses := map[string]constants.DocStatus{}
	for _, d := range docs {
		statuses[d.Prefix] = d.Status
	}
	assert.Equal(t, constants.DocStatusVerified, statuses["doc"])
	assert.Equal(t, constants.DocStatusSkipped, statuses["missing"])
}

func TestRunEmptyBatch(t *testing.T) {
	runner := newRunner(t, t.TempDir(), t.TempDir(), nil, 4)
	_, stats, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}
