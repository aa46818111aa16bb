package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/invoice-auditor/internal/batch"
	"github.com/joseph-ayodele/invoice-auditor/internal/common"
	"github.com/joseph-ayodele/invoice-auditor/internal/export"
	"github.com/joseph-ayodele/invoice-auditor/internal/extract"
	"github.com/joseph-ayodele/invoice-auditor/internal/ingest"
	"github.com/joseph-ayodele/invoice-auditor/internal/ocr"
	"github.com/joseph-ayodele/invoice-auditor/internal/pipeline"
	"github.com/joseph-ayodele/invoice-auditor/internal/repository"
	"github.com/joseph-ayodele/invoice-auditor/internal/tagger"
	"github.com/joseph-ayodele/invoice-auditor/internal/verify"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		ocrDir  = flag.String("ocr", "", "directory holding *_raw.json OCR word-record pages (overrides OCR_DIR)")
		outDir  = flag.String("out", "", "directory for extraction artifacts (overrides OUTPUT_DIR)")
		workers = flag.Int("workers", 0, "concurrent documents (overrides BATCH_WORKERS)")
		collate = flag.Bool("export", false, "write combined JSON + XLSX exports after the batch")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	// .env is optional; real environment wins
	_ = godotenv.Load()

	// Setup logger
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *ocrDir != "" {
		cfg.Paths.OCRDir = *ocrDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		logger.Error("failed to create output directory", "dir", cfg.Paths.OutputDir, "error", err)
		os.Exit(1)
	}

	// Open the run index
	db, err := repository.Open(ctx, cfg.Paths.IndexDSN, logger)
	if err != nil {
		logger.Error("failed to open run index", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)
	runs := repository.NewRunRepository(db, logger)

	// Discover documents
	prefixes, stats, err := ingest.DiscoverPrefixes(cfg.Paths.OCRDir, true)
	if err != nil {
		logger.Error("failed to discover documents", "dir", cfg.Paths.OCRDir, "error", err)
		os.Exit(1)
	}
	logger.Info("discovery complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"documents", stats.Prefixes)
	if len(prefixes) == 0 {
		printError("No OCR outputs found in %s\n", cfg.Paths.OCRDir)
		os.Exit(1)
	}

	// Wire the pipeline
	loader := ocr.NewLoader(cfg.Paths.OCRDir, logger)
	fieldsStage := pipeline.NewFieldsStage(loader,
		extract.NewFieldExtractor(tagger.NewRuleTagger(), logger),
		cfg.Paths.OutputDir, logger)
	itemsStage := pipeline.NewLineItemsStage(loader,
		extract.NewLineItemExtractor(extract.Config{
			Lookahead:        cfg.Extraction.Lookahead,
			MinNumericTokens: cfg.Extraction.MinNumericTokens,
			RowTolerance:     cfg.Extraction.RowTolerance,
		}, logger),
		cfg.Paths.OutputDir, logger)
	verifyStage := pipeline.NewVerifyStage(
		verify.NewEngine(verify.Config{
			MarginTolerance: cfg.Verification.MarginTolerance,
			Epsilon:         cfg.Verification.Epsilon,
		}, logger),
		cfg.Paths.OutputDir, logger)
	processor := pipeline.NewProcessor(logger, fieldsStage, itemsStage, verifyStage, runs)

	runner := batch.NewRunner(logger, processor, runs, cfg.Batch.Workers)
	runID, runStats, err := runner.Run(ctx, prefixes)
	if err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}

	if *collate {
		svc := export.NewService(cfg.Paths.OutputDir, logger)
		if err := svc.Export(prefixes); err != nil {
			logger.Error("export failed", "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Run ID: %s\n", runID)
	fmt.Printf("- Documents processed: %d\n", runStats.Processed)
	fmt.Printf("- Verified: %d\n", runStats.Verified)
	fmt.Printf("- Skipped: %d\n", runStats.Skipped)
	fmt.Printf("- Failures: %d\n", runStats.Failed)
	fmt.Printf("- Output: %s\n", cfg.Paths.OutputDir)
}
