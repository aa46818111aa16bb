package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/invoice-auditor/internal/common"
	"github.com/joseph-ayodele/invoice-auditor/internal/export"
)

func main() {
	outDir := flag.String("out", "", "directory holding extraction artifacts (overrides OUTPUT_DIR)")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}

	svc := export.NewService(cfg.Paths.OutputDir, logger)
	prefixes, err := svc.Prefixes()
	if err != nil {
		logger.Error("failed to list documents", "dir", cfg.Paths.OutputDir, "error", err)
		os.Exit(1)
	}
	if len(prefixes) == 0 {
		fmt.Printf("No extracted data found in %s\n", cfg.Paths.OutputDir)
		return
	}

	if err := svc.Export(prefixes); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d documents to %s\n", len(prefixes), cfg.Paths.OutputDir)
}
