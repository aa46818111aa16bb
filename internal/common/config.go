package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Paths        PathsConfig
	Extraction   ExtractionConfig
	Verification VerificationConfig
	Batch        BatchConfig
}

// PathsConfig holds the artifact directory layout
type PathsConfig struct {
	OCRDir    string // where *_raw.json word-record pages live
	OutputDir string // where per-document extraction artifacts are written
	IndexDSN  string // sqlite DSN for the document run index
}

// ExtractionConfig holds line-item extraction thresholds
type ExtractionConfig struct {
	Lookahead        int     // words of context examined after a candidate row start
	MinNumericTokens int     // digit-bearing tokens required to accept a row
	RowTolerance     float64 // |qty*unit_price - row_total| bound for a valid row
}

// VerificationConfig holds arithmetic cross-check thresholds
type VerificationConfig struct {
	MarginTolerance float64 // absolute error margin below which a document verifies
	Epsilon         float64 // guards the confidence ratio against a zero total
}

// BatchConfig holds batch driver behavior
type BatchConfig struct {
	Workers int // concurrent documents; 1 means sequential
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			OCRDir:    getEnv("OCR_DIR", "output/ocr"),
			OutputDir: getEnv("OUTPUT_DIR", "output"),
			IndexDSN:  getEnv("INDEX_DSN", "file:output/index.db"),
		},
		Extraction: ExtractionConfig{
			Lookahead:        getEnvAsInt("EXTRACT_LOOKAHEAD", 7),
			MinNumericTokens: getEnvAsInt("EXTRACT_MIN_NUMERIC", 3),
			RowTolerance:     getEnvAsFloat64("EXTRACT_ROW_TOLERANCE", 2.0),
		},
		Verification: VerificationConfig{
			MarginTolerance: getEnvAsFloat64("VERIFY_MARGIN_TOLERANCE", 1.0),
			Epsilon:         getEnvAsFloat64("VERIFY_EPSILON", 1e-5),
		},
		Batch: BatchConfig{
			Workers: getEnvAsInt("BATCH_WORKERS", 1),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Paths.OCRDir == "" {
		return NewAppError("CONFIG_ERROR", "OCR_DIR is required", ErrInvalidInput)
	}
	if c.Paths.OutputDir == "" {
		return NewAppError("CONFIG_ERROR", "OUTPUT_DIR is required", ErrInvalidInput)
	}
	if c.Extraction.Lookahead <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_LOOKAHEAD must be positive", ErrInvalidInput)
	}
	if c.Extraction.MinNumericTokens <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_MIN_NUMERIC must be positive", ErrInvalidInput)
	}
	if c.Verification.MarginTolerance <= 0 {
		return NewAppError("CONFIG_ERROR", "VERIFY_MARGIN_TOLERANCE must be positive", ErrInvalidInput)
	}
	if c.Batch.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "BATCH_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
