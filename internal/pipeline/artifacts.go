package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/invoice-auditor/constants"
	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
)

// Artifact paths are keyed by document prefix; outputs are replaced
// wholesale on re-run.

func FieldsPath(outputDir, prefix string) string {
	return filepath.Join(outputDir, prefix+constants.SuffixFields)
}

func LineItemsPath(outputDir, prefix string) string {
	return filepath.Join(outputDir, prefix+constants.SuffixLineItems)
}

func ReportPath(outputDir, prefix string) string {
	return filepath.Join(outputDir, prefix+constants.SuffixVerification)
}

// writeJSON writes v as pretty-printed UTF-8 JSON, creating the parent
// directory if needed.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadFields loads a persisted FieldSet artifact.
func ReadFields(path string) (entity.FieldSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fields entity.FieldSet
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return fields, nil
}

// ReadLineItems loads a persisted line-item artifact.
func ReadLineItems(path string) ([]entity.LineItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []entity.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return items, nil
}
