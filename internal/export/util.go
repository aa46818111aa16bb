package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
)

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

func readReport(path string) (entity.VerificationReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.VerificationReport{}, err
	}
	var report entity.VerificationReport
	if err := json.Unmarshal(data, &report); err != nil {
		return entity.VerificationReport{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return report, nil
}
