package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/invoice-auditor/internal/ocr"
)

// DirStats aggregates a discovery pass over the OCR artifact directory.
type DirStats struct {
	Scanned  uint32
	Matched  uint32
	Prefixes uint32
}

// DiscoverPrefixes walks root, matches raw page artifacts, and derives the
// unique document prefixes, sorted. Hidden files and directories are skipped
// when requested.
func DiscoverPrefixes(root string, skipHidden bool) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("ocr directory is required")
	}

	seen := map[string]struct{}{}
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		stats.Scanned++
		if skipHidden && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		prefix, ok := ocr.PrefixFromFilename(d.Name())
		if !ok {
			return nil
		}
		stats.Matched++
		seen[prefix] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk: %w", err)
	}

	prefixes := make([]string, 0, len(seen))
	for p := range seen {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	stats.Prefixes = uint32(len(prefixes))
	return prefixes, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
