package ocr

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/invoice-auditor/constants"
	"github.com/joseph-ayodele/invoice-auditor/internal/common"
	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
)

var rePageNum = regexp.MustCompile(`_page_(\d+)_raw\.json$`)

// Loader reads the per-page word-record artifacts the OCR collaborator
// leaves in a directory.
type Loader struct {
	dir    string
	logger *slog.Logger
}

func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dir: dir, logger: logger}
}

// PageFiles returns the raw page artifacts for prefix, ordered by ascending
// page number parsed from the filename.
func (l *Loader) PageFiles(prefix string) ([]string, error) {
	pattern := filepath.Join(l.dir, prefix+"_page_*"+constants.SuffixRawPage)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}
	sort.Slice(matches, func(i, j int) bool {
		return pageNumber(matches[i]) < pageNumber(matches[j])
	})
	return matches, nil
}

func pageNumber(path string) int {
	m := rePageNum.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// LoadPages reads, validates and decodes every page for prefix, page order
// preserved. Returns ErrMissingInput when no page artifact exists.
func (l *Loader) LoadPages(prefix string) ([][]entity.WordRecord, error) {
	files, err := l.PageFiles(prefix)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, common.NewAppError("OCR_PAGES", fmt.Sprintf("no OCR pages for prefix %q in %s", prefix, l.dir), common.ErrMissingInput)
	}

	pages := make([][]entity.WordRecord, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", filepath.Base(f), err)
		}
		if err := validatePage(data); err != nil {
			return nil, fmt.Errorf("validate page %s: %w", filepath.Base(f), err)
		}
		var words []entity.WordRecord
		if err := json.Unmarshal(data, &words); err != nil {
			return nil, fmt.Errorf("decode page %s: %w", filepath.Base(f), err)
		}
		pages = append(pages, words)
	}
	l.logger.Debug("ocr pages loaded", "prefix", prefix, "pages", len(pages))
	return pages, nil
}

// LoadWords flattens the pages for prefix into the document word sequence.
func (l *Loader) LoadWords(prefix string) ([]entity.WordRecord, error) {
	pages, err := l.LoadPages(prefix)
	if err != nil {
		return nil, err
	}
	var words []entity.WordRecord
	for _, page := range pages {
		words = append(words, page...)
	}
	return words, nil
}

// DocumentText joins each page's word texts with spaces and the pages with
// newlines, in page order. This is the input shape the field extractor
// expects.
func DocumentText(pages [][]entity.WordRecord) string {
	var b strings.Builder
	for _, page := range pages {
		for i, w := range page {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w.Text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// PrefixFromFilename derives the document prefix from a raw page artifact
// name, e.g. "acme_inv_page_2_raw.json" -> "acme_inv". The second return is
// false when the name is not a raw page artifact.
func PrefixFromFilename(name string) (string, bool) {
	if !rePageNum.MatchString(name) {
		return "", false
	}
	parts := strings.Split(name, "_")
	if len(parts) < 4 {
		return "", false
	}
	return strings.Join(parts[:len(parts)-3], "_"), true
}
