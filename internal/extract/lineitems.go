package extract

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
)

// Config holds thresholds for line-item extraction.
type Config struct {
	Lookahead        int     // words of context examined after a candidate row start; default 7
	MinNumericTokens int     // digit-bearing tokens required to keep a candidate; default 3
	RowTolerance     float64 // |qty*unit_price - row_total| bound for a valid row; default 2.0
}

// LineItemExtractor reconstructs invoice table rows from the document word
// sequence with a single bounded-lookahead scan. A purely numeric word
// (serial or HSN code) starts a candidate; the candidate is kept only if
// enough digit-bearing tokens follow and they parse as amounts. A rejected
// candidate advances the scan by one word, so overlapping candidates are
// possible on purpose.
type LineItemExtractor struct {
	logger *slog.Logger
	cfg    Config
}

func NewLineItemExtractor(cfg Config, logger *slog.Logger) *LineItemExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = 7
	}
	if cfg.MinNumericTokens <= 0 {
		cfg.MinNumericTokens = 3
	}
	if cfg.RowTolerance <= 0 {
		cfg.RowTolerance = 2.0
	}
	return &LineItemExtractor{logger: logger, cfg: cfg}
}

// Extract never fails; the worst case is an empty sequence. Items appear in
// the order their candidates were accepted.
func (e *LineItemExtractor) Extract(words []entity.WordRecord) []entity.LineItem {
	items := make([]entity.LineItem, 0)
	for i, w := range words {
		if !isAllDigits(w.Text) {
			continue
		}
		end := i + e.cfg.Lookahead + 1
		if end > len(words) {
			end = len(words)
		}
		window := words[i:end]

		var numeric []entity.WordRecord
		for _, cw := range window {
			if hasDigit(cw.Text) {
				numeric = append(numeric, cw)
			}
		}
		if len(numeric) < e.cfg.MinNumericTokens {
			continue
		}

		qty, ok := amountAt(numeric, 1)
		if !ok {
			continue
		}
		unitPrice, ok := amountAt(numeric, 2)
		if !ok {
			continue
		}
		rowTotal, ok := amountAt(numeric, 3)
		if !ok {
			continue
		}

		items = append(items, entity.LineItem{
			Description: joinWords(window, 1, 3),
			Qty:         qty,
			UnitPrice:   unitPrice,
			RowTotal:    rowTotal,
			Valid:       math.Abs(qty*unitPrice-rowTotal) < e.cfg.RowTolerance,
		})
	}
	e.logger.Debug("line items extracted", "words", len(words), "items", len(items))
	return items
}

// amountAt parses the idx-th numeric token as an amount, commas stripped.
// Out-of-range and unparseable tokens both reject the candidate.
func amountAt(tokens []entity.WordRecord, idx int) (float64, bool) {
	if idx >= len(tokens) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(tokens[idx].Text, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func joinWords(words []entity.WordRecord, from, to int) string {
	if to > len(words) {
		to = len(words)
	}
	if from >= to {
		return ""
	}
	parts := make([]string, 0, to-from)
	for _, w := range words[from:to] {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
