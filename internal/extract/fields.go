package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-auditor/constants"
	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
	"github.com/joseph-ayodele/invoice-auditor/internal/tagger"
)

// FieldExtractor turns the concatenated document text into a header
// FieldSet: regex fields from ordered pattern lists, bill/ship fields from
// the entity tagger's span stream.
type FieldExtractor struct {
	logger *slog.Logger
	tagger tagger.EntityTagger
}

func NewFieldExtractor(tg tagger.EntityTagger, logger *slog.Logger) *FieldExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldExtractor{logger: logger, tagger: tg}
}

// Extract builds the FieldSet for one document's text. Unmatched patterns
// and short entity streams degrade to absent fields; the only error path is
// the tagger itself failing.
func (e *FieldExtractor) Extract(ctx context.Context, text string) (entity.FieldSet, error) {
	fields := make(entity.FieldSet, len(constants.RegexFields)+4)
	for _, name := range constants.RegexFields {
		fields[name] = matchField(fieldPatterns[name], text)
	}

	spans, err := e.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tag entities: %w", err)
	}
	var orgs, locs []string
	for _, s := range spans {
		switch s.Category {
		case tagger.Organization:
			orgs = append(orgs, s.Text)
		case tagger.Location:
			locs = append(locs, s.Text)
		}
	}

	// Positional selection: first/second org and location. No dedup, no
	// buyer/seller disambiguation.
	fields[constants.FieldBillTo] = pickEntity(orgs, 0, orgConfidence)
	fields[constants.FieldShipTo] = pickEntity(orgs, 1, orgConfidence)
	fields[constants.FieldBillToAddress] = pickEntity(locs, 0, locConfidence)
	fields[constants.FieldShipToAddress] = pickEntity(locs, 1, locConfidence)

	e.logger.Debug("fields extracted", "orgs", len(orgs), "locs", len(locs))
	return fields, nil
}

// matchField tries the ordered patterns and takes capture group 1 of the
// first match; the remaining patterns are not tried.
func matchField(patterns []*regexp.Regexp, text string) entity.FieldValue {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return entity.PresentField(strings.TrimSpace(m[1]), regexConfidence)
		}
	}
	return entity.AbsentField()
}

func pickEntity(candidates []string, idx int, confidence float64) entity.FieldValue {
	if idx >= len(candidates) {
		return entity.AbsentField()
	}
	return entity.PresentField(candidates[idx], confidence)
}
