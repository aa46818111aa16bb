package tagger

import (
	"context"
	"regexp"
	"sort"
)

// RuleTagger is a lexicon-backed EntityTagger. It recognizes organizations
// by legal-form suffixes and locations by postal-code shapes and a small
// city gazetteer. It is the default tagger for batch runs; callers with a
// real NER model inject their own EntityTagger instead.
type RuleTagger struct{}

func NewRuleTagger() *RuleTagger {
	return &RuleTagger{}
}

var orgPatterns = []*regexp.Regexp{
	// "Acme Traders Pvt. Ltd.", "Zenith Industries", "R K Enterprises"
	regexp.MustCompile(`\b([A-Z][A-Za-z&.]*(?:\s+[A-Z][A-Za-z&.]*)*\s+(?:Pvt\.?\s*Ltd\.?|Private\s+Limited|Ltd\.?|LLP|Inc\.?|Corp\.?|Limited|Industries|Enterprises|Traders|Solutions|Technologies|Exports|Agencies))`),
	// honorific-led person names: "M/s Sharma Brothers", "Mr. John Doe"
	regexp.MustCompile(`\b(?:M/s\.?|Mr\.?|Mrs\.?|Ms\.?)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,3})`),
}

var locPatterns = []*regexp.Regexp{
	// "Mumbai - 400001", "Pune, 411001" (city with a 6-digit PIN)
	regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s*[-,]\s*\d{6})\b`),
	// plot/street style address fragments: "12, MG Road", "Plot 7 Industrial Area"
	regexp.MustCompile(`\b((?:Plot|Shop|Flat|No\.?)\s*\d+[A-Za-z]?(?:[,\s]+[A-Z][A-Za-z.]*)+)`),
	// bare gazetteer cities
	regexp.MustCompile(`\b(Mumbai|Delhi|New\s+Delhi|Bengaluru|Bangalore|Chennai|Kolkata|Hyderabad|Pune|Ahmedabad|Jaipur|Surat|Lucknow|Nagpur|Kochi|Gurgaon|Gurugram|Noida)\b`),
}

type taggedMatch struct {
	start int
	span  Span
}

// Tag applies every pattern and returns the tagged spans in order of
// appearance. Overlapping matches are kept; downstream selection is purely
// positional, mirroring how an NER model's span stream is consumed.
func (t *RuleTagger) Tag(_ context.Context, text string) ([]Span, error) {
	var matches []taggedMatch
	for _, re := range orgPatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			matches = append(matches, taggedMatch{
				start: loc[2],
				span:  Span{Text: text[loc[2]:loc[3]], Category: Organization},
			})
		}
	}
	for _, re := range locPatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			matches = append(matches, taggedMatch{
				start: loc[2],
				span:  Span{Text: text[loc[2]:loc[3]], Category: Location},
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	spans := make([]Span, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, m.span)
	}
	return spans, nil
}
