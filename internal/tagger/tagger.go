package tagger

import "context"

// Category labels a tagged span.
type Category string

const (
	Organization Category = "ORGANIZATION" // organizations and person names
	Location     Category = "LOCATION"     // geo-locations and addresses
)

// Span is one tagged region of the input text.
type Span struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// EntityTagger tags organization and location spans in raw text. Tagging may
// be backed by a heavy NLP model, so it takes a context; implementations
// must return spans in order of appearance.
type EntityTagger interface {
	Tag(ctx context.Context, text string) ([]Span, error)
}
