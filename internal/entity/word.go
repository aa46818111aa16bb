package entity

// WordRecord is one OCR-recognized token with its pixel bounding box and the
// engine's confidence. Records are produced once per page by the external OCR
// collaborator and never mutated here. Document order is ascending page
// number, then the order the engine returned within a page; this package does
// not re-sort by position.
type WordRecord struct {
	Text       string  `json:"text"`
	Left       int     `json:"left"`
	Top        int     `json:"top"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"conf"`
}
