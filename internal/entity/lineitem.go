package entity

// LineItem is one reconstructed row of an invoice's itemized table. Valid
// records whether qty * unit_price matched row_total within the row
// tolerance at extraction time.
type LineItem struct {
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
	RowTotal    float64 `json:"row_total"`
	Valid       bool    `json:"valid"`
}
