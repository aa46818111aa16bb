package entity

// VerificationReport is the arithmetic cross-check result for one document.
// A success record carries the extracted and computed totals; a failure
// record carries only Verified=false, a message, zero confidence and a null
// error margin. ErrorMargin is a pointer so the failure record serializes it
// as JSON null rather than 0.
type VerificationReport struct {
	Verified          bool     `json:"verified"`
	Confidence        float64  `json:"confidence"`
	ErrorMargin       *float64 `json:"error_margin"`
	Error             string   `json:"error,omitempty"`
	ExtractedSubtotal *float64 `json:"extracted_subtotal,omitempty"`
	ComputedSubtotal  *float64 `json:"computed_subtotal,omitempty"`
	ExtractedTotal    *float64 `json:"extracted_total,omitempty"`
	ComputedTotal     *float64 `json:"computed_total,omitempty"`
	GST               *float64 `json:"gst,omitempty"`
	Discount          *float64 `json:"discount,omitempty"`
}
