package extract

import (
	"regexp"

	"github.com/joseph-ayodele/invoice-auditor/constants"
)

// fieldPatterns holds the ordered candidate patterns per regex field.
// Patterns are tried strictly in slice order and the first match wins;
// later patterns are fallbacks for alternate label spellings, never scored
// against earlier ones.
var fieldPatterns = map[string][]*regexp.Regexp{
	constants.FieldInvoiceNumber: {
		regexp.MustCompile(`(?i)Invoice\s*No\.?\s*[:\-]?\s*([A-Za-z0-9\-]+)`),
		regexp.MustCompile(`(?i)Invoice\s*#\s*([A-Za-z0-9\-]+)`),
	},
	constants.FieldDate: {
		regexp.MustCompile(`(?i)Date\s*[:\-]?\s*([0-9]{2,4}[-/][0-9]{1,2}[-/][0-9]{1,4})`),
		regexp.MustCompile(`(?i)Dated\s*[:\-]?\s*([0-9]{2,4}[-/][0-9]{1,2}[-/][0-9]{1,4})`),
	},
	constants.FieldGSTNumber: {
		regexp.MustCompile(`(?i)GSTIN\s*[:\-]?\s*([0-9A-Z]{15})`),
		regexp.MustCompile(`(?i)GST\s*No\.?\s*[:\-]?\s*([0-9A-Z]{15})`),
	},
	constants.FieldPONumber: {
		regexp.MustCompile(`(?i)PO\s*No\.?\s*[:\-]?\s*([A-Za-z0-9\-]+)`),
		regexp.MustCompile(`(?i)Purchase\s*Order\s*[:\-]?\s*([A-Za-z0-9\-]+)`),
	},
}

// Extraction confidences are fixed per mechanism, not scored: regex matches
// are trusted more than entity selection, and organization spans more than
// location spans.
const (
	regexConfidence = 0.95
	orgConfidence   = 0.8
	locConfidence   = 0.7
)
