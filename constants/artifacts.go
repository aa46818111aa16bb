package constants

// Per-document artifact filename suffixes. Every artifact for a document is
// keyed by its prefix: the stem of the original source filename.
const (
	SuffixRawPage      = "_raw.json"
	SuffixFields       = "_fields.json"
	SuffixLineItems    = "_lineitems.json"
	SuffixVerification = "_verifiability_report.json"
)

// DocStatus is the canonical status for rows in the document run index.
type DocStatus string

// Stable values (store these exact strings in the DB).
const (
	DocStatusRunning   DocStatus = "RUNNING"   // in progress
	DocStatusExtracted DocStatus = "EXTRACTED" // fields + line items written
	DocStatusVerified  DocStatus = "VERIFIED"  // verification report written
	DocStatusSkipped   DocStatus = "SKIPPED"   // required inputs missing
	DocStatusFailed    DocStatus = "FAILED"    // terminal failure
)
