package verify

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/joseph-ayodele/invoice-auditor/constants"
	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
)

// Config holds the arithmetic cross-check thresholds. The margin tolerance
// is absolute and currency-unit-agnostic, and the epsilon only guards the
// confidence ratio against a zero extracted total; neither scales with
// invoice magnitude. Both are injected rather than fixed so they can be
// tuned per data set.
type Config struct {
	MarginTolerance float64 // default 1.0
	Epsilon         float64 // default 1e-5
}

// Engine cross-checks extracted header totals against totals computed from
// line items. It is the single implementation shared by every caller.
type Engine struct {
	logger *slog.Logger
	cfg    Config
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MarginTolerance <= 0 {
		cfg.MarginTolerance = 1.0
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = 1e-5
	}
	return &Engine{logger: logger, cfg: cfg}
}

// Verify is a pure function of its inputs: identical fields and line items
// always yield an identical report. A field that is absent or not numeric
// produces the structured failure record, never an error to the caller.
func (e *Engine) Verify(fields entity.FieldSet, items []entity.LineItem) entity.VerificationReport {
	computedSubtotal := 0.0
	for _, item := range items {
		computedSubtotal += item.RowTotal
	}

	extractedSubtotal, err := amountField(fields, constants.FieldSubtotal)
	if err != nil {
		return failureReport(err)
	}
	gst, err := amountField(fields, constants.FieldGSTAmount)
	if err != nil {
		return failureReport(err)
	}
	discount, err := amountField(fields, constants.FieldDiscount)
	if err != nil {
		return failureReport(err)
	}
	extractedTotal, err := amountField(fields, constants.FieldTotal)
	if err != nil {
		return failureReport(err)
	}

	computedTotal := computedSubtotal + gst - discount
	errorMargin := math.Abs(computedTotal - extractedTotal)
	confidence := math.Max(0.0, 1.0-errorMargin/(extractedTotal+e.cfg.Epsilon))
	e.logger.Debug("verification computed",
		"computed_total", computedTotal,
		"extracted_total", extractedTotal,
		"error_margin", errorMargin,
	)

	return entity.VerificationReport{
		Verified:          errorMargin < e.cfg.MarginTolerance,
		Confidence:        round3(confidence),
		ErrorMargin:       ptr(round2(errorMargin)),
		ExtractedSubtotal: ptr(extractedSubtotal),
		ComputedSubtotal:  ptr(round2(computedSubtotal)),
		ExtractedTotal:    ptr(extractedTotal),
		ComputedTotal:     ptr(round2(computedTotal)),
		GST:               ptr(gst),
		Discount:          ptr(discount),
	}
}

// amountField coerces a monetary FieldSet entry to a number. Absent fields,
// null values and non-numeric text all fail coercion.
func amountField(fields entity.FieldSet, name string) (float64, error) {
	fv, ok := fields[name]
	if !ok || fv.Value == nil {
		return 0, fmt.Errorf("value extraction error: field %q is missing", name)
	}
	v, err := strconv.ParseFloat(*fv.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("value extraction error: field %q value %q is not numeric", name, *fv.Value)
	}
	return v, nil
}

func failureReport(err error) entity.VerificationReport {
	return entity.VerificationReport{
		Verified:    false,
		Confidence:  0.0,
		ErrorMargin: nil,
		Error:       err.Error(),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func ptr(v float64) *float64 { return &v }
