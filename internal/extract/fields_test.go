package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-auditor/constants"
	"github.com/joseph-ayodele/invoice-auditor/internal/tagger"
)

// stubTagger returns a fixed span stream.
type stubTagger struct {
	spans []tagger.Span
}

func (s *stubTagger) Tag(_ context.Context, _ string) ([]tagger.Span, error) {
	return s.spans, nil
}

func TestExtractInvoiceNumber(t *testing.T) {
	e := NewFieldExtractor(&stubTagger{}, nil)

	fields, err := e.Extract(context.Background(), "Invoice No: INV-2023-001")
	require.NoError(t, err)

	fv := fields[constants.FieldInvoiceNumber]
	require.NotNil(t, fv.Value)
	assert.Equal(t, "INV-2023-001", *fv.Value)
	assert.Equal(t, 0.95, fv.Confidence)
	assert.True(t, fv.Present)
}

func TestExtractDateAbsentWhenNoMatch(t *testing.T) {
	e := NewFieldExtractor(&stubTagger{}, nil)

	fields, err := e.Extract(context.Background(), "Invoice No: INV-2023-001 Total 500")
	require.NoError(t, err)

	fv := fields[constants.FieldDate]
	assert.Nil(t, fv.Value)
	assert.Equal(t, 0.0, fv.Confidence)
	assert.False(t, fv.Present)
}

func TestExtractDate(t *testing.T) {
	e := NewFieldExtractor(&stubTagger{}, nil)

	fields, err := e.Extract(context.Background(), "Date: 2023-04-17")
	require.NoError(t, err)

	fv := fields[constants.FieldDate]
	require.True(t, fv.Present)
	assert.Equal(t, "2023-04-17", *fv.Value)
}

func TestFirstPatternWins(t *testing.T) {
	e := NewFieldExtractor(&stubTagger{}, nil)

	// Both the primary and the fallback invoice patterns match; only the
	// first in list order may be used.
	fields, err := e.Extract(context.Background(), "Invoice # B-2 ... Invoice No: A-1")
	require.NoError(t, err)

	fv := fields[constants.FieldInvoiceNumber]
	require.True(t, fv.Present)
	assert.Equal(t, "A-1", *fv.Value)
}

func TestEntityFieldsPositionalSelection(t *testing.T) {
	tg := &stubTagger{spans: []tagger.Span{
		{Text: "Acme Traders Pvt. Ltd.", Category: tagger.Organization},
		{Text: "Mumbai - 400001", Category: tagger.Location},
		{Text: "Zenith Industries", Category: tagger.Organization},
	}}
	e := NewFieldExtractor(tg, nil)

	fields, err := e.Extract(context.Background(), "irrelevant")
	require.NoError(t, err)

	billTo := fields[constants.FieldBillTo]
	require.True(t, billTo.Present)
	assert.Equal(t, "Acme Traders Pvt. Ltd.", *billTo.Value)
	assert.Equal(t, 0.8, billTo.Confidence)

	shipTo := fields[constants.FieldShipTo]
	require.True(t, shipTo.Present)
	assert.Equal(t, "Zenith Industries", *shipTo.Value)

	billAddr := fields[constants.FieldBillToAddress]
	require.True(t, billAddr.Present)
	assert.Equal(t, "Mumbai - 400001", *billAddr.Value)
	assert.Equal(t, 0.7, billAddr.Confidence)

	// only one location tagged, so the second-position pick is absent
	shipAddr := fields[constants.FieldShipToAddress]
	assert.False(t, shipAddr.Present)
	assert.Nil(t, shipAddr.Value)
	assert.Equal(t, 0.0, shipAddr.Confidence)
}

func TestFieldValueInvariants(t *testing.T) {
	e := NewFieldExtractor(&stubTagger{}, nil)

	fields, err := e.Extract(context.Background(), "GSTIN: 22AAAAA0000A1Z5 no other labels")
	require.NoError(t, err)

	for name, fv := range fields {
		assert.Equal(t, fv.Present, fv.Value != nil, "field %s", name)
		if !fv.Present {
			assert.Equal(t, 0.0, fv.Confidence, "field %s", name)
		}
	}
}
