package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldSetRoundTrip(t *testing.T) {
	fields := FieldSet{
		"invoice_number": PresentField("INV-2023-001", 0.95),
		"bill_to":        PresentField("Acme Traders Pvt. Ltd.", 0.8),
		"date":           AbsentField(),
	}

	data, err := json.Marshal(fields)
	require.NoError(t, err)

	var decoded FieldSet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fields, decoded)
}

func TestAbsentFieldSerializesNull(t *testing.T) {
	data, err := json.Marshal(AbsentField())
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":null,"confidence":0,"present":false}`, string(data))
}

func TestGetMissingName(t *testing.T) {
	fields := FieldSet{"total": PresentField("354", 0.95)}

	fv := fields.Get("subtotal")
	assert.False(t, fv.Present)
	assert.Nil(t, fv.Value)
	assert.Equal(t, 0.0, fv.Confidence)
}
