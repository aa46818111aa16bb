package pipeline

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-auditor/constants"
	"github.com/joseph-ayodele/invoice-auditor/internal/common"
	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
	"github.com/joseph-ayodele/invoice-auditor/internal/verify"
)

func writeFixture(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func amountSet(subtotal, gst, discount, total string) entity.FieldSet {
	fs := entity.FieldSet{}
	for name, v := range map[string]string{
		constants.FieldSubtotal:  subtotal,
		constants.FieldGSTAmount: gst,
		constants.FieldDiscount:  discount,
		constants.FieldTotal:     total,
	} {
		fs[name] = entity.PresentField(v, 0.95)
	}
	return fs
}

func TestVerifyStageMissingInput(t *testing.T) {
	dir := t.TempDir()
	stage := NewVerifyStage(verify.NewEngine(verify.Config{}, nil), dir, nil)

	_, err := stage.Run("ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingInput)

	_, statErr := os.Stat(ReportPath(dir, "ghost"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestVerifyStageMissingLineItems(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, FieldsPath(dir, "half"), amountSet("300", "54", "0", "354"))
	stage := NewVerifyStage(verify.NewEngine(verify.Config{}, nil), dir, nil)

	_, err := stage.Run("half")
	assert.ErrorIs(t, err, common.ErrMissingInput)
}

func TestVerifyStageWritesReport(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, FieldsPath(dir, "doc"), amountSet("300", "54", "0", "354"))
	writeFixture(t, LineItemsPath(dir, "doc"), []entity.LineItem{
		{Description: "Widget", Qty: 2, UnitPrice: 100, RowTotal: 200, Valid: true},
		{Description: "Gadget", Qty: 1, UnitPrice: 100, RowTotal: 100, Valid: true},
	})
	stage := NewVerifyStage(verify.NewEngine(verify.Config{}, nil), dir, nil)

	report, err := stage.Run("doc")
	require.NoError(t, err)
	assert.True(t, report.Verified)
	assert.Equal(t, 1.0, report.Confidence)

	data, err := os.ReadFile(ReportPath(dir, "doc"))
	require.NoError(t, err)
	var persisted entity.VerificationReport
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, report, persisted)
}
