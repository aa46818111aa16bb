package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-auditor/constants"
)

func newTestRepo(t *testing.T) RunRepository {
	t.Helper()
	db, err := Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db, nil) })
	return NewRunRepository(db, nil)
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	runID, err := repo.StartRun(ctx)
	require.NoError(t, err)

	docID, err := repo.StartDocument(ctx, runID, "inv_2023")
	require.NoError(t, err)
	require.NoError(t, repo.MarkExtracted(ctx, docID, 4))
	require.NoError(t, repo.FinishVerified(ctx, docID, true, 0.998))

	skippedID, err := repo.StartDocument(ctx, runID, "inv_2024")
	require.NoError(t, err)
	require.NoError(t, repo.FinishSkipped(ctx, skippedID, "required file not found"))

	require.NoError(t, repo.FinishRun(ctx, runID, RunStats{Processed: 1, Skipped: 1}))

	docs, err := repo.ListDocuments(ctx, runID)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	byPrefix := map[string]DocumentRun{}
	for _, d := range docs {
		byPrefix[d.Prefix] = d
	}

	verified := byPrefix["inv_2023"]
	assert.Equal(t, constants.DocStatusVerified, verified.Status)
	require.NotNil(t, verified.LineItems)
	assert.Equal(t, 4, *verified.LineItems)
	require.NotNil(t, verified.Verified)
	assert.True(t, *verified.Verified)
	require.NotNil(t, verified.Confidence)
	assert.InDelta(t, 0.998, *verified.Confidence, 1e-9)
	assert.NotNil(t, verified.FinishedAt)

	skipped := byPrefix["inv_2024"]
	assert.Equal(t, constants.DocStatusSkipped, skipped.Status)
	require.NotNil(t, skipped.ErrorMessage)
	assert.Contains(t, *skipped.ErrorMessage, "not found")
	assert.Nil(t, skipped.Verified)
}

func TestFinishFailed(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	runID, err := repo.StartRun(ctx)
	require.NoError(t, err)
	docID, err := repo.StartDocument(ctx, runID, "broken")
	require.NoError(t, err)
	require.NoError(t, repo.FinishFailed(ctx, docID, "decode page: unexpected EOF"))

	docs, err := repo.ListDocuments(ctx, runID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, constants.DocStatusFailed, docs[0].Status)
}

func TestListDocumentsEmptyRun(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	runID, err := repo.StartRun(ctx)
	require.NoError(t, err)

	docs, err := repo.ListDocuments(ctx, runID)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
