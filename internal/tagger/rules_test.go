package tagger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleTaggerOrganizations(t *testing.T) {
	tg := NewRuleTagger()

	text := "Bill To: Acme Traders Pvt. Ltd. Ship To: Zenith Industries"
	spans, err := tg.Tag(context.Background(), text)
	require.NoError(t, err)

	var orgs []string
	for _, s := range spans {
		if s.Category == Organization {
			orgs = append(orgs, s.Text)
		}
	}
	require.Len(t, orgs, 2)
	assert.Equal(t, "Acme Traders Pvt. Ltd.", orgs[0])
	assert.Equal(t, "Zenith Industries", orgs[1])
}

func TestRuleTaggerHonorificNames(t *testing.T) {
	tg := NewRuleTagger()

	spans, err := tg.Tag(context.Background(), "Sold by M/s Sharma Brothers on credit")
	require.NoError(t, err)

	require.NotEmpty(t, spans)
	assert.Equal(t, Organization, spans[0].Category)
	assert.Equal(t, "Sharma Brothers", spans[0].Text)
}

func TestRuleTaggerLocations(t *testing.T) {
	tg := NewRuleTagger()

	spans, err := tg.Tag(context.Background(), "Dispatch from Warehouse, Nashik - 422001 today")
	require.NoError(t, err)

	var locs []string
	for _, s := range spans {
		if s.Category == Location {
			locs = append(locs, s.Text)
		}
	}
	require.NotEmpty(t, locs)
	assert.Equal(t, "Nashik - 422001", locs[0])
}

func TestRuleTaggerOrderOfAppearance(t *testing.T) {
	tg := NewRuleTagger()

	text := "Acme Exports then Pune, 411001 then Zenith Industries"
	spans, err := tg.Tag(context.Background(), text)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(spans), 3)

	assert.Equal(t, "Acme Exports", spans[0].Text)
	assert.Equal(t, Organization, spans[0].Category)
	assert.Equal(t, Location, spans[1].Category)
}

func TestRuleTaggerNoEntities(t *testing.T) {
	tg := NewRuleTagger()

	spans, err := tg.Tag(context.Background(), "total amount due 1234.00")
	require.NoError(t, err)
	assert.Empty(t, spans)
}
