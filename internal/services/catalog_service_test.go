package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lostark-hub/partyfinder/internal/constants"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

func TestCatalogTree_Ordered(t *testing.T) {
	f := newFixture(t)

	tree, err := f.catalog.Tree(context.Background(), constants.ContentLegionRaid)
	require.NoError(t, err)
	require.NotEmpty(t, tree)

	assert.Equal(t, "Valtan", tree[0].Name)
	for i, c := range tree {
		assert.Equal(t, i+1, c.Index)
		for j, tab := range c.Tabs {
			assert.Equal(t, j+1, tab.Index)
			for k, s := range tab.Stages {
				assert.Equal(t, k+1, s.Index)
			}
		}
	}
}

func TestCatalogTree_CachedUntilInvalidated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.catalog.Tree(ctx, constants.ContentAbyssRaid)
	require.NoError(t, err)

	extra := gormModels.Content{Type: constants.ContentAbyssRaid, Index: 99, Name: "Ivory Tower"}
	require.NoError(t, f.db.Create(&extra).Error)

	cached, err := f.catalog.Tree(ctx, constants.ContentAbyssRaid)
	require.NoError(t, err)
	assert.Len(t, cached, len(before))

	f.catalog.Invalidate()
	fresh, err := f.catalog.Tree(ctx, constants.ContentAbyssRaid)
	require.NoError(t, err)
	assert.Len(t, fresh, len(before)+1)
}

func TestCatalogStage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	want := f.stage(t, constants.ContentLegionRaid, "Kakul-Saydon", 1, 2)

	stage, err := f.catalog.Stage(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gate 2", stage.Name)
	assert.Equal(t, constants.ContentLegionRaid, stage.Tab.Content.Type)
	assert.Equal(t, 4, GroupSize(stage.Tab.Content.Type, stage))

	_, err = f.catalog.Stage(ctx, 424242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogLoadIgnoresCallerCancellation(t *testing.T) {
	f := newFixture(t)
	f.catalog.Invalidate()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree, err := f.catalog.Tree(ctx, constants.ContentLegionRaid)
	require.NoError(t, err)
	assert.NotEmpty(t, tree)

	want := f.stage(t, constants.ContentLegionRaid, "Valtan", 1, 1)
	f.catalog.Invalidate()
	stage, err := f.catalog.Stage(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, stage.ID)
}
