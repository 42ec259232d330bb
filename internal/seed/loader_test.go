package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/db/testdb"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

func TestEmbeddedCatalogsParse(t *testing.T) {
	for _, ct := range constants.ContentTypes {
		t.Run(ct.Slug(), func(t *testing.T) {
			var doc catalogDoc
			require.NoError(t, decode(catalogFile(ct), &doc))
			require.NotEmpty(t, doc.Contents)
			for _, c := range doc.Contents {
				assert.NotEmpty(t, c.Name)
				assert.NotEmpty(t, c.Tabs, "content %s has no tabs", c.Name)
			}
		})
	}
}

func TestSeedContent_Idempotent(t *testing.T) {
	gdb := testdb.New(t)
	loader := NewLoader(gdb)
	ctx := context.Background()

	first, err := loader.SeedContent(ctx, constants.ContentAbyssRaid)
	require.NoError(t, err)
	require.Greater(t, first.Rows, 0)

	count := func(model any) int64 {
		var n int64
		require.NoError(t, gdb.Model(model).Count(&n).Error)
		return n
	}
	contents, tabs, stages := count(&gormModels.Content{}), count(&gormModels.ContentTab{}), count(&gormModels.ContentStage{})

	second, err := loader.SeedContent(ctx, constants.ContentAbyssRaid)
	require.NoError(t, err)
	assert.Equal(t, first.Rows, second.Rows)

	assert.Equal(t, contents, count(&gormModels.Content{}))
	assert.Equal(t, tabs, count(&gormModels.ContentTab{}))
	assert.Equal(t, stages, count(&gormModels.ContentStage{}))
}

func TestSeedContent_UpdatesChangedStageInPlace(t *testing.T) {
	gdb := testdb.New(t)
	loader := NewLoader(gdb)
	ctx := context.Background()

	_, err := loader.SeedContent(ctx, constants.ContentLegionRaid)
	require.NoError(t, err)

	var stage gormModels.ContentStage
	require.NoError(t, gdb.Order("id ASC").First(&stage).Error)
	require.NoError(t, gdb.Model(&stage).Updates(map[string]any{"name": "stale", "group_size": nil}).Error)

	_, err = loader.SeedContent(ctx, constants.ContentLegionRaid)
	require.NoError(t, err)

	var reloaded gormModels.ContentStage
	require.NoError(t, gdb.First(&reloaded, stage.ID).Error)
	assert.Equal(t, "Gate 1", reloaded.Name)
	require.NotNil(t, reloaded.GroupSize)
	assert.Equal(t, 8, *reloaded.GroupSize)
}

func TestSeedRegions(t *testing.T) {
	gdb := testdb.New(t)
	loader := NewLoader(gdb)
	ctx := context.Background()

	_, err := loader.SeedRegions(ctx)
	require.NoError(t, err)
	_, err = loader.SeedRegions(ctx)
	require.NoError(t, err)

	var regions int64
	require.NoError(t, gdb.Model(&gormModels.Region{}).Count(&regions).Error)
	assert.EqualValues(t, 5, regions)

	var azena gormModels.Server
	require.NoError(t, gdb.Preload("Region").Where("name = ?", "Azena").First(&azena).Error)
	assert.Equal(t, "North America East", azena.Region.Name)
}

func TestSeedAll(t *testing.T) {
	gdb := testdb.New(t)

	results, err := NewLoader(gdb).SeedAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, len(constants.ContentTypes)+1)
	assert.Equal(t, "regions", results[0].Catalog)

	for _, ct := range constants.ContentTypes {
		var n int64
		require.NoError(t, gdb.Model(&gormModels.Content{}).Where("type = ?", ct).Count(&n).Error)
		assert.Greater(t, n, int64(0), "no content for %s", ct)
	}
}
