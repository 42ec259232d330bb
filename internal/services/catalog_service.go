package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/constants"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

const CatalogTTL = 10 * time.Minute

// CatalogService serves the content hierarchies read-through a cache. Concurrent
// misses for the same key share one database load.
type CatalogService struct {
	db    *gorm.DB
	cache common.CacheInterface
	group singleflight.Group
}

var _ StageLookup = (*CatalogService)(nil)

func NewCatalogService(db *gorm.DB, cache common.CacheInterface) *CatalogService {
	return &CatalogService{db: db, cache: cache}
}

func treeKey(t constants.ContentType) string {
	return string(constants.CachePrefixCatalogTree) + string(t)
}

func stageKey(id uint) string {
	return fmt.Sprintf("%s%d", constants.CachePrefixCatalogStage, id)
}

// Tree returns every content of a type with its tabs and stages, all ordered by index.
func (svc *CatalogService) Tree(ctx context.Context, contentType constants.ContentType) ([]gormModels.Content, error) {
	key := treeKey(contentType)
	if v, ok := svc.cache.Get(key); ok {
		return v.([]gormModels.Content), nil
	}

	// Waiters share the load, so one caller's cancellation must not fail the rest.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := svc.group.Do(key, func() (any, error) {
		var contents []gormModels.Content
		err := svc.db.WithContext(loadCtx).
			Where("type = ?", contentType).
			Preload("Tabs", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
			Preload("Tabs.Stages", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
			Order("sort_index ASC").
			Find(&contents).Error
		if err != nil {
			return nil, dbError("catalog.tree", err)
		}
		svc.cache.Set(key, contents, CatalogTTL)
		return contents, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]gormModels.Content), nil
}

// Stage loads one stage with its tab and content.
func (svc *CatalogService) Stage(ctx context.Context, stageID uint) (*gormModels.ContentStage, error) {
	const op = "catalog.stage"
	key := stageKey(stageID)
	if v, ok := svc.cache.Get(key); ok {
		return v.(*gormModels.ContentStage), nil
	}

	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := svc.group.Do(key, func() (any, error) {
		var stage gormModels.ContentStage
		if err := svc.db.WithContext(loadCtx).Preload("Tab.Content").First(&stage, stageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound(op, "stage %d", stageID)
			}
			return nil, dbError(op, err)
		}
		svc.cache.Set(key, &stage, CatalogTTL)
		return &stage, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gormModels.ContentStage), nil
}

// Invalidate drops every cached catalog entry. Called after seeding.
func (svc *CatalogService) Invalidate() {
	svc.cache.Flush()
}
