// Package seed loads the static content catalogs and region list from embedded
// TOML files into the database.
package seed

import (
	"context"
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"gorm.io/gorm"

	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/logging"
	"lostark-hub/partyfinder/internal/models/dtos"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

//go:embed data/*.toml
var dataFS embed.FS

const regionsFile = "data/regions.toml"

type regionsDoc struct {
	Regions []regionDoc `toml:"region"`
}

type regionDoc struct {
	Name    string   `toml:"name"`
	Servers []string `toml:"servers"`
}

type catalogDoc struct {
	Contents []contentDoc `toml:"content"`
}

type contentDoc struct {
	Index int      `toml:"index"`
	Name  string   `toml:"name"`
	Tabs  []tabDoc `toml:"tab"`
}

type tabDoc struct {
	Index  int        `toml:"index"`
	Name   string     `toml:"name"`
	Stages []stageDoc `toml:"stage"`
}

type stageDoc struct {
	Index     int    `toml:"index"`
	Name      string `toml:"name"`
	Tier      int    `toml:"tier"`
	Level     int    `toml:"level"`
	GroupSize *int   `toml:"group_size"`
}

func catalogFile(t constants.ContentType) string {
	return "data/" + t.Slug() + ".toml"
}

func decode(name string, v any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Loader upserts reference data. Every method is safe to run repeatedly.
type Loader struct {
	db *gorm.DB
}

func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

// SeedRegions upserts regions by name and servers by name.
func (l *Loader) SeedRegions(ctx context.Context) (dtos.SeedResult, error) {
	result := dtos.SeedResult{Catalog: "regions"}

	var doc regionsDoc
	if err := decode(regionsFile, &doc); err != nil {
		return result, err
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range doc.Regions {
			region := gormModels.Region{Name: r.Name}
			if err := tx.Where("name = ?", r.Name).FirstOrCreate(&region).Error; err != nil {
				return fmt.Errorf("upsert region %s: %w", r.Name, err)
			}
			result.Rows++

			for _, name := range r.Servers {
				server := gormModels.Server{Name: name, RegionID: region.ID}
				if err := tx.Where("name = ?", name).
					Assign(gormModels.Server{RegionID: region.ID}).
					FirstOrCreate(&server).Error; err != nil {
					return fmt.Errorf("upsert server %s: %w", name, err)
				}
				result.Rows++
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	logging.Info("Seeded regions", "rows", result.Rows)
	return result, nil
}

// SeedContent upserts one catalog: contents by (type, name), tabs by
// (content, index), stages by (tab, index).
func (l *Loader) SeedContent(ctx context.Context, contentType constants.ContentType) (dtos.SeedResult, error) {
	result := dtos.SeedResult{Catalog: contentType.Slug()}

	var doc catalogDoc
	if err := decode(catalogFile(contentType), &doc); err != nil {
		return result, err
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range doc.Contents {
			content := gormModels.Content{Type: contentType, Name: c.Name, Index: c.Index}
			if err := tx.Where("type = ? AND name = ?", contentType, c.Name).
				Assign(gormModels.Content{Index: c.Index}).
				FirstOrCreate(&content).Error; err != nil {
				return fmt.Errorf("upsert content %s: %w", c.Name, err)
			}
			result.Rows++

			for _, t := range c.Tabs {
				tab := gormModels.ContentTab{ContentID: content.ID, Index: t.Index, Name: t.Name}
				if err := tx.Where("content_id = ? AND sort_index = ?", content.ID, t.Index).
					Assign(gormModels.ContentTab{Name: t.Name}).
					FirstOrCreate(&tab).Error; err != nil {
					return fmt.Errorf("upsert tab %s/%s: %w", c.Name, t.Name, err)
				}
				result.Rows++

				for _, s := range t.Stages {
					stage := gormModels.ContentStage{TabID: tab.ID, Index: s.Index}
					if err := tx.Where("tab_id = ? AND sort_index = ?", tab.ID, s.Index).
						Assign(map[string]any{
							"name":       s.Name,
							"tier":       s.Tier,
							"level":      s.Level,
							"group_size": s.GroupSize,
						}).
						FirstOrCreate(&stage).Error; err != nil {
						return fmt.Errorf("upsert stage %s/%s/%s: %w", c.Name, t.Name, s.Name, err)
					}
					result.Rows++
				}
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	logging.Info("Seeded content catalog", "type", contentType, "rows", result.Rows)
	return result, nil
}

// SeedAll seeds regions and then every content catalog.
func (l *Loader) SeedAll(ctx context.Context) ([]dtos.SeedResult, error) {
	results := make([]dtos.SeedResult, 0, len(constants.ContentTypes)+1)

	r, err := l.SeedRegions(ctx)
	if err != nil {
		return results, err
	}
	results = append(results, r)

	for _, t := range constants.ContentTypes {
		r, err := l.SeedContent(ctx, t)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}
