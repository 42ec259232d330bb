package gorm

import "lostark-hub/partyfinder/internal/constants"

// Content is the top level of a catalog hierarchy (one raid, one dungeon family...).
// All five content catalogs share this table, discriminated by Type.
type Content struct {
	ID    uint                  `gorm:"column:id;primaryKey;autoIncrement"`
	Type  constants.ContentType `gorm:"column:type;not null;uniqueIndex:idx_content_type_name"`
	Index int                   `gorm:"column:sort_index;not null"`
	Name  string                `gorm:"column:name;not null;uniqueIndex:idx_content_type_name"`

	Tabs []ContentTab `gorm:"foreignKey:ContentID"`
}

func (Content) TableName() string {
	return "contents"
}

type ContentTab struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	ContentID uint   `gorm:"column:content_id;not null;uniqueIndex:idx_tab_content_index"`
	Index     int    `gorm:"column:sort_index;not null;uniqueIndex:idx_tab_content_index"`
	Name      string `gorm:"column:name;not null"`

	Content Content        `gorm:"foreignKey:ContentID"`
	Stages  []ContentStage `gorm:"foreignKey:TabID"`
}

func (ContentTab) TableName() string {
	return "content_tabs"
}

// ContentStage is the bookable unit a post refers to. GroupSize is only set
// for catalogs whose stages override the content type default.
type ContentStage struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	TabID     uint   `gorm:"column:tab_id;not null;uniqueIndex:idx_stage_tab_index"`
	Index     int    `gorm:"column:sort_index;not null;uniqueIndex:idx_stage_tab_index"`
	Name      string `gorm:"column:name;not null"`
	Tier      int    `gorm:"column:tier;not null;default:1"`
	Level     int    `gorm:"column:level;not null;default:0"`
	GroupSize *int   `gorm:"column:group_size"`

	Tab ContentTab `gorm:"foreignKey:TabID"`
}

func (ContentStage) TableName() string {
	return "content_stages"
}
