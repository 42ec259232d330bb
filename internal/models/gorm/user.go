package gorm

import "time"

type User struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	DiscordID     string    `gorm:"column:discord_id;uniqueIndex;not null"`
	Username      string    `gorm:"column:username"`
	Discriminator string    `gorm:"column:discriminator"`
	Avatar        *string   `gorm:"column:avatar"`
	Language      string    `gorm:"column:language;default:en"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Rosters []Roster `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
