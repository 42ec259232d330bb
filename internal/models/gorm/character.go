package gorm

import (
	"time"

	"lostark-hub/partyfinder/internal/constants"
)

// Roster is a user's set of characters on one server.
type Roster struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID         uint      `gorm:"column:user_id;not null;uniqueIndex:idx_roster_user_server"`
	ServerID       uint      `gorm:"column:server_id;not null;uniqueIndex:idx_roster_user_server"`
	Level          int       `gorm:"column:level;not null;default:1"`
	StrongholdName *string   `gorm:"column:stronghold_name"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Server     Server      `gorm:"foreignKey:ServerID"`
	Characters []Character `gorm:"foreignKey:RosterID"`
}

func (Roster) TableName() string {
	return "rosters"
}

type Guild struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string `gorm:"column:name;not null;uniqueIndex:idx_guild_name_server"`
	ServerID uint   `gorm:"column:server_id;not null;uniqueIndex:idx_guild_name_server"`
}

func (Guild) TableName() string {
	return "guilds"
}

type Character struct {
	ID             uint          `gorm:"column:id;primaryKey;autoIncrement"`
	RosterID       uint          `gorm:"column:roster_id;not null;uniqueIndex:idx_character_roster_name"`
	GuildID        *uint         `gorm:"column:guild_id"`
	Name           string        `gorm:"column:name;not null;uniqueIndex:idx_character_roster_name"`
	Job            constants.Job `gorm:"column:job;not null"`
	Level          int           `gorm:"column:level;not null"`
	ItemLevel      float64       `gorm:"column:item_level;not null"`
	Crit           int           `gorm:"column:crit;not null;default:0"`
	Specialization int           `gorm:"column:specialization;not null;default:0"`
	Swiftness      int           `gorm:"column:swiftness;not null;default:0"`
	Domination     int           `gorm:"column:domination;not null;default:0"`
	Endurance      int           `gorm:"column:endurance;not null;default:0"`
	Expertise      int           `gorm:"column:expertise;not null;default:0"`
	IsPrimary      bool          `gorm:"column:is_primary;not null;default:false"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time     `gorm:"column:updated_at;autoUpdateTime"`

	Roster     Roster          `gorm:"foreignKey:RosterID"`
	Guild      *Guild          `gorm:"foreignKey:GuildID"`
	Engravings []EngravingSlot `gorm:"foreignKey:CharacterID"`
}

func (Character) TableName() string {
	return "characters"
}

// EngravingSlot indexes are 1..N and unique per character.
type EngravingSlot struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement"`
	CharacterID uint   `gorm:"column:character_id;not null;uniqueIndex:idx_engraving_character_index"`
	Index       int    `gorm:"column:sort_index;not null;uniqueIndex:idx_engraving_character_index"`
	EngravingID string `gorm:"column:engraving_id;not null"`
	Level       int    `gorm:"column:level;not null"`
}

func (EngravingSlot) TableName() string {
	return "engraving_slots"
}
