package gorm

import (
	"time"

	"lostark-hub/partyfinder/internal/constants"
)

type PartyFindPost struct {
	ID                uint                  `gorm:"column:id;primaryKey;autoIncrement"`
	ContentType       constants.ContentType `gorm:"column:content_type;not null;index:idx_post_stage_start"`
	StageID           uint                  `gorm:"column:stage_id;not null;index:idx_post_stage_start"`
	State             constants.PostState   `gorm:"column:state;not null;index"`
	Title             string                `gorm:"column:title;not null"`
	Description       string                `gorm:"column:description"`
	StartTime         time.Time             `gorm:"column:start_time;not null;index:idx_post_stage_start"`
	IsRecurring       bool                  `gorm:"column:is_recurring;not null;default:false"`
	RoleEnforced      bool                  `gorm:"column:role_enforced;not null;default:false"`
	AuthorUserID      uint                  `gorm:"column:author_user_id;not null;index"`
	AuthorCharacterID uint                  `gorm:"column:author_character_id;not null;index"`
	ServerID          uint                  `gorm:"column:server_id;not null"`
	RecurredFromID    *uint                 `gorm:"column:recurred_from_id;index"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`

	Stage           ContentStage    `gorm:"foreignKey:StageID"`
	Server          Server          `gorm:"foreignKey:ServerID"`
	AuthorCharacter Character       `gorm:"foreignKey:AuthorCharacterID"`
	Slots           []PartyFindSlot `gorm:"foreignKey:PostID"`
}

func (PartyFindPost) TableName() string {
	return "party_find_posts"
}

type PartyFindSlot struct {
	ID          uint              `gorm:"column:id;primaryKey;autoIncrement"`
	PostID      uint              `gorm:"column:post_id;not null;uniqueIndex:idx_slot_post_index"`
	Index       int               `gorm:"column:sort_index;not null;uniqueIndex:idx_slot_post_index"`
	JobType     constants.JobType `gorm:"column:job_type;not null"`
	CharacterID *uint             `gorm:"column:character_id;index"`

	Character *Character `gorm:"foreignKey:CharacterID"`
}

func (PartyFindSlot) TableName() string {
	return "party_find_slots"
}

// PartyFindApplyState is unique per (post, character); re-applying reuses the row.
type PartyFindApplyState struct {
	ID          uint                 `gorm:"column:id;primaryKey;autoIncrement"`
	PostID      uint                 `gorm:"column:post_id;not null;uniqueIndex:idx_apply_post_character"`
	CharacterID uint                 `gorm:"column:character_id;not null;uniqueIndex:idx_apply_post_character"`
	SlotID      *uint                `gorm:"column:slot_id"`
	State       constants.ApplyState `gorm:"column:state;not null"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (PartyFindApplyState) TableName() string {
	return "party_find_apply_states"
}

// PartyFindWaitlist is the join table between posts and waiting characters.
type PartyFindWaitlist struct {
	PostID      uint      `gorm:"column:post_id;primaryKey"`
	CharacterID uint      `gorm:"column:character_id;primaryKey"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PartyFindWaitlist) TableName() string {
	return "party_find_waitlists"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Region{},
		&Server{},
		&Roster{},
		&Guild{},
		&Character{},
		&EngravingSlot{},
		&Content{},
		&ContentTab{},
		&ContentStage{},
		&PartyFindPost{},
		&PartyFindSlot{},
		&PartyFindApplyState{},
		&PartyFindWaitlist{},
	}
}
