package dtos

import "time"

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type IDResponse struct {
	ID uint `json:"id"`
}

type EngravingView struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Level int    `json:"level"`
}

type CharacterView struct {
	ID             uint            `json:"id"`
	RosterID       uint            `json:"rosterId"`
	ServerID       uint            `json:"serverId"`
	Name           string          `json:"name"`
	Job            string          `json:"job"`
	Role           string          `json:"role"`
	Level          int             `json:"level"`
	ItemLevel      float64         `json:"itemLevel"`
	Crit           int             `json:"crit"`
	Specialization int             `json:"specialization"`
	Swiftness      int             `json:"swiftness"`
	Domination     int             `json:"domination"`
	Endurance      int             `json:"endurance"`
	Expertise      int             `json:"expertise"`
	IsPrimary      bool            `json:"isPrimary"`
	GuildName      string          `json:"guildName,omitempty"`
	Engravings     []EngravingView `json:"engravings"`
}

type SlotView struct {
	Index     int            `json:"index"`
	JobType   string         `json:"jobType"`
	Character *CharacterView `json:"character,omitempty"`
}

type ApplyStateView struct {
	CharacterID uint   `json:"characterId"`
	SlotIndex   *int   `json:"slotIndex,omitempty"`
	State       string `json:"state"`
}

type PostDetailView struct {
	ID                uint             `json:"id"`
	ContentType       string           `json:"contentType"`
	StageID           uint             `json:"stageId"`
	StageName         string           `json:"stageName"`
	State             string           `json:"state"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	StartTime         time.Time        `json:"startTime"`
	IsRecurring       bool             `json:"isRecurring"`
	RoleEnforced      bool             `json:"roleEnforced"`
	AuthorCharacterID uint             `json:"authorCharacterId"`
	ServerID          uint             `json:"serverId"`
	Slots             []SlotView       `json:"slots"`
	Waitlist          []CharacterView  `json:"waitlist"`
	ApplyStates       []ApplyStateView `json:"applyStates"`
}

// BoardPost is one row of the party finder board.
type BoardPost struct {
	ID          uint      `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	ContentType string    `db:"content_type" json:"contentType"`
	State       string    `db:"state" json:"state"`
	StartTime   time.Time `db:"start_time" json:"startTime"`
	IsRecurring bool      `db:"is_recurring" json:"isRecurring"`
	ServerID    uint      `db:"server_id" json:"serverId"`
	StageName   string    `db:"stage_name" json:"stageName"`
	StageTier   int       `db:"stage_tier" json:"stageTier"`
	GroupSize   int       `db:"group_size" json:"groupSize"`
	Filled      int       `db:"filled" json:"filled"`
}

type CatalogStageView struct {
	ID        uint   `json:"id"`
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Tier      int    `json:"tier"`
	Level     int    `json:"level"`
	GroupSize int    `json:"groupSize"`
}

type CatalogTabView struct {
	ID     uint               `json:"id"`
	Index  int                `json:"index"`
	Name   string             `json:"name"`
	Stages []CatalogStageView `json:"stages"`
}

type CatalogContentView struct {
	ID    uint             `json:"id"`
	Type  string           `json:"type"`
	Index int              `json:"index"`
	Name  string           `json:"name"`
	Tabs  []CatalogTabView `json:"tabs"`
}

type SeedResult struct {
	Catalog string `json:"catalog"`
	Rows    int    `json:"rows"`
}

type SessionView struct {
	UserID    uint   `json:"userId"`
	DiscordID string `json:"discordId"`
	Username  string `json:"username"`
	Language  string `json:"language"`
}

type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}
