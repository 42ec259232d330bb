package dtos

import "time"

type EngravingReq struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// CharacterReq is the body of /api/character/add and /api/character/{id}/edit.
type CharacterReq struct {
	ServerID       uint           `json:"serverId"`
	RosterLevel    int            `json:"rosterLevel"`
	StrongholdName string         `json:"strongholdName"`
	GuildName      string         `json:"guildName"`
	Name           string         `json:"name"`
	Job            string         `json:"job"`
	Level          int            `json:"level"`
	ItemLevel      float64        `json:"itemLevel"`
	Crit           int            `json:"crit"`
	Specialization int            `json:"specialization"`
	Swiftness      int            `json:"swiftness"`
	Domination     int            `json:"domination"`
	Endurance      int            `json:"endurance"`
	Expertise      int            `json:"expertise"`
	IsPrimary      bool           `json:"isPrimary"`
	Engravings     []EngravingReq `json:"engravings"`
}

// PartyFindPostReq is the body of /api/party-find-post/add.
type PartyFindPostReq struct {
	CharacterID  uint      `json:"characterId"`
	ContentType  string    `json:"contentType"`
	StageID      uint      `json:"stageId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartTime    time.Time `json:"startTime"`
	IsRecurring  bool      `json:"isRecurring"`
	RoleEnforced bool      `json:"roleEnforced"`
}

// PartyFindPostEditReq only carries the fields an author may change after creation.
type PartyFindPostEditReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	IsRecurring *bool      `json:"isRecurring"`
}

// MemberActionReq is the body of apply/approve/deny/kick/leave.
type MemberActionReq struct {
	CharacterID uint `json:"characterId"`
}

type ChangeLanguageReq struct {
	Language string `json:"language"`
}
