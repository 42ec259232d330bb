package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lostark-hub/partyfinder/internal/config"
	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/logging"
	"lostark-hub/partyfinder/internal/models/dtos"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

const (
	minNameLength  = 2
	maxNameLength  = 16
	maxGuildLength = 20
)

// CharacterService manages rosters, characters and their engravings.
type CharacterService struct {
	db     *gorm.DB
	limits config.CharacterLimits
}

func NewCharacterService(db *gorm.DB, limits config.CharacterLimits) *CharacterService {
	return &CharacterService{db: db, limits: limits}
}

func (svc *CharacterService) validate(op string, req *dtos.CharacterReq) error {
	req.Name = strings.TrimSpace(req.Name)
	req.GuildName = strings.TrimSpace(req.GuildName)
	req.StrongholdName = strings.TrimSpace(req.StrongholdName)

	if !constants.Job(req.Job).Valid() {
		return invalid(op, "unknown job %q", req.Job)
	}
	if n := utf8.RuneCountInString(req.Name); n < minNameLength || n > maxNameLength {
		return invalid(op, "name must be %d-%d characters", minNameLength, maxNameLength)
	}
	if utf8.RuneCountInString(req.GuildName) > maxGuildLength {
		return invalid(op, "guild name longer than %d", maxGuildLength)
	}
	if utf8.RuneCountInString(req.StrongholdName) > maxGuildLength {
		return invalid(op, "stronghold name longer than %d", maxGuildLength)
	}
	if req.Level < svc.limits.MinLevel {
		return invalid(op, "level below %d", svc.limits.MinLevel)
	}
	if req.ItemLevel < svc.limits.MinItemLevel {
		return invalid(op, "item level below %.2f", svc.limits.MinItemLevel)
	}
	if req.RosterLevel < svc.limits.MinRosterLevel {
		return invalid(op, "roster level below %d", svc.limits.MinRosterLevel)
	}
	for _, stat := range []int{req.Crit, req.Specialization, req.Swiftness, req.Domination, req.Endurance, req.Expertise} {
		if stat < svc.limits.MinStat {
			return invalid(op, "combat stat below %d", svc.limits.MinStat)
		}
	}
	return nil
}

// Save creates a character (characterID nil) or updates an existing one. Adding a
// character whose name already exists in the roster updates that row instead.
func (svc *CharacterService) Save(ctx context.Context, userID uint, characterID *uint, req dtos.CharacterReq) (*gormModels.Character, error) {
	const op = "character.save"

	if err := svc.validate(op, &req); err != nil {
		return nil, err
	}

	var saved gormModels.Character
	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing *gormModels.Character
		if characterID != nil {
			var c gormModels.Character
			if err := tx.Preload("Roster").First(&c, *characterID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound(op, "character %d", *characterID)
				}
				return dbError(op, err)
			}
			if c.Roster.UserID != userID {
				return forbidden(op, "character %d not owned by user %d", c.ID, userID)
			}
			if req.ServerID == 0 {
				req.ServerID = c.Roster.ServerID
			}
			if req.ServerID != c.Roster.ServerID {
				return invalid(op, "character cannot move servers")
			}
			existing = &c
		}

		var server gormModels.Server
		if err := tx.First(&server, req.ServerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(op, "server %d", req.ServerID)
			}
			return dbError(op, err)
		}

		roster, err := upsertRoster(tx, userID, server.ID, req.RosterLevel, req.StrongholdName)
		if err != nil {
			return dbError(op, err)
		}

		var guildID *uint
		if req.GuildName != "" {
			guild := gormModels.Guild{Name: req.GuildName, ServerID: server.ID}
			if err := tx.Where("name = ? AND server_id = ?", guild.Name, guild.ServerID).FirstOrCreate(&guild).Error; err != nil {
				return dbError(op, err)
			}
			guildID = &guild.ID
		}

		var sameName gormModels.Character
		err = tx.Where("roster_id = ? AND name = ?", roster.ID, req.Name).First(&sameName).Error
		switch {
		case err == nil:
			if existing != nil && sameName.ID != existing.ID {
				return conflict(op, "name %q already used in roster %d", req.Name, roster.ID)
			}
			if existing == nil {
				existing = &sameName
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return dbError(op, err)
		}

		character := gormModels.Character{}
		if existing != nil {
			character = *existing
			character.Roster = gormModels.Roster{}
		}
		character.RosterID = roster.ID
		character.GuildID = guildID
		character.Name = req.Name
		character.Job = constants.Job(req.Job)
		character.Level = req.Level
		character.ItemLevel = req.ItemLevel
		character.Crit = req.Crit
		character.Specialization = req.Specialization
		character.Swiftness = req.Swiftness
		character.Domination = req.Domination
		character.Endurance = req.Endurance
		character.Expertise = req.Expertise
		character.IsPrimary = req.IsPrimary

		if err := tx.Omit(clause.Associations).Save(&character).Error; err != nil {
			return dbError(op, err)
		}

		if character.IsPrimary {
			if err := tx.Model(&gormModels.Character{}).
				Where("roster_id = ? AND id <> ? AND is_primary = ?", roster.ID, character.ID, true).
				Update("is_primary", false).Error; err != nil {
				return dbError(op, err)
			}
		}

		if err := svc.saveEngravings(tx, character.ID, req.Engravings); err != nil {
			return dbError(op, err)
		}

		saved = character
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info("Character saved", "user_id", userID, "character_id", saved.ID, "roster_id", saved.RosterID)
	return svc.Get(ctx, saved.ID)
}

func upsertRoster(tx *gorm.DB, userID, serverID uint, level int, stronghold string) (*gormModels.Roster, error) {
	roster := gormModels.Roster{UserID: userID, ServerID: serverID}
	if err := tx.Where("user_id = ? AND server_id = ?", userID, serverID).
		Attrs(gormModels.Roster{Level: level}).
		FirstOrCreate(&roster).Error; err != nil {
		return nil, err
	}

	updates := map[string]any{"level": level}
	if stronghold != "" {
		updates["stronghold_name"] = stronghold
	}
	if err := tx.Model(&roster).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &roster, nil
}

// saveEngravings upserts slots by sequential index. Entries with an empty id or a
// non-positive level are skipped without consuming an index, so later entries
// shift down; slots past the last valid index are dropped.
func (svc *CharacterService) saveEngravings(tx *gorm.DB, characterID uint, engravings []dtos.EngravingReq) error {
	index := 0
	for _, e := range engravings {
		if index >= svc.limits.MaxEngravingSlots {
			break
		}
		if strings.TrimSpace(e.ID) == "" || e.Level <= 0 {
			continue
		}
		index++

		slot := gormModels.EngravingSlot{
			CharacterID: characterID,
			Index:       index,
			EngravingID: strings.TrimSpace(e.ID),
			Level:       e.Level,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "character_id"}, {Name: "sort_index"}},
			DoUpdates: clause.AssignmentColumns([]string{"engraving_id", "level"}),
		}).Create(&slot).Error; err != nil {
			return err
		}
	}

	return tx.Where("character_id = ? AND sort_index > ?", characterID, index).
		Delete(&gormModels.EngravingSlot{}).Error
}

// Get loads a character with its roster, guild and engravings.
func (svc *CharacterService) Get(ctx context.Context, characterID uint) (*gormModels.Character, error) {
	var c gormModels.Character
	err := svc.db.WithContext(ctx).
		Preload("Roster").
		Preload("Guild").
		Preload("Engravings", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		First(&c, characterID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("character.get", "character %d", characterID)
		}
		return nil, dbError("character.get", err)
	}
	return &c, nil
}

// ListByUser returns every character across the user's rosters.
func (svc *CharacterService) ListByUser(ctx context.Context, userID uint) ([]gormModels.Character, error) {
	var characters []gormModels.Character
	err := svc.db.WithContext(ctx).
		Joins("JOIN rosters ON rosters.id = characters.roster_id").
		Where("rosters.user_id = ?", userID).
		Preload("Roster").
		Preload("Guild").
		Preload("Engravings", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		Order("characters.item_level DESC, characters.id ASC").
		Find(&characters).Error
	if err != nil {
		return nil, dbError("character.list", err)
	}
	return characters, nil
}

// Delete removes a character and everything that references it. Posts the
// character authored are removed outright; seats it held elsewhere are vacated
// so those posts keep their slot count.
func (svc *CharacterService) Delete(ctx context.Context, userID, characterID uint) error {
	const op = "character.delete"

	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c gormModels.Character
		if err := tx.Preload("Roster").First(&c, characterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(op, "character %d", characterID)
			}
			return dbError(op, err)
		}
		if c.Roster.UserID != userID {
			return forbidden(op, "character %d not owned by user %d", characterID, userID)
		}

		var authored []uint
		if err := tx.Model(&gormModels.PartyFindPost{}).
			Where("author_character_id = ?", characterID).
			Pluck("id", &authored).Error; err != nil {
			return dbError(op, err)
		}
		if len(authored) > 0 {
			for _, model := range []any{&gormModels.PartyFindWaitlist{}, &gormModels.PartyFindApplyState{}, &gormModels.PartyFindSlot{}} {
				if err := tx.Where("post_id IN ?", authored).Delete(model).Error; err != nil {
					return dbError(op, err)
				}
			}
			if err := tx.Where("id IN ?", authored).Delete(&gormModels.PartyFindPost{}).Error; err != nil {
				return dbError(op, err)
			}
		}

		var seatedPosts []uint
		if err := tx.Model(&gormModels.PartyFindSlot{}).
			Where("character_id = ?", characterID).
			Distinct().
			Pluck("post_id", &seatedPosts).Error; err != nil {
			return dbError(op, err)
		}
		if len(seatedPosts) > 0 {
			if err := tx.Model(&gormModels.PartyFindSlot{}).
				Where("character_id = ?", characterID).
				Update("character_id", nil).Error; err != nil {
				return dbError(op, err)
			}
			if err := tx.Model(&gormModels.PartyFindPost{}).
				Where("id IN ? AND state = ?", seatedPosts, constants.PostStateFull).
				Update("state", constants.PostStateRerecruiting).Error; err != nil {
				return dbError(op, err)
			}
		}

		for _, model := range []any{&gormModels.PartyFindApplyState{}, &gormModels.PartyFindWaitlist{}, &gormModels.EngravingSlot{}} {
			if err := tx.Where("character_id = ?", characterID).Delete(model).Error; err != nil {
				return dbError(op, err)
			}
		}

		if err := tx.Delete(&gormModels.Character{}, characterID).Error; err != nil {
			return dbError(op, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Info("Character deleted", "user_id", userID, "character_id", characterID)
	return nil
}
