package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/logging"
	"lostark-hub/partyfinder/internal/models/dtos"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

const maxTitleLength = 60

// StageLookup resolves a content stage together with its tab and content.
type StageLookup interface {
	Stage(ctx context.Context, stageID uint) (*gormModels.ContentStage, error)
}

// ContentRef identifies what a post is for: one stage of one content catalog.
type ContentRef struct {
	Type    constants.ContentType
	StageID uint
}

func (r ContentRef) scope(tx *gorm.DB) *gorm.DB {
	return tx.Where("content_type = ? AND stage_id = ?", r.Type, r.StageID)
}

// PostDetail is a post with its slots, waitlist and apply states loaded.
type PostDetail struct {
	Post        gormModels.PartyFindPost
	Waitlist    []gormModels.Character
	ApplyStates []gormModels.PartyFindApplyState
}

// PartyFindService runs the post lifecycle. Every multi-step transition happens in
// one transaction holding a row lock on the post.
type PartyFindService struct {
	db     *gorm.DB
	stages StageLookup
	now    func() time.Time
}

func NewPartyFindService(db *gorm.DB, stages StageLookup) *PartyFindService {
	return &PartyFindService{db: db, stages: stages, now: time.Now}
}

// GroupSize is the number of slots a post for this stage gets.
func GroupSize(contentType constants.ContentType, stage *gormModels.ContentStage) int {
	if stage != nil && stage.GroupSize != nil && *stage.GroupSize > 0 {
		return *stage.GroupSize
	}
	return contentType.DefaultGroupSize()
}

// BuildSlots lays out slots 1..size. With role enforcement every 4th slot is a
// support seat and the rest are DPS; otherwise every slot takes any role.
func BuildSlots(postID uint, size int, roleEnforced bool) []gormModels.PartyFindSlot {
	slots := make([]gormModels.PartyFindSlot, 0, size)
	for i := 1; i <= size; i++ {
		jobType := constants.JobTypeAny
		if roleEnforced {
			jobType = constants.JobTypeDPS
			if i%4 == 0 {
				jobType = constants.JobTypeSupport
			}
		}
		slots = append(slots, gormModels.PartyFindSlot{PostID: postID, Index: i, JobType: jobType})
	}
	return slots
}

func firstOpenSlot(slots []gormModels.PartyFindSlot, role constants.JobType) *gormModels.PartyFindSlot {
	for i := range slots {
		if slots[i].CharacterID == nil && slots[i].JobType.Accepts(role) {
			return &slots[i]
		}
	}
	return nil
}

// lastOpenSlot is where the author sits, leaving the low indexes to applicants.
func lastOpenSlot(slots []gormModels.PartyFindSlot, role constants.JobType) *gormModels.PartyFindSlot {
	for i := len(slots) - 1; i >= 0; i-- {
		if slots[i].CharacterID == nil && slots[i].JobType.Accepts(role) {
			return &slots[i]
		}
	}
	return nil
}

func hasCompatibleSlot(slots []gormModels.PartyFindSlot, role constants.JobType) bool {
	for _, s := range slots {
		if s.JobType.Accepts(role) {
			return true
		}
	}
	return false
}

func slotOf(slots []gormModels.PartyFindSlot, characterID uint) *gormModels.PartyFindSlot {
	for i := range slots {
		if slots[i].CharacterID != nil && *slots[i].CharacterID == characterID {
			return &slots[i]
		}
	}
	return nil
}

func validateTitle(op, title string) error {
	if title == "" {
		return invalid(op, "title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return invalid(op, "title longer than %d", maxTitleLength)
	}
	return nil
}

// Create opens a post, lays out its slots and seats the author's character in
// the highest-index slot compatible with its job.
func (svc *PartyFindService) Create(ctx context.Context, userID uint, req dtos.PartyFindPostReq) (*PostDetail, error) {
	const op = "party_find.create"

	contentType, ok := constants.ParseContentType(req.ContentType)
	if !ok {
		return nil, invalid(op, "unknown content type %q", req.ContentType)
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validateTitle(op, req.Title); err != nil {
		return nil, err
	}
	if !req.StartTime.After(svc.now()) {
		return nil, invalid(op, "start time must be in the future")
	}

	stage, err := svc.stages.Stage(ctx, req.StageID)
	if err != nil {
		return nil, err
	}
	if stage.Tab.Content.Type != contentType {
		return nil, invalid(op, "stage %d is not %s content", stage.ID, contentType)
	}

	var postID uint
	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := loadCharacter(tx, op, req.CharacterID)
		if err != nil {
			return err
		}
		if author.Roster.UserID != userID {
			return forbidden(op, "character %d not owned by user %d", author.ID, userID)
		}

		post := gormModels.PartyFindPost{
			ContentType:       contentType,
			StageID:           stage.ID,
			State:             constants.PostStateRecruiting,
			Title:             req.Title,
			Description:       strings.TrimSpace(req.Description),
			StartTime:         req.StartTime.UTC(),
			IsRecurring:       req.IsRecurring,
			RoleEnforced:      req.RoleEnforced,
			AuthorUserID:      userID,
			AuthorCharacterID: author.ID,
			ServerID:          author.Roster.ServerID,
		}
		if err := seatNewPost(tx, op, &post, GroupSize(contentType, stage), author); err != nil {
			return err
		}
		postID = post.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info("Party find post created", "user_id", userID, "post_id", postID, "stage_id", stage.ID)
	return svc.Get(ctx, postID)
}

// seatNewPost inserts post, its slots and the author's accepted apply state.
func seatNewPost(tx *gorm.DB, op string, post *gormModels.PartyFindPost, groupSize int, author *gormModels.Character) error {
	if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
		return dbError(op, err)
	}

	slots := BuildSlots(post.ID, groupSize, post.RoleEnforced)
	if err := tx.Omit(clause.Associations).Create(&slots).Error; err != nil {
		return dbError(op, err)
	}

	// The author takes the last compatible slot so approved applicants fill from
	// slot 1 upward; the first approval lands in slot 1.
	seat := lastOpenSlot(slots, constants.RoleForJob(author.Job))
	if seat == nil {
		return conflict(op, "no slot fits job %s", author.Job)
	}
	if err := tx.Model(seat).Update("character_id", author.ID).Error; err != nil {
		return dbError(op, err)
	}
	seat.CharacterID = &author.ID

	accepted := gormModels.PartyFindApplyState{
		PostID:      post.ID,
		CharacterID: author.ID,
		SlotID:      &seat.ID,
		State:       constants.ApplyStateAccepted,
	}
	if err := tx.Create(&accepted).Error; err != nil {
		return dbError(op, err)
	}

	post.Slots = slots
	return refreshFullness(tx, op, post)
}

func loadCharacter(tx *gorm.DB, op string, characterID uint) (*gormModels.Character, error) {
	var c gormModels.Character
	if err := tx.Preload("Roster.Server").First(&c, characterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(op, "character %d", characterID)
		}
		return nil, dbError(op, err)
	}
	return &c, nil
}

func lockPost(tx *gorm.DB, op string, postID uint) (*gormModels.PartyFindPost, error) {
	var post gormModels.PartyFindPost
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Server").
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(op, "post %d", postID)
		}
		return nil, dbError(op, err)
	}
	return &post, nil
}

// expirePost moves the post and all of its apply states to EXPIRED.
func expirePost(tx *gorm.DB, op string, post *gormModels.PartyFindPost) error {
	if err := tx.Model(post).Update("state", constants.PostStateExpired).Error; err != nil {
		return dbError(op, err)
	}
	if err := tx.Model(&gormModels.PartyFindApplyState{}).
		Where("post_id = ?", post.ID).
		Update("state", constants.ApplyStateExpired).Error; err != nil {
		return dbError(op, err)
	}
	post.State = constants.PostStateExpired
	return nil
}

// refreshFullness derives FULL/RERECRUITING from slot occupancy.
func refreshFullness(tx *gorm.DB, op string, post *gormModels.PartyFindPost) error {
	open := 0
	for _, s := range post.Slots {
		if s.CharacterID == nil {
			open++
		}
	}

	next := post.State
	switch {
	case open == 0 && (post.State == constants.PostStateRecruiting || post.State == constants.PostStateRerecruiting):
		next = constants.PostStateFull
	case open > 0 && post.State == constants.PostStateFull:
		next = constants.PostStateRerecruiting
	}
	if next == post.State {
		return nil
	}
	if err := tx.Model(post).Update("state", next).Error; err != nil {
		return dbError(op, err)
	}
	post.State = next
	return nil
}

// mutation runs authorize, then lazy expiry, then apply, all under the post lock.
// When the post turns out to have started, the expiry is committed and ErrExpired
// returned without running apply.
type mutation struct {
	op        string
	authorize func(tx *gorm.DB, post *gormModels.PartyFindPost) error
	apply     func(tx *gorm.DB, post *gormModels.PartyFindPost) error
}

func (svc *PartyFindService) run(ctx context.Context, postID uint, m mutation) error {
	expired := false
	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, m.op, postID)
		if err != nil {
			return err
		}
		if m.authorize != nil {
			if err := m.authorize(tx, post); err != nil {
				return err
			}
		}

		switch post.State {
		case constants.PostStateDeleted:
			return conflict(m.op, "post %d is deleted", post.ID)
		case constants.PostStateExpired:
			return &ServiceError{Kind: KindExpired, Op: m.op}
		}
		if !svc.now().Before(post.StartTime) {
			expired = true
			return expirePost(tx, m.op, post)
		}
		return m.apply(tx, post)
	})
	if err != nil {
		return err
	}
	if expired {
		logging.Info("Party find post expired lazily", "post_id", postID, "op", m.op)
		return &ServiceError{Kind: KindExpired, Op: m.op}
	}
	return nil
}

func requireAuthor(op string, userID uint) func(*gorm.DB, *gormModels.PartyFindPost) error {
	return func(_ *gorm.DB, post *gormModels.PartyFindPost) error {
		if post.AuthorUserID != userID {
			return forbidden(op, "user %d is not the author of post %d", userID, post.ID)
		}
		return nil
	}
}

func onWaitlist(tx *gorm.DB, postID, characterID uint) (bool, error) {
	var n int64
	err := tx.Model(&gormModels.PartyFindWaitlist{}).
		Where("post_id = ? AND character_id = ?", postID, characterID).
		Count(&n).Error
	return n > 0, err
}

// setApplyState updates the (post, character) apply row, creating it if missing.
func setApplyState(tx *gorm.DB, postID, characterID uint, slotID *uint, state constants.ApplyState) error {
	var row gormModels.PartyFindApplyState
	err := tx.Where("post_id = ? AND character_id = ?", postID, characterID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = gormModels.PartyFindApplyState{PostID: postID, CharacterID: characterID, SlotID: slotID, State: state}
		return tx.Create(&row).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&row).Select("slot_id", "state").Updates(map[string]any{"slot_id": slotID, "state": state}).Error
}

// Apply puts a character on the post's waitlist.
func (svc *PartyFindService) Apply(ctx context.Context, userID, postID, characterID uint) error {
	const op = "party_find.apply"

	var character *gormModels.Character
	err := svc.run(ctx, postID, mutation{
		op: op,
		authorize: func(tx *gorm.DB, post *gormModels.PartyFindPost) error {
			c, err := loadCharacter(tx, op, characterID)
			if err != nil {
				return err
			}
			if c.Roster.UserID != userID {
				return forbidden(op, "character %d not owned by user %d", characterID, userID)
			}
			if post.AuthorUserID == userID {
				return forbidden(op, "author cannot apply to own post %d", post.ID)
			}
			character = c
			return nil
		},
		apply: func(tx *gorm.DB, post *gormModels.PartyFindPost) error {
			if slotOf(post.Slots, characterID) != nil {
				return conflict(op, "character %d already seated", characterID)
			}
			waiting, err := onWaitlist(tx, post.ID, characterID)
			if err != nil {
				return dbError(op, err)
			}
			if waiting {
				return conflict(op, "character %d already on waitlist", characterID)
			}
			if character.Roster.Server.RegionID != post.Server.RegionID {
				return invalid(op, "character region %d differs from post region %d", character.Roster.Server.RegionID, post.Server.RegionID)
			}
			if !hasCompatibleSlot(post.Slots, constants.RoleForJob(character.Job)) {
				return invalid(op, "no slot accepts job %s", character.Job)
			}

			entry := gormModels.PartyFindWaitlist{PostID: post.ID, CharacterID: characterID}
			if err := tx.Create(&entry).Error; err != nil {
				return dbError(op, err)
			}
			if err := setApplyState(tx, post.ID, characterID, nil, constants.ApplyStateWaiting); err != nil {
				return dbError(op, err)
			}
			return nil
		},
	})
	if err == nil {
		logging.Info("Character applied", "post_id", postID, "character_id", characterID)
	}
	return err
}

// Approve seats a waitlisted character in the lowest-index open slot that fits
// its job, then drops it from the waitlists of equivalent posts in the same
// maintenance week.
func (svc *PartyFindService) Approve(ctx context.Context, userID, postID, characterID uint) error {
	const op = "party_find.approve"

	err := svc.run(ctx, postID, mutation{
		op:        op,
		authorize: requireAuthor(op, userID),
		apply: func(tx *gorm.DB, post *gormModels.PartyFindPost) error {
			waiting, err := onWaitlist(tx, post.ID, characterID)
			if err != nil {
				return dbError(op, err)
			}
			if !waiting {
				return notFound(op, "character %d not on waitlist of post %d", characterID, post.ID)
			}
			character, err := loadCharacter(tx, op, characterID)
			if err != nil {
				return err
			}

			seat := firstOpenSlot(post.Slots, constants.RoleForJob(character.Job))
			if seat == nil {
				return conflict(op, "no open slot fits job %s", character.Job)
			}
			if err := tx.Model(seat).Update("character_id", characterID).Error; err != nil {
				return dbError(op, err)
			}
			seat.CharacterID = &character.ID

			if err := tx.Where("post_id = ? AND character_id = ?", post.ID, characterID).
				Delete(&gormModels.PartyFindWaitlist{}).Error; err != nil {
				return dbError(op, err)
			}
			if err := setApplyState(tx, post.ID, characterID, &seat.ID, constants.ApplyStateAccepted); err != nil {
				return dbError(op, err)
			}
			if err := purgeEquivalentWaitlists(tx, op, post, characterID); err != nil {
				return err
			}
			return refreshFullness(tx, op, post)
		},
	})
	if err == nil {
		logging.Info("Application approved", "post_id", postID, "character_id", characterID)
	}
	return err
}

// purgeEquivalentWaitlists withdraws the character's pending applications to
// other live posts for the same stage starting in the same maintenance window.
func purgeEquivalentWaitlists(tx *gorm.DB, op string, post *gormModels.PartyFindPost, characterID uint) error {
	start, end := MaintenanceWindow(post.StartTime)
	ref := ContentRef{Type: post.ContentType, StageID: post.StageID}

	var others []uint
	err := ref.scope(tx.Model(&gormModels.PartyFindPost{})).
		Where("id <> ? AND start_time >= ? AND start_time < ?", post.ID, start, end).
		Where("state IN ?", []constants.PostState{constants.PostStateRecruiting, constants.PostStateRerecruiting, constants.PostStateFull}).
		Pluck("id", &others).Error
	if err != nil {
		return dbError(op, err)
	}
	if len(others) == 0 {
		return nil
	}

	if err := tx.Where("post_id IN ? AND character_id = ?", others, characterID).
		Delete(&gormModels.PartyFindWaitlist{}).Error; err != nil {
		return dbError(op, err)
	}
	if err := tx.Model(&gormModels.PartyFindApplyState{}).
		Where("post_id IN ? AND character_id = ? AND state = ?", others, characterID, constants.ApplyStateWaiting).
		Update("state", constants.ApplyStateWithdrawn).Error; err != nil {
		return dbError(op, err)
	}
	return nil
}

// Deny removes a character from the waitlist.
func (svc *PartyFindService) Deny(ctx context.Context, userID, postID, characterID uint) error {
	const op = "party_find.deny"

	return svc.run(ctx, postID, mutation{
		op:        op,
		authorize: requireAuthor(op, userID),
		apply: func(tx *gorm.DB, post *gormModels.PartyFindPost) error {
			res := tx.Where("post_id = ? AND character_id = ?", post.ID, characterID).
				Delete(&gormModels.PartyFindWaitlist{})
			if res.Error != nil {
				return dbError(op, res.Error)
			}
			if res.RowsAffected == 0 {
				return notFound(op, "character %d not on waitlist of post %d", characterID, post.ID)
			}
			if err := tx.Model(&gormModels.PartyFindApplyState{}).
				Where("post_id = ? AND character_id = ? AND state = ?", post.ID, characterID, constants.ApplyStateWaiting).
				Update("state", constants.ApplyStateRejected).Error; err != nil {
				return dbError(op, err)
			}
			return nil
		},
	})
}

// Kick vacates the slot a non-author character holds. The apply state row is
// left as is.
func (svc *PartyFindService) Kick(ctx context.Context, userID, postID, characterID uint) error {
	const op = "party_find.kick"

	return svc.run(ctx, postID, mutation{
		op:        op,
		authorize: requireAuthor(op, userID),
		apply: func(tx *gorm.DB, post *gormModels.PartyFindPost) error {
			if characterID == post.AuthorCharacterID {
				return forbidden(op, "cannot kick the author from post %d", post.ID)
			}
			seat := slotOf(post.Slots, characterID)
			if seat == nil {
				return notFound(op, "character %d not seated in post %d", characterID, post.ID)
			}
			if err := tx.Model(seat).Update("character_id", nil).Error; err != nil {
				return dbError(op, err)
			}
			seat.CharacterID = nil
			return refreshFullness(tx, op, post)
		},
	})
}

// Leave withdraws a character from a post, freeing its slot if it held one.
func (svc *PartyFindService) Leave(ctx context.Context, userID, postID, characterID uint) error {
	const op = "party_find.leave"

	return svc.run(ctx, postID, mutation{
		op: op,
		authorize: func(tx *gorm.DB, post *gormModels.PartyFindPost) error {
			c, err := loadCharacter(tx, op, characterID)
			if err != nil {
				return err
			}
			if c.Roster.UserID != userID {
				return forbidden(op, "character %d not owned by user %d", characterID, userID)
			}
			if post.AuthorUserID == userID || post.AuthorCharacterID == characterID {
				return forbidden(op, "author cannot leave post %d", post.ID)
			}
			return nil
		},
		apply: func(tx *gorm.DB, post *gormModels.PartyFindPost) error {
			var row gormModels.PartyFindApplyState
			err := tx.Where("post_id = ? AND character_id = ?", post.ID, characterID).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(op, "character %d has not applied to post %d", characterID, post.ID)
			}
			if err != nil {
				return dbError(op, err)
			}

			if err := tx.Model(&row).Select("slot_id", "state").
				Updates(map[string]any{"slot_id": nil, "state": constants.ApplyStateWithdrawn}).Error; err != nil {
				return dbError(op, err)
			}
			if err := tx.Where("post_id = ? AND character_id = ?", post.ID, characterID).
				Delete(&gormModels.PartyFindWaitlist{}).Error; err != nil {
				return dbError(op, err)
			}

			seat := slotOf(post.Slots, characterID)
			if seat == nil {
				return nil
			}
			if err := tx.Model(seat).Update("character_id", nil).Error; err != nil {
				return dbError(op, err)
			}
			seat.CharacterID = nil
			return refreshFullness(tx, op, post)
		},
	})
}

// Edit changes the author-editable fields of a live post.
func (svc *PartyFindService) Edit(ctx context.Context, userID, postID uint, req dtos.PartyFindPostEditReq) (*PostDetail, error) {
	const op = "party_find.edit"

	err := svc.run(ctx, postID, mutation{
		op:        op,
		authorize: requireAuthor(op, userID),
		apply: func(tx *gorm.DB, post *gormModels.PartyFindPost) error {
			updates := map[string]any{}
			if req.Title != nil {
				title := strings.TrimSpace(*req.Title)
				if err := validateTitle(op, title); err != nil {
					return err
				}
				updates["title"] = title
			}
			if req.Description != nil {
				updates["description"] = strings.TrimSpace(*req.Description)
			}
			if req.StartTime != nil {
				if !req.StartTime.After(svc.now()) {
					return invalid(op, "start time must be in the future")
				}
				updates["start_time"] = req.StartTime.UTC()
			}
			if req.IsRecurring != nil {
				updates["is_recurring"] = *req.IsRecurring
			}
			if len(updates) == 0 {
				return nil
			}
			if err := tx.Model(post).Updates(updates).Error; err != nil {
				return dbError(op, err)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return svc.Get(ctx, postID)
}

// Delete soft-deletes a post and all of its apply states. It is the only way into
// DELETED and works on expired posts too.
func (svc *PartyFindService) Delete(ctx context.Context, userID, postID uint) error {
	const op = "party_find.delete"

	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, op, postID)
		if err != nil {
			return err
		}
		if post.AuthorUserID != userID {
			return forbidden(op, "user %d is not the author of post %d", userID, post.ID)
		}
		if post.State == constants.PostStateDeleted {
			return conflict(op, "post %d already deleted", post.ID)
		}
		if err := tx.Model(post).Update("state", constants.PostStateDeleted).Error; err != nil {
			return dbError(op, err)
		}
		if err := tx.Model(&gormModels.PartyFindApplyState{}).
			Where("post_id = ?", post.ID).
			Update("state", constants.ApplyStateDeleted).Error; err != nil {
			return dbError(op, err)
		}
		return nil
	})
	if err == nil {
		logging.Info("Party find post deleted", "user_id", userID, "post_id", postID)
	}
	return err
}

// Get loads a post with everything the detail view needs.
func (svc *PartyFindService) Get(ctx context.Context, postID uint) (*PostDetail, error) {
	const op = "party_find.get"
	db := svc.db.WithContext(ctx)

	var detail PostDetail
	err := db.
		Preload("Stage.Tab.Content").
		Preload("Server").
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		Preload("Slots.Character.Roster").
		First(&detail.Post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(op, "post %d", postID)
		}
		return nil, dbError(op, err)
	}

	if err := db.
		Preload("Roster").
		Preload("Guild").
		Preload("Engravings", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		Joins("JOIN party_find_waitlists w ON w.character_id = characters.id").
		Where("w.post_id = ?", postID).
		Order("w.created_at ASC, characters.id ASC").
		Find(&detail.Waitlist).Error; err != nil {
		return nil, dbError(op, err)
	}

	if err := db.Where("post_id = ?", postID).
		Order("id ASC").
		Find(&detail.ApplyStates).Error; err != nil {
		return nil, dbError(op, err)
	}

	// A started post reads as expired even before the sweep commits it.
	if detail.Post.State.Live() && !svc.now().Before(detail.Post.StartTime) {
		detail.Post.State = constants.PostStateExpired
		for i := range detail.ApplyStates {
			detail.ApplyStates[i].State = constants.ApplyStateExpired
		}
	}
	return &detail, nil
}

// ExpireStarted expires every live post whose start time has passed and reposts
// recurring ones into the following week. Returns how many posts expired.
func (svc *PartyFindService) ExpireStarted(ctx context.Context) (int, error) {
	const op = "party_find.expire_started"

	var due []uint
	err := svc.db.WithContext(ctx).Model(&gormModels.PartyFindPost{}).
		Where("state IN ? AND start_time <= ?",
			[]constants.PostState{constants.PostStateRecruiting, constants.PostStateRerecruiting, constants.PostStateFull},
			svc.now().UTC()).
		Order("id ASC").
		Pluck("id", &due).Error
	if err != nil {
		return 0, dbError(op, err)
	}

	expired := 0
	for _, id := range due {
		changed := false
		err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			post, err := lockPost(tx, op, id)
			if err != nil {
				return err
			}
			if !post.State.Live() {
				return nil
			}
			if err := expirePost(tx, op, post); err != nil {
				return err
			}
			changed = true
			if post.IsRecurring {
				return svc.repost(tx, op, post)
			}
			return nil
		})
		if err != nil {
			logging.Error("Failed to expire post", "post_id", id, "error", err.Error())
			continue
		}
		if changed {
			expired++
		}
	}
	return expired, nil
}

// repost opens next week's instance of a recurring post with the author seated.
func (svc *PartyFindService) repost(tx *gorm.DB, op string, prev *gormModels.PartyFindPost) error {
	var successors int64
	if err := tx.Model(&gormModels.PartyFindPost{}).
		Where("recurred_from_id = ?", prev.ID).
		Count(&successors).Error; err != nil {
		return dbError(op, err)
	}
	if successors > 0 {
		return nil
	}

	author, err := loadCharacter(tx, op, prev.AuthorCharacterID)
	if err != nil {
		return err
	}

	start := prev.StartTime
	now := svc.now()
	for !start.After(now) {
		start = start.AddDate(0, 0, 7)
	}

	prevID := prev.ID
	next := gormModels.PartyFindPost{
		ContentType:       prev.ContentType,
		StageID:           prev.StageID,
		State:             constants.PostStateRecruiting,
		Title:             prev.Title,
		Description:       prev.Description,
		StartTime:         start,
		IsRecurring:       true,
		RoleEnforced:      prev.RoleEnforced,
		AuthorUserID:      prev.AuthorUserID,
		AuthorCharacterID: prev.AuthorCharacterID,
		ServerID:          prev.ServerID,
		RecurredFromID:    &prevID,
	}
	if err := seatNewPost(tx, op, &next, len(prev.Slots), author); err != nil {
		return err
	}
	logging.Info("Recurring post reposted", "from_post_id", prev.ID, "post_id", next.ID, "start_time", start)
	return nil
}
