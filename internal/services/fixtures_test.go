package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/config"
	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/db/testdb"
	"lostark-hub/partyfinder/internal/models/dtos"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
	"lostark-hub/partyfinder/internal/seed"
)

type fixture struct {
	db      *gorm.DB
	chars   *CharacterService
	posts   *PartyFindService
	catalog *CatalogService
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := testdb.New(t)
	_, err := seed.NewLoader(gdb).SeedAll(context.Background())
	require.NoError(t, err)

	f := &fixture{
		db:      gdb,
		chars:   NewCharacterService(gdb, config.DefaultLimits()),
		catalog: NewCatalogService(gdb, common.NewCacheService(time.Minute, time.Minute)),
		now:     time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
	}
	f.posts = NewPartyFindService(gdb, f.catalog)
	f.posts.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) user(t *testing.T, discordID string) uint {
	t.Helper()
	u := gormModels.User{DiscordID: discordID, Username: "user-" + discordID, Language: "en"}
	require.NoError(t, f.db.Create(&u).Error)
	return u.ID
}

func (f *fixture) server(t *testing.T, name string) gormModels.Server {
	t.Helper()
	var s gormModels.Server
	require.NoError(t, f.db.Where("name = ?", name).First(&s).Error)
	return s
}

func (f *fixture) characterReq(t *testing.T, serverName, name string, job constants.Job) dtos.CharacterReq {
	t.Helper()
	return dtos.CharacterReq{
		ServerID:    f.server(t, serverName).ID,
		RosterLevel: 150,
		Name:        name,
		Job:         string(job),
		Level:       60,
		ItemLevel:   1460,
		Crit:        600,
		Swiftness:   1700,
	}
}

func (f *fixture) character(t *testing.T, userID uint, serverName, name string, job constants.Job) *gormModels.Character {
	t.Helper()
	c, err := f.chars.Save(context.Background(), userID, nil, f.characterReq(t, serverName, name, job))
	require.NoError(t, err)
	return c
}

func (f *fixture) stage(t *testing.T, ct constants.ContentType, content string, tabIndex, stageIndex int) gormModels.ContentStage {
	t.Helper()
	var s gormModels.ContentStage
	err := f.db.
		Joins("JOIN content_tabs ON content_tabs.id = content_stages.tab_id").
		Joins("JOIN contents ON contents.id = content_tabs.content_id").
		Where("contents.type = ? AND contents.name = ? AND content_tabs.sort_index = ? AND content_stages.sort_index = ?",
			ct, content, tabIndex, stageIndex).
		First(&s).Error
	require.NoError(t, err)
	return s
}

// post creates a post for a stage starting in two days.
func (f *fixture) post(t *testing.T, userID uint, author *gormModels.Character, stage gormModels.ContentStage, ct constants.ContentType, roleEnforced bool) *PostDetail {
	t.Helper()
	detail, err := f.posts.Create(context.Background(), userID, dtos.PartyFindPostReq{
		CharacterID:  author.ID,
		ContentType:  string(ct),
		StageID:      stage.ID,
		Title:        "weekly clear",
		StartTime:    f.now.Add(48 * time.Hour),
		RoleEnforced: roleEnforced,
	})
	require.NoError(t, err)
	return detail
}

func (f *fixture) reload(t *testing.T, postID uint) *PostDetail {
	t.Helper()
	d, err := f.posts.Get(context.Background(), postID)
	require.NoError(t, err)
	return d
}

func (f *fixture) applyState(t *testing.T, postID, characterID uint) gormModels.PartyFindApplyState {
	t.Helper()
	var row gormModels.PartyFindApplyState
	require.NoError(t, f.db.Where("post_id = ? AND character_id = ?", postID, characterID).First(&row).Error)
	return row
}

func (f *fixture) waitlisted(t *testing.T, postID, characterID uint) bool {
	t.Helper()
	ok, err := onWaitlist(f.db, postID, characterID)
	require.NoError(t, err)
	return ok
}
