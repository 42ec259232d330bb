package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lostark-hub/partyfinder/internal/constants"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
	"lostark-hub/partyfinder/internal/services"
)

func TestPostDetailViewMapsSlotIndexes(t *testing.T) {
	slotID := uint(12)
	bard := gormModels.Character{ID: 7, Name: "Singer", Job: constants.JobBard, Roster: gormModels.Roster{ServerID: 3}}

	view := postDetailView(&services.PostDetail{
		Post: gormModels.PartyFindPost{
			ID:          1,
			ContentType: constants.ContentAbyssRaid,
			State:       constants.PostStateRecruiting,
			Stage:       gormModels.ContentStage{Name: "Gate 1"},
			Slots: []gormModels.PartyFindSlot{
				{ID: 11, Index: 1, JobType: constants.JobTypeAny},
				{ID: slotID, Index: 2, JobType: constants.JobTypeAny, CharacterID: &bard.ID, Character: &bard},
			},
		},
		ApplyStates: []gormModels.PartyFindApplyState{
			{CharacterID: 7, SlotID: &slotID, State: constants.ApplyStateAccepted},
			{CharacterID: 8, State: constants.ApplyStateWaiting},
		},
	})

	assert.Equal(t, "Gate 1", view.StageName)
	require.Len(t, view.Slots, 2)
	assert.Nil(t, view.Slots[0].Character)
	require.NotNil(t, view.Slots[1].Character)
	assert.Equal(t, "SUPPORT", view.Slots[1].Character.Role)
	assert.Equal(t, uint(3), view.Slots[1].Character.ServerID)

	require.Len(t, view.ApplyStates, 2)
	require.NotNil(t, view.ApplyStates[0].SlotIndex)
	assert.Equal(t, 2, *view.ApplyStates[0].SlotIndex)
	assert.Nil(t, view.ApplyStates[1].SlotIndex)
	assert.NotNil(t, view.Waitlist)
}

func TestCatalogViewGroupSizes(t *testing.T) {
	four := 4
	view := catalogView([]gormModels.Content{{
		Type: constants.ContentAbyssRaid,
		Name: "Argos",
		Tabs: []gormModels.ContentTab{{
			Name:   "Phase",
			Stages: []gormModels.ContentStage{{Name: "P1"}, {Name: "Small", GroupSize: &four}},
		}},
	}})

	require.Len(t, view, 1)
	stages := view[0].Tabs[0].Stages
	assert.Equal(t, 8, stages[0].GroupSize)
	assert.Equal(t, 4, stages[1].GroupSize)
}
