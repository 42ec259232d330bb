package api

import (
	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/models/dtos"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
	"lostark-hub/partyfinder/internal/services"
)

func characterView(c gormModels.Character) dtos.CharacterView {
	view := dtos.CharacterView{
		ID:             c.ID,
		RosterID:       c.RosterID,
		ServerID:       c.Roster.ServerID,
		Name:           c.Name,
		Job:            c.Job.String(),
		Role:           constants.RoleForJob(c.Job).String(),
		Level:          c.Level,
		ItemLevel:      c.ItemLevel,
		Crit:           c.Crit,
		Specialization: c.Specialization,
		Swiftness:      c.Swiftness,
		Domination:     c.Domination,
		Endurance:      c.Endurance,
		Expertise:      c.Expertise,
		IsPrimary:      c.IsPrimary,
		Engravings:     make([]dtos.EngravingView, 0, len(c.Engravings)),
	}
	if c.Guild != nil {
		view.GuildName = c.Guild.Name
	}
	for _, e := range c.Engravings {
		view.Engravings = append(view.Engravings, dtos.EngravingView{Index: e.Index, ID: e.EngravingID, Level: e.Level})
	}
	return view
}

func characterViews(cs []gormModels.Character) []dtos.CharacterView {
	out := make([]dtos.CharacterView, 0, len(cs))
	for _, c := range cs {
		out = append(out, characterView(c))
	}
	return out
}

func postDetailView(d *services.PostDetail) dtos.PostDetailView {
	p := d.Post
	view := dtos.PostDetailView{
		ID:                p.ID,
		ContentType:       p.ContentType.String(),
		StageID:           p.StageID,
		StageName:         p.Stage.Name,
		State:             string(p.State),
		Title:             p.Title,
		Description:       p.Description,
		StartTime:         p.StartTime,
		IsRecurring:       p.IsRecurring,
		RoleEnforced:      p.RoleEnforced,
		AuthorCharacterID: p.AuthorCharacterID,
		ServerID:          p.ServerID,
		Slots:             make([]dtos.SlotView, 0, len(p.Slots)),
		Waitlist:          characterViews(d.Waitlist),
		ApplyStates:       make([]dtos.ApplyStateView, 0, len(d.ApplyStates)),
	}

	slotIndex := make(map[uint]int, len(p.Slots))
	for _, s := range p.Slots {
		slotIndex[s.ID] = s.Index
		sv := dtos.SlotView{Index: s.Index, JobType: s.JobType.String()}
		if s.Character != nil {
			cv := characterView(*s.Character)
			sv.Character = &cv
		}
		view.Slots = append(view.Slots, sv)
	}

	for _, a := range d.ApplyStates {
		av := dtos.ApplyStateView{CharacterID: a.CharacterID, State: string(a.State)}
		if a.SlotID != nil {
			if idx, ok := slotIndex[*a.SlotID]; ok {
				av.SlotIndex = &idx
			}
		}
		view.ApplyStates = append(view.ApplyStates, av)
	}
	return view
}

func catalogView(contents []gormModels.Content) []dtos.CatalogContentView {
	out := make([]dtos.CatalogContentView, 0, len(contents))
	for _, c := range contents {
		cv := dtos.CatalogContentView{
			ID:    c.ID,
			Type:  c.Type.String(),
			Index: c.Index,
			Name:  c.Name,
			Tabs:  make([]dtos.CatalogTabView, 0, len(c.Tabs)),
		}
		for _, t := range c.Tabs {
			tv := dtos.CatalogTabView{
				ID:     t.ID,
				Index:  t.Index,
				Name:   t.Name,
				Stages: make([]dtos.CatalogStageView, 0, len(t.Stages)),
			}
			for i := range t.Stages {
				s := t.Stages[i]
				tv.Stages = append(tv.Stages, dtos.CatalogStageView{
					ID:        s.ID,
					Index:     s.Index,
					Name:      s.Name,
					Tier:      s.Tier,
					Level:     s.Level,
					GroupSize: services.GroupSize(c.Type, &s),
				})
			}
			cv.Tabs = append(cv.Tabs, tv)
		}
		out = append(out, cv)
	}
	return out
}
