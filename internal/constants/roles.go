package constants

import (
	"database/sql/driver"
	"fmt"
)

// JobType mirrors the slot role enum stored in party_find_slots.job_type
type JobType string

const (
	JobTypeSupport JobType = "SUPPORT"
	JobTypeDPS     JobType = "DPS"
	JobTypeAny     JobType = "ANY"
)

func (r JobType) String() string { return string(r) }

// Accepts reports whether a character with role can sit in a slot of this type.
func (r JobType) Accepts(role JobType) bool {
	return r == JobTypeAny || r == role
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *JobType) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = JobType(v)
	case []byte:
		*r = JobType(v)
	default:
		return fmt.Errorf("JobType: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r JobType) Value() (driver.Value, error) { return string(r), nil }

// Job is a playable class identifier.
type Job string

const (
	JobBerserker    Job = "BERSERKER"
	JobDestroyer    Job = "DESTROYER"
	JobGunlancer    Job = "GUNLANCER"
	JobPaladin      Job = "PALADIN"
	JobSlayer       Job = "SLAYER"
	JobArcanist     Job = "ARCANIST"
	JobBard         Job = "BARD"
	JobSorceress    Job = "SORCERESS"
	JobSummoner     Job = "SUMMONER"
	JobWardancer    Job = "WARDANCER"
	JobScrapper     Job = "SCRAPPER"
	JobSoulfist     Job = "SOULFIST"
	JobGlaivier     Job = "GLAIVIER"
	JobStriker      Job = "STRIKER"
	JobBreaker      Job = "BREAKER"
	JobDeathblade   Job = "DEATHBLADE"
	JobShadowhunter Job = "SHADOWHUNTER"
	JobReaper       Job = "REAPER"
	JobSouleater    Job = "SOULEATER"
	JobSharpshooter Job = "SHARPSHOOTER"
	JobDeadeye      Job = "DEADEYE"
	JobArtillerist  Job = "ARTILLERIST"
	JobMachinist    Job = "MACHINIST"
	JobGunslinger   Job = "GUNSLINGER"
	JobArtist       Job = "ARTIST"
	JobAeromancer   Job = "AEROMANCER"
)

var jobs = map[Job]struct{}{
	JobBerserker: {}, JobDestroyer: {}, JobGunlancer: {}, JobPaladin: {}, JobSlayer: {},
	JobArcanist: {}, JobBard: {}, JobSorceress: {}, JobSummoner: {},
	JobWardancer: {}, JobScrapper: {}, JobSoulfist: {}, JobGlaivier: {}, JobStriker: {}, JobBreaker: {},
	JobDeathblade: {}, JobShadowhunter: {}, JobReaper: {}, JobSouleater: {},
	JobSharpshooter: {}, JobDeadeye: {}, JobArtillerist: {}, JobMachinist: {}, JobGunslinger: {},
	JobArtist: {}, JobAeromancer: {},
}

// supportJobs is the fixed allow-list of support classes. Everything else is DPS.
var supportJobs = map[Job]struct{}{
	JobBard:    {},
	JobPaladin: {},
}

func (j Job) String() string { return string(j) }

// Valid reports whether j is a known class.
func (j Job) Valid() bool {
	_, ok := jobs[j]
	return ok
}

// RoleForJob maps a class to the slot role it fills.
func RoleForJob(j Job) JobType {
	if _, ok := supportJobs[j]; ok {
		return JobTypeSupport
	}
	return JobTypeDPS
}
