package constants

import "strings"

// ContentType tags one of the five catalog hierarchies.
type ContentType string

const (
	ContentChaosDungeon   ContentType = "CHAOS_DUNGEON"
	ContentGuardianRaid   ContentType = "GUARDIAN_RAID"
	ContentAbyssalDungeon ContentType = "ABYSSAL_DUNGEON"
	ContentAbyssRaid      ContentType = "ABYSS_RAID"
	ContentLegionRaid     ContentType = "LEGION_RAID"
)

// ContentTypes lists every catalog in seeding order.
var ContentTypes = []ContentType{
	ContentChaosDungeon,
	ContentGuardianRaid,
	ContentAbyssalDungeon,
	ContentAbyssRaid,
	ContentLegionRaid,
}

func (c ContentType) String() string { return string(c) }

// Slug is the lower-kebab form used in URLs and seed file names.
func (c ContentType) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(c)), "_", "-")
}

// ParseContentType accepts either the enum form or its slug.
func ParseContentType(s string) (ContentType, bool) {
	norm := ContentType(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	for _, c := range ContentTypes {
		if c == norm {
			return c, true
		}
	}
	return "", false
}

// DefaultGroupSize is used when a stage does not carry its own group size.
func (c ContentType) DefaultGroupSize() int {
	if c == ContentAbyssRaid || c == ContentLegionRaid {
		return 8
	}
	return 4
}
