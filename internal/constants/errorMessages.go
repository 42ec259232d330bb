package constants

// MsgCommonError is the only failure message action endpoints put on the wire.
const MsgCommonError = "commonError"

const (
	MsgCharacterSaved   = "Character saved"
	MsgCharacterDeleted = "Character deleted"
	MsgPostCreated      = "Party find post created"
	MsgPostUpdated      = "Party find post updated"
	MsgPostDeleted      = "Party find post deleted"
	MsgApplied          = "Applied to party"
	MsgApproved         = "Application approved"
	MsgDenied           = "Application denied"
	MsgKicked           = "Member kicked"
	MsgLeft             = "Left party"
	MsgSeeded           = "Catalog seeded"
)
