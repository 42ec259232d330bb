package constants

// PostState is the lifecycle state of a party find post.
type PostState string

const (
	PostStateRecruiting   PostState = "RECRUITING"
	PostStateRerecruiting PostState = "RERECRUITING"
	PostStateFull         PostState = "FULL"
	PostStateExpired      PostState = "EXPIRED"
	PostStateDeleted      PostState = "DELETED"
)

// Live reports whether the post still accepts membership changes.
func (s PostState) Live() bool {
	return s == PostStateRecruiting || s == PostStateRerecruiting || s == PostStateFull
}

// ApplyState tracks one character's candidacy for one post.
type ApplyState string

const (
	ApplyStateWaiting   ApplyState = "WAITING"
	ApplyStateAccepted  ApplyState = "ACCEPTED"
	ApplyStateRejected  ApplyState = "REJECTED"
	ApplyStateExpired   ApplyState = "EXPIRED"
	ApplyStateWithdrawn ApplyState = "WITHDRAWN"
	ApplyStateDeleted   ApplyState = "DELETED"
)
