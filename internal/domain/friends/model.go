package friends

const (
	ColFriends        = "friends"
	ColFriendRequests = "friendRequests"

	relAccepted    = "accepted"
	requestPending = "pending"
)

// Status is the viewer's relationship to a profile.
type Status string

const (
	StatusNone    Status = "none"
	StatusPending Status = "pending"
	StatusFriends Status = "friends"
)

// Label is the friend button caption for the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Request Sent"
	case StatusFriends:
		return "Unfriend"
	}
	return "Add Friend"
}

// Next is the status a toggle moves to.
func (s Status) Next() Status {
	if s == StatusNone {
		return StatusPending
	}
	return StatusNone
}
