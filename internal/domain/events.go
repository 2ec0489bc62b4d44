package domain

// Event names pushed to connected clients.
const (
	EventTeamCreated      = "team:created"
	EventTeamUpdated      = "team:updated"
	EventTeamDeleted      = "team:deleted"
	EventTeamMemberJoined = "team:member-joined"
	EventTeamMemberLeft   = "team:member-left"
	EventProposalCreated  = "proposal:created"
	EventProposalDeleted  = "proposal:deleted"
	EventVoteRecorded     = "vote:recorded"
	EventCommentAdded     = "comment:added"
	EventNotificationNew  = "notification:new"
)

// Broadcaster fans an event out to every session joined to a room.
// Implementations are best-effort and never report failure to the caller.
type Broadcaster interface {
	Emit(room, event string, payload any)
}

// NopBroadcaster drops every event. Useful for tools and tests that do not care about fan-out.
type NopBroadcaster struct{}

func (NopBroadcaster) Emit(string, string, any) {}
