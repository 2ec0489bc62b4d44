package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RoomGlobal is joined by every session at connect time.
const RoomGlobal = "global"

const (
	roomTeamPrefix     = "team:"
	roomProposalPrefix = "proposal:"
	roomUserPrefix     = "user:"
)

func TeamRoom(id uuid.UUID) string     { return roomTeamPrefix + id.String() }
func ProposalRoom(id uuid.UUID) string { return roomProposalPrefix + id.String() }
func UserRoom(id uuid.UUID) string     { return roomUserPrefix + id.String() }

// ClientRoom maps a client subscription request ("team", id) to a room name.
// Only team and proposal rooms may be chosen by clients; global and user rooms are assigned.
func ClientRoom(kind, id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("room id %q: %w", id, ErrInvalidArgument)
	}
	switch kind {
	case "team":
		return TeamRoom(parsed), nil
	case "proposal":
		return ProposalRoom(parsed), nil
	default:
		return "", fmt.Errorf("room kind %q: %w", kind, ErrInvalidArgument)
	}
}
