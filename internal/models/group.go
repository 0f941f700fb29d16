package models

// Group represents a named collection of players who play together.
// The core treats the member list as a read-only membership set; games
// reference a group by id.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Thursday Night").
	Name string

	// InviteCode is a short shareable code used to join the group.
	InviteCode string

	// MemberIDs is the list of player ids in this group.
	MemberIDs []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the player id is in the group's member list.
func (g *Group) HasMember(playerID string) bool {
	for _, id := range g.MemberIDs {
		if id == playerID {
			return true
		}
	}
	return false
}
