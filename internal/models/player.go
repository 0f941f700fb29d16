package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Player represents a registered account. Players are immutable once created
// except for name edits.
type Player struct {
	// ID is the unique identifier for the player (UUID format).
	ID string

	// Name is the display name of the player.
	Name string

	// Initials is a short label derived from the name, used by clients for
	// compact displays.
	Initials string

	// Email is the player's email address (unique). Used for login.
	Email string

	// PasswordHash is the bcrypt hash of the player's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewPlayer creates a player with a generated ID and timestamps. If initials
// are empty they are derived from the name.
func NewPlayer(email, name, initials, passwordHash string) *Player {
	now := time.Now().Unix()
	if initials == "" {
		initials = DeriveInitials(name)
	}
	return &Player{
		ID:           uuid.New().String(),
		Name:         name,
		Initials:     initials,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// DeriveInitials returns up to two uppercase initials from a display name.
func DeriveInitials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	initials := string([]rune(fields[0])[0])
	if len(fields) > 1 {
		initials += string([]rune(fields[len(fields)-1])[0])
	}
	return strings.ToUpper(initials)
}
