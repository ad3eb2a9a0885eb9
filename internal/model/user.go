package model

import "time"

// UserData is the per-user document mirrored to the external store.
type UserData struct {
	Character      Character `json:"character"`
	Quests         []Quest   `json:"quests"`
	CurrentGuildID *string   `json:"currentGuildId"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}

// Account is a locally authenticated user.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
