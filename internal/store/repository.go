package store

import (
	"context"
	"errors"

	"github.com/yash113gadia/CampusQuest/internal/model"
)

var (
	// ErrGuildExists is returned by Create when the guild id is taken.
	ErrGuildExists = errors.New("guild already exists")
	// ErrGuildNotFound is returned by Update when there is nothing to update.
	ErrGuildNotFound = errors.New("guild not found")
	// ErrEmailTaken is returned when an account already uses the email.
	ErrEmailTaken = errors.New("email already registered")
)

// UserDataRepository persists one document per user.
type UserDataRepository interface {
	// Load returns nil, nil when the user has no document yet.
	Load(ctx context.Context, userID string) (*model.UserData, error)
	Save(ctx context.Context, userID string, data model.UserData) error
}

// GuildRepository persists shared guild documents.
type GuildRepository interface {
	Create(ctx context.Context, g model.Guild) error
	// Get returns nil, nil when the guild does not exist.
	Get(ctx context.Context, id string) (*model.Guild, error)
	List(ctx context.Context) ([]model.Guild, error)
	Update(ctx context.Context, id string, u model.GuildUpdate) error
	Delete(ctx context.Context, id string) error
}
