package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yash113gadia/CampusQuest/internal/model"
)

// UserDataStore keeps each user's document in the user_data table. The
// character and quest list are stored as JSON columns.
type UserDataStore struct {
	db *sql.DB
}

func NewUserDataStore(db *sql.DB) *UserDataStore {
	return &UserDataStore{db: db}
}

func (s *UserDataStore) Load(ctx context.Context, userID string) (*model.UserData, error) {
	var (
		character, quests string
		guildID           sql.NullString
		ud                model.UserData
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT character, quests, current_guild_id, updated_at FROM user_data WHERE user_id = ?`, userID,
	).Scan(&character, &quests, &guildID, &ud.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user data: %w", err)
	}

	if err := json.Unmarshal([]byte(character), &ud.Character); err != nil {
		return nil, fmt.Errorf("decode character: %w", err)
	}
	if err := json.Unmarshal([]byte(quests), &ud.Quests); err != nil {
		return nil, fmt.Errorf("decode quests: %w", err)
	}
	if ud.Quests == nil {
		ud.Quests = []model.Quest{}
	}
	if guildID.Valid {
		ud.CurrentGuildID = &guildID.String
	}
	return &ud, nil
}

func (s *UserDataStore) Save(ctx context.Context, userID string, data model.UserData) error {
	character, err := json.Marshal(data.Character)
	if err != nil {
		return fmt.Errorf("encode character: %w", err)
	}
	quests := data.Quests
	if quests == nil {
		quests = []model.Quest{}
	}
	questsJSON, err := json.Marshal(quests)
	if err != nil {
		return fmt.Errorf("encode quests: %w", err)
	}

	var guildID sql.NullString
	if data.CurrentGuildID != nil {
		guildID = sql.NullString{String: *data.CurrentGuildID, Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_data (user_id, character, quests, current_guild_id, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   character = excluded.character,
		   quests = excluded.quests,
		   current_guild_id = excluded.current_guild_id,
		   updated_at = excluded.updated_at`,
		userID, string(character), string(questsJSON), guildID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save user data: %w", err)
	}
	return nil
}
