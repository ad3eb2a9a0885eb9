package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yash113gadia/CampusQuest/internal/model"
)

// GuildStore keeps guild documents in the guilds table, with the roster as a
// JSON column.
type GuildStore struct {
	db *sql.DB
}

func NewGuildStore(db *sql.DB) *GuildStore {
	return &GuildStore{db: db}
}

const guildCols = `id, name, description, emblem, leader_id, members, total_xp, total_quests_completed, max_members, created_at`

func scanGuild(scanner interface{ Scan(...any) error }) (*model.Guild, error) {
	var (
		g       model.Guild
		members string
	)
	err := scanner.Scan(&g.ID, &g.Name, &g.Description, &g.Emblem, &g.LeaderID, &members,
		&g.TotalXP, &g.TotalQuestsCompleted, &g.MaxMembers, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(members), &g.Members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	if g.Members == nil {
		g.Members = []model.GuildMember{}
	}
	return &g, nil
}

func encodeMembers(members []model.GuildMember) (string, error) {
	if members == nil {
		members = []model.GuildMember{}
	}
	b, err := json.Marshal(members)
	if err != nil {
		return "", fmt.Errorf("encode members: %w", err)
	}
	return string(b), nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *GuildStore) Create(ctx context.Context, g model.Guild) error {
	members, err := encodeMembers(g.Members)
	if err != nil {
		return err
	}
	if g.MaxMembers <= 0 {
		g.MaxMembers = model.DefaultGuildMaxMembers
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO guilds (`+guildCols+`, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Description, g.Emblem, g.LeaderID, members,
		g.TotalXP, g.TotalQuestsCompleted, g.MaxMembers, g.CreatedAt, time.Now().UTC(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("insert guild %s: %w", g.ID, ErrGuildExists)
	}
	if err != nil {
		return fmt.Errorf("insert guild: %w", err)
	}
	return nil
}

func (s *GuildStore) Get(ctx context.Context, id string) (*model.Guild, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+guildCols+` FROM guilds WHERE id = ?`, id)
	g, err := scanGuild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guild: %w", err)
	}
	return g, nil
}

// List returns every guild, strongest first.
func (s *GuildStore) List(ctx context.Context) ([]model.Guild, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+guildCols+` FROM guilds ORDER BY total_xp DESC, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}
	defer rows.Close()

	guilds := []model.Guild{}
	for rows.Next() {
		g, err := scanGuild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guild: %w", err)
		}
		guilds = append(guilds, *g)
	}
	return guilds, rows.Err()
}

// Update writes the fields u sets. It returns ErrGuildNotFound when the guild
// does not exist.
func (s *GuildStore) Update(ctx context.Context, id string, u model.GuildUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	g, err := scanGuild(tx.QueryRowContext(ctx, `SELECT `+guildCols+` FROM guilds WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return fmt.Errorf("update guild %s: %w", id, ErrGuildNotFound)
	}
	if err != nil {
		return fmt.Errorf("get guild for update: %w", err)
	}

	next := u.Apply(*g)
	members, err := encodeMembers(next.Members)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE guilds SET name = ?, description = ?, emblem = ?, leader_id = ?, members = ?,
		   total_xp = ?, total_quests_completed = ?, max_members = ?, updated_at = ?
		 WHERE id = ?`,
		next.Name, next.Description, next.Emblem, next.LeaderID, members,
		next.TotalXP, next.TotalQuestsCompleted, next.MaxMembers, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update guild: %w", err)
	}
	return tx.Commit()
}

func (s *GuildStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM guilds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete guild: %w", err)
	}
	return nil
}
