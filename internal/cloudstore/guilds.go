package cloudstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/store"
)

var _ store.GuildRepository = (*GuildStore)(nil)

type GuildStore struct {
	client *firestore.Client
}

func NewGuildStore(client *firestore.Client) *GuildStore {
	return &GuildStore{client: client}
}

func (s *GuildStore) doc(id string) *firestore.DocumentRef {
	return s.client.Collection(guildsCollection).Doc(id)
}

func (s *GuildStore) Create(ctx context.Context, g model.Guild) error {
	if g.MaxMembers <= 0 {
		g.MaxMembers = model.DefaultGuildMaxMembers
	}
	if g.Members == nil {
		g.Members = []model.GuildMember{}
	}
	fields, err := toFields(g)
	if err != nil {
		return fmt.Errorf("encode guild: %w", err)
	}
	fields[updatedAtField] = firestore.ServerTimestamp

	_, err = s.doc(g.ID).Create(ctx, fields)
	if status.Code(err) == codes.AlreadyExists {
		return fmt.Errorf("create guild %s: %w", g.ID, store.ErrGuildExists)
	}
	if err != nil {
		return fmt.Errorf("create guild: %w", err)
	}
	return nil
}

func (s *GuildStore) Get(ctx context.Context, id string) (*model.Guild, error) {
	snap, err := s.doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guild: %w", err)
	}
	return decodeGuild(snap.Data())
}

func (s *GuildStore) List(ctx context.Context) ([]model.Guild, error) {
	iter := s.client.Collection(guildsCollection).OrderBy("totalXp", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	guilds := []model.Guild{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list guilds: %w", err)
		}
		g, err := decodeGuild(snap.Data())
		if err != nil {
			return nil, err
		}
		guilds = append(guilds, *g)
	}
	return guilds, nil
}

func (s *GuildStore) Update(ctx context.Context, id string, u model.GuildUpdate) error {
	updates, err := guildUpdates(u)
	if err != nil {
		return err
	}
	_, err = s.doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("update guild %s: %w", id, store.ErrGuildNotFound)
	}
	if err != nil {
		return fmt.Errorf("update guild: %w", err)
	}
	return nil
}

func (s *GuildStore) Delete(ctx context.Context, id string) error {
	if _, err := s.doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete guild: %w", err)
	}
	return nil
}

func decodeGuild(fields map[string]any) (*model.Guild, error) {
	delete(fields, updatedAtField)
	var g model.Guild
	if err := fromFields(fields, &g); err != nil {
		return nil, fmt.Errorf("decode guild: %w", err)
	}
	if g.Members == nil {
		g.Members = []model.GuildMember{}
	}
	if g.MaxMembers <= 0 {
		g.MaxMembers = model.DefaultGuildMaxMembers
	}
	return &g, nil
}

// guildUpdates turns a partial update into field paths. updatedAt is always
// stamped.
func guildUpdates(u model.GuildUpdate) ([]firestore.Update, error) {
	var out []firestore.Update
	add := func(path string, v any) {
		out = append(out, firestore.Update{Path: path, Value: v})
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Emblem != nil {
		add("emblem", *u.Emblem)
	}
	if u.LeaderID != nil {
		add("leaderId", *u.LeaderID)
	}
	if u.Members != nil {
		members, err := toValue(*u.Members)
		if err != nil {
			return nil, fmt.Errorf("encode members: %w", err)
		}
		add("members", members)
	}
	if u.TotalXP != nil {
		add("totalXp", *u.TotalXP)
	}
	if u.TotalQuestsCompleted != nil {
		add("totalQuestsCompleted", *u.TotalQuestsCompleted)
	}
	if u.MaxMembers != nil {
		add("maxMembers", *u.MaxMembers)
	}
	add(updatedAtField, firestore.ServerTimestamp)
	return out, nil
}
