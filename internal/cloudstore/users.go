package cloudstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/store"
)

var _ store.UserDataRepository = (*UserDataStore)(nil)

type UserDataStore struct {
	client *firestore.Client
}

func NewUserDataStore(client *firestore.Client) *UserDataStore {
	return &UserDataStore{client: client}
}

func (s *UserDataStore) Load(ctx context.Context, userID string) (*model.UserData, error) {
	snap, err := s.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user doc: %w", err)
	}
	return decodeUserData(snap.Data())
}

func decodeUserData(fields map[string]any) (*model.UserData, error) {
	var ud model.UserData
	if err := fromFields(fields, &ud); err != nil {
		return nil, fmt.Errorf("decode user doc: %w", err)
	}
	if ud.Quests == nil {
		ud.Quests = []model.Quest{}
	}
	return &ud, nil
}

// Save merges the document so fields written by other clients survive.
func (s *UserDataStore) Save(ctx context.Context, userID string, data model.UserData) error {
	fields, err := encodeUserData(data)
	if err != nil {
		return err
	}
	if _, err := s.client.Collection(usersCollection).Doc(userID).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("set user doc: %w", err)
	}
	return nil
}

func encodeUserData(data model.UserData) (map[string]any, error) {
	character, err := toFields(data.Character)
	if err != nil {
		return nil, fmt.Errorf("encode character: %w", err)
	}
	quests := data.Quests
	if quests == nil {
		quests = []model.Quest{}
	}
	questList, err := toValue(quests)
	if err != nil {
		return nil, fmt.Errorf("encode quests: %w", err)
	}
	var guildID any
	if data.CurrentGuildID != nil {
		guildID = *data.CurrentGuildID
	}
	return map[string]any{
		"character":      character,
		"quests":         questList,
		"currentGuildId": guildID,
		updatedAtField:   firestore.ServerTimestamp,
	}, nil
}
