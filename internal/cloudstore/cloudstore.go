// Package cloudstore keeps user and guild documents in Cloud Firestore, in
// the users/{uid} and guilds/{id} collections.
package cloudstore

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
)

const (
	usersCollection  = "users"
	guildsCollection = "guilds"
	updatedAtField   = "updatedAt"
)

// NewClient opens a Firestore client for the app's project.
func NewClient(ctx context.Context, app *firebase.App) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open firestore: %w", err)
	}
	return client, nil
}

// toFields converts v to Firestore fields through its JSON form, so documents
// use the same camelCase keys as the API.
func toFields(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// toValue is toFields for values that are not objects.
func toValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// fromFields decodes document fields into v.
func fromFields(fields map[string]any, v any) error {
	b, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
