package game

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yash113gadia/CampusQuest/internal/model"
)

// ErrUnknownAction is returned when encoding a nil action.
var ErrUnknownAction = errors.New("unknown action")

// Envelope is the wire form of an action: {"type": "ADD_XP", "payload": {...}}.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Encode converts an action to its wire envelope.
func Encode(a Action) (Envelope, error) {
	if a == nil {
		return Envelope{}, fmt.Errorf("encode action: %w", ErrUnknownAction)
	}

	var payload any
	switch a := a.(type) {
	case LevelUp, UpdateStreak, LeaveGuild, ResetState:
		return Envelope{Type: TypeOf(a)}, nil
	case Unknown:
		return Envelope{Type: a.Type, Payload: a.Payload}, nil
	case SetAction:
		payload = a.Action
	case SetUserID:
		if a.UserID != "" {
			payload = a.UserID
		}
	case LoadGuilds:
		payload = a.Guilds
	case SetCurrentGuild:
		payload = a.Guild
	case SetLoading:
		payload = a.Loading
	case SetSyncing:
		payload = a.Syncing
	default:
		payload = a
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", TypeOf(a), err)
	}
	return Envelope{Type: TypeOf(a), Payload: raw}, nil
}

// Decode converts an envelope to an action. Unrecognised tags decode to an
// Unknown action rather than an error; a malformed payload for a known tag is
// an error.
func Decode(env Envelope) (Action, error) {
	dec, ok := decoders[env.Type]
	if !ok {
		return Unknown{Type: env.Type, Payload: env.Payload}, nil
	}
	a, err := dec(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return a, nil
}

func empty(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func decodeStruct[T Action](raw json.RawMessage) (Action, error) {
	var a T
	if empty(raw) {
		return a, nil
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return a, nil
}

func decodeValue[V any, T Action](wrap func(V) T) func(json.RawMessage) (Action, error) {
	return func(raw json.RawMessage) (Action, error) {
		var v V
		if !empty(raw) {
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, err
			}
		}
		return wrap(v), nil
	}
}

var decoders = map[string]func(json.RawMessage) (Action, error){
	TypeCreateCharacter:     decodeStruct[CreateCharacter],
	TypeAddXP:               decodeStruct[AddXP],
	TypeAddGold:             decodeStruct[AddGold],
	TypeLevelUp:             decodeStruct[LevelUp],
	TypeUpdateStats:         decodeStruct[UpdateStats],
	TypeEquipItem:           decodeStruct[EquipItem],
	TypeUpdateEquipment:     decodeStruct[UpdateEquipment],
	TypeBuyItem:             decodeStruct[BuyItem],
	TypeAddQuest:            decodeStruct[AddQuest],
	TypeCompleteQuest:       decodeStruct[CompleteQuest],
	TypeCompleteSubtask:     decodeStruct[CompleteSubtask],
	TypeDeleteQuest:         decodeStruct[DeleteQuest],
	TypeAddFloatingText:     decodeStruct[AddFloatingText],
	TypeRemoveFloatingText:  decodeStruct[RemoveFloatingText],
	TypeUpdateStreak:        decodeStruct[UpdateStreak],
	TypeTakeDamage:          decodeStruct[TakeDamage],
	TypeCreateGuild:         decodeStruct[CreateGuild],
	TypeJoinGuild:           decodeStruct[JoinGuild],
	TypeLeaveGuild:          decodeStruct[LeaveGuild],
	TypeContributeXPToGuild: decodeStruct[ContributeXPToGuild],
	TypeLoadUserData:        decodeStruct[LoadUserData],
	TypeResetState:          decodeStruct[ResetState],

	TypeSetAction: decodeValue(func(v model.AvatarAction) SetAction { return SetAction{Action: v} }),
	TypeSetUserID: decodeValue(func(v *string) SetUserID {
		if v == nil {
			return SetUserID{}
		}
		return SetUserID{UserID: *v}
	}),
	TypeLoadGuilds:      decodeValue(func(v []model.Guild) LoadGuilds { return LoadGuilds{Guilds: v} }),
	TypeSetCurrentGuild: decodeValue(func(v *model.Guild) SetCurrentGuild { return SetCurrentGuild{Guild: v} }),
	TypeSetLoading:      decodeValue(func(v bool) SetLoading { return SetLoading{Loading: v} }),
	TypeSetSyncing:      decodeValue(func(v bool) SetSyncing { return SetSyncing{Syncing: v} }),
}

// MarshalAction encodes a as a JSON envelope.
func MarshalAction(a Action) ([]byte, error) {
	env, err := Encode(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// UnmarshalAction parses a JSON envelope into an action.
func UnmarshalAction(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return Decode(env)
}
