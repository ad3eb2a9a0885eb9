package game

import (
	"encoding/json"

	"github.com/yash113gadia/CampusQuest/internal/catalog"
	"github.com/yash113gadia/CampusQuest/internal/model"
)

// Action is a closed set of state transitions. Only types in this package
// implement it.
type Action interface {
	actionType() string
}

// TypeOf returns the wire tag of a, e.g. "ADD_XP".
func TypeOf(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionType()
}

const (
	TypeCreateCharacter     = "CREATE_CHARACTER"
	TypeAddXP               = "ADD_XP"
	TypeAddGold             = "ADD_GOLD"
	TypeLevelUp             = "LEVEL_UP"
	TypeUpdateStats         = "UPDATE_STATS"
	TypeEquipItem           = "EQUIP_ITEM"
	TypeUpdateEquipment     = "UPDATE_EQUIPMENT"
	TypeBuyItem             = "BUY_ITEM"
	TypeAddQuest            = "ADD_QUEST"
	TypeCompleteQuest       = "COMPLETE_QUEST"
	TypeCompleteSubtask     = "COMPLETE_SUBTASK"
	TypeDeleteQuest         = "DELETE_QUEST"
	TypeSetAction           = "SET_ACTION"
	TypeAddFloatingText     = "ADD_FLOATING_TEXT"
	TypeRemoveFloatingText  = "REMOVE_FLOATING_TEXT"
	TypeUpdateStreak        = "UPDATE_STREAK"
	TypeTakeDamage          = "TAKE_DAMAGE"
	TypeCreateGuild         = "CREATE_GUILD"
	TypeJoinGuild           = "JOIN_GUILD"
	TypeLeaveGuild          = "LEAVE_GUILD"
	TypeContributeXPToGuild = "CONTRIBUTE_XP_TO_GUILD"
	TypeSetUserID           = "SET_USER_ID"
	TypeLoadUserData        = "LOAD_USER_DATA"
	TypeLoadGuilds          = "LOAD_GUILDS"
	TypeSetCurrentGuild     = "SET_CURRENT_GUILD"
	TypeSetLoading          = "SET_LOADING"
	TypeSetSyncing          = "SET_SYNCING"
	TypeResetState          = "RESET_STATE"
)

// Character

type CreateCharacter struct {
	Name    string               `json:"name"`
	ClassID model.CharacterClass `json:"classId"`
	catalog.Appearance
}

type AddXP struct {
	Amount int     `json:"amount"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}

type AddGold struct {
	Amount int     `json:"amount"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}

type LevelUp struct{}

// UpdateStats overwrites each stat the bonus sets.
type UpdateStats struct {
	model.StatBonus
}

// Character fields EquipItem can set directly by id.
const (
	EquipArmor  = "armorId"
	EquipWeapon = "weaponId"
	EquipHairID = "hairId"
)

// EquipItem sets an item id on the character. Slot is either one of the
// EquipArmor/EquipWeapon/EquipHairID fields or a wearable equip slot, in which
// case ItemID must name an owned shop item for that slot.
type EquipItem struct {
	Slot   string `json:"slot"`
	ItemID string `json:"itemId"`
}

// UpdateEquipment replaces one equipment path.
type UpdateEquipment struct {
	Slot model.EquipSlot `json:"slot"`
	Path string          `json:"path"`
}

type BuyItem struct {
	ItemID string `json:"itemId"`
	Price  int    `json:"price"`
}

// Quests

type AddQuest struct {
	model.Quest
}

type CompleteQuest struct {
	QuestID string `json:"questId"`
}

type CompleteSubtask struct {
	QuestID   string `json:"questId"`
	SubtaskID string `json:"subtaskId"`
}

type DeleteQuest struct {
	QuestID string `json:"questId"`
}

// Avatar and feedback

type SetAction struct {
	Action model.AvatarAction
}

type AddFloatingText struct {
	model.FloatingText
}

type RemoveFloatingText struct {
	ID string `json:"id"`
}

type UpdateStreak struct{}

type TakeDamage struct {
	Amount int `json:"amount"`
}

// Guilds

// CreateGuild founds a guild led by the current character. ID is optional; an
// empty ID makes the reducer pick one.
type CreateGuild struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Emblem      string `json:"emblem"`
}

type JoinGuild struct {
	GuildID string `json:"guildId"`
}

type LeaveGuild struct{}

type ContributeXPToGuild struct {
	Amount int `json:"amount"`
}

// Session

// SetUserID sets the signed-in user. An empty id means signed out.
type SetUserID struct {
	UserID string
}

type LoadUserData struct {
	Character      model.Character `json:"character"`
	Quests         []model.Quest   `json:"quests"`
	CurrentGuildID *string         `json:"currentGuildId"`
}

type LoadGuilds struct {
	Guilds []model.Guild
}

type SetCurrentGuild struct {
	Guild *model.Guild
}

type SetLoading struct {
	Loading bool
}

type SetSyncing struct {
	Syncing bool
}

type ResetState struct{}

// Unknown carries a tag this package does not recognise. The reducer ignores it.
type Unknown struct {
	Type    string
	Payload json.RawMessage
}

func (CreateCharacter) actionType() string     { return TypeCreateCharacter }
func (AddXP) actionType() string               { return TypeAddXP }
func (AddGold) actionType() string             { return TypeAddGold }
func (LevelUp) actionType() string             { return TypeLevelUp }
func (UpdateStats) actionType() string         { return TypeUpdateStats }
func (EquipItem) actionType() string           { return TypeEquipItem }
func (UpdateEquipment) actionType() string     { return TypeUpdateEquipment }
func (BuyItem) actionType() string             { return TypeBuyItem }
func (AddQuest) actionType() string            { return TypeAddQuest }
func (CompleteQuest) actionType() string       { return TypeCompleteQuest }
func (CompleteSubtask) actionType() string     { return TypeCompleteSubtask }
func (DeleteQuest) actionType() string         { return TypeDeleteQuest }
func (SetAction) actionType() string           { return TypeSetAction }
func (AddFloatingText) actionType() string     { return TypeAddFloatingText }
func (RemoveFloatingText) actionType() string  { return TypeRemoveFloatingText }
func (UpdateStreak) actionType() string        { return TypeUpdateStreak }
func (TakeDamage) actionType() string          { return TypeTakeDamage }
func (CreateGuild) actionType() string         { return TypeCreateGuild }
func (JoinGuild) actionType() string           { return TypeJoinGuild }
func (LeaveGuild) actionType() string          { return TypeLeaveGuild }
func (ContributeXPToGuild) actionType() string { return TypeContributeXPToGuild }
func (SetUserID) actionType() string           { return TypeSetUserID }
func (LoadUserData) actionType() string        { return TypeLoadUserData }
func (LoadGuilds) actionType() string          { return TypeLoadGuilds }
func (SetCurrentGuild) actionType() string     { return TypeSetCurrentGuild }
func (SetLoading) actionType() string          { return TypeSetLoading }
func (SetSyncing) actionType() string          { return TypeSetSyncing }
func (ResetState) actionType() string          { return TypeResetState }
func (u Unknown) actionType() string           { return u.Type }
