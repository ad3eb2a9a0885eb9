package model

type FloatingTextType string

const (
	FloatingXP      FloatingTextType = "xp"
	FloatingGold    FloatingTextType = "gold"
	FloatingDamage  FloatingTextType = "damage"
	FloatingLevelUp FloatingTextType = "levelup"
	FloatingStreak  FloatingTextType = "streak"
)

// FloatingText is a transient reward popup. It is never persisted.
type FloatingText struct {
	ID   string           `json:"id"`
	Text string           `json:"text"`
	Type FloatingTextType `json:"type"`
	X    float64          `json:"x"`
	Y    float64          `json:"y"`
}

type AvatarAction string

const (
	ActionIdle    AvatarAction = "idle"
	ActionWalk    AvatarAction = "walk"
	ActionAttack  AvatarAction = "attack"
	ActionHurt    AvatarAction = "hurt"
	ActionVictory AvatarAction = "victory"
	ActionSit     AvatarAction = "sit"
)

func (a AvatarAction) Valid() bool {
	switch a {
	case ActionIdle, ActionWalk, ActionAttack, ActionHurt, ActionVictory, ActionSit:
		return true
	}
	return false
}
