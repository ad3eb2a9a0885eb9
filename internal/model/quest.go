package model

import "time"

type Difficulty string

const (
	DifficultyTrivial   Difficulty = "trivial"
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyHard      Difficulty = "hard"
	DifficultyEpic      Difficulty = "epic"
	DifficultyLegendary Difficulty = "legendary"
)

type QuestRewards struct {
	XP        int        `json:"xp"`
	Gold      int        `json:"gold"`
	StatBonus *StatBonus `json:"statBonus,omitempty"`
	ItemID    string     `json:"itemId,omitempty"`
}

type Subtask struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

type Quest struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Difficulty  Difficulty   `json:"difficulty"`
	Rewards     QuestRewards `json:"rewards"`
	Subtasks    []Subtask    `json:"subtasks"`
	TemplateID  string       `json:"templateId,omitempty"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	IsCompleted bool         `json:"isCompleted"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}
