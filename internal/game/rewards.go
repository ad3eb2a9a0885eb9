package game

import (
	"github.com/yash113gadia/CampusQuest/internal/catalog"
	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/progression"
)

// GoldTextOffset lifts the gold popup above the XP popup.
const GoldTextOffset = 30

// CompleteQuestWithRewards plans the reward sequence for completing questID at
// screen position (x, y). The immediate actions complete the quest and grant
// XP, guild contribution and stat bonus; the deferred ones grant gold and
// return the avatar to idle. Both are empty when the quest is missing or
// already completed, so a repeat completion grants nothing.
func CompleteQuestWithRewards(s State, questID string, x, y float64) ([]Action, []Effect) {
	q, ok := s.Quest(questID)
	if !ok || q.IsCompleted {
		return nil, nil
	}

	now := []Action{
		CompleteQuest{QuestID: q.ID},
		AddXP{Amount: q.Rewards.XP, X: x, Y: y},
	}
	if levelsGained(s.Character, q.Rewards.XP) > 0 {
		now = append(now, LevelUp{})
	}
	if s.CurrentGuild != nil {
		now = append(now, ContributeXPToGuild{Amount: q.Rewards.XP})
	}
	if b := q.Rewards.StatBonus; b != nil && !b.IsZero() {
		now = append(now, UpdateStats{StatBonus: absoluteBonus(s.Character.Stats, *b)})
	}
	if id := q.Rewards.ItemID; id != "" && !s.Character.Owns(id) {
		now = append(now, BuyItem{ItemID: id, Price: 0})
	}

	later := []Effect{
		{Delay: GoldDelay, Action: AddGold{Amount: q.Rewards.Gold, X: x, Y: y - GoldTextOffset}},
		{Delay: IdleDelay, Action: SetAction{Action: model.ActionIdle}},
	}
	return now, later
}

// CompleteFocusSession grants a finished focus session's payout.
func CompleteFocusSession(s State, p catalog.FocusPreset, x, y float64) []Action {
	out := []Action{AddXP{Amount: p.XP, X: x, Y: y}}
	if levelsGained(s.Character, p.XP) > 0 {
		out = append(out, LevelUp{})
	}
	return append(out, AddGold{Amount: p.Gold, X: x, Y: y - GoldTextOffset})
}

func levelsGained(c model.Character, amount int) int {
	_, n := progression.ApplyXP(progression.Progress{
		Level:         c.Level,
		XP:            c.XP,
		XPToNextLevel: c.XPToNextLevel,
	}, amount)
	return n
}

// absoluteBonus turns a relative bonus into the absolute values UpdateStats
// writes, touching only the stats the bonus names.
func absoluteBonus(stats model.Stats, b model.StatBonus) model.StatBonus {
	sum := stats.Add(b)
	pick := func(set *int, v int) *int {
		if set == nil {
			return nil
		}
		return &v
	}
	return model.StatBonus{
		STR: pick(b.STR, sum.STR),
		INT: pick(b.INT, sum.INT),
		CHA: pick(b.CHA, sum.CHA),
		VIT: pick(b.VIT, sum.VIT),
		WIS: pick(b.WIS, sum.WIS),
		AGI: pick(b.AGI, sum.AGI),
	}
}

// Defaults for quests created without a difficulty or category.
const (
	DefaultQuestDifficulty = model.DifficultyMedium
	DefaultQuestCategory   = "daily"
)

// NewQuest builds a custom quest priced from the difficulty tables. Unknown
// difficulties keep their name but pay easy-tier rewards.
func (r Reducer) NewQuest(title string, d model.Difficulty, category string, subtasks []string) model.Quest {
	if d == "" {
		d = DefaultQuestDifficulty
	}
	if category == "" {
		category = DefaultQuestCategory
	}
	q := model.Quest{
		ID:         "quest_" + r.newID(),
		Title:      title,
		Category:   category,
		Difficulty: d,
		Rewards:    progression.Rewards(d),
		Subtasks:   make([]model.Subtask, 0, len(subtasks)),
		CreatedAt:  r.now(),
	}
	for _, text := range subtasks {
		q.Subtasks = append(q.Subtasks, model.Subtask{ID: "subtask_" + r.newID(), Text: text})
	}
	return q
}

// NewPointQuest builds a custom quest worth points, priced like a template.
func (r Reducer) NewPointQuest(title, category string, points float64) model.Quest {
	if category == "" {
		category = DefaultQuestCategory
	}
	return model.Quest{
		ID:         "quest_" + r.newID(),
		Title:      title,
		Category:   category,
		Difficulty: progression.DifficultyForPoints(points),
		Rewards:    progression.PointRewards(points),
		Subtasks:   []model.Subtask{},
		CreatedAt:  r.now(),
	}
}

// NewTemplateQuest instantiates a catalog template.
func (r Reducer) NewTemplateQuest(t catalog.Template) model.Quest {
	return catalog.QuestFromTemplate(t, "quest_"+r.newID(), r.now())
}

// DailyProgress is the template points earned on one calendar day.
type DailyProgress struct {
	Date      string             `json:"date"`
	Points    float64            `json:"points"`
	MaxPoints float64            `json:"maxPoints"`
	Rating    progression.Rating `json:"rating"`
}

// Today sums the points of template quests completed on the reducer's
// current calendar day and grades the total.
func (r Reducer) Today(s State) DailyProgress {
	day := r.today()
	var points float64
	for _, q := range s.Quests {
		if !q.IsCompleted || q.CompletedAt == nil {
			continue
		}
		if r.dateOf(*q.CompletedAt) == day {
			points += catalog.PointsFor(q)
		}
	}
	return DailyProgress{
		Date:      day,
		Points:    points,
		MaxPoints: catalog.DailyMaxPoints(),
		Rating:    progression.DayRating(points),
	}
}
