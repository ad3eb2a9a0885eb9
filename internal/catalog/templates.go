package catalog

import (
	"time"

	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/progression"
)

// Template is a predefined daily quest worth a fixed number of points.
type Template struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Points      float64 `json:"points"`
	Icon        string  `json:"icon"`
	Description string  `json:"description,omitempty"`
}

// Category is display metadata for a template category.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

const (
	CategoryCoding   = "coding"
	CategoryAcademic = "academic"
	CategoryBody     = "body"
	CategoryMind     = "mind"
	CategoryRealLife = "reallife"
	CategoryRhythm   = "rhythm"
)

var categories = []Category{
	{CategoryCoding, "Coding", "💻", "#5b6ee1"},
	{CategoryAcademic, "Academic", "📚", "#9b59b6"},
	{CategoryBody, "Body", "💪", "#ac3232"},
	{CategoryMind, "Mind", "🧠", "#6abe30"},
	{CategoryRealLife, "Real Life", "🎥", "#fbf236"},
	{CategoryRhythm, "Rhythm", "⏰", "#ff6b35"},
}

var templates = []Template{
	// Coding
	{ID: "coding_learn", Title: "Consumed with intent (notes/mental model formed)", Category: CategoryCoding, Subcategory: "Learning", Points: 5, Icon: "📖", Description: "Max 5 points per day for learning"},
	{ID: "coding_10min", Title: "Coded for 10 minutes", Category: CategoryCoding, Subcategory: "Doing", Points: 3, Icon: "⌨️"},
	{ID: "coding_30min", Title: "Coded for 30 minutes", Category: CategoryCoding, Subcategory: "Doing", Points: 8, Icon: "💻"},
	{ID: "coding_1hr", Title: "Coded for 1 hour or more", Category: CategoryCoding, Subcategory: "Doing", Points: 18, Icon: "🔥"},

	// Academic
	{ID: "academic_graze", Title: "Grazed material (mental map formed)", Category: CategoryAcademic, Points: 5, Icon: "👀"},
	{ID: "academic_read", Title: "Read material (not all subjects)", Category: CategoryAcademic, Points: 10, Icon: "📖"},
	{ID: "academic_active", Title: "Actively interacted (questions/recall/notes)", Category: CategoryAcademic, Points: 15, Icon: "✍️"},
	{ID: "academic_deep_most", Title: "Deep work: MOST planned tasks done", Category: CategoryAcademic, Points: 15, Icon: "📋"},
	{ID: "academic_deep_all", Title: "Deep work: EVERYTHING planned done", Category: CategoryAcademic, Points: 20, Icon: "🏆"},

	// Body
	{ID: "body_stretch", Title: "Stretching", Category: CategoryBody, Points: 2.5, Icon: "🦵"},
	{ID: "body_eyes", Title: "Eye exercise", Category: CategoryBody, Points: 2.5, Icon: "👁️"},
	{ID: "body_workout", Title: "Workout", Category: CategoryBody, Points: 10, Icon: "🏋️"},
	{ID: "body_stairs", Title: "Took stairs", Category: CategoryBody, Subcategory: "Cardio", Points: 2, Icon: "🚶"},
	{ID: "body_walk_light", Title: "Had a light walk", Category: CategoryBody, Subcategory: "Cardio", Points: 5, Icon: "🚶‍♂️"},
	{ID: "body_cardio_proper", Title: "Had proper cardio (jog/run or long walk)", Category: CategoryBody, Subcategory: "Cardio", Points: 10, Icon: "🏃"},

	// Mind
	{ID: "mind_meditate", Title: "Meditate (allow mindfulness calm)", Category: CategoryMind, Points: 10, Icon: "🧘"},
	{ID: "mind_journal", Title: "Journal", Category: CategoryMind, Points: 5, Icon: "📔"},
	{ID: "mind_read_page", Title: "Read just one page", Category: CategoryMind, Subcategory: "Reading", Points: 5, Icon: "📄"},
	{ID: "mind_read_10min", Title: "Read for 10 minutes", Category: CategoryMind, Subcategory: "Reading", Points: 10, Icon: "📚"},
	{ID: "mind_read_chapter", Title: "Read an entire chapter", Category: CategoryMind, Subcategory: "Reading", Points: 15, Icon: "📖"},

	// Real life
	{ID: "reallife_talking_head", Title: "Recorded a talking head video", Category: CategoryRealLife, Points: 10, Icon: "🎥"},
	{ID: "reallife_content", Title: "Recorded content (practice or content)", Category: CategoryRealLife, Points: 10, Icon: "🎬"},

	// Rhythm
	{ID: "rhythm_wake", Title: "Woke up within 30 min of intended time", Category: CategoryRhythm, Points: 5, Icon: "🌅"},
	{ID: "rhythm_sleep", Title: "Slept on time (shutdown ritual)", Category: CategoryRhythm, Points: 5, Icon: "🌙"},
}

var templateIndex = func() map[string]Template {
	m := make(map[string]Template, len(templates))
	for _, t := range templates {
		m[t.ID] = t
	}
	return m
}()

// Categories returns the template categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Templates returns every quest template in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateByID returns the template with the given id.
func TemplateByID(id string) (Template, bool) {
	t, ok := templateIndex[id]
	return t, ok
}

// TemplatesByCategory returns the templates in one category.
func TemplatesByCategory(category string) []Template {
	var out []Template
	for _, t := range templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// DailyMaxPoints is the sum of every template's points.
func DailyMaxPoints() float64 {
	var sum float64
	for _, t := range templates {
		sum += t.Points
	}
	return sum
}

// PointsFor returns the points a quest is worth toward the daily rating. Quests
// that did not come from a template count for nothing.
func PointsFor(q model.Quest) float64 {
	if q.TemplateID == "" {
		return 0
	}
	t, ok := templateIndex[q.TemplateID]
	if !ok {
		return 0
	}
	return t.Points
}

// QuestFromTemplate builds an active quest from t. Difficulty and rewards are
// derived from the template's points.
func QuestFromTemplate(t Template, id string, now time.Time) model.Quest {
	return model.Quest{
		ID:          id,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Difficulty:  progression.DifficultyForPoints(t.Points),
		Rewards:     progression.PointRewards(t.Points),
		Subtasks:    []model.Subtask{},
		TemplateID:  t.ID,
		CreatedAt:   now,
	}
}
