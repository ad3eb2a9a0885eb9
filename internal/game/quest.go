package game

import (
	"slices"

	"github.com/yash113gadia/CampusQuest/internal/model"
)

// addQuest appends a quest. A quest whose id is already present is ignored.
func addQuest(s State, a AddQuest) State {
	if a.ID == "" {
		return s
	}
	if _, exists := s.Quest(a.ID); exists {
		return s
	}
	q := cloneQuest(a.Quest)
	if q.Subtasks == nil {
		q.Subtasks = []model.Subtask{}
	}
	s.Quests = append(slices.Clone(s.Quests), q)
	return s
}

// completeQuest moves a quest from active to completed exactly once. Rewards
// are granted by the actions that follow it; see CompleteQuestWithRewards.
func (r Reducer) completeQuest(s State, a CompleteQuest) State {
	idx := slices.IndexFunc(s.Quests, func(q model.Quest) bool { return q.ID == a.QuestID })
	if idx < 0 || s.Quests[idx].IsCompleted {
		return s
	}

	now := r.now()
	quests := slices.Clone(s.Quests)
	quests[idx].IsCompleted = true
	quests[idx].CompletedAt = &now
	s.Quests = quests
	s.CurrentAction = model.ActionAttack

	if s.CurrentGuild != nil {
		g := cloneGuild(*s.CurrentGuild)
		if i := memberIndex(g, s.Character.ID); i >= 0 {
			g.TotalQuestsCompleted++
			g.Members[i].QuestsCompleted++
			s = withGuild(s, g)
		}
	}
	return s
}

func completeSubtask(s State, a CompleteSubtask) State {
	qi := slices.IndexFunc(s.Quests, func(q model.Quest) bool { return q.ID == a.QuestID })
	if qi < 0 {
		return s
	}
	si := slices.IndexFunc(s.Quests[qi].Subtasks, func(st model.Subtask) bool { return st.ID == a.SubtaskID })
	if si < 0 || s.Quests[qi].Subtasks[si].IsCompleted {
		return s
	}

	quests := slices.Clone(s.Quests)
	quests[qi].Subtasks = slices.Clone(quests[qi].Subtasks)
	quests[qi].Subtasks[si].IsCompleted = true
	s.Quests = quests
	return s
}

func deleteQuest(s State, a DeleteQuest) State {
	s.Quests = slices.DeleteFunc(slices.Clone(s.Quests), func(q model.Quest) bool {
		return q.ID == a.QuestID
	})
	return s
}
