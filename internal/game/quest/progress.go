package quest

import (
	"maps"
	"time"
)

// Status of one accepted quest.
type Status string

const (
	// StatusActive: accepted, objectives in progress.
	StatusActive Status = "active"
	// StatusCompleted: every objective met, ready to turn in. The flip to
	// completed happens inside IncrementObjective, never separately.
	StatusCompleted Status = "completed"
)

// Progress tracks a single accepted quest. One record per accepted quest;
// all tracker functions treat Progress values as immutable and return
// updated copies.
type Progress struct {
	QuestID string
	Status  Status
	// ObjectiveProgress maps objective ID to its clamped count.
	ObjectiveProgress map[string]int
	AcceptedAt        time.Time
	CompletedAt       time.Time
}

// cloneProgress deep-copies p so updates never alias the caller's state.
func cloneProgress(p Progress) Progress {
	cp := p
	cp.ObjectiveProgress = make(map[string]int, len(p.ObjectiveProgress))
	maps.Copy(cp.ObjectiveProgress, p.ObjectiveProgress)
	return cp
}

// Accept appends a fresh active Progress for q to active and returns the new
// list. When the quest is already in the list the input is returned
// unchanged with ok=false; checking availability beforehand is the caller's
// responsibility.
//
// Postcondition: on ok, the returned list has exactly one entry for q.ID,
// with all objective counts zero and StatusActive.
func Accept(q *Quest, active []Progress, now time.Time) ([]Progress, bool) {
	for _, p := range active {
		if p.QuestID == q.ID {
			return active, false
		}
	}
	progress := Progress{
		QuestID:           q.ID,
		Status:            StatusActive,
		ObjectiveProgress: make(map[string]int, len(q.Objectives)),
		AcceptedAt:        now,
	}
	for _, obj := range q.Objectives {
		progress.ObjectiveProgress[obj.ID] = 0
	}
	out := make([]Progress, 0, len(active)+1)
	out = append(out, active...)
	out = append(out, progress)
	return out, true
}

// IncrementObjective adds amount to every matching objective of every active
// quest and returns the updated list. An objective matches when its trigger
// equals trigger and its target is empty or equals targetID. Counts clamp at
// the objective's required count. When the increment satisfies the last
// outstanding objective of a quest, that quest's status flips to
// StatusCompleted as a side effect of this call.
//
// Quests already completed (awaiting turn-in) are not modified. Unknown
// quest IDs in active are carried through untouched.
//
// Postcondition: no objective count exceeds its required count; a quest is
// StatusCompleted iff every objective count equals its required count.
func IncrementObjective(defs *Registry, active []Progress, trigger, targetID string, amount int, now time.Time) []Progress {
	if amount <= 0 {
		return active
	}
	out := make([]Progress, len(active))
	for i, p := range active {
		if p.Status != StatusActive {
			out[i] = p
			continue
		}
		def, ok := defs.Get(p.QuestID)
		if !ok {
			out[i] = p
			continue
		}
		updated := cloneProgress(p)
		touched := false
		for _, obj := range def.Objectives {
			if obj.Trigger != trigger {
				continue
			}
			if obj.TargetID != "" && obj.TargetID != targetID {
				continue
			}
			count := updated.ObjectiveProgress[obj.ID] + amount
			if count > obj.RequiredCount {
				count = obj.RequiredCount
			}
			if count != updated.ObjectiveProgress[obj.ID] {
				updated.ObjectiveProgress[obj.ID] = count
				touched = true
			}
		}
		if touched && allObjectivesMet(def, updated) {
			updated.Status = StatusCompleted
			updated.CompletedAt = now
		}
		if touched {
			out[i] = updated
		} else {
			out[i] = p
		}
	}
	return out
}

// allObjectivesMet reports whether every objective of def has reached its
// required count in p.
func allObjectivesMet(def *Quest, p Progress) bool {
	for _, obj := range def.Objectives {
		if p.ObjectiveProgress[obj.ID] < obj.RequiredCount {
			return false
		}
	}
	return true
}

// TurnInResult is the outcome of a Complete call.
type TurnInResult struct {
	Active       []Progress
	CompletedIDs []string
	// OK is false when the quest was not found or not yet completed; the
	// lists are then the inputs unchanged.
	OK bool
}

// Complete moves questID from the active list to the completed-IDs list.
// Fails (returns the inputs unchanged, OK=false) when the quest is not in
// the active list or has not reached StatusCompleted. Applying the quest's
// static reward definition is the caller's responsibility.
func Complete(active []Progress, completedIDs []string, questID string) TurnInResult {
	for i, p := range active {
		if p.QuestID != questID {
			continue
		}
		if p.Status != StatusCompleted {
			return TurnInResult{Active: active, CompletedIDs: completedIDs}
		}
		outActive := make([]Progress, 0, len(active)-1)
		outActive = append(outActive, active[:i]...)
		outActive = append(outActive, active[i+1:]...)
		outCompleted := make([]string, 0, len(completedIDs)+1)
		outCompleted = append(outCompleted, completedIDs...)
		outCompleted = append(outCompleted, questID)
		return TurnInResult{Active: outActive, CompletedIDs: outCompleted, OK: true}
	}
	return TurnInResult{Active: active, CompletedIDs: completedIDs}
}

// Abandon removes questID from the active list unconditionally. No rewards,
// no record kept; re-accepting later starts from zero.
func Abandon(active []Progress, questID string) []Progress {
	out := make([]Progress, 0, len(active))
	for _, p := range active {
		if p.QuestID != questID {
			out = append(out, p)
		}
	}
	return out
}
