package progress

import (
	"fmt"

	"github.com/phrazzld/medfluent/internal/domain"
)

// GoalKind names one of the daily goal counters.
type GoalKind string

// Daily goal kinds.
const (
	GoalXP       GoalKind = "xp"
	GoalLessons  GoalKind = "lessons"
	GoalSpeaking GoalKind = "speaking"
)

// ErrUnknownGoal is returned for a goal kind outside the known set.
var ErrUnknownGoal = fmt.Errorf("%w: unknown daily goal", domain.ErrValidation)

// Goal is a capped counter: 0 <= Current <= Target always holds.
type Goal struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

// NewGoal returns a goal with current clamped into [0, target].
func NewGoal(current, target int) Goal {
	if target < 0 {
		target = 0
	}
	return Goal{Current: clamp(current, 0, target), Target: target}
}

// Advance adds amount to the counter without passing the target.
// Negative amounts leave the goal unchanged.
func (g Goal) Advance(amount int) Goal {
	if amount <= 0 {
		return g
	}
	return NewGoal(g.Current+min(amount, g.Target-g.Current), g.Target)
}

// Met reports whether the counter reached its target.
func (g Goal) Met() bool {
	return g.Target > 0 && g.Current >= g.Target
}

// DailyGoals groups the per-day counters.
type DailyGoals struct {
	XP       Goal `json:"xp"`
	Lessons  Goal `json:"lessons"`
	Speaking Goal `json:"speaking"`
}

// normalized re-applies the clamping invariant to every counter.
func (d DailyGoals) normalized() DailyGoals {
	return DailyGoals{
		XP:       NewGoal(d.XP.Current, d.XP.Target),
		Lessons:  NewGoal(d.Lessons.Current, d.Lessons.Target),
		Speaking: NewGoal(d.Speaking.Current, d.Speaking.Target),
	}
}

// Get returns the goal of the given kind.
func (d DailyGoals) Get(kind GoalKind) (Goal, error) {
	switch kind {
	case GoalXP:
		return d.XP, nil
	case GoalLessons:
		return d.Lessons, nil
	case GoalSpeaking:
		return d.Speaking, nil
	}
	return Goal{}, fmt.Errorf("%w: %q", ErrUnknownGoal, kind)
}

func (d DailyGoals) with(kind GoalKind, g Goal) DailyGoals {
	switch kind {
	case GoalXP:
		d.XP = g
	case GoalLessons:
		d.Lessons = g
	case GoalSpeaking:
		d.Speaking = g
	}
	return d
}

// Reset zeroes every counter and keeps the targets.
func (d DailyGoals) Reset() DailyGoals {
	d.XP.Current = 0
	d.Lessons.Current = 0
	d.Speaking.Current = 0
	return d
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
