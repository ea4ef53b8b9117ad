// Package progress implements the learner's progress ledger: completed lessons,
// unlocked units and daily goal counters.
//
// Ledger is an immutable value. Every operation returns a new Ledger and
// leaves the receiver untouched, which lets the transaction layer build a
// complete next state before publishing it.
package progress

import (
	"fmt"
	"maps"
	"slices"

	"github.com/phrazzld/medfluent/internal/domain"
	"github.com/phrazzld/medfluent/internal/domain/content"
)

// Ledger records what a learner has unlocked and completed. The completed and
// unlocked sets only ever grow.
type Ledger struct {
	completed map[content.LessonID]struct{}
	unlocked  map[content.UnitID]struct{}
	goals     DailyGoals
}

// CompletionDelta describes the effect of recording a lesson completion.
type CompletionDelta struct {
	LessonID         content.LessonID `json:"lesson_id"`
	AlreadyCompleted bool             `json:"already_completed"`
	// LessonsAdvanced is how far the daily lessons goal moved (0 or 1).
	LessonsAdvanced int `json:"lessons_advanced"`
}

// NewLedger builds a ledger from persisted or initial values. Goal counters
// are clamped into range.
func NewLedger(goals DailyGoals, unlocked []content.UnitID, completed []content.LessonID) Ledger {
	l := Ledger{
		completed: make(map[content.LessonID]struct{}, len(completed)),
		unlocked:  make(map[content.UnitID]struct{}, len(unlocked)),
		goals:     goals.normalized(),
	}
	for _, id := range completed {
		l.completed[id] = struct{}{}
	}
	for _, id := range unlocked {
		l.unlocked[id] = struct{}{}
	}
	return l
}

// IsCompleted reports whether the lesson is in the completed set.
func (l Ledger) IsCompleted(id content.LessonID) bool {
	_, ok := l.completed[id]
	return ok
}

// IsUnitUnlocked reports whether the learner may enter the unit. A unit that
// is locked in the catalog is never unlocked, whatever the ledger holds.
func (l Ledger) IsUnitUnlocked(u content.Unit) bool {
	if u.Locked {
		return false
	}
	_, ok := l.unlocked[u.ID]
	return ok
}

// IsLessonUnlocked reports whether the lesson at index of unit u is playable.
// The unit must be unlocked; lesson 0 is then always open and lesson i > 0
// opens once lesson i-1 is completed.
func (l Ledger) IsLessonUnlocked(u content.Unit, index int) bool {
	if index < 0 || index >= len(u.Lessons) || !l.IsUnitUnlocked(u) {
		return false
	}
	if index == 0 {
		return true
	}
	return l.IsCompleted(u.Lessons[index-1])
}

// AllCompleted reports whether every id is in the completed set. It is false
// for an empty list.
func (l Ledger) AllCompleted(ids []content.LessonID) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !l.IsCompleted(id) {
			return false
		}
	}
	return true
}

// RecordLessonCompletion adds id to the completed set. Recording a lesson
// twice is a no-op whose delta is flagged AlreadyCompleted; the daily lessons
// goal only advances on the first completion.
func (l Ledger) RecordLessonCompletion(id content.LessonID) (Ledger, CompletionDelta) {
	delta := CompletionDelta{LessonID: id}
	if l.IsCompleted(id) {
		delta.AlreadyCompleted = true
		return l, delta
	}

	next := l.clone()
	next.completed[id] = struct{}{}
	before := next.goals.Lessons.Current
	next.goals.Lessons = next.goals.Lessons.Advance(1)
	delta.LessonsAdvanced = next.goals.Lessons.Current - before
	return next, delta
}

// UnlockUnit adds the unit to the unlocked set. The boolean reports whether
// the unit was newly unlocked.
func (l Ledger) UnlockUnit(id content.UnitID) (Ledger, bool) {
	if _, ok := l.unlocked[id]; ok {
		return l, false
	}
	next := l.clone()
	next.unlocked[id] = struct{}{}
	return next, true
}

// AdvanceDailyGoal moves a daily goal counter by amount, capped at its target.
func (l Ledger) AdvanceDailyGoal(kind GoalKind, amount int) (Ledger, error) {
	if amount < 0 {
		return l, fmt.Errorf("%w: daily goal %s advanced by %d", domain.ErrNegativeAmount, kind, amount)
	}
	g, err := l.goals.Get(kind)
	if err != nil {
		return l, err
	}
	next := l.clone()
	next.goals = next.goals.with(kind, g.Advance(amount))
	return next, nil
}

// ResetDailyGoals zeroes the daily counters. It is called by the day-boundary
// collaborator.
func (l Ledger) ResetDailyGoals() Ledger {
	next := l.clone()
	next.goals = next.goals.Reset()
	return next
}

// Goals returns the current daily goals.
func (l Ledger) Goals() DailyGoals {
	return l.goals
}

// CompletedLessons returns the completed set, sorted.
func (l Ledger) CompletedLessons() []content.LessonID {
	return slices.Sorted(maps.Keys(l.completed))
}

// UnlockedUnits returns the unlocked set, sorted.
func (l Ledger) UnlockedUnits() []content.UnitID {
	return slices.Sorted(maps.Keys(l.unlocked))
}

func (l Ledger) clone() Ledger {
	next := Ledger{
		completed: make(map[content.LessonID]struct{}, len(l.completed)+1),
		unlocked:  make(map[content.UnitID]struct{}, len(l.unlocked)+1),
		goals:     l.goals,
	}
	maps.Copy(next.completed, l.completed)
	maps.Copy(next.unlocked, l.unlocked)
	return next
}
