package transaction

import (
	"fmt"

	"github.com/phrazzld/medfluent/internal/domain"
	"github.com/phrazzld/medfluent/internal/domain/content"
)

// CompletionResult reports what a CompleteLesson call granted.
type CompletionResult struct {
	LessonID         content.LessonID `json:"lesson_id"`
	AlreadyCompleted bool             `json:"already_completed"`
	XPGranted        int              `json:"xp_granted"`
	CoinsGranted     int              `json:"coins_granted"`
	LessonsAdvanced  int              `json:"lessons_advanced"`
	// UnitCompleted is set when this completion finished the owning unit.
	UnitCompleted bool `json:"unit_completed"`
	// UnlockedUnit is the unit newly unlocked by this completion, if any.
	UnlockedUnit *content.UnitID `json:"unlocked_unit,omitempty"`
}

// CompleteLesson finishes a lesson for the learner in s.
//
// If the lesson is already completed it returns s unchanged and a result
// flagged AlreadyCompleted with zero deltas, so replays never double-grant.
// Otherwise the returned state has, all together:
//  1. the lesson in the completed set,
//  2. the daily lessons goal advanced,
//  3. xpReward granted (and fed into the daily XP goal),
//  4. coinReward granted,
//  5. the catalog-next unit unlocked if every lesson of the owning unit is
//     now completed.
//
// It does not check that the lesson is unlocked; that precondition belongs to
// the caller.
func CompleteLesson(
	catalog *content.Catalog,
	s State,
	lessonID content.LessonID,
	xpReward int,
	coinReward int,
) (State, CompletionResult, error) {
	result := CompletionResult{LessonID: lessonID}

	if xpReward < 0 || coinReward < 0 {
		return s, result, fmt.Errorf("%w: rewards xp=%d coins=%d", domain.ErrNegativeAmount, xpReward, coinReward)
	}

	lesson, err := catalog.LessonByID(lessonID)
	if err != nil {
		return s, result, err
	}

	if s.Ledger.IsCompleted(lessonID) {
		result.AlreadyCompleted = true
		return s, result, nil
	}

	next := s
	ledger, delta := next.Ledger.RecordLessonCompletion(lessonID)
	next.Ledger = ledger
	result.LessonsAdvanced = delta.LessonsAdvanced

	next, err = GrantXP(next, xpReward)
	if err != nil {
		return s, CompletionResult{LessonID: lessonID}, err
	}
	result.XPGranted = xpReward

	wallet, err := next.Wallet.GrantCoins(coinReward)
	if err != nil {
		return s, CompletionResult{LessonID: lessonID}, err
	}
	next.Wallet = wallet
	result.CoinsGranted = coinReward

	unit, err := catalog.Unit(lesson.UnitID)
	if err != nil {
		return s, CompletionResult{LessonID: lessonID}, err
	}
	if next.Ledger.AllCompleted(unit.Lessons) {
		result.UnitCompleted = true
		if following, ok := catalog.NextUnit(unit.ID); ok {
			var added bool
			next.Ledger, added = next.Ledger.UnlockUnit(following.ID)
			if added {
				id := following.ID
				result.UnlockedUnit = &id
			}
		}
	}

	return next, result, nil
}
