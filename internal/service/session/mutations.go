package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/domain/evaluate"
	"github.com/phrazzld/medfluent/internal/domain/progress"
	"github.com/phrazzld/medfluent/internal/domain/transaction"
	"github.com/phrazzld/medfluent/internal/events"
	"github.com/phrazzld/medfluent/internal/platform/logger"
)

// AnswerResult is the outcome of SubmitAnswer.
type AnswerResult struct {
	evaluate.Verdict
	HeartLost bool `json:"heart_lost"`
	Hearts    int  `json:"hearts"`
}

// playable resolves a lesson and checks the learner may act on it. Completed
// lessons stay playable for practice.
func (s *Session) playable(state transaction.State, lessonID content.LessonID) (content.Lesson, error) {
	lesson, err := s.catalog.LessonByID(lessonID)
	if err != nil {
		return content.Lesson{}, err
	}
	if state.Ledger.IsCompleted(lessonID) {
		return lesson, nil
	}
	unit, err := s.catalog.Unit(lesson.UnitID)
	if err != nil {
		return content.Lesson{}, err
	}
	idx, err := s.catalog.LessonIndex(lessonID)
	if err != nil {
		return content.Lesson{}, err
	}
	if !state.Ledger.IsLessonUnlocked(unit, idx) {
		return content.Lesson{}, fmt.Errorf("%w: %s", ErrLessonLocked, lessonID)
	}
	return lesson, nil
}

// SubmitAnswer evaluates a response to item itemIndex of a lesson. A wrong
// answer costs one heart while the learner has any left.
func (s *Session) SubmitAnswer(
	ctx context.Context,
	lessonID content.LessonID,
	itemIndex int,
	response string,
) (AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prev := s.state.Load()
	lesson, err := s.playable(*prev, lessonID)
	if err != nil {
		return AnswerResult{}, err
	}
	if itemIndex < 0 || itemIndex >= len(lesson.Items) {
		return AnswerResult{}, fmt.Errorf("%w: %d of lesson %s", ErrItemOutOfRange, itemIndex, lessonID)
	}

	result := AnswerResult{
		Verdict: s.evaluator.Evaluate(lesson, lesson.Items[itemIndex], response),
		Hearts:  prev.Wallet.Hearts,
	}
	if result.Correct || prev.Wallet.OutOfHearts() {
		return result, nil
	}

	next := *prev
	next.Wallet = prev.Wallet.LoseHeart()
	if err := s.commit(ctx, prev, next); err != nil {
		return AnswerResult{}, err
	}
	result.HeartLost = true
	result.Hearts = next.Wallet.Hearts

	log.Debug("wrong answer cost a heart",
		slog.String("lesson_id", string(lessonID)),
		slog.Int("item_index", itemIndex),
		slog.Int("hearts", next.Wallet.Hearts))

	s.emitHearts(ctx, next.Wallet, "wrong_answer")
	return result, nil
}

// CompleteLesson finishes a lesson with explicit rewards. Replays of a
// completed lesson return a result flagged AlreadyCompleted and grant
// nothing. A lesson that is neither completed nor unlocked yields
// ErrLessonLocked.
func (s *Session) CompleteLesson(
	ctx context.Context,
	lessonID content.LessonID,
	xpReward int,
	coinReward int,
) (transaction.CompletionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prev := s.state.Load()
	if _, err := s.playable(*prev, lessonID); err != nil {
		return transaction.CompletionResult{LessonID: lessonID}, err
	}

	next, result, err := transaction.CompleteLesson(s.catalog, *prev, lessonID, xpReward, coinReward)
	if err != nil {
		return result, err
	}
	if result.AlreadyCompleted {
		log.Debug("lesson already completed", slog.String("lesson_id", string(lessonID)))
		return result, nil
	}
	if err := s.commit(ctx, prev, next); err != nil {
		return transaction.CompletionResult{LessonID: lessonID}, err
	}

	logGoalsMet(log, prev.Ledger.Goals(), next.Ledger.Goals())
	log.Info("lesson completed",
		slog.String("lesson_id", string(lessonID)),
		slog.Int("xp", result.XPGranted),
		slog.Int("coins", result.CoinsGranted))

	s.emit(ctx, events.TypeLessonCompleted, events.LessonCompletedPayload{
		LessonID:     lessonID,
		XPGranted:    result.XPGranted,
		CoinsGranted: result.CoinsGranted,
	})
	if result.UnlockedUnit != nil {
		log.Info("unit unlocked", slog.Int("unit_id", int(*result.UnlockedUnit)))
		s.emit(ctx, events.TypeUnitUnlocked, events.UnitUnlockedPayload{UnitID: *result.UnlockedUnit})
	}
	return result, nil
}

// FinishLesson completes a lesson with its catalog rewards: the lesson's XP
// and a coin bonus of XP divided by the configured divisor.
func (s *Session) FinishLesson(ctx context.Context, lessonID content.LessonID) (transaction.CompletionResult, error) {
	xp, coins, err := s.LessonRewards(lessonID)
	if err != nil {
		return transaction.CompletionResult{LessonID: lessonID}, err
	}
	return s.CompleteLesson(ctx, lessonID, xp, coins)
}

// LessonRewards returns the XP and coins a lesson grants by default.
func (s *Session) LessonRewards(lessonID content.LessonID) (xp, coins int, err error) {
	lesson, err := s.catalog.LessonByID(lessonID)
	if err != nil {
		return 0, 0, err
	}
	return lesson.XPReward, lesson.XPReward / s.coinDivisor, nil
}

// PurchaseItem buys a shop item. Business failures (unknown item, already
// owned, not enough coins) are reported in the result status, not as errors.
func (s *Session) PurchaseItem(ctx context.Context, itemID economy.ItemID) (transaction.PurchaseResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prev := s.state.Load()
	next, result := transaction.PurchaseItem(*prev, itemID)
	if !result.Succeeded() {
		log.Debug("purchase declined",
			slog.String("item_id", string(itemID)),
			slog.String("status", string(result.Status)))
		return result, nil
	}
	if err := s.commit(ctx, prev, next); err != nil {
		return transaction.PurchaseResult{ItemID: itemID}, err
	}

	log.Info("item purchased",
		slog.String("item_id", string(itemID)),
		slog.Int("price", result.Price),
		slog.Int("coins_remaining", result.CoinsRemaining))

	s.emit(ctx, events.TypeItemPurchased, events.ItemPurchasedPayload{
		ItemID:   itemID,
		Category: result.Category,
		Price:    result.Price,
	})
	return result, nil
}

// LoseHeart removes one heart, flooring at zero.
func (s *Session) LoseHeart(ctx context.Context) (economy.Wallet, error) {
	return s.updateWallet(ctx, "lose_heart", economy.Wallet.LoseHeart)
}

// GainHeart adds one heart, capped at the wallet maximum.
func (s *Session) GainHeart(ctx context.Context) (economy.Wallet, error) {
	return s.updateWallet(ctx, "gain_heart", economy.Wallet.GainHeart)
}

func (s *Session) updateWallet(ctx context.Context, reason string, fn func(economy.Wallet) economy.Wallet) (economy.Wallet, error) {
	prev := s.state.Load()
	next := *prev
	next.Wallet = fn(prev.Wallet)
	if next.Wallet == prev.Wallet {
		return prev.Wallet, nil
	}
	if err := s.commit(ctx, prev, next); err != nil {
		return prev.Wallet, err
	}
	s.emitHearts(ctx, next.Wallet, reason)
	return next.Wallet, nil
}

func (s *Session) emitHearts(ctx context.Context, w economy.Wallet, reason string) {
	if w.OutOfHearts() {
		s.emit(ctx, events.TypeHeartsDepleted, nil)
		return
	}
	s.emit(ctx, events.TypeStateChanged, events.StateChangedPayload{Reason: reason})
}

// Equip puts an owned item on the learner's avatar.
func (s *Session) Equip(ctx context.Context, cat economy.Category, id economy.ItemID) (economy.Inventory, error) {
	prev := s.state.Load()
	inv, err := prev.Inventory.Equip(cat, id)
	if err != nil {
		return prev.Inventory, err
	}
	next := *prev
	next.Inventory = inv
	if err := s.commit(ctx, prev, next); err != nil {
		return prev.Inventory, err
	}
	s.emit(ctx, events.TypeStateChanged, events.StateChangedPayload{Reason: "equip"})
	return inv, nil
}

// RecordSpeaking advances the speaking goal by count practice attempts.
func (s *Session) RecordSpeaking(ctx context.Context, count int) (progress.DailyGoals, error) {
	prev := s.state.Load()
	ledger, err := prev.Ledger.AdvanceDailyGoal(progress.GoalSpeaking, count)
	if err != nil {
		return prev.Ledger.Goals(), err
	}
	next := *prev
	next.Ledger = ledger
	if err := s.commit(ctx, prev, next); err != nil {
		return prev.Ledger.Goals(), err
	}
	logGoalsMet(logger.FromContextOrDefault(ctx, s.logger), prev.Ledger.Goals(), ledger.Goals())
	s.emit(ctx, events.TypeStateChanged, events.StateChangedPayload{Reason: "speaking"})
	return ledger.Goals(), nil
}

// logGoalsMet logs each daily goal that reached its target between before
// and after.
func logGoalsMet(log *slog.Logger, before, after progress.DailyGoals) {
	goals := []struct {
		kind          progress.GoalKind
		before, after progress.Goal
	}{
		{progress.GoalXP, before.XP, after.XP},
		{progress.GoalLessons, before.Lessons, after.Lessons},
		{progress.GoalSpeaking, before.Speaking, after.Speaking},
	}
	for _, g := range goals {
		if !g.before.Met() && g.after.Met() {
			log.Info("daily goal met",
				slog.String("goal", string(g.kind)),
				slog.Int("target", g.after.Target))
		}
	}
}

// StartNewDay resets the daily goal counters and moves the streak: it grows
// when the learner practised on the previous day and resets otherwise.
func (s *Session) StartNewDay(ctx context.Context, practisedYesterday bool) (transaction.State, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prev := s.state.Load()
	next := *prev
	next.Ledger = prev.Ledger.ResetDailyGoals()
	if practisedYesterday {
		next.Wallet = prev.Wallet.IncrementStreak()
	} else {
		next.Wallet = prev.Wallet.ResetStreak()
	}
	if err := s.commit(ctx, prev, next); err != nil {
		return *prev, err
	}

	log.Info("new day started", slog.Int("streak", next.Wallet.Streak))
	s.emit(ctx, events.TypeStateChanged, events.StateChangedPayload{Reason: "new_day"})
	return next, nil
}
