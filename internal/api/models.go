package api

import (
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/domain/progress"
	"github.com/phrazzld/medfluent/internal/domain/transaction"
	"github.com/phrazzld/medfluent/internal/service/session"
)

// SubmitAnswerRequest is the body of POST /api/lessons/{lessonID}/answers.
type SubmitAnswerRequest struct {
	ItemIndex *int   `json:"item_index" validate:"required,min=0"`
	Response  string `json:"response"   validate:"max=500"`
}

// CompleteLessonRequest is the optional body of POST
// /api/lessons/{lessonID}/complete. Without it the catalog rewards apply.
type CompleteLessonRequest struct {
	XPReward   *int `json:"xp_reward"   validate:"omitempty,min=0,max=10000"`
	CoinReward *int `json:"coin_reward" validate:"omitempty,min=0,max=10000"`
}

// EquipRequest is the body of POST /api/inventory/equip.
type EquipRequest struct {
	Category string `json:"category" validate:"required"`
	ItemID   string `json:"item_id"  validate:"required"`
}

// SpeakingRequest is the body of POST /api/goals/speaking.
type SpeakingRequest struct {
	Count int `json:"count" validate:"min=1,max=100"`
}

// NewDayRequest is the body of POST /api/day.
type NewDayRequest struct {
	PractisedYesterday bool `json:"practised_yesterday"`
}

// UnitResponse describes a unit and the learner's progress in it.
type UnitResponse struct {
	ID           content.UnitID  `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Icon         string          `json:"icon,omitempty"`
	Color        string          `json:"color,omitempty"`
	Locked       bool            `json:"locked"`
	Unlocked     bool            `json:"unlocked"`
	TotalLessons int             `json:"total_lessons"`
	Completed    int             `json:"completed_lessons"`
	Lessons      []LessonSummary `json:"lessons,omitempty"`
}

// LessonSummary is a lesson without its items.
type LessonSummary struct {
	ID        content.LessonID   `json:"id"`
	Title     string             `json:"title"`
	Type      content.LessonType `json:"type"`
	XPReward  int                `json:"xp_reward"`
	Index     int                `json:"index"`
	Unlocked  bool               `json:"unlocked"`
	Completed bool               `json:"completed"`
}

// LessonResponse is a lesson with its playable items. Answers are not
// included; responses are checked server side.
type LessonResponse struct {
	LessonSummary
	UnitID content.UnitID `json:"unit_id"`
	Items  []ItemView     `json:"items"`
}

// ItemView is the client view of a lesson item.
type ItemView struct {
	Kind          content.LessonType `json:"kind"`
	English       string             `json:"english,omitempty"`
	Spanish       string             `json:"spanish,omitempty"`
	Pronunciation string             `json:"pronunciation,omitempty"`
	PromptEN      string             `json:"prompt_en,omitempty"`
	Speaker       string             `json:"speaker,omitempty"`
	TextEN        string             `json:"text_en,omitempty"`
	TextES        string             `json:"text_es,omitempty"`
	Options       []OptionView       `json:"options,omitempty"`
}

// OptionView is a dialogue option without its correctness flag.
type OptionView struct {
	Text     string `json:"text"`
	Response string `json:"response"`
}

// AnswerResponse is the outcome of an answer submission.
type AnswerResponse struct {
	Correct   bool   `json:"correct"`
	Expected  string `json:"expected,omitempty"`
	HeartLost bool   `json:"heart_lost"`
	Hearts    int    `json:"hearts"`
}

// CompletionResponse is the outcome of a lesson completion.
type CompletionResponse struct {
	transaction.CompletionResult
	Wallet economy.Wallet      `json:"wallet"`
	Goals  progress.DailyGoals `json:"goals"`
}

// PurchaseResponse is the outcome of a purchase attempt.
type PurchaseResponse struct {
	ItemID         economy.ItemID             `json:"item_id"`
	Status         transaction.PurchaseStatus `json:"status"`
	Category       economy.Category           `json:"category,omitempty"`
	Price          int                        `json:"price,omitempty"`
	CoinsRemaining int                        `json:"coins_remaining"`
}

// InventoryResponse lists owned and equipped items per category.
type InventoryResponse struct {
	Owned    map[economy.Category][]economy.ItemID `json:"owned"`
	Equipped map[economy.Category]economy.ItemID   `json:"equipped"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func unitToResponse(u session.UnitProgress, lessons []session.LessonProgress) UnitResponse {
	resp := UnitResponse{
		ID:           u.ID,
		Name:         u.Name,
		Description:  u.Description,
		Icon:         u.Icon,
		Color:        u.Color,
		Locked:       u.Locked,
		Unlocked:     u.Unlocked,
		TotalLessons: u.TotalLessons,
		Completed:    u.Completed,
	}
	for _, l := range lessons {
		resp.Lessons = append(resp.Lessons, lessonSummary(l))
	}
	return resp
}

func lessonSummary(l session.LessonProgress) LessonSummary {
	return LessonSummary{
		ID:        l.ID,
		Title:     l.Title,
		Type:      l.Type,
		XPReward:  l.XPReward,
		Index:     l.Index,
		Unlocked:  l.Unlocked,
		Completed: l.Completed,
	}
}

func lessonToResponse(l session.LessonProgress) LessonResponse {
	resp := LessonResponse{
		LessonSummary: lessonSummary(l),
		UnitID:        l.UnitID,
		Items:         make([]ItemView, 0, len(l.Items)),
	}
	for _, item := range l.Items {
		resp.Items = append(resp.Items, itemView(item))
	}
	return resp
}

func itemView(item content.Item) ItemView {
	switch it := item.(type) {
	case content.VocabularyItem:
		return ItemView{
			Kind:          it.Kind(),
			English:       it.English,
			Spanish:       it.Spanish,
			Pronunciation: it.Pronunciation,
		}
	case content.PhraseDrillItem:
		return ItemView{Kind: it.Kind(), PromptEN: it.PromptEN}
	case content.DialogueItem:
		view := ItemView{Kind: it.Kind(), Speaker: it.Speaker, TextEN: it.TextEN, TextES: it.TextES}
		for _, o := range it.Options {
			view.Options = append(view.Options, OptionView{Text: o.Text, Response: o.Response})
		}
		return view
	default:
		return ItemView{}
	}
}

func answerToResponse(a session.AnswerResult) AnswerResponse {
	return AnswerResponse{
		Correct:   a.Correct,
		Expected:  a.Expected,
		HeartLost: a.HeartLost,
		Hearts:    a.Hearts,
	}
}

func purchaseToResponse(p transaction.PurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		ItemID:         p.ItemID,
		Status:         p.Status,
		Category:       p.Category,
		Price:          p.Price,
		CoinsRemaining: p.CoinsRemaining,
	}
}
