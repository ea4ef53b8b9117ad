package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/api/shared"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/domain/transaction"
	"github.com/phrazzld/medfluent/internal/events"
	"github.com/phrazzld/medfluent/internal/platform/logger"
	"github.com/phrazzld/medfluent/internal/service/session"
)

// EventHistory returns the recent events of a learner.
type EventHistory interface {
	Recent(ctx context.Context, learnerID uuid.UUID, limit int) ([]*events.Event, error)
}

// LearnerHandler serves the endpoints of one learner session.
type LearnerHandler struct {
	session *session.Session
	history EventHistory
	logger  *slog.Logger
}

// NewLearnerHandler creates a handler. history may be nil, in which case the
// events endpoint answers 404.
func NewLearnerHandler(s *session.Session, history EventHistory, log *slog.Logger) *LearnerHandler {
	if s == nil {
		panic("session cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &LearnerHandler{
		session: s,
		history: history,
		logger:  log.With(slog.String("component", "learner_handler")),
	}
}

func (h *LearnerHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}

// ListUnits handles GET /api/units.
func (h *LearnerHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units := h.session.Units()
	resp := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		resp = append(resp, unitToResponse(u, nil))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetUnit handles GET /api/units/{unitID}.
func (h *LearnerHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	unitID, err := pathUnitID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	unit, err := h.session.Unit(unitID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load unit")
		return
	}
	lessons, err := h.session.Lessons(unitID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load unit")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, unitToResponse(unit, lessons))
}

// GetLesson handles GET /api/units/{unitID}/lessons/{lessonID}.
func (h *LearnerHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	unitID, err := pathUnitID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	lessonID, err := pathLessonID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	lesson, err := h.session.Lesson(unitID, lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load lesson")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lessonToResponse(lesson))
}

// GetWallet handles GET /api/wallet.
func (h *LearnerHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.session.Wallet())
}

// GetGoals handles GET /api/goals.
func (h *LearnerHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.session.Goals())
}

// GetInventory handles GET /api/inventory.
func (h *LearnerHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	inv := h.session.Inventory()
	shared.RespondWithJSON(w, r, http.StatusOK, InventoryResponse{Owned: inv.Owned(), Equipped: inv.Equipped()})
}

// ListShop handles GET /api/shop.
func (h *LearnerHandler) ListShop(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.session.ShopItems())
}

// SubmitAnswer handles POST /api/lessons/{lessonID}/answers.
func (h *LearnerHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathLessonID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SubmitAnswerRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.session.SubmitAnswer(r.Context(), lessonID, *req.ItemIndex, req.Response)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, answerToResponse(result))
}

// CompleteLesson handles POST /api/lessons/{lessonID}/complete. An empty
// body applies the catalog rewards.
func (h *LearnerHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathLessonID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CompleteLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	var result transaction.CompletionResult
	if req.XPReward == nil && req.CoinReward == nil {
		result, err = h.session.FinishLesson(r.Context(), lessonID)
	} else {
		xp, coins, lerr := h.session.LessonRewards(lessonID)
		if lerr != nil {
			HandleAPIError(w, r, lerr, "")
			return
		}
		if req.XPReward != nil {
			xp = *req.XPReward
		}
		if req.CoinReward != nil {
			coins = *req.CoinReward
		}
		result, err = h.session.CompleteLesson(r.Context(), lessonID, xp, coins)
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete lesson")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CompletionResponse{
		CompletionResult: result,
		Wallet:           h.session.Wallet(),
		Goals:            h.session.Goals(),
	})
}

// PurchaseItem handles POST /api/shop/{itemID}/purchase. Declined purchases
// answer 404 or 409 with the purchase status in the body.
func (h *LearnerHandler) PurchaseItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathItemID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.session.PurchaseItem(r.Context(), itemID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to purchase item")
		return
	}

	status := http.StatusOK
	switch result.Status {
	case transaction.PurchaseNotFound:
		status = http.StatusNotFound
	case transaction.PurchaseAlreadyOwned, transaction.PurchaseInsufficientFunds:
		status = http.StatusConflict
	}
	if status != http.StatusOK {
		h.log(r).Debug("purchase declined",
			slog.String("item_id", string(itemID)),
			slog.String("status", string(result.Status)))
	}
	shared.RespondWithJSON(w, r, status, purchaseToResponse(result))
}

// Equip handles POST /api/inventory/equip.
func (h *LearnerHandler) Equip(w http.ResponseWriter, r *http.Request) {
	var req EquipRequest
	if !h.decode(w, r, &req) {
		return
	}
	inv, err := h.session.Equip(r.Context(), economy.Category(req.Category), economy.ItemID(req.ItemID))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to equip item")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, InventoryResponse{Owned: inv.Owned(), Equipped: inv.Equipped()})
}

// LoseHeart handles POST /api/hearts/lose.
func (h *LearnerHandler) LoseHeart(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.session.LoseHeart(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update hearts")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wallet)
}

// GainHeart handles POST /api/hearts/gain.
func (h *LearnerHandler) GainHeart(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.session.GainHeart(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update hearts")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wallet)
}

// RecordSpeaking handles POST /api/goals/speaking.
func (h *LearnerHandler) RecordSpeaking(w http.ResponseWriter, r *http.Request) {
	var req SpeakingRequest
	if !h.decode(w, r, &req) {
		return
	}
	goals, err := h.session.RecordSpeaking(r.Context(), req.Count)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record speaking practice")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, goals)
}

// StartNewDay handles POST /api/day.
func (h *LearnerHandler) StartNewDay(w http.ResponseWriter, r *http.Request) {
	var req NewDayRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.session.StartNewDay(r.Context(), req.PractisedYesterday)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start new day")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		"wallet": state.Wallet,
		"goals":  state.Ledger.Goals(),
	})
}

// RecentEvents handles GET /api/events?limit=N.
func (h *LearnerHandler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Event history is not enabled")
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit: must be between 1 and 500")
			return
		}
		limit = n
	}
	list, err := h.history.Recent(r.Context(), h.session.LearnerID(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load events")
		return
	}
	if list == nil {
		list = []*events.Event{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// decode reads and validates a JSON body, writing a 400 response on failure.
func (h *LearnerHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
