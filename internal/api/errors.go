package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/medfluent/internal/api/shared"
	"github.com/phrazzld/medfluent/internal/domain"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/service/session"
	"github.com/phrazzld/medfluent/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, session.ErrLessonLocked),
		errors.Is(err, domain.ErrConcurrentModification),
		errors.Is(err, store.ErrVersionConflict),
		errors.Is(err, economy.ErrNotOwned):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, content.ErrUnitNotFound):
		return "Unit not found"
	case errors.Is(err, content.ErrLessonNotFound):
		return "Lesson not found"
	case errors.Is(err, economy.ErrItemNotFound):
		return "Shop item not found"
	case errors.Is(err, session.ErrLessonLocked):
		return "Lesson is locked"
	case errors.Is(err, session.ErrItemOutOfRange):
		return "Item index out of range"
	case errors.Is(err, economy.ErrNotOwned):
		return "Item not owned"
	case errors.Is(err, domain.ErrConcurrentModification),
		errors.Is(err, store.ErrVersionConflict):
		return "Progress changed concurrently, please retry"
	case errors.Is(err, domain.ErrNegativeAmount):
		return "Amount cannot be negative"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. defaultMsg replaces the
// generic message for 500 responses when given.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a client message that
// names the offending field and rule.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", toSnake(fe.Field()), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// toSnake converts a Go field name to its JSON spelling. A run of capitals
// is one word, so ItemID becomes item_id and XPReward becomes xp_reward.
func toSnake(s string) string {
	isUpper := func(r rune) bool { return r >= 'A' && r <= 'Z' }
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if isUpper(r) {
			if i > 0 && (!isUpper(runes[i-1]) || (i+1 < len(runes) && !isUpper(runes[i+1]))) {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
