package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/medfluent/internal/domain"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
)

// pathUnitID parses the {unitID} path parameter.
func pathUnitID(r *http.Request) (content.UnitID, error) {
	raw := chi.URLParam(r, "unitID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: unit id %q", domain.ErrInvalidID, raw)
	}
	return content.UnitID(id), nil
}

// pathLessonID returns the {lessonID} path parameter.
func pathLessonID(r *http.Request) (content.LessonID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "lessonID"))
	if raw == "" {
		return "", fmt.Errorf("%w: empty lesson id", domain.ErrInvalidID)
	}
	return content.LessonID(raw), nil
}

// pathItemID returns the {itemID} path parameter.
func pathItemID(r *http.Request) (economy.ItemID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "itemID"))
	if raw == "" {
		return "", fmt.Errorf("%w: empty item id", domain.ErrInvalidID)
	}
	return economy.ItemID(raw), nil
}
