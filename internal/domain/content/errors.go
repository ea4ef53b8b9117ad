package content

import (
	"fmt"

	"github.com/phrazzld/medfluent/internal/domain"
)

// Lookup errors. Both wrap domain.ErrNotFound.
var (
	// ErrUnitNotFound is returned when a unit id is not part of the catalog.
	ErrUnitNotFound = fmt.Errorf("%w: unit", domain.ErrNotFound)

	// ErrLessonNotFound is returned when a lesson id is unknown, or when it
	// belongs to a different unit than the one requested.
	ErrLessonNotFound = fmt.Errorf("%w: lesson", domain.ErrNotFound)
)

// Catalog build errors. All wrap domain.ErrValidation.
var (
	ErrDuplicateUnit     = fmt.Errorf("%w: duplicate unit id", domain.ErrValidation)
	ErrDuplicateLesson   = fmt.Errorf("%w: duplicate lesson id", domain.ErrValidation)
	ErrUnknownLesson     = fmt.Errorf("%w: unit references unknown lesson", domain.ErrValidation)
	ErrOrphanLesson      = fmt.Errorf("%w: lesson is not listed by its unit", domain.ErrValidation)
	ErrInvalidLessonType = fmt.Errorf("%w: invalid lesson type", domain.ErrValidation)
	ErrEmptyLesson       = fmt.Errorf("%w: lesson has no items", domain.ErrValidation)
	ErrItemTypeMismatch  = fmt.Errorf("%w: item does not match lesson type", domain.ErrValidation)
	ErrInvalidItem       = fmt.Errorf("%w: invalid item", domain.ErrValidation)
	ErrInvalidTotal      = fmt.Errorf("%w: total lessons smaller than lesson list", domain.ErrValidation)
)
