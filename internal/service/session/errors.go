package session

import (
	"fmt"

	"github.com/phrazzld/medfluent/internal/domain"
)

var (
	// ErrLessonLocked is returned when a learner acts on a lesson that is
	// neither completed nor unlocked.
	ErrLessonLocked = fmt.Errorf("%w: lesson is locked", domain.ErrInvalidTransition)

	// ErrItemOutOfRange is returned when an answer names an item index the
	// lesson does not have.
	ErrItemOutOfRange = fmt.Errorf("%w: item index out of range", domain.ErrValidation)
)
