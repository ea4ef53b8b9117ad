package content

import (
	"fmt"
	"strings"

	"github.com/phrazzld/medfluent/internal/domain"
)

// LessonID is the globally unique identity of a lesson. It is also the key of
// the progress ledger's completed set.
type LessonID string

// LessonType tags the shape of a lesson's items.
type LessonType string

// The closed set of lesson types.
const (
	LessonTypeVocabulary  LessonType = "vocabulary"
	LessonTypePhraseDrill LessonType = "phrase_drill"
	LessonTypeDialogue    LessonType = "dialogue"
)

// IsValid reports whether t is one of the known lesson types.
func (t LessonType) IsValid() bool {
	switch t {
	case LessonTypeVocabulary, LessonTypePhraseDrill, LessonTypeDialogue:
		return true
	}
	return false
}

// Lesson is a single playable piece of content.
type Lesson struct {
	ID       LessonID   `json:"id"`
	UnitID   UnitID     `json:"unit_id"` // back-reference only
	Title    string     `json:"title"`
	Type     LessonType `json:"type"`
	XPReward int        `json:"xp_reward"`
	Items    []Item     `json:"-"`
}

// Validate checks the lesson on its own, without looking at its unit.
func (l Lesson) Validate() error {
	if strings.TrimSpace(string(l.ID)) == "" {
		return fmt.Errorf("%w: %w: lesson id is empty", domain.ErrValidation, domain.ErrInvalidID)
	}
	if !l.Type.IsValid() {
		return fmt.Errorf("%w: %q (lesson %s)", ErrInvalidLessonType, l.Type, l.ID)
	}
	if l.XPReward < 0 {
		return fmt.Errorf("%w: %w: xp reward of lesson %s", domain.ErrValidation, domain.ErrNegativeAmount, l.ID)
	}
	if len(l.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyLesson, l.ID)
	}
	for i, item := range l.Items {
		if item == nil || item.Kind() != l.Type {
			return fmt.Errorf("%w: lesson %s item %d", ErrItemTypeMismatch, l.ID, i)
		}
		if err := validateItem(item); err != nil {
			return fmt.Errorf("lesson %s item %d: %w", l.ID, i, err)
		}
	}
	return nil
}

func (l Lesson) clone() Lesson {
	items := make([]Item, len(l.Items))
	for i, item := range l.Items {
		items[i] = cloneItem(item)
	}
	l.Items = items
	return l
}
