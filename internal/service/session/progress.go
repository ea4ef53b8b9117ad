package session

import (
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/progress"
)

// UnitProgress is a unit together with the learner's standing in it.
type UnitProgress struct {
	content.Unit
	Unlocked  bool `json:"unlocked"`
	Completed int  `json:"completed_lessons"`
}

// LessonProgress is a lesson together with the learner's standing in it.
type LessonProgress struct {
	content.Lesson
	Index     int  `json:"index"`
	Unlocked  bool `json:"unlocked"`
	Completed bool `json:"completed"`
}

// Units lists every unit in catalog order.
func (s *Session) Units() []UnitProgress {
	ledger := s.State().Ledger
	units := s.catalog.Units()
	out := make([]UnitProgress, len(units))
	for i, u := range units {
		out[i] = unitProgress(u, ledger)
	}
	return out
}

// Unit returns one unit with progress.
func (s *Session) Unit(id content.UnitID) (UnitProgress, error) {
	u, err := s.catalog.Unit(id)
	if err != nil {
		return UnitProgress{}, err
	}
	return unitProgress(u, s.State().Ledger), nil
}

// Lessons lists the lessons of a unit in order.
func (s *Session) Lessons(unitID content.UnitID) ([]LessonProgress, error) {
	u, err := s.catalog.Unit(unitID)
	if err != nil {
		return nil, err
	}
	ledger := s.State().Ledger
	out := make([]LessonProgress, 0, len(u.Lessons))
	for i, id := range u.Lessons {
		l, err := s.catalog.Lesson(unitID, id)
		if err != nil {
			return nil, err
		}
		out = append(out, LessonProgress{
			Lesson:    l,
			Index:     i,
			Unlocked:  ledger.IsLessonUnlocked(u, i),
			Completed: ledger.IsCompleted(id),
		})
	}
	return out, nil
}

// Lesson returns one lesson of a unit with progress.
func (s *Session) Lesson(unitID content.UnitID, lessonID content.LessonID) (LessonProgress, error) {
	l, err := s.catalog.Lesson(unitID, lessonID)
	if err != nil {
		return LessonProgress{}, err
	}
	u, err := s.catalog.Unit(unitID)
	if err != nil {
		return LessonProgress{}, err
	}
	idx, err := s.catalog.LessonIndex(lessonID)
	if err != nil {
		return LessonProgress{}, err
	}
	ledger := s.State().Ledger
	return LessonProgress{
		Lesson:    l,
		Index:     idx,
		Unlocked:  ledger.IsLessonUnlocked(u, idx),
		Completed: ledger.IsCompleted(lessonID),
	}, nil
}

// IsUnitUnlocked reports whether the unit is playable.
func (s *Session) IsUnitUnlocked(id content.UnitID) (bool, error) {
	u, err := s.catalog.Unit(id)
	if err != nil {
		return false, err
	}
	return s.State().Ledger.IsUnitUnlocked(u), nil
}

// IsLessonUnlocked reports whether the lesson is playable: its unit is
// unlocked and it is either the first lesson of the unit or the lesson right
// before it is completed.
func (s *Session) IsLessonUnlocked(unitID content.UnitID, lessonID content.LessonID) (bool, error) {
	lp, err := s.Lesson(unitID, lessonID)
	if err != nil {
		return false, err
	}
	return lp.Unlocked, nil
}

func unitProgress(u content.Unit, ledger progress.Ledger) UnitProgress {
	done := 0
	for _, id := range u.Lessons {
		if ledger.IsCompleted(id) {
			done++
		}
	}
	return UnitProgress{Unit: u, Unlocked: ledger.IsUnitUnlocked(u), Completed: done}
}
