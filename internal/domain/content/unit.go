package content

import "slices"

// UnitID identifies a unit. Units are ordered by their position in the
// catalog, not by id.
type UnitID int

// Unit is a top-level content grouping containing an ordered sequence of lessons.
type Unit struct {
	ID          UnitID     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon,omitempty"`
	Color       string     `json:"color,omitempty"`
	Lessons     []LessonID `json:"lessons"`
	// Locked is a hard gate set in the catalog definition. A locked unit is
	// never playable, whatever the learner's progress says.
	Locked       bool `json:"locked"`
	TotalLessons int  `json:"total_lessons"`
}

// LessonAt returns the id of the lesson at index i.
func (u Unit) LessonAt(i int) (LessonID, bool) {
	if i < 0 || i >= len(u.Lessons) {
		return "", false
	}
	return u.Lessons[i], true
}

func (u Unit) clone() Unit {
	u.Lessons = slices.Clone(u.Lessons)
	return u
}
