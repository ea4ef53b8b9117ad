package content

import "fmt"

// Catalog is the read-only registry of units and lessons.
type Catalog struct {
	units     []Unit
	unitPos   map[UnitID]int
	lessons   map[LessonID]Lesson
	lessonPos map[LessonID]int
}

// NewCatalog builds a catalog from units in display order and the lessons they
// reference. It validates that ids are unique, that every lesson listed by a
// unit exists and points back at that unit, and that every lesson is well formed.
// The inputs are copied; later changes to them do not affect the catalog.
func NewCatalog(units []Unit, lessons []Lesson) (*Catalog, error) {
	c := &Catalog{
		units:     make([]Unit, 0, len(units)),
		unitPos:   make(map[UnitID]int, len(units)),
		lessons:   make(map[LessonID]Lesson, len(lessons)),
		lessonPos: make(map[LessonID]int, len(lessons)),
	}

	for _, l := range lessons {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.lessons[l.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLesson, l.ID)
		}
		c.lessons[l.ID] = l.clone()
	}

	for _, u := range units {
		if _, dup := c.unitPos[u.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateUnit, u.ID)
		}
		for i, id := range u.Lessons {
			l, ok := c.lessons[id]
			if !ok {
				return nil, fmt.Errorf("%w: unit %d lists %s", ErrUnknownLesson, u.ID, id)
			}
			if l.UnitID != u.ID {
				return nil, fmt.Errorf("%w: lesson %s belongs to unit %d, listed by unit %d",
					ErrOrphanLesson, id, l.UnitID, u.ID)
			}
			if _, dup := c.lessonPos[id]; dup {
				return nil, fmt.Errorf("%w: %s listed twice", ErrDuplicateLesson, id)
			}
			c.lessonPos[id] = i
		}
		if u.TotalLessons == 0 {
			u.TotalLessons = len(u.Lessons)
		}
		if u.TotalLessons < len(u.Lessons) {
			return nil, fmt.Errorf("%w: unit %d", ErrInvalidTotal, u.ID)
		}
		c.unitPos[u.ID] = len(c.units)
		c.units = append(c.units, u.clone())
	}

	for id, l := range c.lessons {
		if _, listed := c.lessonPos[id]; !listed {
			return nil, fmt.Errorf("%w: %s (unit %d)", ErrOrphanLesson, id, l.UnitID)
		}
	}

	return c, nil
}

// Units returns every unit in catalog order.
func (c *Catalog) Units() []Unit {
	out := make([]Unit, len(c.units))
	for i, u := range c.units {
		out[i] = u.clone()
	}
	return out
}

// Unit returns the unit with the given id, or ErrUnitNotFound.
func (c *Catalog) Unit(id UnitID) (Unit, error) {
	pos, ok := c.unitPos[id]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %d", ErrUnitNotFound, id)
	}
	return c.units[pos].clone(), nil
}

// Lesson returns the lesson lessonID of unit unitID. It returns
// ErrLessonNotFound when the lesson is unknown or belongs to another unit.
func (c *Catalog) Lesson(unitID UnitID, lessonID LessonID) (Lesson, error) {
	if _, ok := c.unitPos[unitID]; !ok {
		return Lesson{}, fmt.Errorf("%w: %d", ErrUnitNotFound, unitID)
	}
	l, ok := c.lessons[lessonID]
	if !ok || l.UnitID != unitID {
		return Lesson{}, fmt.Errorf("%w: %s in unit %d", ErrLessonNotFound, lessonID, unitID)
	}
	return l.clone(), nil
}

// LessonByID looks a lesson up by its globally unique id.
func (c *Catalog) LessonByID(lessonID LessonID) (Lesson, error) {
	l, ok := c.lessons[lessonID]
	if !ok {
		return Lesson{}, fmt.Errorf("%w: %s", ErrLessonNotFound, lessonID)
	}
	return l.clone(), nil
}

// LessonIndex returns the position of a lesson inside its unit.
func (c *Catalog) LessonIndex(lessonID LessonID) (int, error) {
	pos, ok := c.lessonPos[lessonID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrLessonNotFound, lessonID)
	}
	return pos, nil
}

// NextUnit returns the unit that follows id in catalog order. The boolean is
// false for the last unit and for unknown ids.
func (c *Catalog) NextUnit(id UnitID) (Unit, bool) {
	pos, ok := c.unitPos[id]
	if !ok || pos+1 >= len(c.units) {
		return Unit{}, false
	}
	return c.units[pos+1].clone(), true
}
