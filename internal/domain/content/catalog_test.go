package content_test

import (
	"testing"

	"github.com/phrazzld/medfluent/internal/domain"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vocab(id content.LessonID, unit content.UnitID) content.Lesson {
	return content.Lesson{
		ID:       id,
		UnitID:   unit,
		Title:    string(id),
		Type:     content.LessonTypeVocabulary,
		XPReward: 15,
		Items:    []content.Item{content.VocabularyItem{English: "Head", Spanish: "Cabeza"}},
	}
}

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	units := []content.Unit{
		{ID: 1, Name: "Greetings", Lessons: []content.LessonID{"u1l1", "u1l2"}},
		{ID: 2, Name: "History", Lessons: []content.LessonID{"u2l1"}, TotalLessons: 10},
		{ID: 3, Name: "Future", Locked: true, TotalLessons: 8},
	}
	lessons := []content.Lesson{vocab("u1l1", 1), vocab("u1l2", 1), vocab("u2l1", 2)}
	c, err := content.NewCatalog(units, lessons)
	require.NoError(t, err)
	return c
}

func TestCatalogLookups(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)

	units := c.Units()
	require.Len(t, units, 3)
	assert.Equal(t, []content.UnitID{1, 2, 3}, []content.UnitID{units[0].ID, units[1].ID, units[2].ID})
	assert.Equal(t, 2, units[0].TotalLessons, "total defaults to lesson count")
	assert.Equal(t, 10, units[1].TotalLessons)

	u, err := c.Unit(2)
	require.NoError(t, err)
	assert.Equal(t, "History", u.Name)

	_, err = c.Unit(42)
	assert.ErrorIs(t, err, content.ErrUnitNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	l, err := c.Lesson(1, "u1l2")
	require.NoError(t, err)
	assert.Equal(t, content.UnitID(1), l.UnitID)

	_, err = c.Lesson(2, "u1l2")
	assert.ErrorIs(t, err, content.ErrLessonNotFound, "lesson of another unit")

	_, err = c.Lesson(9, "u1l1")
	assert.ErrorIs(t, err, content.ErrUnitNotFound)

	_, err = c.LessonByID("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	idx, err := c.LessonIndex("u1l2")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	next, ok := c.NextUnit(1)
	require.True(t, ok)
	assert.Equal(t, content.UnitID(2), next.ID)
	_, ok = c.NextUnit(3)
	assert.False(t, ok)
}

func TestCatalogReturnsCopies(t *testing.T) {
	t.Parallel()
	c := testCatalog(t)

	u, err := c.Unit(1)
	require.NoError(t, err)
	u.Lessons[0] = "hijacked"

	again, err := c.Unit(1)
	require.NoError(t, err)
	assert.Equal(t, content.LessonID("u1l1"), again.Lessons[0])
}

func TestNewCatalogValidation(t *testing.T) {
	t.Parallel()

	drill := content.Lesson{
		ID: "d1", UnitID: 1, Type: content.LessonTypePhraseDrill, XPReward: 20,
		Items: []content.Item{content.PhraseDrillItem{PromptEN: "Hi", AnswerES: "Hola"}},
	}

	testCases := []struct {
		name    string
		units   []content.Unit
		lessons []content.Lesson
		wantErr error
	}{
		{
			name:    "duplicate unit",
			units:   []content.Unit{{ID: 1}, {ID: 1}},
			wantErr: content.ErrDuplicateUnit,
		},
		{
			name:    "duplicate lesson",
			units:   []content.Unit{{ID: 1, Lessons: []content.LessonID{"a"}}},
			lessons: []content.Lesson{vocab("a", 1), vocab("a", 1)},
			wantErr: content.ErrDuplicateLesson,
		},
		{
			name:    "unknown lesson",
			units:   []content.Unit{{ID: 1, Lessons: []content.LessonID{"missing"}}},
			wantErr: content.ErrUnknownLesson,
		},
		{
			name:    "lesson listed by wrong unit",
			units:   []content.Unit{{ID: 1}, {ID: 2, Lessons: []content.LessonID{"a"}}},
			lessons: []content.Lesson{vocab("a", 1)},
			wantErr: content.ErrOrphanLesson,
		},
		{
			name:    "lesson not listed",
			units:   []content.Unit{{ID: 1}},
			lessons: []content.Lesson{vocab("a", 1)},
			wantErr: content.ErrOrphanLesson,
		},
		{
			name:  "item shape does not match type",
			units: []content.Unit{{ID: 1, Lessons: []content.LessonID{"d1"}}},
			lessons: []content.Lesson{{
				ID: "d1", UnitID: 1, Type: content.LessonTypeDialogue,
				Items: []content.Item{content.VocabularyItem{English: "a", Spanish: "b"}},
			}},
			wantErr: content.ErrItemTypeMismatch,
		},
		{
			name:  "empty lesson",
			units: []content.Unit{{ID: 1, Lessons: []content.LessonID{"e"}}},
			lessons: []content.Lesson{{
				ID: "e", UnitID: 1, Type: content.LessonTypeVocabulary,
			}},
			wantErr: content.ErrEmptyLesson,
		},
		{
			name:  "negative reward",
			units: []content.Unit{{ID: 1, Lessons: []content.LessonID{"n"}}},
			lessons: []content.Lesson{{
				ID: "n", UnitID: 1, Type: content.LessonTypeVocabulary, XPReward: -1,
				Items: []content.Item{content.VocabularyItem{English: "a", Spanish: "b"}},
			}},
			wantErr: domain.ErrNegativeAmount,
		},
		{
			name:    "unknown lesson type",
			units:   []content.Unit{{ID: 1, Lessons: []content.LessonID{"x"}}},
			lessons: []content.Lesson{{ID: "x", UnitID: 1, Type: "quiz"}},
			wantErr: content.ErrInvalidLessonType,
		},
		{
			name:    "total smaller than lessons",
			units:   []content.Unit{{ID: 1, Lessons: []content.LessonID{"d1"}, TotalLessons: -1}},
			lessons: []content.Lesson{drill},
			wantErr: content.ErrInvalidTotal,
		},
		{
			name:    "phrase drill without answer",
			units:   []content.Unit{{ID: 1, Lessons: []content.LessonID{"d1"}}},
			lessons: []content.Lesson{{ID: "d1", UnitID: 1, Type: content.LessonTypePhraseDrill, Items: []content.Item{content.PhraseDrillItem{PromptEN: "Hi"}}}},
			wantErr: content.ErrInvalidItem,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := content.NewCatalog(tc.units, tc.lessons)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation, "build errors are validation errors")
		})
	}
}
