package catalog

import (
	"fmt"

	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
)

// Definition is the YAML document root.
type Definition struct {
	Units        []UnitDef           `yaml:"units" validate:"required,min=1,dive"`
	Shop         []ShopItemDef       `yaml:"shop" validate:"dive"`
	StarterItems map[string][]string `yaml:"starter_items"`
}

// UnitDef describes one unit. Locked units may omit lessons.
type UnitDef struct {
	ID           int         `yaml:"id" validate:"gt=0"`
	Name         string      `yaml:"name" validate:"required"`
	Description  string      `yaml:"description"`
	Icon         string      `yaml:"icon"`
	Color        string      `yaml:"color" validate:"omitempty,hexcolor"`
	Locked       bool        `yaml:"locked"`
	TotalLessons int         `yaml:"total_lessons" validate:"gte=0"`
	Lessons      []LessonDef `yaml:"lessons" validate:"dive"`
}

// LessonDef describes one lesson. Which ItemDef fields are read depends on Type.
type LessonDef struct {
	ID       string    `yaml:"id" validate:"required"`
	Title    string    `yaml:"title" validate:"required"`
	Type     string    `yaml:"type" validate:"required,oneof=vocabulary phrase_drill dialogue"`
	XPReward int       `yaml:"xp_reward" validate:"gte=0"`
	Items    []ItemDef `yaml:"items" validate:"required,min=1"`
}

// ItemDef is the union of every item shape.
type ItemDef struct {
	// vocabulary
	English       string `yaml:"english"`
	Spanish       string `yaml:"spanish"`
	Pronunciation string `yaml:"pronunciation"`

	// phrase_drill
	PromptEN   string   `yaml:"prompt_en"`
	AnswerES   string   `yaml:"answer_es"`
	Acceptable []string `yaml:"acceptable"`

	// dialogue
	Speaker string      `yaml:"speaker"`
	TextEN  string      `yaml:"text_en"`
	TextES  string      `yaml:"text_es"`
	Options []OptionDef `yaml:"options"`
}

// OptionDef is one dialogue reply.
type OptionDef struct {
	Text     string `yaml:"text"`
	Response string `yaml:"response"`
	Correct  bool   `yaml:"correct"`
}

// ShopItemDef describes one shop item.
type ShopItemDef struct {
	ID          string `yaml:"id" validate:"required"`
	Type        string `yaml:"type" validate:"required"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
	Price       int    `yaml:"price" validate:"gte=0"`
	Rarity      string `yaml:"rarity" validate:"required,oneof=common rare epic legendary"`
}

func (d ItemDef) toItem(t content.LessonType) (content.Item, error) {
	switch t {
	case content.LessonTypeVocabulary:
		return content.VocabularyItem{
			English:       d.English,
			Spanish:       d.Spanish,
			Pronunciation: d.Pronunciation,
		}, nil
	case content.LessonTypePhraseDrill:
		return content.PhraseDrillItem{
			PromptEN:   d.PromptEN,
			AnswerES:   d.AnswerES,
			Acceptable: d.Acceptable,
		}, nil
	case content.LessonTypeDialogue:
		opts := make([]content.DialogueOption, len(d.Options))
		for i, o := range d.Options {
			opts[i] = content.DialogueOption{Text: o.Text, Response: o.Response, Correct: o.Correct}
		}
		return content.DialogueItem{
			Speaker: d.Speaker,
			TextEN:  d.TextEN,
			TextES:  d.TextES,
			Options: opts,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", content.ErrInvalidLessonType, t)
}

func (d Definition) build() (*Bundle, error) {
	var (
		units   = make([]content.Unit, 0, len(d.Units))
		lessons []content.Lesson
	)
	for _, u := range d.Units {
		unit := content.Unit{
			ID:           content.UnitID(u.ID),
			Name:         u.Name,
			Description:  u.Description,
			Icon:         u.Icon,
			Color:        u.Color,
			Locked:       u.Locked,
			TotalLessons: u.TotalLessons,
		}
		for _, l := range u.Lessons {
			lesson := content.Lesson{
				ID:       content.LessonID(l.ID),
				UnitID:   unit.ID,
				Title:    l.Title,
				Type:     content.LessonType(l.Type),
				XPReward: l.XPReward,
				Items:    make([]content.Item, 0, len(l.Items)),
			}
			for _, def := range l.Items {
				item, err := def.toItem(lesson.Type)
				if err != nil {
					return nil, err
				}
				lesson.Items = append(lesson.Items, item)
			}
			unit.Lessons = append(unit.Lessons, lesson.ID)
			lessons = append(lessons, lesson)
		}
		units = append(units, unit)
	}

	cat, err := content.NewCatalog(units, lessons)
	if err != nil {
		return nil, fmt.Errorf("invalid course content: %w", err)
	}

	items := make([]economy.ShopItem, len(d.Shop))
	for i, s := range d.Shop {
		items[i] = economy.ShopItem{
			ID:          economy.ItemID(s.ID),
			Type:        economy.Category(s.Type),
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price,
			Rarity:      economy.Rarity(s.Rarity),
		}
	}
	shop, err := economy.NewShop(items)
	if err != nil {
		return nil, fmt.Errorf("invalid shop: %w", err)
	}

	starter := make(map[economy.Category][]economy.ItemID, len(d.StarterItems))
	for cat, ids := range d.StarterItems {
		for _, id := range ids {
			starter[economy.Category(cat)] = append(starter[economy.Category(cat)], economy.ItemID(id))
		}
	}

	return &Bundle{Catalog: cat, Shop: shop, StarterItems: starter}, nil
}
