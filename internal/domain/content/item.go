package content

import (
	"slices"
	"strings"
)

// Item is one exercise inside a lesson. It is a closed set of variants:
// VocabularyItem, PhraseDrillItem and DialogueItem. The unexported marker
// method keeps other packages from adding variants, so a switch over the three
// types is exhaustive.
type Item interface {
	// Kind returns the lesson type this item shape belongs to.
	Kind() LessonType

	isItem()
}

// VocabularyItem is a self-paced recall card pairing a source and a target phrase.
type VocabularyItem struct {
	English       string `json:"english"`
	Spanish       string `json:"spanish"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

// PhraseDrillItem asks the learner to produce AnswerES for PromptEN. Any entry
// of Acceptable is also a correct answer.
type PhraseDrillItem struct {
	PromptEN   string   `json:"prompt_en"`
	AnswerES   string   `json:"answer_es"`
	Acceptable []string `json:"acceptable,omitempty"`
}

// DialogueOption is one selectable reply in a dialogue turn.
type DialogueOption struct {
	Text     string `json:"text"`
	Response string `json:"response"`
	Correct  bool   `json:"correct"`
}

// DialogueItem is one turn of a scripted conversation with ordered reply options.
type DialogueItem struct {
	Speaker string           `json:"speaker"`
	TextEN  string           `json:"text_en"`
	TextES  string           `json:"text_es"`
	Options []DialogueOption `json:"options"`
}

func (VocabularyItem) Kind() LessonType  { return LessonTypeVocabulary }
func (PhraseDrillItem) Kind() LessonType { return LessonTypePhraseDrill }
func (DialogueItem) Kind() LessonType    { return LessonTypeDialogue }

func (VocabularyItem) isItem()  {}
func (PhraseDrillItem) isItem() {}
func (DialogueItem) isItem()    {}

// validateItem checks that the item carries the fields its kind needs.
func validateItem(item Item) error {
	switch it := item.(type) {
	case VocabularyItem:
		if strings.TrimSpace(it.English) == "" || strings.TrimSpace(it.Spanish) == "" {
			return ErrInvalidItem
		}
	case PhraseDrillItem:
		if strings.TrimSpace(it.AnswerES) == "" {
			return ErrInvalidItem
		}
	case DialogueItem:
		if len(it.Options) == 0 {
			return ErrInvalidItem
		}
	default:
		return ErrInvalidItem
	}
	return nil
}

// cloneItem copies the slices held by an item so catalog content can be
// handed out without sharing backing arrays.
func cloneItem(item Item) Item {
	switch it := item.(type) {
	case PhraseDrillItem:
		it.Acceptable = slices.Clone(it.Acceptable)
		return it
	case DialogueItem:
		it.Options = slices.Clone(it.Options)
		return it
	default:
		return item
	}
}
