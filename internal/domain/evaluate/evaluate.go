// Package evaluate scores a learner's response against a lesson item.
//
// Evaluation is a pure function: it never touches progress or the wallet.
// The caller decides what a wrong answer costs (for example a heart).
package evaluate

import (
	"github.com/phrazzld/medfluent/internal/domain/content"
)

// Verdict is the outcome of evaluating one response.
type Verdict struct {
	Correct bool `json:"correct"`
	// Expected is the canonical answer shown as feedback. It is empty for
	// vocabulary items, which have no wrong answer.
	Expected string `json:"expected,omitempty"`
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithDiacriticInsensitive makes phrase drills ignore accents, so "dolor de
// estomago" matches "dolor de estómago".
func WithDiacriticInsensitive() Option {
	return func(e *Evaluator) {
		e.foldDiacritics = true
	}
}

// Evaluator evaluates responses with a fixed normalisation policy. The zero
// value is ready to use and matches exactly after trimming and case folding.
type Evaluator struct {
	foldDiacritics bool
}

// New creates an Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEvaluator = New()

// Evaluate scores response with the default policy.
func Evaluate(lesson content.Lesson, item content.Item, response string) Verdict {
	return defaultEvaluator.Evaluate(lesson, item, response)
}

// Evaluate scores response against item of lesson.
//
//   - vocabulary: always correct.
//   - phrase_drill: correct iff the normalised response equals the normalised
//     canonical answer or any normalised acceptable alternative.
//   - dialogue: correct iff the chosen option exists and is flagged correct.
//
// An item whose shape does not match the lesson type is never correct.
func (e *Evaluator) Evaluate(lesson content.Lesson, item content.Item, response string) Verdict {
	if item == nil || item.Kind() != lesson.Type {
		return Verdict{}
	}

	switch it := item.(type) {
	case content.VocabularyItem:
		return Verdict{Correct: true}
	case content.PhraseDrillItem:
		return e.evaluatePhrase(it, response)
	case content.DialogueItem:
		return evaluateDialogue(it, response)
	default:
		return Verdict{}
	}
}

func (e *Evaluator) evaluatePhrase(item content.PhraseDrillItem, response string) Verdict {
	got := e.normalize(response)
	verdict := Verdict{Expected: item.AnswerES}

	if got == e.normalize(item.AnswerES) {
		verdict.Correct = true
		return verdict
	}
	for _, alt := range item.Acceptable {
		if got == e.normalize(alt) {
			verdict.Correct = true
			return verdict
		}
	}
	return verdict
}

func evaluateDialogue(item content.DialogueItem, response string) Verdict {
	var verdict Verdict
	for _, opt := range item.Options {
		if opt.Correct && verdict.Expected == "" {
			verdict.Expected = opt.Response
		}
	}
	for _, opt := range item.Options {
		if opt.Response == response {
			verdict.Correct = opt.Correct
			return verdict
		}
	}
	return verdict
}
