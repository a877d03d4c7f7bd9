package feedback

import (
	"strings"

	"github.com/wordduel/wordduel-go/internal/model"
)

// Service computes per-letter guess feedback. It is pure: no state, no
// side effects, deterministic for a given guess/secret pair.
type Service struct{}

// New creates a new feedback Service
func New() *Service {
	return &Service{}
}

// Compute classifies each guess letter against the secret and returns
// the marks plus aggregate green/yellow counts.
//
// The comparison is case-insensitive and uses the two-pass
// consume-on-match rule: pass one marks positional matches and consumes
// those secret slots; pass two scans the remaining slots left to right
// for presence matches, consuming each slot it claims. A letter
// appearing once in the secret therefore yields at most one non-absent
// mark no matter how often it occurs in the guess.
func (s *Service) Compute(guess, secret string) (model.Feedback, error) {
	g := []rune(strings.ToUpper(strings.TrimSpace(guess)))
	sec := []rune(strings.ToUpper(secret))

	if len(g) != len(sec) {
		return model.Feedback{}, model.ErrInvalidGuessLength
	}

	marks := make([]model.Mark, len(g))
	consumed := make([]bool, len(sec))

	// Pass 1: exact matches
	fb := model.Feedback{}
	for i := range g {
		if g[i] == sec[i] {
			marks[i] = model.MarkExact
			consumed[i] = true
			fb.Green++
		}
	}

	// Pass 2: presence matches against unconsumed slots
	for i := range g {
		if marks[i] == model.MarkExact {
			continue
		}
		marks[i] = model.MarkAbsent
		for j := range sec {
			if !consumed[j] && sec[j] == g[i] {
				marks[i] = model.MarkPresent
				consumed[j] = true
				fb.Yellow++
				break
			}
		}
	}

	fb.Marks = marks
	return fb, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Compute(guess, secret string) (model.Feedback, error)
}

var _ ServiceInterface = (*Service)(nil)
