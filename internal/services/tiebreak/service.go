package tiebreak

import (
	"github.com/samber/lo"

	"github.com/wordduel/wordduel-go/internal/model"
)

// Outcome is the resolver's decision between the two histories
type Outcome string

const (
	OutcomeFirst  Outcome = "first"
	OutcomeSecond Outcome = "second"
	OutcomeTie    Outcome = "tie"
)

// Service decides a drawn game by comparing aggregate feedback. It is a
// pure, order-independent summation over both full histories.
type Service struct{}

// New creates a new tiebreak Service
func New() *Service {
	return &Service{}
}

// Resolve compares the two players' full feedback histories. Total
// greens take strict precedence; yellows only break a green tie.
// Equal on both axes is a tie, never a blended score.
func (s *Service) Resolve(first, second []model.Feedback) Outcome {
	firstGreens := lo.SumBy(first, func(f model.Feedback) int { return f.Green })
	secondGreens := lo.SumBy(second, func(f model.Feedback) int { return f.Green })

	if firstGreens != secondGreens {
		if firstGreens > secondGreens {
			return OutcomeFirst
		}
		return OutcomeSecond
	}

	firstYellows := lo.SumBy(first, func(f model.Feedback) int { return f.Yellow })
	secondYellows := lo.SumBy(second, func(f model.Feedback) int { return f.Yellow })

	if firstYellows != secondYellows {
		if firstYellows > secondYellows {
			return OutcomeFirst
		}
		return OutcomeSecond
	}

	return OutcomeTie
}

// Interface for dependency injection
type ServiceInterface interface {
	Resolve(first, second []model.Feedback) Outcome
}

var _ ServiceInterface = (*Service)(nil)
