package grading

import "github.com/abhisek/quizbank/internal/bank"

// Outcome classifies a graded record.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomeSkipped Outcome = "skipped"
)

// Record is the immutable result of presenting one question: a snapshot of
// the question plus what the user did with it.
type Record struct {
	Question bank.Question

	// Selected is the chosen option, nil when the question was skipped.
	Selected *string

	Correct bool
	Skipped bool
}

// Check reports whether selected is the question's correct answer. Matching
// is exact and case-sensitive; a nil selection is never correct.
func Check(q bank.Question, selected *string) bool {
	return selected != nil && *selected == q.CorrectAnswer
}

// Grade builds the record for an answered question.
func Grade(q bank.Question, selected string) Record {
	return Record{
		Question: q.Clone(),
		Selected: &selected,
		Correct:  Check(q, &selected),
	}
}

// Skip builds the record for a skipped question.
func Skip(q bank.Question) Record {
	return Record{
		Question: q.Clone(),
		Skipped:  true,
	}
}

// Outcome returns exactly one of correct, wrong or skipped.
func (r Record) Outcome() Outcome {
	switch {
	case r.Skipped:
		return OutcomeSkipped
	case r.Correct:
		return OutcomeCorrect
	default:
		return OutcomeWrong
	}
}

// SelectedText returns the selected option, or "" when skipped.
func (r Record) SelectedText() string {
	if r.Selected == nil {
		return ""
	}
	return *r.Selected
}
