// Package review derives read-only views from finished sessions and the
// history ledger. Every function is pure and recomputed on demand.
package review

import (
	"github.com/abhisek/quizbank/internal/grading"
	"github.com/abhisek/quizbank/internal/history"
)

// Buckets partitions a session's answer records by outcome. Each bucket
// keeps the records in the order they were answered.
type Buckets struct {
	Correct []grading.Record
	Wrong   []grading.Record
	Skipped []grading.Record
}

// Len returns the total number of records across all buckets.
func (b Buckets) Len() int {
	return len(b.Correct) + len(b.Wrong) + len(b.Skipped)
}

// Bucket returns the records for one outcome.
func (b Buckets) Bucket(o grading.Outcome) []grading.Record {
	switch o {
	case grading.OutcomeCorrect:
		return b.Correct
	case grading.OutcomeWrong:
		return b.Wrong
	case grading.OutcomeSkipped:
		return b.Skipped
	default:
		return nil
	}
}

// Project splits records into disjoint correct, wrong and skipped buckets.
func Project(records []grading.Record) Buckets {
	b := Buckets{
		Correct: []grading.Record{},
		Wrong:   []grading.Record{},
		Skipped: []grading.Record{},
	}
	for _, r := range records {
		switch r.Outcome() {
		case grading.OutcomeCorrect:
			b.Correct = append(b.Correct, r)
		case grading.OutcomeWrong:
			b.Wrong = append(b.Wrong, r)
		case grading.OutcomeSkipped:
			b.Skipped = append(b.Skipped, r)
		}
	}
	return b
}

// Point is one plotted history entry.
type Point struct {
	Index        int // 1-based position in the ledger
	Accuracy     float64
	DurationSecs int
}

// Series maps ledger entries, oldest first, to chart points.
func Series(entries []history.Entry) []Point {
	pts := make([]Point, len(entries))
	for i, e := range entries {
		pts[i] = Point{
			Index:        i + 1,
			Accuracy:     e.Accuracy,
			DurationSecs: e.DurationSecs,
		}
	}
	return pts
}

// Newest returns a most-recent-first copy of entries.
func Newest(entries []history.Entry) []history.Entry {
	out := make([]history.Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

// Summary aggregates the whole ledger.
type Summary struct {
	Sessions      int
	MeanAccuracy  float64
	BestAccuracy  float64
	TotalScore    int
	TotalAnswered int
	TotalSecs     int
}

// Totals summarizes entries. Mean accuracy is the plain average of
// per-session accuracy, rounded to 2 decimals.
func Totals(entries []history.Entry) Summary {
	var s Summary
	var sum float64
	for _, e := range entries {
		s.Sessions++
		sum += e.Accuracy
		if e.Accuracy > s.BestAccuracy {
			s.BestAccuracy = e.Accuracy
		}
		s.TotalScore += e.Score
		s.TotalAnswered += e.Total
		s.TotalSecs += e.DurationSecs
	}
	if s.Sessions > 0 {
		s.MeanAccuracy = history.Round(sum / float64(s.Sessions))
	}
	return s
}
