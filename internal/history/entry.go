package history

import (
	"fmt"
	"math"
	"time"
)

// Entry summarizes one completed session.
type Entry struct {
	ID           int64
	SessionID    string
	Date         time.Time
	Score        int
	Total        int     // graded answers; skips are excluded
	Accuracy     float64 // percent, rounded to 2 decimals
	DurationSecs int
}

// NewEntry builds an Entry with accuracy derived from score and total.
func NewEntry(sessionID string, date time.Time, score, total int, duration time.Duration) Entry {
	secs := int(duration / time.Second)
	if secs < 0 {
		secs = 0
	}
	return Entry{
		SessionID:    sessionID,
		Date:         date,
		Score:        score,
		Total:        total,
		Accuracy:     Accuracy(score, total),
		DurationSecs: secs,
	}
}

// Accuracy returns score/total as a percentage rounded to 2 decimals.
// It is 0 when total is 0.
func Accuracy(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round(float64(score) / float64(total) * 100)
}

// AccuracyText renders accuracy with exactly two decimals, e.g. "50.00".
func (e Entry) AccuracyText() string {
	return fmt.Sprintf("%.2f", e.Accuracy)
}

// Duration returns the session length.
func (e Entry) Duration() time.Duration {
	return time.Duration(e.DurationSecs) * time.Second
}

// Round rounds v to 2 decimal places.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
