package bank

import (
	"fmt"
	"slices"
)

// MaxWeek is the largest week number a WeekKey can encode without colliding
// with the next year.
const MaxWeek = 99

// WeekKey packs a (year, week) pair into a single integer: year*100 + week.
type WeekKey int

// MakeWeekKey builds the key for a year and week.
func MakeWeekKey(year, week int) WeekKey {
	return WeekKey(year*100 + week)
}

// Year returns the year component of the key.
func (k WeekKey) Year() int {
	return int(k) / 100
}

// Week returns the week component of the key.
func (k WeekKey) Week() int {
	return int(k) % 100
}

func (k WeekKey) String() string {
	return fmt.Sprintf("%d/W%02d", k.Year(), k.Week())
}

// Question is a single multiple-choice question from the bank.
type Question struct {
	// Index is the question's position in the bank and acts as its identifier.
	Index int

	Subject       string
	Year          int
	Week          int
	Text          string
	Options       []string
	CorrectAnswer string
}

// Key returns the question's week key.
func (q Question) Key() WeekKey {
	return MakeWeekKey(q.Year, q.Week)
}

// Clone returns a copy whose Options slice is not shared with q.
func (q Question) Clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

// HasOption reports whether opt is one of the question's options.
func (q Question) HasOption(opt string) bool {
	return slices.Contains(q.Options, opt)
}
