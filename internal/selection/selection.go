package selection

import (
	"slices"

	"github.com/abhisek/quizbank/internal/bank"
)

// Selection is the user's filter: one subject and a set of weeks of that
// subject. The zero value is an empty selection with no subject.
type Selection struct {
	subject string
	weeks   map[bank.WeekKey]struct{}
}

// New returns an empty selection for subject.
func New(subject string) *Selection {
	return &Selection{
		subject: subject,
		weeks:   make(map[bank.WeekKey]struct{}),
	}
}

// Subject returns the selected subject tag.
func (s *Selection) Subject() string {
	return s.subject
}

// SelectSubject switches subject. Week keys belong to a single subject, so
// switching clears them; reselecting the current subject keeps them.
func (s *Selection) SelectSubject(subject string) {
	if subject == s.subject {
		return
	}
	s.subject = subject
	s.weeks = make(map[bank.WeekKey]struct{})
}

// Toggle flips a single week in or out of the selection.
func (s *Selection) Toggle(year, week int) {
	s.ensure()
	k := bank.MakeWeekKey(year, week)
	if _, ok := s.weeks[k]; ok {
		delete(s.weeks, k)
		return
	}
	s.weeks[k] = struct{}{}
}

// SelectAll adds every available key.
func (s *Selection) SelectAll(available []bank.WeekKey) {
	s.ensure()
	for _, k := range available {
		s.weeks[k] = struct{}{}
	}
}

// DeselectAll empties the week set.
func (s *Selection) DeselectAll() {
	s.weeks = make(map[bank.WeekKey]struct{})
}

// ToggleYear selects every available week of year, or deselects them all if
// they are already all selected.
func (s *Selection) ToggleYear(year int, available []bank.WeekKey) {
	s.ensure()
	var inYear []bank.WeekKey
	allSelected := true
	for _, k := range available {
		if k.Year() != year {
			continue
		}
		inYear = append(inYear, k)
		if _, ok := s.weeks[k]; !ok {
			allSelected = false
		}
	}

	for _, k := range inYear {
		if allSelected {
			delete(s.weeks, k)
		} else {
			s.weeks[k] = struct{}{}
		}
	}
}

// Contains reports whether the week is selected.
func (s *Selection) Contains(year, week int) bool {
	_, ok := s.weeks[bank.MakeWeekKey(year, week)]
	return ok
}

// Keys returns the selected keys in ascending order.
func (s *Selection) Keys() []bank.WeekKey {
	keys := make([]bank.WeekKey, 0, len(s.weeks))
	for k := range s.weeks {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Set returns a copy of the selected key set, in the shape bank.Filter takes.
func (s *Selection) Set() map[bank.WeekKey]struct{} {
	out := make(map[bank.WeekKey]struct{}, len(s.weeks))
	for k := range s.weeks {
		out[k] = struct{}{}
	}
	return out
}

// Len returns the number of selected weeks.
func (s *Selection) Len() int {
	return len(s.weeks)
}

// Empty reports whether no week is selected.
func (s *Selection) Empty() bool {
	return len(s.weeks) == 0
}

func (s *Selection) ensure() {
	if s.weeks == nil {
		s.weeks = make(map[bank.WeekKey]struct{})
	}
}
