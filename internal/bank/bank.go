package bank

import (
	"slices"
	"sort"
)

// Bank is a read-only view over the loaded question catalog with
// precomputed subject and week indices.
type Bank struct {
	title     string
	version   string
	questions []Question
	bySubject map[string][]int
	weeks     map[string][]WeekKey
	counts    map[string]map[WeekKey]int
}

// New builds a Bank from questions in their natural order. Each question's
// Index is reassigned to its position.
func New(questions []Question) *Bank {
	b := &Bank{
		questions: make([]Question, len(questions)),
		bySubject: make(map[string][]int),
		weeks:     make(map[string][]WeekKey),
		counts:    make(map[string]map[WeekKey]int),
	}

	for i, q := range questions {
		q = q.Clone()
		q.Index = i
		b.questions[i] = q

		b.bySubject[q.Subject] = append(b.bySubject[q.Subject], i)

		perWeek := b.counts[q.Subject]
		if perWeek == nil {
			perWeek = make(map[WeekKey]int)
			b.counts[q.Subject] = perWeek
		}
		if perWeek[q.Key()] == 0 {
			b.weeks[q.Subject] = append(b.weeks[q.Subject], q.Key())
		}
		perWeek[q.Key()]++
	}

	for subject := range b.weeks {
		slices.Sort(b.weeks[subject])
	}

	return b
}

// Title returns the bank document title, if any.
func (b *Bank) Title() string {
	return b.title
}

// Version returns the bank document version, if any.
func (b *Bank) Version() string {
	return b.version
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// All returns every question in bank order.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.Clone()
	}
	return out
}

// Subjects returns the distinct subject tags, sorted.
func (b *Bank) Subjects() []string {
	subjects := make([]string, 0, len(b.bySubject))
	for s := range b.bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// HasSubject reports whether any question carries the subject tag.
func (b *Bank) HasSubject(subject string) bool {
	_, ok := b.bySubject[subject]
	return ok
}

// WeeksFor returns the distinct week keys present for subject, ascending.
func (b *Bank) WeeksFor(subject string) []WeekKey {
	return slices.Clone(b.weeks[subject])
}

// YearsFor returns the distinct years present for subject, ascending.
func (b *Bank) YearsFor(subject string) []int {
	var years []int
	for _, k := range b.weeks[subject] {
		if len(years) == 0 || years[len(years)-1] != k.Year() {
			years = append(years, k.Year())
		}
	}
	return years
}

// CountFor returns how many questions the subject has for a week.
func (b *Bank) CountFor(subject string, key WeekKey) int {
	return b.counts[subject][key]
}

// Filter returns the questions for subject whose week key is in keys,
// in bank order.
func (b *Bank) Filter(subject string, keys map[WeekKey]struct{}) []Question {
	var out []Question
	for _, i := range b.bySubject[subject] {
		q := b.questions[i]
		if _, ok := keys[q.Key()]; ok {
			out = append(out, q.Clone())
		}
	}
	return out
}
