package bank

import (
	"slices"
	"testing"
)

func testQuestions() []Question {
	return []Question{
		{Subject: "Physics", Year: 2024, Week: 2, Text: "q0", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{Subject: "Physics", Year: 2024, Week: 1, Text: "q1", Options: []string{"a", "b"}, CorrectAnswer: "b"},
		{Subject: "Art", Year: 2023, Week: 5, Text: "q2", Options: []string{"x", "y"}, CorrectAnswer: "x"},
		{Subject: "Physics", Year: 2025, Week: 1, Text: "q3", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{Subject: "Physics", Year: 2024, Week: 2, Text: "q4", Options: []string{"a", "b"}, CorrectAnswer: "b"},
	}
}

func TestWeekKey_RoundTrip(t *testing.T) {
	k := MakeWeekKey(2024, 7)
	if int(k) != 202407 {
		t.Fatalf("key = %d, want 202407", k)
	}
	if k.Year() != 2024 || k.Week() != 7 {
		t.Errorf("Year/Week = %d/%d, want 2024/7", k.Year(), k.Week())
	}
	if k.String() != "2024/W07" {
		t.Errorf("String() = %q", k.String())
	}
}

func TestSubjects_SortedDistinct(t *testing.T) {
	b := New(testQuestions())
	got := b.Subjects()
	want := []string{"Art", "Physics"}
	if !slices.Equal(got, want) {
		t.Errorf("Subjects() = %v, want %v", got, want)
	}
}

func TestWeeksFor_AscendingDistinct(t *testing.T) {
	b := New(testQuestions())
	got := b.WeeksFor("Physics")
	want := []WeekKey{202401, 202402, 202501}
	if !slices.Equal(got, want) {
		t.Errorf("WeeksFor(Physics) = %v, want %v", got, want)
	}
	if len(b.WeeksFor("Unknown")) != 0 {
		t.Error("expected no weeks for unknown subject")
	}
}

func TestYearsFor(t *testing.T) {
	b := New(testQuestions())
	got := b.YearsFor("Physics")
	if !slices.Equal(got, []int{2024, 2025}) {
		t.Errorf("YearsFor(Physics) = %v", got)
	}
}

func TestCountFor(t *testing.T) {
	b := New(testQuestions())
	if n := b.CountFor("Physics", MakeWeekKey(2024, 2)); n != 2 {
		t.Errorf("CountFor = %d, want 2", n)
	}
	if n := b.CountFor("Art", MakeWeekKey(2024, 2)); n != 0 {
		t.Errorf("CountFor(Art) = %d, want 0", n)
	}
}

func TestFilter_BankOrder(t *testing.T) {
	b := New(testQuestions())
	keys := map[WeekKey]struct{}{
		MakeWeekKey(2024, 2): {},
		MakeWeekKey(2025, 1): {},
	}
	got := b.Filter("Physics", keys)

	var texts []string
	for _, q := range got {
		texts = append(texts, q.Text)
	}
	want := []string{"q0", "q3", "q4"}
	if !slices.Equal(texts, want) {
		t.Errorf("Filter order = %v, want %v", texts, want)
	}
}

func TestFilter_SubjectMismatch(t *testing.T) {
	b := New(testQuestions())
	keys := map[WeekKey]struct{}{MakeWeekKey(2023, 5): {}}
	if got := b.Filter("Physics", keys); len(got) != 0 {
		t.Errorf("expected no questions, got %d", len(got))
	}
	if got := b.Filter("Art", nil); len(got) != 0 {
		t.Errorf("expected no questions for empty keys, got %d", len(got))
	}
}

func TestFilter_ReturnsCopies(t *testing.T) {
	b := New(testQuestions())
	keys := map[WeekKey]struct{}{MakeWeekKey(2024, 1): {}}

	got := b.Filter("Physics", keys)
	got[0].Options[0] = "mutated"

	again := b.Filter("Physics", keys)
	if again[0].Options[0] != "a" {
		t.Error("mutating a filtered question leaked into the bank")
	}
}

func TestNew_AssignsIndex(t *testing.T) {
	b := New(testQuestions())
	for i, q := range b.All() {
		if q.Index != i {
			t.Errorf("question %d has Index %d", i, q.Index)
		}
	}
	if b.Len() != 5 {
		t.Errorf("Len() = %d, want 5", b.Len())
	}
}
