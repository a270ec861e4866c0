package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command against a fresh database in a temp dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{
		"QUIZBANK_BANK", "QUIZBANK_FIXED_OPTIONS", "QUIZBANK_HISTORY_SLOT",
		"QUIZBANK_LOG", "QUIZBANK_LOG_LEVEL", "QUIZBANK_STRICT", "QUIZBANK_THEME",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("QUIZBANK_DB", filepath.Join(dir, "quizbank.db"))
	return dir
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "quizbank ") {
		t.Errorf("output = %q", out)
	}
}

func TestBankCommands(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "bank", "subjects")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Biology") {
		t.Errorf("subjects output = %q", out)
	}

	out, err = execute(t, "bank", "weeks", "Biology")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2024") {
		t.Errorf("weeks output = %q", out)
	}

	if _, err := execute(t, "bank", "weeks", "Astrology"); err == nil {
		t.Error("unknown subject should fail")
	}

	bad := filepath.Join(dir, "bad.json")
	doc := `[{"subject":"X","year":2024,"week":99,"question":"q","options":["a","b"],"correct_answer":"c"}]`
	if err := os.WriteFile(bad, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "bank", "validate", bad); err == nil {
		t.Error("invalid bank should fail validation")
	}
	out, err = execute(t, "bank", "validate")
	if err != nil || !strings.HasPrefix(out, "ok:") {
		t.Errorf("embedded bank: %q, %v", out, err)
	}
}

func TestHistoryLifecycle(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "stats")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No quizzes recorded yet.") {
		t.Errorf("empty stats = %q", out)
	}

	legacy := filepath.Join(dir, "legacy.json")
	doc := `[
  {"date": "3/1/2025, 9:00:00 AM", "score": 1, "total": 2, "accuracy": "50.00%"},
  {"date": "2025-03-02", "score": 2, "total": 2, "accuracy": 100}
]`
	if err := os.WriteFile(legacy, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "history", "import", legacy)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "imported 2 entries") {
		t.Errorf("import output = %q", out)
	}

	out, err = execute(t, "stats")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"50.00%", "100.00%", "2 quizzes", "mean 75.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "history", "export")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"accuracy": "50.00"`) {
		t.Errorf("export = %q", out)
	}

	out, err = execute(t, "reset", "--yes")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Deleted 2 entries.") {
		t.Errorf("reset output = %q", out)
	}
}
