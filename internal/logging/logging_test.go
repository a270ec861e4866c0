package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn)

	l.Info("hidden")
	l.Warn("shown", "slot", "scoreHistory")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "slot=scoreHistory") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestPathFor(t *testing.T) {
	if got := PathFor("/var/log/q.log", "/data/q.db"); got != "/var/log/q.log" {
		t.Errorf("explicit path ignored: %q", got)
	}
	if got := PathFor("", "/data/quizbank/quizbank.db"); got != filepath.Join("/data/quizbank", LogFileName) {
		t.Errorf("default path = %q", got)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	l, c, err := OpenFile(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l.Info("session completed", "score", 2)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "session completed") {
		t.Errorf("log file = %q", data)
	}
}
