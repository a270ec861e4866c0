package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// exportDateLayout is the layout written by Export.
const exportDateLayout = time.RFC3339

// importDateLayouts lists accepted date formats, tried in order. Older
// exports stored a locale-formatted timestamp.
var importDateLayouts = []string{
	time.RFC3339Nano,
	"1/2/2006, 3:04:05 PM",
	"2/1/2006, 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// flatEntry is the interchange shape: a flat record per session.
type flatEntry struct {
	Date     string       `json:"date"`
	Score    int          `json:"score"`
	Total    int          `json:"total"`
	Accuracy flexAccuracy `json:"accuracy"`
	Duration *int         `json:"duration,omitempty"`
}

// flexAccuracy accepts either "50.00" or 50 and is written as a
// two-decimal string.
type flexAccuracy float64

func (a flexAccuracy) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%.2f", float64(a)))
}

func (a *flexAccuracy) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
		if s == "" {
			*a = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("accuracy %q: %w", s, err)
		}
		*a = flexAccuracy(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("accuracy: %w", err)
	}
	*a = flexAccuracy(v)
	return nil
}

// Export writes every entry as a flat JSON list, oldest first.
func (l *Ledger) Export(ctx context.Context, w io.Writer) (int, error) {
	entries := l.ReadAll(ctx)
	out := make([]flatEntry, 0, len(entries))
	for _, e := range entries {
		d := e.DurationSecs
		out = append(out, flatEntry{
			Date:     e.Date.Format(exportDateLayout),
			Score:    e.Score,
			Total:    e.Total,
			Accuracy: flexAccuracy(e.Accuracy),
			Duration: &d,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return 0, fmt.Errorf("encode history: %w", err)
	}
	return len(out), nil
}

// Import appends every entry of a flat JSON list to the ledger in file
// order. A missing duration is taken as 0. Dates that match no known
// layout are replaced by now.
func (l *Ledger) Import(ctx context.Context, r io.Reader, now time.Time) (int, error) {
	var in []flatEntry
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("decode history: %w", err)
	}

	for i, fe := range in {
		if fe.Score < 0 || fe.Total < 0 || fe.Score > fe.Total {
			return i, fmt.Errorf("history entry %d: score %d out of range for total %d", i, fe.Score, fe.Total)
		}
	}

	for i, fe := range in {
		date, ok := parseDate(fe.Date)
		if !ok {
			l.logger.Warn("unrecognized history date, using import time",
				"index", i, "date", fe.Date)
			date = now
		}
		e := Entry{
			Date:     date,
			Score:    fe.Score,
			Total:    fe.Total,
			Accuracy: Round(float64(fe.Accuracy)),
		}
		if fe.Duration != nil && *fe.Duration > 0 {
			e.DurationSecs = *fe.Duration
		}
		if _, err := l.Append(ctx, e); err != nil {
			return i, err
		}
	}
	return len(in), nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range importDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
