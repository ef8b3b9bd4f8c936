package tokeninspect

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

// fixedNow is the clock used by most tests: 2023-11-14T22:13:20Z.
var fixedNow = time.Unix(1700000000, 0)

func fixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// buildToken encodes header and claims into an unsigned compact token with a
// dummy signature segment.
func buildToken(t testing.TB, header, claims map[string]any) string {
	t.Helper()
	return encodeSegment(t, header) + "." + encodeSegment(t, claims) + ".c2lnbmF0dXJl"
}

func encodeSegment(t testing.TB, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal segment: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

func newTestInspector(t testing.TB, store Store, opts ...Option) *Inspector {
	t.Helper()
	insp, err := NewInspector(store, append([]Option{WithClock(fixedClock(fixedNow))}, opts...)...)
	if err != nil {
		t.Fatalf("Failed to create inspector: %v", err)
	}
	return insp
}

// newBufferLogger returns a JSON logger writing into buf
func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// decodeLogLines parses every JSON log line in buf
func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("Failed to parse log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}
