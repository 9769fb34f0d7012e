package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// decodeLines parses one JSON object per non-empty line of buf.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

// TestConsoleLogger_RunFields checks the stderr logger the programs build:
// every entry carries run_id and program, and the level depends on --verbose.
func TestConsoleLogger_RunFields(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		level     zerolog.Level
		wantDebug bool
	}{
		{"default warn level", zerolog.WarnLevel, false},
		{"verbose debug level", zerolog.DebugLevel, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := NewConsoleLogger(&buf, tt.level, String("run_id", "5f1c"), String("program", "pi-parallel"))

			logger.Debug("partition ready", Int("n", 1000), Int("workers", 4), Int("last_chunk", 250))
			logger.Warn("int64 overflow, later elements wrap around", Int("first_wrapped_index", 93))

			out := buf.String()
			if got := strings.Contains(out, "partition ready"); got != tt.wantDebug {
				t.Errorf("debug entry present = %v, want %v:\n%s", got, tt.wantDebug, out)
			}
			for _, want := range []string{"WRN", "int64 overflow", "first_wrapped_index=93", "run_id=5f1c", "program=pi-parallel"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			if tt.wantDebug && !strings.Contains(out, "workers=4") {
				t.Errorf("debug fields missing:\n%s", out)
			}
		})
	}
}

// TestJSONLogger_ComponentAndTypedFields checks the --log-format json output:
// the program is the component and field types survive encoding.
func TestJSONLogger_ComponentAndTypedFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "pi-parallel").WithLevel(zerolog.DebugLevel).With(String("run_id", "r1"))

	logger.Debug("join complete",
		Int("workers", 4), Int64("n", 2_000_000_000), Uint64("values", 100),
		Float64("sum", 6.25), Bool("exact", false))
	logger.Error("reduction aborted", errors.New("worker 2: panic: boom"), Int("workers", 4))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	join, failure := entries[0], entries[1]

	want := map[string]any{
		"level": "debug", "message": "join complete", "component": "pi-parallel", "run_id": "r1",
		"workers": 4.0, "n": 2e9, "values": 100.0, "sum": 6.25, "exact": false,
	}
	for k, v := range want {
		if join[k] != v {
			t.Errorf("join entry %s = %v (%T), want %v", k, join[k], join[k], v)
		}
	}
	if _, ok := join["time"]; !ok {
		t.Error("entry has no timestamp")
	}
	if failure["level"] != "error" || failure["error"] != "worker 2: panic: boom" || failure["component"] != "pi-parallel" {
		t.Errorf("error entry = %v", failure)
	}
}

func TestZerologAdapter_WithLevelFilters(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "fibseq").WithLevel(zerolog.WarnLevel)

	logger.Debug("spawning sequence worker")
	logger.Info("sequence generated")
	logger.Printf("%d elements", 10)
	logger.Println("filled", 10, "elements")
	logger.Warn("int64 overflow, later elements wrap around")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0]["level"] != "warn" {
		t.Errorf("entries at warn level = %v", entries)
	}
}

func TestZerologAdapter_PrintfAndPrintln(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "pi")
	logger.Printf("%d workers joined", 3)
	logger.Println("sum", 2.5)

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0]["message"] != "3 workers joined" || entries[1]["message"] != "sum 2.5" {
		t.Errorf("messages = %q, %q", entries[0]["message"], entries[1]["message"])
	}
	for _, e := range entries {
		if e["level"] != "info" {
			t.Errorf("level = %v, want info", e["level"])
		}
	}
}

func TestZerologAdapter_ErrField(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "pi").Warn("metrics skipped", Err(errors.New("disk full")))
	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0]["error"] != "disk full" {
		t.Errorf("entries = %v", entries)
	}
}

// TestStdLoggerAdapter checks the plain-text format used by generate-golden.
func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewStdLoggerAdapter(log.New(&buf, "generate-golden: ", 0))

	logger.Info("golden file written", Uint64("values", 100), String("path", "testdata/sequence_golden.json"))
	logger.Error("write", errors.New("permission denied"), String("path", "/ro/golden.json"))
	logger.Debug("building")
	logger.Warn("count capped", Int("count", 93))
	logger.Printf("%s=%d", "last_exact_index", 92)
	logger.Println("done")

	want := strings.Join([]string{
		"generate-golden: [INFO] golden file written values=100 path=testdata/sequence_golden.json",
		"generate-golden: [ERROR] write: permission denied path=/ro/golden.json",
		"generate-golden: [DEBUG] building",
		"generate-golden: [WARN] count capped count=93",
		"generate-golden: last_exact_index=92",
		"generate-golden: done",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestNop(t *testing.T) {
	t.Parallel()
	l := Nop()
	l.Debug("partition ready", Int("workers", 2))
	l.Info("run")
	l.Warn("int64 overflow")
	l.Error("reduction aborted", errors.New("boom"))
	l.Printf("%d", 1)
	l.Println("joined")
}

func TestLoggerImplementations(t *testing.T) {
	t.Parallel()
	var _ Logger = NewConsoleLogger(&bytes.Buffer{}, zerolog.InfoLevel)
	var _ Logger = NewLogger(&bytes.Buffer{}, "pi")
	var _ Logger = NewStdLoggerAdapter(log.New(&bytes.Buffer{}, "", 0))
}
