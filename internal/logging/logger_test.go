package logging

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

// capture points the default logger at a buffer for the duration of the test
func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer

	s := defaultLogger.sink
	s.mu.Lock()
	origOutput, origLevel, origColor := s.output, s.level, s.color
	s.mu.Unlock()

	t.Cleanup(func() {
		s.mu.Lock()
		s.output, s.level, s.color = origOutput, origLevel, origColor
		s.mu.Unlock()
	})

	SetOutput(&buf)
	SetLevel(level)
	return &buf
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_Color(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DEBUG, "\033[36m"},
		{INFO, "\033[32m"},
		{WARN, "\033[33m"},
		{ERROR, "\033[31m"},
		{Level(99), "\033[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.Color(); got != tt.want {
				t.Errorf("Level.Color() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{" warn ", WARN},
		{"warning", WARN},
		{"Error", ERROR},
		{"", INFO},
		{"loud", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_BufferHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DEBUG)
	logger.Info("plain")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("non-terminal output should not be coloured: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[INFO] plain") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestSetColor(t *testing.T) {
	buf := capture(t, DEBUG)
	SetColor(true)

	Warn("tinted")

	if !strings.Contains(buf.String(), "\033[33m[WARN]\033[0m") {
		t.Errorf("expected coloured WARN tag, got %q", buf.String())
	}
}

func TestWithField(t *testing.T) {
	logger := WithField("key", "value")

	if logger.fields["key"] != "value" {
		t.Error("field not set correctly")
	}
	if len(defaultLogger.fields) > 0 {
		t.Error("should not modify default logger")
	}
}

func TestLogger_WithFields_PreservesExisting(t *testing.T) {
	base := New(os.Stdout, INFO).WithField("existing", "value")

	logger := base.WithFields(map[string]interface{}{
		"new1": "value1",
		"new2": "value2",
	})

	if len(logger.fields) != 3 {
		t.Errorf("got %d fields, want 3", len(logger.fields))
	}
	if logger.fields["existing"] != "value" {
		t.Error("existing field not preserved")
	}
	if _, ok := base.fields["new1"]; ok {
		t.Error("original logger was modified")
	}
}

func TestLogger_DerivedSharesSink(t *testing.T) {
	buf := capture(t, ERROR)
	derived := WithField("path", "/tmp/appdata.json")

	derived.Warn("filtered")
	if buf.Len() > 0 {
		t.Error("derived logger should follow the shared level")
	}

	SetLevel(WARN)
	derived.Warn("shown")
	if !strings.Contains(buf.String(), "shown | path=/tmp/appdata.json") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, WARN)

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() > 0 {
		t.Error("DEBUG and INFO should be filtered when level is WARN")
	}

	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Error("WARN should not be filtered")
	}

	buf.Reset()
	logger.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("ERROR should not be filtered")
	}
}

func TestLogger_FormatWithArgs(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, DEBUG).Info("saved %d meals", 42)

	if !strings.Contains(buf.String(), "saved 42 meals") {
		t.Errorf("output should contain formatted value: %s", buf.String())
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DEBUG).WithFields(map[string]interface{}{
		"zeta":  1,
		"alpha": 2,
		"mid":   "x",
	})

	logger.Info("test")

	if !strings.Contains(buf.String(), "| alpha=2 mid=x zeta=1") {
		t.Errorf("fields should be sorted by key: %q", buf.String())
	}
}

func TestPackageFunctions(t *testing.T) {
	buf := capture(t, DEBUG)

	tests := []struct {
		name string
		fn   func(string, ...interface{})
		tag  string
	}{
		{"Debug", Debug, "[DEBUG]"},
		{"Info", Info, "[INFO]"},
		{"Warn", Warn, "[WARN]"},
		{"Error", Error, "[ERROR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message")
			if !strings.Contains(buf.String(), tt.tag) {
				t.Errorf("%s should output %s, got %q", tt.name, tt.tag, buf.String())
			}
		})
	}
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DEBUG)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.WithField("n", n).Info("message %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10 {
		t.Errorf("expected 10 log lines, got %d", len(lines))
	}
}

func TestLogLevelConstants(t *testing.T) {
	if !(DEBUG < INFO && INFO < WARN && WARN < ERROR) {
		t.Error("levels should be ordered DEBUG < INFO < WARN < ERROR")
	}
}

func TestDefaultLoggerInitialization(t *testing.T) {
	if Default() == nil {
		t.Fatal("default logger should be initialized")
	}
	if Default().fields == nil {
		t.Error("default fields should be initialized")
	}
}
