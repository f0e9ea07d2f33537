package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleHandlerIncludesComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	component := NewComponentLogger(logger, "planner")
	component.Info("plan built", Int("to_migrate", 12), String("path", "/tmp/plan.json"))

	line := buf.String()
	if !strings.Contains(line, "INFO planner: plan built") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "to_migrate=12") {
		t.Fatalf("missing int attr: %q", line)
	}
	if !strings.Contains(line, "path=/tmp/plan.json") {
		t.Fatalf("missing string attr: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Warn("no match", String("title", "The Matrix Reloaded"))

	if !strings.Contains(buf.String(), `title="The Matrix Reloaded"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be suppressed: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("hello", Int("n", 1))

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Fatalf("unexpected json output: %q", out)
	}
	if !strings.Contains(out, `"level":"info"`) {
		t.Fatalf("level key missing: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
