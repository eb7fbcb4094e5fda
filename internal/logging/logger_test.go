package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestConsoleFormatIsSingleLine(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("library opened", "path", "/tmp/Photos.sqlite")

	out := strings.TrimRight(buf.String(), "\n")
	if strings.Contains(out, "\n") {
		t.Fatalf("expected a single line, got %q", out)
	}
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "library opened") {
		t.Fatalf("missing level or message: %q", out)
	}
	if !strings.Contains(out, "path=/tmp/Photos.sqlite") {
		t.Fatalf("missing attribute: %q", out)
	}
}

func TestJSONFormatEmitsParsableRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("schema capabilities discovered", "attributes", true)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if record["msg"] != "schema capabilities discovered" {
		t.Fatalf("unexpected msg %v", record["msg"])
	}
	if record["attributes"] != true {
		t.Fatalf("unexpected attributes value %v", record["attributes"])
	}
}

func TestLevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record should pass: %q", out)
	}
}

func TestUnknownFormatIsRejected(t *testing.T) {
	if _, err := New(Options{Format: "syslog"}); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	for _, level := range []string{"", "verbose", "INFO"} {
		if got := parseLevel(level); got != parseLevel("info") {
			t.Fatalf("parseLevel(%q) = %v, want info", level, got)
		}
	}
}
