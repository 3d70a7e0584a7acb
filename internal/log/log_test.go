// ABOUTME: Tests for the leveled logging package
// ABOUTME: Validates level filtering, level parsing and the file sink

package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Tests in this file share the package-level level and sink, so they do
// not run in parallel.

func TestSetLevel(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", GetLevel())
	}
	SetLevel(LevelError)
	if GetLevel() != LevelError {
		t.Errorf("expected LevelError, got %v", GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"debug", "DEBUG", false},
		{"WARN", "WARN", false},
		{" error ", "ERROR", false},
		{"loud", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got.String() != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetLevel(LevelWarn)
	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("suppressed levels were written: %q", got)
	}
	if !strings.Contains(got, "[WARN] shown 3") || !strings.Contains(got, "[ERROR] shown 4") {
		t.Errorf("missing lines in %q", got)
	}
}

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "panechat.log")
	if err := Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	Error("disk %s", "line")
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[ERROR] disk line") {
		t.Errorf("log file = %q", data)
	}
}
