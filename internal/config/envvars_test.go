// ABOUTME: Tests for ${VAR} expansion and PANECHAT_* overrides
// ABOUTME: Uses t.Setenv, so tests in this file do not run in parallel

package config

import "testing"

func TestExpandEnv(t *testing.T) {
	t.Setenv("PC_HOME", "/home/pc")

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"${PC_HOME}/log", "/home/pc/log"},
		{"${PC_UNSET_VAR}x", "x"},
	}
	for _, tt := range tests {
		if got := expandEnv(tt.in); got != tt.want {
			t.Errorf("expandEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTheme, "monochrome")

	s := &Settings{LogLevel: "warn", Theme: "dark", Clipboard: "system"}
	ApplyEnvOverrides(s)
	if s.LogLevel != "debug" || s.Theme != "monochrome" {
		t.Errorf("overrides not applied: %+v", s)
	}
	if s.Clipboard != "system" {
		t.Errorf("unset variable changed Clipboard to %q", s.Clipboard)
	}
}
