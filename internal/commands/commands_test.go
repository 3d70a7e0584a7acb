// ABOUTME: Tests for the command registry and dispatch
// ABOUTME: Covers every core command, aliases, unknown commands and nil callback safety

package commands

import (
	"errors"
	"strings"
	"testing"
)

type testCallbacks struct {
	quit, submitted, cleared, stopped, help bool
	theme                                   string
	reloads                                 int
}

func testContext() (*CommandContext, *testCallbacks) {
	cb := &testCallbacks{}
	ctx := &CommandContext{
		Quit:          func() { cb.quit = true },
		Submit:        func() bool { cb.submitted = true; return true },
		ClearResponse: func() { cb.cleared = true },
		Stop:          func() bool { cb.stopped = true; return true },
		ShowHelp:      func() { cb.help = true },
		SetTheme: func(name string) error {
			if name == "nope" {
				return errors.New("unknown theme")
			}
			cb.theme = name
			return nil
		},
		ThemeNames: func() []string { return []string{"default", "dark"} },
		Reload:     func() error { cb.reloads++; return nil },
	}
	return ctx, cb
}

func TestDispatch_CoreCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		check func(cb *testCallbacks) bool
		out   string
	}{
		{":q", func(cb *testCallbacks) bool { return cb.quit }, ""},
		{":quit", func(cb *testCallbacks) bool { return cb.quit }, ""},
		{":w", func(cb *testCallbacks) bool { return cb.submitted }, ""},
		{":clear", func(cb *testCallbacks) bool { return cb.cleared }, "Response cleared."},
		{":stop", func(cb *testCallbacks) bool { return cb.stopped }, "Stopped."},
		{":help", func(cb *testCallbacks) bool { return cb.help }, ""},
		{":theme dark", func(cb *testCallbacks) bool { return cb.theme == "dark" }, "Theme set to dark."},
		{":theme", func(*testCallbacks) bool { return true }, "Themes: default, dark"},
		{":reload", func(cb *testCallbacks) bool { return cb.reloads == 1 }, "Reloaded."},
		{"  :h  ", func(cb *testCallbacks) bool { return cb.help }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			r := NewRegistry()
			ctx, cb := testContext()
			out, err := r.Dispatch(ctx, tt.input)
			if err != nil {
				t.Fatalf("Dispatch(%q): %v", tt.input, err)
			}
			if out != tt.out {
				t.Errorf("output = %q, want %q", out, tt.out)
			}
			if !tt.check(cb) {
				t.Error("callback not invoked")
			}
		})
	}
}

func TestDispatch_Errors(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ctx, _ := testContext()

	if _, err := r.Dispatch(ctx, "q"); err == nil {
		t.Error("input without prefix should fail")
	}
	if _, err := r.Dispatch(ctx, ":bogus"); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("err = %v, want unknown command", err)
	}
	_, err := r.Dispatch(ctx, ":theme nope")
	if err == nil || !strings.Contains(err.Error(), ":theme") {
		t.Errorf("err = %v, want wrapped theme error", err)
	}
}

func TestDispatch_NilCallbacks(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, cmd := range r.List() {
		_, err := r.Dispatch(&CommandContext{}, string(Prefix)+cmd.Name)
		if !errors.Is(err, ErrNotAvailable) {
			t.Errorf("%s with nil callbacks: err = %v", cmd.Name, err)
		}
	}
}

func TestDispatch_EmptyResults(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ctx := &CommandContext{
		Submit: func() bool { return false },
		Stop:   func() bool { return false },
	}
	if out, _ := r.Dispatch(ctx, ":w"); out != "Prompt is empty." {
		t.Errorf(":w on empty prompt = %q", out)
	}
	if out, _ := r.Dispatch(ctx, ":stop"); out != "Nothing to stop." {
		t.Errorf(":stop idle = %q", out)
	}
}

func TestRegistry_NamesAndHelp(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	names := r.Names()
	if names[0] != "clear" {
		t.Errorf("names should start with sorted commands, got %v", names)
	}
	found := false
	for _, n := range names {
		if n == "quit" {
			found = true
		}
	}
	if !found {
		t.Error("aliases should be offered for completion")
	}
	help := r.Help()
	if !strings.Contains(help, "| `:theme [name]` |") {
		t.Errorf("help missing theme usage:\n%s", help)
	}
}

func TestIsCommand(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{":q": true, "q": false, "": false, "::": true} {
		if got := IsCommand(in); got != want {
			t.Errorf("IsCommand(%q) = %v, want %v", in, got, want)
		}
	}
}
