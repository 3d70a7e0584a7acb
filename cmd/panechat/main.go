// ABOUTME: CLI entry point for panechat
// ABOUTME: Parses flags, loads config, sets up logging, theme, clipboard and keys, then runs the TUI

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// termfix must be imported before any package that imports bubbletea.
	// It sets lipgloss.SetHasDarkBackground(true) in its init(), preventing
	// BubbleTea's init from sending OSC 10/11 terminal queries whose async
	// responses leak garbage into the prompt.
	_ "github.com/mauromedda/panechat/internal/termfix"

	"github.com/mauromedda/panechat/internal/config"
	"github.com/mauromedda/panechat/internal/keybindings"
	pclog "github.com/mauromedda/panechat/internal/log"
	"github.com/mauromedda/panechat/internal/mode/interactive/btea"
	"github.com/mauromedda/panechat/pkg/tui/clipboard"
	"github.com/mauromedda/panechat/pkg/tui/theme"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if args.version {
		fmt.Printf("panechat %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}
	if args.exportKeys {
		out, err := config.NewKeybindings().ExportTemplate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run performs the initialization sequence and blocks in the TUI.
func run(args cliArgs) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	settings, err := loadSettings(cwd, args)
	if err != nil {
		return err
	}

	if err := setupLogging(settings); err != nil {
		return err
	}
	defer pclog.Close()
	pclog.Info("panechat %s starting in %s", version, cwd)

	profile := termenv.EnvColorProfile()
	if err := activateTheme(settings.Theme, profile); err != nil {
		pclog.Warn("theme %q: %v; using default", settings.Theme, err)
	}

	clip, err := clipboard.New(clipboard.Kind(settings.Clipboard), os.Stderr)
	if err != nil {
		pclog.Warn("clipboard: %v; using in-memory clipboard", err)
		clip = clipboard.NewMemory()
	}

	globalKeys, projectKeys := config.GlobalKeybindingsFile(), config.ProjectKeybindingsFile(cwd)
	keys := keybindings.New(globalKeys, projectKeys)
	logConflicts(keys)

	deps := btea.AppDeps{
		Settings:  settings,
		Keys:      keys,
		Clipboard: clip,
		Version:   version,
		KeyHelp:   keys.FormatAll,
		ThemesDir: config.ThemesDir(),
		Profile:   profile,
		WatchPaths: []string{
			config.GlobalConfigFile(),
			config.ProjectConfigFile(cwd),
			globalKeys,
			projectKeys,
		},
		Reload: func() (*config.Settings, error) {
			s, err := loadSettings(cwd, args)
			if err != nil {
				return nil, err
			}
			if lvl, err := pclog.ParseLevel(s.LogLevel); err == nil {
				pclog.SetLevel(lvl)
			}
			keys.Reload(globalKeys, projectKeys)
			logConflicts(keys)
			return s, activateTheme(s.Theme, profile)
		},
	}
	if settings.Echo {
		deps.Producer = btea.EchoProducer{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return btea.Run(ctx, deps)
}

func loadSettings(cwd string, args cliArgs) (*config.Settings, error) {
	settings, err := config.Load(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	args.apply(settings)
	return settings, nil
}

// setupLogging sends logs to a file; the terminal belongs to the TUI.
func setupLogging(s *config.Settings) error {
	lvl, err := pclog.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	pclog.SetLevel(lvl)

	path := s.LogFile
	if path == "" {
		path = config.DefaultLogFile()
	}
	return pclog.Open(path)
}

func activateTheme(name string, profile termenv.Profile) error {
	th, err := theme.ResolveIn(name, config.ThemesDir())
	if err != nil {
		theme.Set(theme.ForProfile(theme.Builtin("default"), profile))
		return err
	}
	theme.Set(theme.ForProfile(th, profile))
	return nil
}

func logConflicts(keys *keybindings.Manager) {
	for _, c := range keys.Conflicts() {
		pclog.Warn("key %s is bound to several actions: %v", c.Key, c.Actions)
	}
}
