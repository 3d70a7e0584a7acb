// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Flags override config values: --theme, --log-level, --log-file, --clipboard, --echo

package main

import (
	"flag"

	"github.com/mauromedda/panechat/internal/config"
)

type cliArgs struct {
	theme      string
	logLevel   string
	logFile    string
	clipboard  string
	echo       bool
	trailing   bool
	exportKeys bool
	version    bool
}

func parseFlags(fs *flag.FlagSet, argv []string) (cliArgs, error) {
	var args cliArgs

	fs.StringVar(&args.theme, "theme", "", "Theme name or theme file path")
	fs.StringVar(&args.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&args.logFile, "log-file", "", "Log file path")
	fs.StringVar(&args.clipboard, "clipboard", "", "Clipboard provider (auto, system, osc52, memory)")
	fs.BoolVar(&args.echo, "echo", false, "Stream each prompt back as the response")
	fs.BoolVar(&args.trailing, "submit-on-trailing-space", false, "Enter in Insert mode submits when the prompt ends with a space")
	fs.BoolVar(&args.exportKeys, "export-keybindings", false, "Print the default keybindings as YAML and exit")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	return args, nil
}

// apply copies set flags over s.
func (a cliArgs) apply(s *config.Settings) {
	if a.theme != "" {
		s.Theme = a.theme
	}
	if a.logLevel != "" {
		s.LogLevel = a.logLevel
	}
	if a.logFile != "" {
		s.LogFile = a.logFile
	}
	if a.clipboard != "" {
		s.Clipboard = a.clipboard
	}
	if a.echo {
		s.Echo = true
	}
	if a.trailing {
		s.SubmitOnTrailingSpace = true
	}
}
