// ABOUTME: Command-line (":") registry and dispatch for interactive mode
// ABOUTME: Provides q, w, clear, stop, help, theme and reload; the host supplies callbacks

package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Prefix starts every command line.
const Prefix = ':'

// ErrNotAvailable is returned when the host did not wire a command's callback.
var ErrNotAvailable = errors.New("not available")

// Command represents a ':' command.
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Execute     func(ctx *CommandContext, args string) (string, error)
}

// CommandContext provides access to app state for commands. All callbacks
// are nilable; commands return ErrNotAvailable when theirs is nil.
type CommandContext struct {
	Quit          func()
	Submit        func() bool // reports whether there was anything to send
	ClearResponse func()
	Stop          func() bool // reports whether a stream was running
	ShowHelp      func()
	SetTheme      func(name string) error
	ThemeNames    func() []string
	Reload        func() error
}

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
}

// NewRegistry creates a registry with all core commands registered.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
	r.registerCoreCommands()
	return r
}

// Register adds cmd, replacing any command with the same name.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, a := range cmd.Aliases {
		r.aliases[a] = cmd.Name
	}
}

// Get returns a command by name or alias.
func (r *Registry) Get(name string) (*Command, bool) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all commands sorted by name for deterministic output.
func (r *Registry) List() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Names returns command names followed by aliases, for completion.
func (r *Registry) Names() []string {
	var names, aliases []string
	for _, cmd := range r.List() {
		names = append(names, cmd.Name)
		aliases = append(aliases, cmd.Aliases...)
	}
	sort.Strings(aliases)
	return append(names, aliases...)
}

// Dispatch parses a ":command args" input, looks up the command, and executes it.
func (r *Registry) Dispatch(ctx *CommandContext, input string) (string, error) {
	input = strings.TrimSpace(input)
	if !IsCommand(input) {
		return "", fmt.Errorf("not a command: %q", input)
	}

	name, args, _ := strings.Cut(strings.TrimSpace(input[1:]), " ")
	cmd, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("unknown command: %c%s", Prefix, name)
	}
	out, err := cmd.Execute(ctx, strings.TrimSpace(args))
	if err != nil {
		return "", fmt.Errorf("%c%s: %w", Prefix, cmd.Name, err)
	}
	return out, nil
}

// IsCommand returns true if input starts with the command prefix.
func IsCommand(input string) bool {
	return len(input) > 0 && input[0] == Prefix
}

// Help returns a markdown table of the registered commands.
func (r *Registry) Help() string {
	var b strings.Builder
	b.WriteString("## Commands\n\n| Command | Description |\n|---|---|\n")
	for _, cmd := range r.List() {
		usage := string(Prefix) + cmd.Name
		if cmd.Usage != "" {
			usage += " " + cmd.Usage
		}
		fmt.Fprintf(&b, "| `%s` | %s |\n", usage, cmd.Description)
	}
	return b.String()
}

// registerCoreCommands adds all built-in commands to the registry.
func (r *Registry) registerCoreCommands() {
	core := []*Command{
		{
			Name:        "q",
			Aliases:     []string{"quit", "exit"},
			Description: "Quit",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.Quit == nil {
					return "", ErrNotAvailable
				}
				ctx.Quit()
				return "", nil
			},
		},
		{
			Name:        "w",
			Aliases:     []string{"write", "send"},
			Description: "Send the prompt",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.Submit == nil {
					return "", ErrNotAvailable
				}
				if !ctx.Submit() {
					return "Prompt is empty.", nil
				}
				return "", nil
			},
		},
		{
			Name:        "clear",
			Description: "Clear the response window",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ClearResponse == nil {
					return "", ErrNotAvailable
				}
				ctx.ClearResponse()
				return "Response cleared.", nil
			},
		},
		{
			Name:        "stop",
			Description: "Stop the streaming response",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.Stop == nil {
					return "", ErrNotAvailable
				}
				if !ctx.Stop() {
					return "Nothing to stop.", nil
				}
				return "Stopped.", nil
			},
		},
		{
			Name:        "help",
			Aliases:     []string{"h"},
			Description: "Show keys and commands",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ShowHelp == nil {
					return "", ErrNotAvailable
				}
				ctx.ShowHelp()
				return "", nil
			},
		},
		{
			Name:        "theme",
			Usage:       "[name]",
			Description: "List themes or switch to one",
			Execute: func(ctx *CommandContext, args string) (string, error) {
				if args == "" {
					if ctx.ThemeNames == nil {
						return "", ErrNotAvailable
					}
					return "Themes: " + strings.Join(ctx.ThemeNames(), ", "), nil
				}
				if ctx.SetTheme == nil {
					return "", ErrNotAvailable
				}
				if err := ctx.SetTheme(args); err != nil {
					return "", err
				}
				return fmt.Sprintf("Theme set to %s.", args), nil
			},
		},
		{
			Name:        "reload",
			Description: "Reload config, keybindings and theme",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.Reload == nil {
					return "", ErrNotAvailable
				}
				if err := ctx.Reload(); err != nil {
					return "", err
				}
				return "Reloaded.", nil
			},
		},
	}
	for _, cmd := range core {
		r.Register(cmd)
	}
}
