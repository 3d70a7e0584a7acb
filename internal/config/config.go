// ABOUTME: Settings loading with global + project config deep merge
// ABOUTME: YAML configuration via gopkg.in/yaml.v3; zero values mean "not set"

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied after merging.
const (
	DefaultScrollStep = 10
	DefaultUndoDepth  = 200
	DefaultClipboard  = "auto"
	DefaultTheme      = "default"
	DefaultLogLevel   = "info"
)

// Settings holds the merged configuration.
type Settings struct {
	ScrollStep            int    `yaml:"scroll_step,omitempty"`
	UndoDepth             int    `yaml:"undo_depth,omitempty"`
	Clipboard             string `yaml:"clipboard,omitempty"`
	SubmitOnTrailingSpace bool   `yaml:"submit_on_trailing_space,omitempty"`
	Theme                 string `yaml:"theme,omitempty"`
	SyntaxStyle           string `yaml:"syntax_style,omitempty"`
	LogFile               string `yaml:"log_file,omitempty"`
	LogLevel              string `yaml:"log_level,omitempty"`
	// Echo makes the built-in producer stream each prompt back.
	Echo bool `yaml:"echo,omitempty"`
}

// Load reads and merges global and project-local settings, applies
// environment overrides and fills defaults. Missing files are not errors.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	ApplyEnvOverrides(merged)
	merged.applyDefaults()
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge deep-merges project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.ScrollStep != 0 {
		result.ScrollStep = project.ScrollStep
	}
	if project.UndoDepth != 0 {
		result.UndoDepth = project.UndoDepth
	}
	if project.Clipboard != "" {
		result.Clipboard = project.Clipboard
	}
	if project.SubmitOnTrailingSpace {
		result.SubmitOnTrailingSpace = true
	}
	if project.Theme != "" {
		result.Theme = project.Theme
	}
	if project.SyntaxStyle != "" {
		result.SyntaxStyle = project.SyntaxStyle
	}
	if project.LogFile != "" {
		result.LogFile = project.LogFile
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.Echo {
		result.Echo = true
	}

	return &result
}

func (s *Settings) applyDefaults() {
	if s.ScrollStep <= 0 {
		s.ScrollStep = DefaultScrollStep
	}
	if s.UndoDepth <= 0 {
		s.UndoDepth = DefaultUndoDepth
	}
	if s.Clipboard == "" {
		s.Clipboard = DefaultClipboard
	}
	if s.Theme == "" {
		s.Theme = DefaultTheme
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.LogFile == "" {
		s.LogFile = DefaultLogFile()
	}
}
