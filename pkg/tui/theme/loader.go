// ABOUTME: YAML or TOML theme file loading with default fallback
// ABOUTME: Unset palette fields inherit from the base theme so every role has a color

package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// yamlPalette is the file representation of a Palette.
type yamlPalette struct {
	Text        string `yaml:"text" toml:"text"`
	Muted       string `yaml:"muted" toml:"muted"`
	Accent      string `yaml:"accent" toml:"accent"`
	Placeholder string `yaml:"placeholder" toml:"placeholder"`
	Error       string `yaml:"error" toml:"error"`

	BorderNormal     string `yaml:"border_normal" toml:"border_normal"`
	BorderInsert     string `yaml:"border_insert" toml:"border_insert"`
	BorderVisual     string `yaml:"border_visual" toml:"border_visual"`
	BorderBackground string `yaml:"border_background" toml:"border_background"`
	BorderInactive   string `yaml:"border_inactive" toml:"border_inactive"`

	CursorFg    string `yaml:"cursor_fg" toml:"cursor_fg"`
	CursorBg    string `yaml:"cursor_bg" toml:"cursor_bg"`
	SelectionFg string `yaml:"selection_fg" toml:"selection_fg"`
	SelectionBg string `yaml:"selection_bg" toml:"selection_bg"`

	CodeBg    string `yaml:"code_bg" toml:"code_bg"`
	CodeFence string `yaml:"code_fence" toml:"code_fence"`
}

type yamlTheme struct {
	Name        string      `yaml:"name" toml:"name"`
	Base        string      `yaml:"base" toml:"base"`
	SyntaxStyle string      `yaml:"syntax_style" toml:"syntax_style"`
	Palette     yamlPalette `yaml:"palette" toml:"palette"`
}

// themeExts lists the file extensions tried when resolving a theme name.
var themeExts = []string{".yaml", ".yml", ".toml"}

// LoadFile reads a YAML or TOML theme file, chosen by extension. Missing
// fields fall back to the theme named by `base`, or the default theme.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var yt yamlTheme
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &yt)
	} else {
		err = yaml.Unmarshal(data, &yt)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if yt.Name == "" {
		yt.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	base := builtins["default"]
	if yt.Base != "" {
		b := Builtin(yt.Base)
		if b == nil {
			return nil, fmt.Errorf("theme %q: unknown base %q", yt.Name, yt.Base)
		}
		base = b
	}

	th := &Theme{
		Name:        yt.Name,
		SyntaxStyle: base.SyntaxStyle,
		Palette:     convertPalette(yt.Palette, base.Palette),
	}
	if yt.SyntaxStyle != "" {
		th.SyntaxStyle = yt.SyntaxStyle
	}
	return th, nil
}

// Resolve returns the builtin named name, or loads it as a file path.
func Resolve(name string) (*Theme, error) {
	if th := Builtin(name); th != nil {
		return th, nil
	}
	return LoadFile(name)
}

// ResolveIn is Resolve that also looks for name.yaml, name.yml or
// name.toml in dir.
func ResolveIn(name, dir string) (*Theme, error) {
	if th := Builtin(name); th != nil {
		return th, nil
	}
	if dir != "" && !strings.ContainsRune(name, filepath.Separator) {
		for _, ext := range themeExts {
			path := filepath.Join(dir, name+ext)
			th, err := LoadFile(path)
			if err == nil {
				return th, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}
	return LoadFile(name)
}

// Names returns the builtin names followed by theme files found in dir.
func Names(dir string) []string {
	names := BuiltinNames()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return names
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		for _, want := range themeExts {
			if !e.IsDir() && ext == want {
				names = append(names, strings.TrimSuffix(e.Name(), ext))
				break
			}
		}
	}
	return names
}

// ForProfile swaps in the monochrome theme when the terminal profile has
// no colors, as with NO_COLOR or a dumb terminal.
func ForProfile(t *Theme, p termenv.Profile) *Theme {
	if p == termenv.Ascii {
		return builtins["monochrome"]
	}
	return t
}

// convertPalette maps yamlPalette fields onto a Palette by field name,
// keeping base values for empty fields.
func convertPalette(yp yamlPalette, base Palette) Palette {
	p := base

	ypv := reflect.ValueOf(yp)
	pv := reflect.ValueOf(&p).Elem()
	ypt := ypv.Type()

	for i := range ypt.NumField() {
		val := ypv.Field(i).String()
		if val == "" {
			continue
		}
		pf := pv.FieldByName(ypt.Field(i).Name)
		if pf.IsValid() && pf.CanSet() {
			pf.Set(reflect.ValueOf(lipgloss.Color(val)))
		}
	}

	return p
}
