// ABOUTME: Environment variable expansion and overrides for settings
// ABOUTME: Replaces ${VAR} patterns in paths; PANECHAT_* variables win over files

package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Environment overrides.
const (
	EnvLogLevel  = "PANECHAT_LOG_LEVEL"
	EnvClipboard = "PANECHAT_CLIPBOARD"
	EnvTheme     = "PANECHAT_THEME"
)

// ResolveEnvVars expands ${VAR} patterns in string fields of Settings.
func ResolveEnvVars(s *Settings) {
	s.LogFile = expandEnv(s.LogFile)
	s.Theme = expandEnv(s.Theme)
	s.SyntaxStyle = expandEnv(s.SyntaxStyle)
}

// ApplyEnvOverrides replaces settings named by PANECHAT_* variables.
func ApplyEnvOverrides(s *Settings) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv(EnvClipboard); v != "" {
		s.Clipboard = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		s.Theme = v
	}
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
