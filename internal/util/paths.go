package util

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// AppName names the per-user config and state directories.
	AppName = "go-claude-statusline"

	// ConfigDirEnv overrides the Claude data directories with a comma separated list.
	ConfigDirEnv = "CLAUDE_CONFIG_DIR"
)

// ErrNoDataDir is returned when none of the candidate Claude data directories exist.
var ErrNoDataDir = errors.New("no Claude data directory found")

// CandidateDataDirs returns the directories that may hold Claude session
// logs. CLAUDE_CONFIG_DIR, when set, replaces the defaults entirely.
func CandidateDataDirs() []string {
	if env := os.Getenv(ConfigDirEnv); strings.TrimSpace(env) != "" {
		return SplitDirList(env)
	}
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(xdg.ConfigHome, "claude"),
		filepath.Join(home, ".claude"),
	}
}

// SplitDirList splits a comma separated directory list, dropping empty items.
func SplitDirList(list string) []string {
	var dirs []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			dirs = append(dirs, ExpandPath(p))
		}
	}
	return dirs
}

// ResolveDataDirs filters candidates to existing directories, dropping
// duplicates. It returns ErrNoDataDir when nothing is left.
func ResolveDataDirs(candidates []string) ([]string, error) {
	seen := make(map[string]bool, len(candidates))
	var dirs []string
	for _, c := range candidates {
		c = filepath.Clean(ExpandPath(c))
		if seen[c] {
			continue
		}
		seen[c] = true
		info, err := os.Stat(c)
		if err != nil || !info.IsDir() {
			LogDebugf("Skipping Claude data directory candidate %s", c)
			continue
		}
		dirs = append(dirs, c)
	}
	if len(dirs) == 0 {
		return nil, ErrNoDataDir
	}
	return dirs, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/go-claude-statusline/config.yaml.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultLogFile returns $XDG_STATE_HOME/go-claude-statusline/app.log.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, AppName, "app.log")
}

// EnsureDir creates dir and its parents if needed.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
