package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/.config/notifyd
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// PathExists checks if the given path exists.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// ConfigEnv names the environment variable consulted by ResolveConfigPath.
const ConfigEnv = "NOTIFYD_CONFIG"

// DefaultConfigCandidates are probed in order when no path is given.
var DefaultConfigCandidates = []string{
	"notifyd.yaml",
	"notifyd.yml",
	"notifyd.toml",
	"notifyd.json",
	"~/.config/notifyd/config.yaml",
}

// ResolveConfigPath picks the config file to load: explicit wins, then
// $NOTIFYD_CONFIG, then the first existing default candidate. An explicit or
// env path that does not exist is an error; no candidate found returns "".
func ResolveConfigPath(explicit string) (string, error) {
	for _, p := range []string{explicit, os.Getenv(ConfigEnv)} {
		if p == "" {
			continue
		}
		exp, err := ExpandHome(p)
		if err != nil {
			return "", err
		}
		if !PathExists(exp) {
			return "", fmt.Errorf("config file not found: %s", exp)
		}
		return exp, nil
	}
	for _, c := range DefaultConfigCandidates {
		exp, err := ExpandHome(c)
		if err != nil {
			continue
		}
		if PathExists(exp) {
			return exp, nil
		}
	}
	return "", nil
}
