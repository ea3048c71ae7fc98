package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".saveporter", "config.toml")
	}
	return filepath.Join(home, ".saveporter", "config.toml")
}

// ProfileDir returns the active user's profile directory. USERPROFILE
// wins when set (the tool targets Windows save layouts), with the home
// directory as the portable fallback.
func ProfileDir() (string, error) {
	if profile := os.Getenv("USERPROFILE"); profile != "" {
		return profile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("CFG_PROFILE: cannot determine user profile directory")
	}
	return home, nil
}

func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}

// ResolveWGSRoot returns the configured Xbox storage root, or the
// profile-derived default when the config leaves it empty.
func ResolveWGSRoot(cfg Config) (string, error) {
	if cfg.WGS.Root != "" {
		expanded, err := ExpandPath(cfg.WGS.Root)
		if err != nil {
			return "", err
		}
		return filepath.Clean(expanded), nil
	}
	profile, err := ProfileDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(profile, filepath.FromSlash(wgsRelPath)), nil
}

// ResolveSteamDir returns the destination Saved Games directory.
func ResolveSteamDir(cfg Config) (string, error) {
	if cfg.Steam.SavedGames != "" {
		expanded, err := ExpandPath(cfg.Steam.SavedGames)
		if err != nil {
			return "", err
		}
		return filepath.Clean(expanded), nil
	}
	profile, err := ProfileDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(profile, filepath.FromSlash(steamRelPath)), nil
}

// ResolveKeepDir returns the directory where dry-run scratch output is
// retained for inspection.
func ResolveKeepDir(cfg Config) (string, error) {
	if cfg.Scratch.KeepDir != "" {
		expanded, err := ExpandPath(cfg.Scratch.KeepDir)
		if err != nil {
			return "", err
		}
		return filepath.Clean(expanded), nil
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cache, "saveporter", "dryrun"), nil
}

// ResolveAuditPath returns the JSONL log path, defaulting to a sibling
// of the config file.
func ResolveAuditPath(cfg Config, configPath string) string {
	if cfg.Audit.Path != "" {
		if expanded, err := ExpandPath(cfg.Audit.Path); err == nil {
			return expanded
		}
	}
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	return filepath.Join(filepath.Dir(configPath), "audit.jsonl")
}
