package config

// Config is the frozen v1 schema for ~/.saveporter/config.toml.
type Config struct {
	Version int           `toml:"version"`
	WGS     WGSConfig     `toml:"wgs"`
	Steam   SteamConfig   `toml:"steam"`
	Scratch ScratchConfig `toml:"scratch"`
	Audit   AuditConfig   `toml:"audit"`
}

// WGSConfig points at the Xbox Game Pass storage root. An empty root
// means "derive from the user profile and the known package path".
type WGSConfig struct {
	Root string `toml:"root,omitempty"`
}

// SteamConfig points at the Steam Saved Games directory for the title.
type SteamConfig struct {
	SavedGames string `toml:"saved_games,omitempty"`
}

// ScratchConfig controls where dry-run output is retained.
type ScratchConfig struct {
	KeepDir string `toml:"keep_dir,omitempty"`
}

// AuditConfig controls the JSONL conversion log.
type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}
