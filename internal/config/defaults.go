package config

const (
	SchemaVersion = 1
)

// Relative layout under the user profile on Windows. Forward slashes
// everywhere; filepath.FromSlash normalizes at resolve time.
const (
	wgsRelPath   = "AppData/Local/Packages/OwlcatGames.3387926822CE4_197r75gc6ce9t/SystemAppData/wgs"
	steamRelPath = "AppData/LocalLow/Owlcat Games/Warhammer 40000 Rogue Trader/Saved Games"
)

// DefaultConfig returns a fully-populated v1 config document. Empty
// path fields defer to the profile-derived defaults.
func DefaultConfig() Config {
	return Config{
		Version: SchemaVersion,
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}
