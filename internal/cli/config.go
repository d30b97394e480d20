package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	PlayerID     string
	PlayerIDFile string
	Output       string
	Verbose      bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("PROBE_SERVER", "http://localhost:8080"),
		PlayerID:     os.Getenv("PROBE_PLAYER_ID"),
		PlayerIDFile: getEnvOrDefault("PROBE_PLAYER_ID_FILE", defaultPlayerIDFile()),
		Output:       "text",
		Verbose:      false,
	}
}

// LoadPlayerID loads the stored player ID if not already set
func (c *Config) LoadPlayerID() error {
	if c.PlayerID != "" {
		return nil
	}

	data, err := os.ReadFile(c.PlayerIDFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No stored identity is fine
		}
		return err
	}

	c.PlayerID = strings.TrimSpace(string(data))
	return nil
}

// SavePlayerID stores the player ID issued on create/join
func (c *Config) SavePlayerID(playerID string) error {
	c.PlayerID = playerID

	dir := filepath.Dir(c.PlayerIDFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.PlayerIDFile, []byte(playerID), 0600)
}

func defaultPlayerIDFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".probectl/player"
	}
	return filepath.Join(home, ".probectl", "player")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
