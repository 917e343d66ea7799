package shared

import (
	_ "embed"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Library LibraryConfig `toml:"library"`
	Limits  LimitsConfig  `toml:"limits"`
}

// ServerConfig contains the listen address for the command server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port pair clients dial.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LibraryConfig locates the song library and the durable data directory.
//
// SongsDir holds the audio files the catalogue is derived from. DataDir holds
// users.toml, ratings.toml and the playlists/ subdirectory.
type LibraryConfig struct {
	SongsDir string `toml:"songs_dir"`
	DataDir  string `toml:"data_dir"`
}

// UsersPath returns the path of the users record file.
func (l LibraryConfig) UsersPath() string {
	return filepath.Join(l.DataDir, "users.toml")
}

// RatingsPath returns the path of the aggregate rating record file.
func (l LibraryConfig) RatingsPath() string {
	return filepath.Join(l.DataDir, "ratings.toml")
}

// PlaylistsDir returns the directory holding one record file per playlist.
func (l LibraryConfig) PlaylistsDir() string {
	return filepath.Join(l.DataDir, "playlists")
}

// LimitsConfig throttles how fast a single connection may issue commands.
type LimitsConfig struct {
	CommandsPerSecond float64 `toml:"commands_per_second"`
	Burst             int     `toml:"burst"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
