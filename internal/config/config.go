package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"pokerledger-server/internal/util"
)

// Config provides configuration for Poker Ledger
type Config struct {
	loaded bool

	// BaseURL is the public URL share links are built against
	BaseURL string `yaml:"baseUrl" envconfig:"base_url"`

	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`

	// Storage selects the game store backend: "postgres" or "memory"
	Storage string `yaml:"storage" envconfig:"storage"`

	JWT struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}

	Game struct {
		MinPlayers        int `yaml:"minPlayers" envconfig:"min_players"`
		MaxPlayers        int `yaml:"maxPlayers" envconfig:"max_players"`
		DefaultSmallBlind int `yaml:"defaultSmallBlind" envconfig:"default_small_blind"`
		DefaultBigBlind   int `yaml:"defaultBigBlind" envconfig:"default_big_blind"`
	}

	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

// DefaultConfig returns the configuration defaults
func DefaultConfig() Config {
	var c Config
	c.BaseURL = "http://localhost:5000"
	c.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	c.MigrationsPath = "./sql"
	c.Storage = "postgres"
	c.Game.MinPlayers = 3
	c.Game.MaxPlayers = 10
	c.Game.DefaultSmallBlind = 1
	c.Game.DefaultBigBlind = 2

	return c
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; defaults and environment variables
// still apply.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("PL_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("pl", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
