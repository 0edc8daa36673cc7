package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds server settings, read from an optional YAML file plus
// environment variables. Environment values override file values.
type Config struct {
	Addr    string `yaml:"addr" env:"BROCANTE_ADDR" env-default:":8000" env-description:"listen address"`
	DBPath  string `yaml:"db_path" env:"BROCANTE_DB" env-default:"brocante.sqlite3" env-description:"SQLite database file"`
	LogPath string `yaml:"log_path" env:"BROCANTE_LOG" env-default:"" env-description:"optional log file"`
}

// Load reads configuration. path may be empty, in which case only the
// environment and defaults apply. A missing file at a non-empty path is an
// error rather than silently ignored.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading config from environment: %w", err)
	}
	return &cfg, nil
}
