package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	Address     string        `yaml:"address" env:"AUTHORITY_ADDRESS" env-default:":8090"`
	HTTPTimeout time.Duration `yaml:"timeout" env:"AUTHORITY_TIMEOUT" env-default:"5s"`
	DBDriver    string        `yaml:"db_driver" env:"DB_DRIVER" env-default:"sqlite"`
	DBAddress   string        `yaml:"db_address" env:"DB_ADDRESS" env-default:"home-maintenance.db"`
	Title       string        `yaml:"title" env:"PANEL_TITLE" env-default:"Home Maintenance"`
}

func MustLoad(configPath string) Config {
	var cfg Config

	// no path given: environment only
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read env: %s", err)
		}
		return cfg
	}

	// try the file, fall back to environment when it does not exist
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				log.Fatalf("cannot read env: %s", err)
			}
			return cfg
		}
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}

	return cfg
}
