package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultAuthority      = "http://localhost:8090"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Complete string `toml:"complete"`
	Delete   string `toml:"delete"`
	Detail   string `toml:"detail"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Edit     string `toml:"edit"`
	Reload   string `toml:"reload"`
	SortDue  string `toml:"sort_due"`
	SortName string `toml:"sort_name"`
	SortSpan string `toml:"sort_span"`
}

type Config struct {
	AuthorityAddress string        `toml:"authority_address"`
	RequestTimeout   time.Duration `toml:"request_timeout"`
	LogFile          string        `toml:"log_file"`
	Keys             Keymap        `toml:"keys"`
}

// DefaultPath places the config under the user config dir, falling back
// to the working directory when none is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "home-maintenance", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return cfg, err
		}
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.AuthorityAddress == "" {
		cfg.AuthorityAddress = DefaultAuthority
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		AuthorityAddress: DefaultAuthority,
		RequestTimeout:   5 * time.Second,
		LogFile:          "",
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Up:       "k",
			Down:     "j",
			Complete: " ",
			Delete:   "d",
			Detail:   "enter",
			Confirm:  "enter",
			Cancel:   "esc",
			Edit:     "e",
			Reload:   "r",
			SortDue:  "1",
			SortName: "2",
			SortSpan: "3",
		},
	}
}
