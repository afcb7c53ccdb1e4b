// Package config loads paneboard settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides: profile.dir is PANEBOARD_PROFILE_DIR.
const EnvPrefix = "PANEBOARD"

// DefaultLayout is mounted when no profile or descriptor is given.
const DefaultLayout = "{Dh30%(clock:)[(md:# paneboard\n\nPress `space e` to edit this board.)(dummy:)]}"

// Config holds application configuration.
type Config struct {
	Profile ProfileConfig `mapstructure:"profile"`
	Layout  LayoutConfig  `mapstructure:"layout"`
	UI      UIConfig      `mapstructure:"ui"`
	State   StateConfig   `mapstructure:"state"`
	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
}

// ProfileConfig selects where boards are saved.
type ProfileConfig struct {
	// Store is "file" or "redis".
	Store     string `mapstructure:"store"`
	Dir       string `mapstructure:"dir"`
	Name      string `mapstructure:"name"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisKey  string `mapstructure:"redis_key"`
}

// LayoutConfig holds the board shown when the named profile does not exist.
type LayoutConfig struct {
	Default   string `mapstructure:"default"`
	Authoring bool   `mapstructure:"authoring"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Tick          time.Duration `mapstructure:"tick"`
	MarkdownStyle string        `mapstructure:"markdown_style"`
	Shell         string        `mapstructure:"shell"`
}

// StateConfig points at the device-state mirror file.
type StateConfig struct {
	File string `mapstructure:"file"`
}

// LogConfig: empty File discards logs.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// HTTPConfig: empty Addr disables the status server.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from path (or PANEBOARD_CONFIG, or
// ~/.config/paneboard/config.toml) and the environment. A missing file is not
// an error; a malformed one is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("profile.store", "file")
	v.SetDefault("profile.dir", "")
	v.SetDefault("profile.name", "default")
	v.SetDefault("profile.redis_addr", "localhost:6379")
	v.SetDefault("profile.redis_key", "")
	v.SetDefault("layout.default", DefaultLayout)
	v.SetDefault("layout.authoring", false)
	v.SetDefault("ui.tick", time.Second)
	v.SetDefault("ui.markdown_style", "dark")
	v.SetDefault("ui.shell", "sh")
	v.SetDefault("state.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("http.addr", "")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "paneboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the rest of the program cannot act on.
func (c Config) Validate() error {
	switch c.Profile.Store {
	case "file", "redis":
	default:
		return fmt.Errorf("profile.store: unknown store %q (want file or redis)", c.Profile.Store)
	}
	if c.UI.Tick <= 0 {
		return fmt.Errorf("ui.tick: must be positive, got %s", c.UI.Tick)
	}
	return nil
}
