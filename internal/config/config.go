// Package config loads mindreset settings from an optional config file, a
// .env file and MINDRESET_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Milestone policies.
const (
	PolicyEvery  = "every"
	PolicyLevels = "levels"
)

// Config holds application configuration.
type Config struct {
	Env          string        `mapstructure:"env"`           // "production" switches to JSON logs
	DB           string        `mapstructure:"db"`            // SQLite path; empty = XDG default
	Bank         string        `mapstructure:"bank"`          // question bank file; empty = bundled bank
	AdvanceDelay time.Duration `mapstructure:"advance_delay"` // feedback time before the next question
	Milestone    Milestone     `mapstructure:"milestone"`
	Sound        Sound         `mapstructure:"sound"`
	Share        Share         `mapstructure:"share"`
	Log          Log           `mapstructure:"log"`
}

// Milestone controls when the level-up cue plays.
type Milestone struct {
	Policy   string `mapstructure:"policy"`   // "every" or "levels"
	Interval int    `mapstructure:"interval"` // questions per milestone for "every"
}

// Sound configures the audio cue player.
type Sound struct {
	Enabled bool     `mapstructure:"enabled"`
	Dir     string   `mapstructure:"dir"`     // user-supplied click.mp3, brain-power.mp3, level-up.mp3
	Command string   `mapstructure:"command"` // player binary; empty = autodetect
	Args    []string `mapstructure:"args"`    // extra player arguments before the file
	Bell    bool     `mapstructure:"bell"`    // ring the terminal bell when no player works
}

// Share configures the completion share action.
type Share struct {
	URL     string `mapstructure:"url"`
	Text    string `mapstructure:"text"`    // may contain %d for the score
	Command string `mapstructure:"command"` // native share command; empty = autodetect
}

// Log configures the file logger.
type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Options tells Load where to look.
type Options struct {
	ConfigFile string // explicit config file; empty = search the default paths
	EnvFile    string // .env file; empty = ".env" in the working directory
}

// Load reads configuration from the .env file, config file and environment.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("mindreset")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("MINDRESET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.ConfigFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("db", "")
	v.SetDefault("bank", "")
	v.SetDefault("advance_delay", "2s")
	v.SetDefault("milestone.policy", PolicyEvery)
	v.SetDefault("milestone.interval", 20)
	v.SetDefault("sound.enabled", true)
	v.SetDefault("sound.dir", defaultSoundDir())
	v.SetDefault("sound.command", "")
	v.SetDefault("sound.args", []string{})
	v.SetDefault("sound.bell", true)
	v.SetDefault("share.url", "https://github.com/abhisek/mindreset")
	v.SetDefault("share.text", "I cleared RESET with %d XP and took charge of my neocortex!")
	v.SetDefault("share.command", "")
	v.SetDefault("log.file", defaultLogFile())
	v.SetDefault("log.level", "info")
}

// Validate checks that the values are usable.
func (c *Config) Validate() error {
	if c.AdvanceDelay <= 0 {
		return fmt.Errorf("%w: advance_delay must be > 0, got %s", ErrInvalid, c.AdvanceDelay)
	}
	switch c.Milestone.Policy {
	case PolicyEvery:
		if c.Milestone.Interval <= 0 {
			return fmt.Errorf("%w: milestone.interval must be > 0, got %d", ErrInvalid, c.Milestone.Interval)
		}
	case PolicyLevels:
	default:
		return fmt.Errorf("%w: unknown milestone.policy %q", ErrInvalid, c.Milestone.Policy)
	}
	if c.Share.URL == "" {
		return fmt.Errorf("%w: share.url cannot be empty", ErrInvalid)
	}
	return nil
}

// IsProduction reports whether the app runs with production logging.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func configDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "mindreset"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mindreset"), nil
}

func defaultSoundDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "mindreset", "sounds")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sounds"
	}
	return filepath.Join(home, ".local", "share", "mindreset", "sounds")
}

func defaultLogFile() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "mindreset", "mindreset.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "mindreset", "mindreset.log")
}
