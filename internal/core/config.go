package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config contains all of the configuration options available to a broadside peer.
type Config struct {
	// Hostname or IP address on which the host peer listens (or the joiner dials by default).
	Hostname string `mapstructure:"hostname"`
	// Port on which the host peer listens for its opponent.
	Port int `mapstructure:"port"`
	// Name announced to the opponent if this player rage quits.
	PlayerName string `mapstructure:"player_name"`
	// Full path to file to which logs will be written. Blank will write to stdout.
	LogFilePath string `mapstructure:"log_file_path"`
	// Minimum level of a log required to be written. Options: debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`
	// How long to wait on a silent opponent before giving up. Zero blocks forever.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// Skip the placement prompts and lay the fleet out randomly.
	RandomPlacement bool `mapstructure:"random_placement"`

	History struct {
		// Record finished games.
		Enabled bool `mapstructure:"enabled"`
		// Either sqlite or postgres.
		Engine string `mapstructure:"engine"`
		// Database file used by the sqlite engine.
		Filename string `mapstructure:"filename"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Name     string `mapstructure:"name"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"history"`

	Debugging struct {
		// Dump every frame sent or received to the debug log.
		PacketLoggingEnabled bool `mapstructure:"packet_logging_enabled"`
	} `mapstructure:"debugging"`
}

const envVarPrefix = "BROADSIDE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("hostname", "0.0.0.0")
	v.SetDefault("port", 11000)
	v.SetDefault("player_name", "Player")
	v.SetDefault("log_file_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("read_timeout", "0s")
	v.SetDefault("random_placement", false)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.engine", "sqlite")
	v.SetDefault("history.filename", "broadside.db")
	v.SetDefault("history.host", "localhost")
	v.SetDefault("history.port", 5432)
	v.SetDefault("history.name", "broadside")
	v.SetDefault("history.username", "")
	v.SetDefault("history.password", "")
	v.SetDefault("history.sslmode", "disable")
	v.SetDefault("debugging.packet_logging_enabled", false)
}

// LoadConfig reads config.yaml from configPath, layering environment variables
// on top of it. A missing config file is not an error; the defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// This allows us to set nested yaml config options through environment
	// variables. For example, history.engine can be set using: <envVarPrefix>_HISTORY_ENGINE
	for _, k := range v.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := v.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			return nil, fmt.Errorf("error binding %s to %s: %w", k, envVarPrefix+"_"+envVar, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config object: %w", err)
	}
	return config, nil
}

// ListenAddress returns the host:port the host peer binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Hostname, c.Port)
}

const databaseURITemplate = "host=%s port=%d dbname=%s user=%s password=%s sslmode=%s"

// DatabaseURL returns a postgres connection string generated from the history config values.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		databaseURITemplate,
		c.History.Host,
		c.History.Port,
		c.History.Name,
		c.History.Username,
		c.History.Password,
		c.History.SSLMode,
	)
}
