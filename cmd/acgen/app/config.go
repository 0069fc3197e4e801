package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/acgen/pkg/constants"
	"github.com/agentstation/acgen/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Host registry
	Manifest       string
	Bin            string
	CacheDir       string
	Shell          string
	TopicSeparator string

	// SeparatorOverride is AUTOCOMPLETE_TOPIC_SEPARATOR; only ":" has an effect
	SeparatorOverride string

	// Logging configuration. LogLevel comes from --log-level, DefaultLogLevel
	// from LOG_LEVEL or the config file.
	LogLevel        string
	DefaultLogLevel string
	LogFormat       string
	LogOutput       string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.acgen.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

// loadConfig reads configFile, which must exist, or searches the standard
// locations when it is empty.
func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile == "" {
		configFile = viper.GetString("config")
	}
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".acgen")
		}
		// Read config file (ignore error if not found)
		_ = viper.ReadInConfig()
	}

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		Manifest:          viper.GetString("manifest"),
		Bin:               viper.GetString("bin"),
		CacheDir:          viper.GetString("cache_dir"),
		Shell:             shellName(viper.GetString("shell")),
		TopicSeparator:    viper.GetString("topic_separator"),
		SeparatorOverride: viper.GetString(constants.EnvTopicSeparator),

		DefaultLogLevel: getOrDefault("log_level", "info"),
		LogFormat:       getOrDefault("log_format", "auto"),
		LogOutput:       getOrDefault("log_output", "stderr"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, manifest, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if manifest != "" {
		c.Manifest = manifest
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// shellName reduces $SHELL to the shell's name. Git Bash paths are kept
// whole; autocomplete.DetermineShell recognises them.
func shellName(shell string) string {
	if shell == "" || strings.HasSuffix(shell, `\bash.exe`) {
		return shell
	}
	return filepath.Base(shell)
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overwrites a set variable, so .env.local goes first to win over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getOrDefault returns the env or config file value of key, or the default if not set.
func getOrDefault(key, defaultValue string) string {
	if value := viper.GetString(key); value != "" {
		return value
	}
	return defaultValue
}
