package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/cadastro/pkg/constants"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Registry configuration
	DataDir            string
	BackupDir          string // empty means <DataDir>/backups
	AutoBackupsEnabled bool
	AutoBackupInterval time.Duration

	// Insights configuration
	InsightsAPIKey string
	InsightsModel  string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.cadastro.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	bindEnv()

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".cadastro")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		DataDir:            viper.GetString("data_dir"),
		BackupDir:          viper.GetString("backup_dir"),
		AutoBackupsEnabled: viper.GetBool("auto_backups_enabled"),
		AutoBackupInterval: viper.GetDuration("auto_backup_interval"),

		InsightsAPIKey: viper.GetString("GEMINI_API_KEY"),
		InsightsModel:  viper.GetString("insights_model"),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Set defaults
	if config.DataDir == "" {
		config.DataDir = defaultDataDir()
	}
	if config.AutoBackupInterval == 0 {
		config.AutoBackupInterval = constants.DefaultBackupCheckInterval
	}
	if config.InsightsModel == "" {
		config.InsightsModel = constants.DefaultInsightsModel
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, dataDir string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// bindEnv explicitly binds environment variables that may only be set in
// .env files.
func bindEnv() {
	keys := []string{
		"GEMINI_API_KEY",
		"INSIGHTS_MODEL",
		"DATA_DIR",
		"BACKUP_DIR",
		"AUTO_BACKUPS_ENABLED",
		"AUTO_BACKUP_INTERVAL",
	}

	for _, key := range keys {
		if err := viper.BindEnv(key); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// defaultDataDir returns ~/.cadastro, or ./.cadastro without a home directory.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return constants.DefaultDataDir
	}
	return filepath.Join(home, constants.DefaultDataDir)
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
