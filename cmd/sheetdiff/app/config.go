package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/sheetdiff/pkg/constants"
	"github.com/agentstation/sheetdiff/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "SHEETDIFF"

// configName is the config file looked up in the home and working directories.
const configName = ".sheetdiff"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Comparison inputs
	Input         string
	InputB        string
	SheetA        string
	SheetB        string
	Output        string
	Layout        string
	Now           string
	IgnoredFields []string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by the commands)
//  2. SHEETDIFF_ environment variables
//  3. .env files
//  4. Config file (configFile, or .sheetdiff.yaml in $HOME or .)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("sheet_a", constants.DefaultSheetA)
	v.SetDefault("sheet_b", constants.DefaultSheetB)
	v.SetDefault("output", constants.DefaultOutputPath)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(configName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", err.Error(), err)
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Input:         v.GetString("input"),
		InputB:        v.GetString("input_b"),
		SheetA:        v.GetString("sheet_a"),
		SheetB:        v.GetString("sheet_b"),
		Output:        v.GetString("output"),
		Layout:        v.GetString("layout"),
		Now:           v.GetString("now"),
		IgnoredFields: v.GetStringSlice("ignore"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

// UpdateFromFlags updates config values from parsed global flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor || c.NoColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables that are already set, so .env wins
// over .env.local for keys present in both.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
