// Package config loads connection and logging settings from, in increasing
// precedence: defaults, ~/.swgapi.yaml or ./.swgapi.yaml, .env files,
// SWGAPI_* environment variables, and command-line flags.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"swgapi/internal/errors"
	"swgapi/internal/logging"
	"swgapi/internal/model"
)

const (
	EnvPrefix = "SWGAPI"
	FileName  = ".swgapi"
)

// Keys shared by viper, flags and the config file.
const (
	KeyHost      = "host"
	KeyPort      = "port"
	KeyToken     = "token"
	KeyInsecure  = "insecure"
	KeyCAFile    = "ca-file"
	KeyTimeout   = "timeout"
	KeyOutput    = "output"
	KeyNoColor   = "no-color"
	KeyVerbose   = "verbose"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyLogOutput = "log-output"
)

type Config struct {
	Connection model.Connection

	Output  string
	NoColor bool
	Verbose bool

	Log logging.Config

	// File is the config file that was read, if any.
	File string
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyHost, model.DefaultHost)
	v.SetDefault(KeyPort, model.DefaultPort)
	v.SetDefault(KeyInsecure, true)
	v.SetDefault(KeyTimeout, model.DefaultTimeout)
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogOutput, "stderr")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadEnvFiles loads .env.local then .env. Neither overrides variables
// already set, so the real environment wins and .env.local beats .env.
func LoadEnvFiles() {
	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}
}

// ReadFile reads file if given, otherwise searches $HOME and the working
// directory for .swgapi.yaml. A missing default file is not an error.
func ReadFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		return v.ReadInConfig()
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// Load builds a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	timeout := v.GetDuration(KeyTimeout)
	if timeout <= 0 {
		timeout = model.DefaultTimeout
	}

	cfg := &Config{
		Connection: model.Connection{
			Host:     strings.TrimSpace(v.GetString(KeyHost)),
			Port:     v.GetInt(KeyPort),
			Token:    v.GetString(KeyToken),
			Insecure: v.GetBool(KeyInsecure),
			CAFile:   v.GetString(KeyCAFile),
			Timeout:  timeout,
		},
		Output:  v.GetString(KeyOutput),
		NoColor: v.GetBool(KeyNoColor) || os.Getenv("NO_COLOR") != "",
		Verbose: v.GetBool(KeyVerbose),
		Log: logging.Config{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
			Output: v.GetString(KeyLogOutput),
		},
		File: v.ConfigFileUsed(),
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
		if cfg.Verbose {
			cfg.Log.Level = "debug"
		}
	}
	cfg.Log.NoColor = cfg.NoColor

	if cfg.Connection.Port < 1 || cfg.Connection.Port > 65535 {
		return nil, errors.NewValidationError(KeyPort, "port must be between 1 and 65535")
	}
	return cfg, nil
}
