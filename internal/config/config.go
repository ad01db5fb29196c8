package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// LogLevels is the closed set of accepted log verbosity selectors.
var LogLevels = []string{"error", "warn", "info", "debug", "trace"}

type (
	// Config represents an application configuration.
	Config struct {
		// Path of the input transactions file in CSV format.
		// Required positional argument.
		InputFile string
		// Maximum accepted size of the input file in megabytes.
		InputLimitMB int64 `env:"INPUT_LIMIT_MB" env-default:"2"`
		// Subconfigs.
		Logger Logger
	}
	// Config for application's logger.
	Logger struct {
		// Path to store log files. Empty means console only.
		Path string `env:"LOG_PATH"`
		// Application logging level.
		Level string `env:"LOG_LEVEL" env-default:"info"`
		// Log files details.
		MaxSizeMB  int `env:"LOG_MAX_SIZE_MB" env-default:"100"`
		MaxBackups int `env:"LOG_MAX_BACKUPS" env-default:"3"`
		MaxAgeDays int `env:"LOG_MAX_AGE_DAYS" env-default:"28"`
	}
)

// MustLoad returns an application configuration which is populated
// from environment variables and flags. It exits the process on any
// usage error.
func MustLoad() *Config {
	var cfg Config

	// Read environment variables.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment variables: %v", err)
	}

	// Read given flags. Flag values take precedence over the environment.
	flag.StringVar(&cfg.Logger.Level, "log-level", cfg.Logger.Level,
		"log level: "+strings.Join(LogLevels, ", "))
	flag.Parse()

	if !slices.Contains(LogLevels, cfg.Logger.Level) {
		log.Fatalf("invalid log level %q: must be one of %s",
			cfg.Logger.Level, strings.Join(LogLevels, ", "))
	}

	if flag.NArg() != 1 {
		log.Fatalf("usage: %s [-log-level level] <transactions.csv>",
			filepath.Base(os.Args[0]))
	}
	cfg.InputFile = flag.Arg(0)

	return &cfg
}
