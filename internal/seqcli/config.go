package seqcli

import (
	"io"
	"slices"

	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
)

const ErrInvalidConfig errorkit.Error = "lazyseq: invalid configuration"

const (
	StorageBuffer  = "buffer"
	StorageChunked = "chunked"
	StorageBolt    = "bolt"
)

type Config struct {
	LogLevel  string `env:"LAZYSEQ_LOG_LEVEL" default:"info"`
	Storage   string `env:"LAZYSEQ_STORAGE" default:"buffer"`
	ChunkSize int    `env:"LAZYSEQ_CHUNK_SIZE" default:"64"`
	// BoltPath is the database file of the bolt storage.
	// When empty, a temporary file is used and removed after the command.
	BoltPath string `env:"LAZYSEQ_BOLT_PATH"`
}

// LoadConfig reads the Config from the environment.
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Load(&c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	levels := []logging.Level{logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError, logging.LevelFatal}
	if !slices.Contains(levels, logging.Level(c.LogLevel)) {
		return ErrInvalidConfig.F("unknown log level: %q", c.LogLevel)
	}
	switch c.Storage {
	case StorageBuffer, StorageBolt:
	case StorageChunked:
		if c.ChunkSize <= 0 {
			return ErrInvalidConfig.F("chunk size must be positive, got %d", c.ChunkSize)
		}
	default:
		return ErrInvalidConfig.F("unknown storage: %q", c.Storage)
	}
	return nil
}

func (c Config) Logger(out io.Writer) *logging.Logger {
	return &logging.Logger{Out: out, Level: logging.Level(c.LogLevel)}
}
