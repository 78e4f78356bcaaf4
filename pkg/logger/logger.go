package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Config represents the logger configs.
type Config struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

var (
	global zerolog.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	mu     sync.Mutex
)

// InitGlobalLogger replaces the package-level logger based on the given config.
func InitGlobalLogger(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if cfg.Pretty {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		l = zerolog.New(os.Stderr)
	}

	global = l.Level(level).With().Timestamp().Logger()
}

func Debug(msg string, keyvals ...any) {
	write(global.Debug(), msg, keyvals)
}

func Info(msg string, keyvals ...any) {
	write(global.Info(), msg, keyvals)
}

func Warn(msg string, keyvals ...any) {
	write(global.Warn(), msg, keyvals)
}

func Error(msg string, keyvals ...any) {
	write(global.Error(), msg, keyvals)
}

func write(e *zerolog.Event, msg string, keyvals []any) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, keyvals[i+1])
	}
	e.Msg(msg)
}
