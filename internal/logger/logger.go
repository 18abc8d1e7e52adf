package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance. It is usable before Init is called.
var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetLevel(logrus.InfoLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Log.SetOutput(os.Stdout)
}

// Config controls logger initialization.
type Config struct {
	// Level is a logrus level name ("debug", "info", ...). Defaults to info.
	Level string
	// Symbol, when set together with FileOutput, stamps the log filename so
	// each instrument session gets its own file.
	Symbol string
	// FileOutput mirrors log records into logs/<symbol>_<date>.log.
	FileOutput bool
	// Quiet drops console output entirely; used by CLI commands whose stdout
	// is a single structured result object.
	Quiet bool
}

// Init configures the shared logger.
func Init(cfg Config) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	var out io.Writer = os.Stderr
	if cfg.Quiet {
		out = io.Discard
	}

	if cfg.FileOutput {
		file, err := openLogFile(cfg.Symbol)
		if err != nil {
			return err
		}
		if cfg.Quiet {
			out = file
		} else {
			out = io.MultiWriter(os.Stderr, file)
		}
	}
	Log.SetOutput(out)
	return nil
}

// WithComponent returns an entry tagged with the originating component.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

func openLogFile(symbol string) (*os.File, error) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if symbol == "" {
		symbol = "engine"
	}
	name := fmt.Sprintf("%s_%s.log", symbol, time.Now().Format("2006-01-02"))
	path := filepath.Join(logDir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
