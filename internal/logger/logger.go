package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"timelock-node/internal/config"
)

// Log is the global logger instance.
var Log = logrus.New()

// InitLogger configures the global logger. Nothing is applied unless the
// whole configuration is valid.
func InitLogger(cfg config.LoggerConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	formatter, err := formatterFor(cfg.Format)
	if err != nil {
		return err
	}

	Log.SetLevel(level)
	Log.SetFormatter(formatter)
	Log.SetOutput(outputFor(cfg))
	return nil
}

func formatterFor(format string) (logrus.Formatter, error) {
	switch format {
	case "json":
		return &logrus.JSONFormatter{}, nil
	case "text", "":
		return &logrus.TextFormatter{FullTimestamp: true}, nil
	}
	return nil, errors.Errorf("unknown log format %q", format)
}

// outputFor tees to a rotating file when one is configured.
func outputFor(cfg config.LoggerConfig) io.Writer {
	if cfg.FilePath == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
}
