package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
)

const (
	TextFormat = "text"
	JSONFormat = "json"
)

// Setup configures the package-level logrus logger. Logs go to stderr so that stdout only
// carries the report.
func Setup(level, format string) error {
	return setup(logrus.StandardLogger(), os.Stderr, level, format)
}

func setup(l *logrus.Logger, out io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger.Setup: %w", err)
	}

	l.SetLevel(lvl)
	l.SetOutput(out)

	switch format {
	case "", TextFormat:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case JSONFormat:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("logger.Setup: unknown log format %q", format)
	}

	l.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
	)))

	return nil
}
