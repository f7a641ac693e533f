package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"fitrek/fitrek-app/internal/config"
)

// Setup configures the process-wide logrus logger.
func Setup(cfg config.LoggingConfig) {
	if cfg.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(Level(cfg.Level))
}

// Level maps a config string to a logrus level, defaulting to info.
func Level(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
