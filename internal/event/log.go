package event

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger of all internal packages.
var Log *logrus.Logger

// Hook republishes log entries as events.
type Hook struct{}

// NewHook returns a new logrus hook.
func NewHook() *Hook {
	return &Hook{}
}

// Fire publishes the log entry as "log.<level>" event.
func (h *Hook) Fire(entry *logrus.Entry) error {
	Publish("log."+entry.Level.String(), Data{
		"time":    entry.Time,
		"level":   entry.Level.String(),
		"message": entry.Message,
	})

	return nil
}

// Levels returns the log levels the hook fires on.
func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func init() {
	Log = &logrus.Logger{
		Out: os.Stderr,
		Formatter: &logrus.TextFormatter{
			DisableColors: false,
			FullTimestamp: true,
		},
		Hooks: make(logrus.LevelHooks),
		Level: logrus.InfoLevel,
	}

	Log.AddHook(NewHook())
}
