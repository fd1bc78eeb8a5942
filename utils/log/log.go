package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	Log *logrus.Logger
)

// This init function also covers testing cases, where the entry point is
// not the main function. Unit test will fail with nil pointer dereference
// if we don't init here.
func init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	env := os.Getenv("PIXELGRAM_ENV")
	if env == "prod" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
	Log.WithField("env", env).Debug("logger initialized")
}
