package config

import (
	"os"

	l "github.com/sirupsen/logrus"
)

// SetupLogging parses level and points logrus' output at file (or stderr if
// file is empty), creating it if necessary. Adapted from the teacher's
// internal/server/log.go::setupLogging — the original's log-file ownership
// chown-to-service-user step is dropped, since musicdb has no installed
// system user/service account for it to apply to.
func SetupLogging(level, file string) error {
	lvl, err := l.ParseLevel(level)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)

	if file == "" {
		l.SetOutput(os.Stderr)
		return nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	l.SetOutput(f)
	return nil
}
