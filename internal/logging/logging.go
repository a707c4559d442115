// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup sets the level ("debug", "info", "warn", ...) and switches to JSON
// output when asJSON is set. Logs go to stderr so that commands writing
// data to stdout stay pipeable.
func Setup(level string, asJSON bool) error {
	return SetupWriter(os.Stderr, level, asJSON)
}

func SetupWriter(w io.Writer, level string, asJSON bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetOutput(w)
	log.SetLevel(lvl)
	if asJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
