// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup applies level and format to the standard logrus logger. debug forces
// the debug level regardless of the configured one. Output goes to stderr so
// command output on stdout stays machine readable.
func Setup(level, format string, debug bool) error {
	return SetupWriter(os.Stderr, level, format, debug)
}

func SetupWriter(w io.Writer, level, format string, debug bool) error {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return err
		}
		lvl = parsed
	}
	if debug {
		lvl = log.DebugLevel
	}

	log.SetOutput(w)
	log.SetLevel(lvl)
	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
