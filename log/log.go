// Package log is the application logger. It keeps the DEBUG/INFO/WARN/ERROR helpers used
// throughout the commands on top of logrus.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

type Entry = logrus.Entry

var logger = logrus.New()

var formatter = &logrus.TextFormatter{
	FullTimestamp:   true,
	TimestampFormat: "2006-01-02 15:04:05",
}

func init() {
	logger.SetFormatter(formatter)
	logger.SetLevel(logrus.InfoLevel)
}

func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// SetJSON switches to JSON output, which is what log collectors in serverless runtimes expect.
func SetJSON(json bool) {
	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(formatter)
	}
}

func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func With(fields Fields) *Entry {
	return logger.WithFields(fields)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
