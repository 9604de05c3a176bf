// Package logging builds the logrus logger shared by every devtools command.
//
// Level names follow the usual five-level scheme (DEBUG, INFO, WARNING,
// ERROR, CRITICAL) and lines are rendered as
//
//	2006-01-02 15:04:05 [devtools   ::     INFO] message
package logging

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Name is the logger name printed on every line.
const Name = "devtools"

// Levels lists the accepted level names in increasing severity.
var Levels = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// ParseLevel maps a level name (case-insensitive) to a logrus level.
// CRITICAL maps to FatalLevel; nothing in devtools logs through Fatal, so
// CRITICAL effectively silences the log.
func ParseLevel(name string) (logrus.Level, error) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return logrus.DebugLevel, nil
	case "INFO":
		return logrus.InfoLevel, nil
	case "WARNING":
		return logrus.WarnLevel, nil
	case "ERROR":
		return logrus.ErrorLevel, nil
	case "CRITICAL":
		return logrus.FatalLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q (valid: %s)", name, strings.Join(Levels, ", "))
	}
}

// LevelName is the inverse of ParseLevel.
func LevelName(level logrus.Level) string {
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARNING"
	case logrus.ErrorLevel:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

// New returns a logger writing to out at the given level.
func New(out io.Writer, level logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Out:       out,
		Formatter: &Formatter{Name: Name},
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
		ExitFunc:  logrus.StandardLogger().ExitFunc,
	}
}

// Formatter renders entries as "<time> [<name> :: <LEVEL>] <message>".
// Entry fields, if any, are appended as key=value pairs.
type Formatter struct {
	Name string
}

const timeLayout = "2006-01-02 15:04:05"

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s [%-10s :: %8s] %s",
		entry.Time.Format(timeLayout), f.Name, LevelName(entry.Level), entry.Message)

	for _, k := range sortedKeys(entry.Data) {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
