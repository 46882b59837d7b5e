// Package logging provides per-component loggers for the tools built
// around raw map snapshots.
package logging

import (
	"log"
	"os"
)

var (
	out   = log.New(os.Stderr, "", log.LstdFlags)
	quiet = false
)

// SetQuiet suppresses info-level output. Warnings and errors are
// always printed.
func SetQuiet(q bool) {
	quiet = q
}

type Logger struct {
	component string
}

func NewLogger(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) prefix(level string) string {
	if l.component == "" {
		return level
	}
	return level + "[" + l.component + "] "
}

func (l *Logger) Printf(msg string, args ...interface{}) {
	if quiet {
		return
	}
	out.Printf(l.prefix("")+msg, args...)
}

func (l *Logger) Warnf(msg string, args ...interface{}) {
	out.Printf(l.prefix("[warn] ")+msg, args...)
}

func (l *Logger) Errorf(msg string, args ...interface{}) {
	out.Printf(l.prefix("[error] ")+msg, args...)
}

func (l *Logger) Fatalf(msg string, args ...interface{}) {
	out.Fatalf(l.prefix("[fatal] ")+msg, args...)
}
