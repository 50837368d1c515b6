// Package monitoring routes diagnostic output from the scene
// preparation pipeline. Long-running pieces such as the scene store
// log through Logf so a host program can capture or silence pipeline
// chatter without touching the standard logger.
package monitoring

import "log"

// LogFunc receives Printf-style diagnostic lines.
type LogFunc func(format string, v ...interface{})

var active LogFunc = log.Printf

// Logf writes a diagnostic line through the installed logger.
func Logf(format string, v ...interface{}) {
	active(format, v...)
}

// SetLogger installs f and returns the previously installed logger so
// callers can restore it. A nil f discards all output.
func SetLogger(f LogFunc) LogFunc {
	prev := active
	if f == nil {
		f = func(string, ...interface{}) {}
	}
	active = f
	return prev
}
