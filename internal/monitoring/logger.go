// Package monitoring holds the diagnostic loggers shared by the recognizers
// and the command-line tools.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
//
// Recognizers report rare, noteworthy transitions here: option swaps on a
// live recognizer and instances force-ended by a competitor.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf receives high-volume tracing such as discarded stale timers and
// invalidated tap attempts. It is muted until SetDebugLogger installs a sink.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebugLogger replaces the debug logger. Passing nil mutes it again.
func SetDebugLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Debugf = func(string, ...interface{}) {}
		return
	}
	Debugf = f
}
