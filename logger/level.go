package logger

import "github.com/op/go-logging"

// Level re-exports the backend log level so callers outside this
// package do not need to import go-logging directly.
type Level = logging.Level

const (
	CRITICAL = logging.CRITICAL
	ERROR    = logging.ERROR
	WARNING  = logging.WARNING
	NOTICE   = logging.NOTICE
	INFO     = logging.INFO
	DEBUG    = logging.DEBUG
)
