package engine

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, engine logs are discarded.
var zlog atomic.Pointer[zerolog.Logger]

var nopLogger = zerolog.Nop()

// SetLogger installs the structured logger used by the engine.
func SetLogger(l zerolog.Logger) { zlog.Store(&l) }

func logger() *zerolog.Logger {
	if l := zlog.Load(); l != nil {
		return l
	}
	return &nopLogger
}
