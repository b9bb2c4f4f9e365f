// Package logging configures the structured logger used throughout
// vex: logfmt key/value output with level filtering and an optional
// rotating file sink.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-stack/stack"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger at the given level. When file is non-empty, log
// events go to a size-rotated file instead of stdout.
func New(logLevel, file string) log.Logger {
	if file == "" {
		return Console(logLevel)
	}
	return forWriter(logLevel, &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	})
}

// Console returns a logger that writes logfmt lines to stdout.
func Console(logLevel string) log.Logger {
	return forWriter(logLevel, os.Stdout)
}

// Nop returns a logger that discards everything.
func Nop() log.Logger {
	return log.NewNopLogger()
}

func forWriter(logLevel string, w io.Writer) log.Logger {
	lg := log.NewLogfmtLogger(log.NewSyncWriter(w))
	lg = log.With(lg,
		"time", log.DefaultTimestampUTC,
		"app", "vex",
		"caller", log.Valuer(func() interface{} {
			return pkgCaller{stack.Caller(5)}
		}),
	)
	return filtered(lg, logLevel)
}

func filtered(lg log.Logger, logLevel string) log.Logger {
	switch logLevel {
	case "debug", "trace":
		return level.NewFilter(lg, level.AllowDebug())
	case "info", "":
		return level.NewFilter(lg, level.AllowInfo())
	case "warn":
		return level.NewFilter(lg, level.AllowWarn())
	case "error":
		return level.NewFilter(lg, level.AllowError())
	case "none":
		return level.NewFilter(lg, level.AllowNone())
	default:
		return level.NewFilter(lg, level.AllowInfo())
	}
}

// pkgCaller prints the calling source location as pkg/file.go:line.
type pkgCaller struct {
	c stack.Call
}

func (c pkgCaller) String() string {
	return fmt.Sprintf("%+v", c.c)
}
