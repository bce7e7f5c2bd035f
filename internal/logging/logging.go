// Package logging builds the logger shared by vagrant-inventory commands.
// Records go to stderr through log/slog; stdout is reserved for the inventory
// document Ansible reads. Components receive the logger as a logr.Logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-logr/logr"
)

// Options configures the logger behavior.
type Options struct {
	// Level is one of debug, info, warn or error. Unknown values mean warn.
	Level string

	// Format is text or json. Unknown values mean text.
	Format string
}

// ParseLevel maps a level name to a slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Setup creates a logger writing to w, installs it as the slog default and
// returns it bridged to logr. logr V(1) records only show at debug level.
func Setup(w io.Writer, opts Options) logr.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))

	return logr.FromSlogHandler(handler)
}
