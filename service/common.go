package service

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger. format "json" selects the JSON
// handler, anything else the text handler.
func NewLogger(format string, w io.Writer) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}
