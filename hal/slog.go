package hal

import (
	"bytes"
	"log/slog"
)

// lineWriter adapts a Logger to io.Writer, one log line per Write.
type lineWriter struct {
	l Logger
}

func (w lineWriter) Write(p []byte) (int, error) {
	w.l.WriteLineBytes(bytes.TrimRight(p, "\r\n"))
	return len(p), nil
}

// NewSlogHandler returns a text slog handler that writes each record as one
// line to l. Time stamps are omitted; the device clock is not wall time.
func NewSlogHandler(l Logger, level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(lineWriter{l: l}, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
}
