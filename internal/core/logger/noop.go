package logger

import (
	"context"
	"fmt"
	"io"
	"os"
)

// noopLogger is the default until Initialize runs. It drops every entry
// except fatal ones, which still reach stderr before the process exits.
type noopLogger struct {
	w io.Writer
}

func (n *noopLogger) Log(_ context.Context, entry LogEntry) {
	if entry.Level != LogLevelFatal {
		return
	}
	w := n.w
	if w == nil {
		w = os.Stderr
	}
	if entry.Error != nil {
		fmt.Fprintf(w, "FATAL %s: %v\n", entry.Message, entry.Error)
	} else {
		fmt.Fprintf(w, "FATAL %s\n", entry.Message)
	}
	exit(1)
}

func (n *noopLogger) Shutdown(context.Context) error { return nil }
