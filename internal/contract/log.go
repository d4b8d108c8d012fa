package contract

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var debugLogger atomic.Pointer[slog.Logger]

func init() {
	debugLogger.Store(slog.New(slog.DiscardHandler))
}

// DebugEnabledByEnv reports whether the DEBUG environment variable names this tool.
func DebugEnabledByEnv() bool {
	return strings.Contains(os.Getenv("DEBUG"), "insights")
}

// EnableDebug sends debug records to w. A nil writer disables them again.
func EnableDebug(w io.Writer) {
	if w == nil {
		debugLogger.Store(slog.New(slog.DiscardHandler))
		return
	}
	debugLogger.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// Debug returns the debug logger.
func Debug() *slog.Logger {
	return debugLogger.Load()
}
