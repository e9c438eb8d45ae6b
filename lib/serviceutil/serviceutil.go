package serviceutil

import (
	"log/slog"
	"os"
)

// Fatal logs err and exits with status 1.
func Fatal(message string, err error) {
	if err == nil {
		slog.Error(message)
	} else {
		slog.Error(message, "err", err.Error())
	}
	os.Exit(1)
}
