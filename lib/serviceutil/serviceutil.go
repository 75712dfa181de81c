package serviceutil

import (
	"log/slog"
	"os"
)

// Fatal logs err under message and exits the process with status 1.
func Fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}
