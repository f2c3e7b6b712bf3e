package notify

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

var stderr io.Writer = os.Stderr

func defaultNotificationLogPath() string {
	return filepath.Join(xdg.StateHome, "scratchmenu", "notifications.log")
}

func (n *NotifyService) writeToLogFile(message string, nType NotificationType) error {
	if err := os.MkdirAll(filepath.Dir(n.logPath), 0755); err != nil {
		return errors.Wrap(err, "failed to create notification log directory")
	}

	logMessage := fmt.Sprintf("[%s] %s - %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		title,
		nType.String(),
		message)

	f, err := os.OpenFile(n.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to open notification log")
	}
	defer f.Close()

	if _, err := f.WriteString(logMessage); err != nil {
		return errors.Wrap(err, "failed to write to log file")
	}

	n.log.Debug("Notification written to log file",
		"path", n.logPath,
		"type", nType.String())
	return nil
}

func (n *NotifyService) printToTerminal(message string, nType NotificationType) error {
	var colorCode string
	var prefix string

	switch nType {
	case Error:
		colorCode = "\x1b[31m" // Red
		prefix = fmt.Sprintf("%s - Error", title)
	case Info:
		colorCode = "\x1b[32m" // Green
		prefix = fmt.Sprintf("%s - Info", title)
	}

	fmt.Fprintf(stderr, "%s%s: %s\x1b[0m\n", colorCode, prefix, message)
	return nil
}

func isRunningInTerminal() bool {
	// Check if stderr is connected to a terminal
	fileInfo, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
