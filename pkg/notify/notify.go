package notify

import (
	"context"
	"fmt"
	"os/exec"

	"al.essio.dev/pkg/shellescape"
	"github.com/cockroachdb/errors"

	"scratchmenu/pkg/logger"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

func (t NotificationType) String() string {
	if t == Info {
		return "INFO"
	}
	return "ERROR"
}

const title = "scratchmenu"

// NotifyService handles system notifications
type NotifyService struct {
	log           *logger.Logger
	notifyCommand string

	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) *exec.Cmd
	isTTY    func() bool
	logPath  string
}

// NewNotifyService creates a new notification service
func NewNotifyService(notifyCommand string, log *logger.Logger) *NotifyService {
	return &NotifyService{
		log:           log,
		notifyCommand: notifyCommand,
		lookPath:      exec.LookPath,
		run:           exec.CommandContext,
		isTTY:         isRunningInTerminal,
		logPath:       defaultNotificationLogPath(),
	}
}

// Show displays a notification of the specified type
func (n *NotifyService) Show(ctx context.Context, message string, nType NotificationType) error {
	// First try configured notification command if available
	if n.notifyCommand != "" {
		if err := n.executeNotifyCommand(ctx, message, nType); err == nil {
			return nil
		}
		n.log.Warn("Custom notification command failed", "command", n.notifyCommand)
	}

	// Try system notification tools
	if err := n.trySystemNotification(ctx, message, nType); err == nil {
		return nil
	}

	// If running in terminal, print directly
	if n.isTTY() {
		return n.printToTerminal(message, nType)
	}

	// Last resort: log file
	return n.writeToLogFile(message, nType)
}

func (n *NotifyService) executeNotifyCommand(ctx context.Context, message string, nType NotificationType) error {
	n.log.Debug("Executing notify command", "notifyCommand", n.notifyCommand,
		"nType", nType.String())

	script := fmt.Sprintf("%s %s %s", n.notifyCommand,
		shellescape.Quote(nType.String()), shellescape.Quote(message))
	cmd := n.run(ctx, "sh", "-c", script)
	if output, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "notify command: %s", string(output))
	}
	return nil
}
