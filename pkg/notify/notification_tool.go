package notify

import (
	"context"

	"github.com/cockroachdb/errors"
)

type notificationTool struct {
	name      string
	buildArgs func(message string, nType NotificationType) []string
}

var errNoNotificationTool = errors.New("no notification tools available")

var notificationTools = []notificationTool{
	{
		name: "dunstify",
		buildArgs: func(message string, nType NotificationType) []string {
			urgency := "normal"
			heading := title
			if nType == Error {
				urgency = "critical"
				heading += " Error"
			}
			return []string{"-u", urgency, "-t", "5000", heading, message}
		},
	},
	{
		name: "notify-send",
		buildArgs: func(message string, nType NotificationType) []string {
			urgency := "normal"
			heading := title
			if nType == Error {
				urgency = "critical"
				heading += " Error"
			}
			return []string{"-u", urgency, heading, message}
		},
	},
}

func (n *NotifyService) trySystemNotification(ctx context.Context, message string, nType NotificationType) error {
	for _, tool := range notificationTools {
		path, err := n.lookPath(tool.name)
		if err != nil {
			continue
		}
		cmd := n.run(ctx, path, tool.buildArgs(message, nType)...)
		if err := cmd.Run(); err == nil {
			n.log.Debug("Notification sent successfully",
				"tool", tool.name,
				"type", nType.String())
			return nil
		}
	}
	return errNoNotificationTool
}
