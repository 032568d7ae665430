package ui

import (
	"os/exec"

	"github.com/ghostcat/ghostcat/common"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationWarning
	NotificationError
)

// Notification represents a system notification
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

// notifyArgs builds the notify-send command line.
func notifyArgs(n Notification) []string {
	icon := n.Icon
	if icon == "" {
		switch n.Type {
		case NotificationWarning:
			icon = "dialog-warning"
		case NotificationError:
			icon = "dialog-error"
		default:
			icon = "input-mouse"
		}
	}

	urgency := "low"
	switch n.Type {
	case NotificationError:
		urgency = "critical"
	case NotificationWarning:
		urgency = "normal"
	}

	return []string{
		"--app-name=" + common.AppName,
		"--icon=" + icon,
		"--urgency=" + urgency,
		n.Title,
		n.Message,
	}
}

// ShowNotification displays a system notification using notify-send
func ShowNotification(n Notification) error {
	cmd := exec.Command("notify-send", notifyArgs(n)...)
	if err := cmd.Run(); err != nil {
		common.LogDebug("Error showing notification: %v", err)
		return err
	}
	return nil
}

// NotifyDPIChanged tells the user the mouse switched resolution on its own.
func NotifyDPIChanged(deviceName, dpi string) error {
	return ShowNotification(Notification{
		Title:   "Resolution Changed",
		Message: deviceName + " is now at " + dpi,
		Type:    NotificationInfo,
	})
}

// NotifyCommitFailed reports a commit the device rejected.
func NotifyCommitFailed(deviceName string) error {
	return ShowNotification(Notification{
		Title:   "Apply Failed",
		Message: "Changes could not be written to " + deviceName,
		Type:    NotificationError,
	})
}
