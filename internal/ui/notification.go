package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	IconDialogError = "dialog-error"
	IconDialogInfo  = "dialog-information"
	IconDialogWarn  = "dialog-warning"

	UrgencyLow      = "low"
	UrgencyNormal   = "normal"
	UrgencyCritical = "critical"

	notificationAppName = "temp2go"
)

func NotifyInfo(title, text string) {
	NotifySend(UrgencyLow, title, text, IconDialogInfo)
}

func NotifyWarn(title, text string) {
	NotifySend(UrgencyNormal, title, text, IconDialogWarn)
}

func NotifyError(title, text string) {
	NotifySend(UrgencyCritical, title, text, IconDialogError)
}

// NotifySend shows a desktop notification in the session of the user owning $DISPLAY.
// Failures are only logged.
func NotifySend(urgency, title, text, icon string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Debug("Cannot send notification, missing env variable 'DISPLAY'")
		return
	}

	args := []string{"-a", notificationAppName, "-u", urgency, "-i", icon, title, text}

	// running as the session user already, no need to switch
	if os.Getuid() != 0 {
		if err := exec.Command("notify-send", args...).Run(); err != nil {
			Warning("Error sending notification: %v", err)
		}
		return
	}

	user, err := findDisplayUser(display)
	if err != nil {
		Warning("Cannot send notification: %v", err)
		return
	}

	output, err := exec.Command("id", "-u", user).Output()
	userId := strings.TrimSpace(string(output))
	if err != nil || len(userId) <= 0 {
		Warning("Cannot send notification, unable to detect user id of %s: %v", user, err)
		return
	}

	sudoArgs := append([]string{
		"-u", user,
		"DISPLAY=" + display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/" + userId + "/bus",
		"notify-send",
	}, args...)
	if err := exec.Command("sudo", sudoArgs...).Run(); err != nil {
		Error("Error sending notification: %v", err)
	}
}

func findDisplayUser(display string) (string, error) {
	output, err := exec.Command("who").Output()
	if err != nil {
		return "", fmt.Errorf("unable to list sessions: %w", err)
	}
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(line, display) {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("no session found for display %s", display)
}
