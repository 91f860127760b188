package utils

import (
	"fmt"
	"time"
)

// MessageType is a placeholder for the message types printed by the CLI.
type MessageType int

// The message types used across the CLI application.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// Colors used across the CLI application.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

var messageColors = map[MessageType]string{
	DefaultMessage: DefaultColor,
	StatusMessage:  StatusColor,
	SuccessMessage: SuccessColor,
	ErrorMessage:   ErrorColor,
}

// DecorateText wraps the message in the color associated with its type.
// Unknown message types are returned untouched.
func DecorateText(s string, msgType MessageType) string {
	col, ok := messageColors[msgType]
	if !ok {
		return s
	}
	return col + s + DefaultColor
}

// StatusLine builds the "⚡ PIXPAINT ⇢ msg" line shown by the spinner and the
// status reports. The trailing mark is colored by msgType.
func StatusLine(msg, mark string, msgType MessageType) string {
	line := fmt.Sprintf("%s %s",
		DecorateText("⚡ PIXPAINT", StatusMessage),
		DecorateText("⇢ "+msg, DefaultMessage),
	)
	if mark != "" {
		line += " " + DecorateText(mark, msgType)
	}
	return line
}

// FormatTime formats a duration to a human readable value.
func FormatTime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	days := int64(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int64(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	mins := int64(d / time.Minute)
	d -= time.Duration(mins) * time.Minute
	secs := d.Seconds()

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %.2fs", days, hours, mins, secs)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %.2fs", hours, mins, secs)
	default:
		return fmt.Sprintf("%dm %.2fs", mins, secs)
	}
}
