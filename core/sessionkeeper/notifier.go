package sessionkeeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pahanaedu/bookstore/core/logger"
)

// Level is the severity of a user-facing notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notifier presents session events to the user.
//
// The Manager calls these methods while holding its lock so that they observe
// transitions in order. Implementations must return promptly and must not call
// back into the Manager on the same goroutine.
type Notifier interface {
	// ShowWarning displays the expiry warning with the time left.
	ShowWarning(remaining time.Duration)
	// UpdateCountdown refreshes the visible countdown, once per second.
	UpdateCountdown(remaining time.Duration)
	// HideWarning removes the warning.
	HideWarning()
	// Notify shows a transient message.
	Notify(level Level, message string)
}

// Navigator moves the user to another page. The Manager uses it for the login
// redirect; the same locking rules as Notifier apply.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(target string) { f(target) }

// User-facing messages.
const (
	msgExtended   = "Session extended successfully"
	msgTimedOut   = "Session expired. You will be redirected to login."
	msgInvalidate = "Your session has expired. Please log in again."
)

// FormatCountdown renders a remaining duration as m:ss. Negative values render as 0:00.
func FormatCountdown(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// LogNotifier writes session notifications to a structured logger.
// It is the default Notifier for headless use.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) log() *slog.Logger {
	if n.Logger == nil {
		return logger.Nop()
	}
	return n.Logger
}

// ShowWarning implements Notifier.
func (n LogNotifier) ShowWarning(remaining time.Duration) {
	n.log().Warn("session about to expire", logger.Remaining(remaining))
}

// UpdateCountdown implements Notifier.
func (n LogNotifier) UpdateCountdown(remaining time.Duration) {
	n.log().Debug("session countdown", slog.String("countdown", FormatCountdown(remaining)))
}

// HideWarning implements Notifier.
func (n LogNotifier) HideWarning() {
	n.log().Debug("session warning dismissed")
}

// Notify implements Notifier.
func (n LogNotifier) Notify(level Level, message string) {
	lvl := slog.LevelInfo
	switch level {
	case LevelError:
		lvl = slog.LevelError
	case LevelWarning:
		lvl = slog.LevelWarn
	}
	n.log().Log(context.Background(), lvl, message, logger.Type(string(level)))
}

// LogNavigator logs redirect targets instead of navigating.
type LogNavigator struct {
	Logger *slog.Logger
}

// Navigate implements Navigator.
func (n LogNavigator) Navigate(target string) {
	log := n.Logger
	if log == nil {
		log = logger.Nop()
	}
	log.Info("redirecting to login", logger.URL(target))
}
