package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/pahanaedu/bookstore/core/sessionkeeper"
)

// Palette
const (
	colorWarning = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
	colorSuccess = lipgloss.Color("42")
	colorInfo    = lipgloss.Color("39")
	colorMuted   = lipgloss.Color("245")
)

// terminal renders session events for a cashier at the keyboard. It is both
// the Notifier and the Navigator of the session keeper.
type terminal struct {
	mu  sync.Mutex
	out io.Writer

	// live rewrites the countdown in place; otherwise it is printed once a minute.
	live bool
	// countdownOpen is set while the cursor sits on a live countdown line.
	countdownOpen bool

	box     lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	byLevel map[sessionkeeper.Level]lipgloss.Style
}

func newTerminal(out io.Writer) *terminal {
	r := lipgloss.NewRenderer(out)

	t := &terminal{
		out:  out,
		live: isTerminal(out),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Padding(0, 1),
		title: r.NewStyle().Bold(true).Foreground(colorWarning),
		muted: r.NewStyle().Foreground(colorMuted),
		byLevel: map[sessionkeeper.Level]lipgloss.Style{
			sessionkeeper.LevelSuccess: r.NewStyle().Foreground(colorSuccess),
			sessionkeeper.LevelError:   r.NewStyle().Bold(true).Foreground(colorError),
			sessionkeeper.LevelWarning: r.NewStyle().Foreground(colorWarning),
			sessionkeeper.LevelInfo:    r.NewStyle().Foreground(colorInfo),
		},
	}
	return t
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ShowWarning implements sessionkeeper.Notifier.
func (t *terminal) ShowWarning(remaining time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.endLineLocked()
	body := t.title.Render("Session Expiring Soon") + "\n" +
		fmt.Sprintf("Your session will expire in %s.\n", sessionkeeper.FormatCountdown(remaining)) +
		t.muted.Render("Type 'extend' to stay logged in or 'logout' to sign out.")
	fmt.Fprintln(t.out, t.box.Render(body))
}

// UpdateCountdown implements sessionkeeper.Notifier.
func (t *terminal) UpdateCountdown(remaining time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := "Session expires in " + sessionkeeper.FormatCountdown(remaining)
	if t.live {
		fmt.Fprint(t.out, "\r\033[K"+t.title.Render(line))
		t.countdownOpen = true
		return
	}
	if remaining%time.Minute == 0 {
		fmt.Fprintln(t.out, line)
	}
}

// HideWarning implements sessionkeeper.Notifier.
func (t *terminal) HideWarning() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.countdownOpen {
		fmt.Fprint(t.out, "\r\033[K")
		t.countdownOpen = false
	}
	fmt.Fprintln(t.out, t.muted.Render("Session warning dismissed."))
}

// Notify implements sessionkeeper.Notifier.
func (t *terminal) Notify(level sessionkeeper.Level, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.endLineLocked()
	style, ok := t.byLevel[level]
	if !ok {
		style = t.byLevel[sessionkeeper.LevelInfo]
	}
	fmt.Fprintln(t.out, style.Render(message))
}

// Navigate implements sessionkeeper.Navigator.
func (t *terminal) Navigate(target string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.endLineLocked()
	fmt.Fprintln(t.out, "Please log in again: "+target)
}

// Printf writes a line of command output.
func (t *terminal) Printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.endLineLocked()
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *terminal) endLineLocked() {
	if t.countdownOpen {
		fmt.Fprintln(t.out)
		t.countdownOpen = false
	}
}
