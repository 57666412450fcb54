package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pahanaedu/bookstore/core/logger"
	"github.com/pahanaedu/bookstore/core/sessionkeeper"
)

// logoutTimeout bounds the best-effort server logout call.
const logoutTimeout = 5 * time.Second

func newSessionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Keep the point-of-sale session alive",
		Long: "Starts the session keeper and reads commands from stdin. Any input counts as\n" +
			"activity. Commands: extend, logout, status, get <path>, quit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runSession(ctx, c, cmd.InOrStdin(), newTerminal(cmd.OutOrStdout()))
		},
	}
}

// runSession runs the keeper until the login redirect, quit, end of input or
// ctx cancellation.
func runSession(ctx context.Context, c *cli, in io.Reader, ui *terminal) error {
	jar, err := newCookieJar(c.session.BaseURL, c.app.CookieName, c.app.SessionCookie)
	if err != nil {
		return err
	}

	keeper, err := sessionkeeper.New(c.session,
		sessionkeeper.WithHTTPClient(newClient(jar, c.log)),
		sessionkeeper.WithNotifier(ui),
		sessionkeeper.WithNavigator(ui),
		sessionkeeper.WithLogger(c.log),
	)
	if err != nil {
		return err
	}
	defer keeper.Close()

	app := newClient(jar, c.log, keeper.Interceptor())

	if err := keeper.Start(ctx); err != nil {
		return err
	}
	ui.Printf("Session started. Idle logout after %s.", c.session.SessionTimeout)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	lines := make(chan string)
	go scanLines(gctx, in, lines)

	g.Go(func() error {
		defer cancel()
		s := &shell{keeper: keeper, app: app, ui: ui, log: c.log, base: c.session.BaseURL}

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-keeper.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if quit := s.handle(gctx, line); quit {
					return nil
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		return keeper.Close()
	})

	return g.Wait()
}

// scanLines feeds input lines to out until the input ends or ctx is done.
// A read already blocked on in returns only when in is closed.
func scanLines(ctx context.Context, in io.Reader, out chan<- string) {
	defer close(out)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		select {
		case out <- sc.Text():
		case <-ctx.Done():
			return
		}
	}
}

// shell executes the commands typed at the session prompt.
type shell struct {
	keeper *sessionkeeper.Manager
	app    *http.Client
	ui     *terminal
	log    *slog.Logger
	base   string
}

// handle runs one input line and reports whether the session loop should stop.
func (s *shell) handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	if cmd == "quit" || cmd == "exit" {
		return true
	}

	s.keeper.UpdateActivity()

	switch cmd {
	case "extend":
		if err := s.keeper.ExtendSession(ctx); err != nil {
			s.ui.Printf("Could not extend the session: %v", err)
		}
	case "logout":
		s.logout(ctx)
	case "status":
		s.status()
	case "get":
		s.get(ctx, strings.TrimSpace(arg))
	}
	return false
}

func (s *shell) logout(ctx context.Context) {
	s.keeper.AutoLogout()

	ctx, cancel := context.WithTimeout(ctx, logoutTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.keeper.LogoutURL(), nil)
	if err != nil {
		s.log.Warn("logout request", logger.Error(err))
		return
	}
	resp, err := s.app.Do(req)
	if err != nil {
		s.log.Warn("server logout failed", logger.Error(err))
		return
	}
	_ = resp.Body.Close()
}

func (s *shell) status() {
	s.ui.Printf("state=%s status=%s expires_in=%s user_active=%t",
		s.keeper.State(),
		s.keeper.Status(),
		sessionkeeper.FormatCountdown(s.keeper.TimeUntilLogout()),
		s.keeper.IsUserActive())
}

func (s *shell) get(ctx context.Context, path string) {
	if path == "" {
		s.ui.Printf("usage: get <path>")
		return
	}
	target, err := resolve(s.base, path)
	if err != nil {
		s.ui.Printf("%v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		s.ui.Printf("%v", err)
		return
	}
	resp, err := s.app.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.ui.Printf("GET %s failed: %v", path, err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	s.ui.Printf("GET %s: %s", path, resp.Status)
}
