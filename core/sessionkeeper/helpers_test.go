package sessionkeeper_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pahanaedu/bookstore/core/scheduler"
	"github.com/pahanaedu/bookstore/core/sessionkeeper"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// recorder captures notifier and navigator calls.
type recorder struct {
	mu         sync.Mutex
	events     []string
	countdowns []time.Duration
	targets    []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) ShowWarning(remaining time.Duration) { r.add("show:" + remaining.String()) }
func (r *recorder) HideWarning()                        { r.add("hide") }

func (r *recorder) UpdateCountdown(remaining time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countdowns = append(r.countdowns, remaining)
}

func (r *recorder) Notify(level sessionkeeper.Level, message string) {
	r.add("notify:" + string(level) + ":" + message)
}

func (r *recorder) Navigate(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) Targets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.targets...)
}

func (r *recorder) Countdowns() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.countdowns...)
}

// authServer fakes the extend-session endpoint. reply decides the outcome of
// each call given the form intent and the 1-based call number.
type authServer struct {
	*httptest.Server

	mu      sync.Mutex
	intents []string
}

func newAuthServer(t *testing.T, reply func(intent string, n int) (int, any)) *authServer {
	t.Helper()

	s := &authServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /AuthServlet", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		intent := ""
		switch {
		case r.PostForm.Get("extendSession") == "true":
			intent = "extendSession"
		case r.PostForm.Get("keepAlive") == "true":
			intent = "keepAlive"
		}

		s.mu.Lock()
		s.intents = append(s.intents, intent)
		n := len(s.intents)
		s.mu.Unlock()

		status, body := http.StatusOK, any(map[string]bool{"success": true})
		if reply != nil {
			status, body = reply(intent, n)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/unauthorized":
			w.WriteHeader(http.StatusUnauthorized)
		case "/api/forbidden":
			w.WriteHeader(http.StatusForbidden)
		case "/api/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			_, _ = w.Write([]byte("ok"))
		}
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *authServer) Intents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.intents...)
}

type fixture struct {
	keeper *sessionkeeper.Manager
	clock  *scheduler.Manual
	rec    *recorder
	server *authServer
}

func newFixture(t *testing.T, reply func(intent string, n int) (int, any), opts ...sessionkeeper.Option) *fixture {
	t.Helper()

	srv := newAuthServer(t, reply)
	clock := scheduler.NewManual(epoch)
	rec := &recorder{}

	cfg := sessionkeeper.DefaultConfig()
	cfg.BaseURL = srv.URL

	all := append([]sessionkeeper.Option{
		sessionkeeper.WithScheduler(clock),
		sessionkeeper.WithNotifier(rec),
		sessionkeeper.WithNavigator(rec),
	}, opts...)

	keeper, err := sessionkeeper.New(cfg, all...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = keeper.Close() })

	return &fixture{keeper: keeper, clock: clock, rec: rec, server: srv}
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	require.NoError(t, f.keeper.Start(context.Background()))
}

func failOn(call int) func(string, int) (int, any) {
	return func(_ string, n int) (int, any) {
		return http.StatusOK, map[string]bool{"success": n != call}
	}
}
