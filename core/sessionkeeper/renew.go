package sessionkeeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pahanaedu/bookstore/core/logger"
)

// Form fields telling the server why the session is being renewed.
const (
	intentExtend    = "extendSession"
	intentKeepAlive = "keepAlive"
)

// maxRenewBody caps how much of a renewal response is read.
const maxRenewBody = 64 << 10

// renewResponse is the JSON payload of the extend-session endpoint.
type renewResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ownRequestKey marks requests issued by the Manager itself.
type ownRequestKey struct{}

func withOwnRequest(ctx context.Context) context.Context {
	return context.WithValue(ctx, ownRequestKey{}, true)
}

func isOwnRequest(ctx context.Context) bool {
	own, _ := ctx.Value(ownRequestKey{}).(bool)
	return own
}

// ExtendSession asks the server to renew the session, typically from the
// warning's "extend" action. On success the warning is hidden and the timer
// cycle restarts. Any failure ends the session with reason expired and is
// returned wrapped in ErrNetwork or ErrRejected.
func (m *Manager) ExtendSession(ctx context.Context) error {
	if !m.IsActive() {
		return ErrSessionExpired
	}

	err := m.renew(ctx, intentExtend)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.log.ErrorContext(ctx, "session extension failed", logger.Action(intentExtend), logger.Error(err))
		m.expireLocked(ReasonExpired)
		return err
	}
	if m.state == StateExpired || m.closed {
		// Ended while the request was in flight.
		return ErrSessionExpired
	}

	if m.state == StateWarningShown {
		m.notifier.HideWarning()
	}
	m.state = StateActive
	m.startTimersLocked()
	m.notifier.Notify(LevelSuccess, msgExtended)
	m.log.InfoContext(ctx, "session extended", logger.Action(intentExtend), logger.Result("success"))

	return nil
}

// SendKeepAlive pings the server to keep the session alive without user
// interaction. The keep-alive timer calls it every KeepAliveInterval. Success
// leaves the timers untouched; failure ends the session with reason expired.
func (m *Manager) SendKeepAlive(ctx context.Context) error {
	if !m.IsActive() {
		return ErrSessionExpired
	}

	err := m.renew(ctx, intentKeepAlive)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.log.ErrorContext(ctx, "keep-alive failed", logger.Action(intentKeepAlive), logger.Error(err))
		m.expireLocked(ReasonExpired)
		return err
	}
	if m.state == StateExpired || m.closed {
		return ErrSessionExpired
	}

	m.log.DebugContext(ctx, "keep-alive acknowledged", logger.Action(intentKeepAlive), logger.Result("success"))
	return nil
}

// renew posts intent to the extend-session endpoint. There is no retry: any
// failure is reported so the caller can fail closed.
func (m *Manager) renew(ctx context.Context, intent string) error {
	if m.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.RequestTimeout)
		defer cancel()
	}

	form := url.Values{intent: {"true"}}
	req, err := http.NewRequestWithContext(withOwnRequest(ctx), http.MethodPost,
		m.endpoints.extend.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Join(ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errors.Join(ErrNetwork, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxRenewBody))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Join(ErrRejected, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body renewResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRenewBody)).Decode(&body); err != nil {
		return errors.Join(ErrRejected, fmt.Errorf("decode response: %w", err))
	}
	if !body.Success {
		if body.Message != "" {
			return errors.Join(ErrRejected, errors.New(body.Message))
		}
		return ErrRejected
	}
	return nil
}
