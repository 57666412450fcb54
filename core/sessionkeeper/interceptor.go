package sessionkeeper

import (
	"net/http"

	"github.com/pahanaedu/bookstore/core/httpclient"
	"github.com/pahanaedu/bookstore/core/logger"
)

// Interceptor returns client middleware for every outbound request of the
// application. Each request counts as activity; a 401 or 403 response ends the
// session with reason expired whatever the timer state. Responses and transport
// errors are passed through unchanged.
func (m *Manager) Interceptor() httpclient.Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return httpclient.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if isOwnRequest(r.Context()) {
				return next.RoundTrip(r)
			}

			m.UpdateActivity()

			resp, err := next.RoundTrip(r)
			if err != nil {
				m.log.DebugContext(r.Context(), "intercepted request failed",
					logger.Method(r.Method), logger.Path(r.URL.Path), logger.Error(err))
				return resp, err
			}

			if IsInvalidationStatus(resp.StatusCode) {
				m.invalidate(r, resp.StatusCode)
			}
			return resp, nil
		})
	}
}

// IsInvalidationStatus reports whether an HTTP status means the server no
// longer accepts the session.
func IsInvalidationStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func (m *Manager) invalidate(r *http.Request, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.expireLocked(ReasonExpired) {
		m.log.WarnContext(r.Context(), "session invalidated by server",
			logger.Method(r.Method), logger.Path(r.URL.Path), logger.StatusCode(status))
	}
}
