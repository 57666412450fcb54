package httpclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pahanaedu/bookstore/core/logger"
)

// Logging logs each round trip: method, path, status and latency.
// Transport errors are logged at error level, 4xx/5xx at warn, the rest at debug.
func Logging(log *slog.Logger) Middleware {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("httpclient"))

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			attrs := []any{
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.RequestID(r.Header.Get(RequestIDHeader)),
				logger.Latency(time.Since(start)),
			}

			ctx := r.Context()
			switch {
			case err != nil:
				log.ErrorContext(ctx, "request failed", append(attrs, logger.Error(err))...)
			case resp.StatusCode >= http.StatusBadRequest:
				log.WarnContext(ctx, "request completed", append(attrs, logger.StatusCode(resp.StatusCode))...)
			default:
				log.DebugContext(ctx, "request completed", append(attrs, logger.StatusCode(resp.StatusCode))...)
			}

			return resp, err
		})
	}
}
