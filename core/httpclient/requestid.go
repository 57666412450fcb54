package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the header RequestID sets.
const RequestIDHeader = "X-Request-ID"

// RequestID stamps every outgoing request that lacks one with a UUID v4 request ID.
func RequestID() Middleware {
	return RequestIDWithGenerator(func() string { return uuid.New().String() })
}

// RequestIDWithGenerator is RequestID with a custom ID generator.
func RequestIDWithGenerator(gen func() string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(r)
			}

			// RoundTrippers must not modify the caller's request
			r = r.Clone(r.Context())
			r.Header.Set(RequestIDHeader, gen())
			return next.RoundTrip(r)
		})
	}
}
