package httpclient

import (
	"net/http"
	"time"
)

// Middleware wraps a RoundTripper with additional behaviour.
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain builds a single RoundTripper from base and a middleware stack.
// A nil base means http.DefaultTransport.
func Chain(base http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	rt := base
	// Wrap in reverse order so the first middleware runs first
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			rt = middlewares[i](rt)
		}
	}
	return rt
}

// Option configures a client built by New.
type Option func(*options)

type options struct {
	timeout     time.Duration
	transport   http.RoundTripper
	jar         http.CookieJar
	middlewares []Middleware
}

// New creates an http.Client whose transport runs the configured middleware.
// Defaults to a 30-second timeout over http.DefaultTransport.
func New(opts ...Option) *http.Client {
	o := &options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(o)
	}

	return &http.Client{
		Transport: Chain(o.transport, o.middlewares...),
		Timeout:   o.timeout,
		Jar:       o.jar,
	}
}

// DefaultTimeout is the client timeout used when WithTimeout is not given.
const DefaultTimeout = 30 * time.Second

// WithTimeout sets the overall request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.timeout = d
		}
	}
}

// WithTransport sets the innermost RoundTripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// WithJar sets the cookie jar, typically holding the session cookie.
func WithJar(jar http.CookieJar) Option {
	return func(o *options) {
		o.jar = jar
	}
}

// WithMiddleware appends middleware to the chain.
func WithMiddleware(mws ...Middleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, mws...)
	}
}
