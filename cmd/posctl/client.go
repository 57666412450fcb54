package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/pahanaedu/bookstore/core/httpclient"
)

// newCookieJar returns a jar holding the server session cookie, if one is given.
func newCookieJar(base, name, value string) (http.CookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return jar, nil
	}

	u, err := url.Parse(base)
	if err != nil || !u.IsAbs() {
		return nil, errors.New("session cookie needs an absolute base URL")
	}
	jar.SetCookies(u, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
	return jar, nil
}

// newClient builds a client sharing jar, with request IDs, logging and any
// extra middleware appended.
func newClient(jar http.CookieJar, log *slog.Logger, extra ...httpclient.Middleware) *http.Client {
	mws := append([]httpclient.Middleware{
		httpclient.RequestID(),
		httpclient.Logging(log),
	}, extra...)

	return httpclient.New(
		httpclient.WithJar(jar),
		httpclient.WithMiddleware(mws...),
	)
}

// resolve turns a path typed by the user into a URL on the server.
func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("base url: %w", err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("path %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}
