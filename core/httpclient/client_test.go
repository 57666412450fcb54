package httpclient_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pahanaedu/bookstore/core/httpclient"
	"github.com/pahanaedu/bookstore/core/logger"
)

func tag(name string, order *[]string) httpclient.Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return httpclient.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			*order = append(*order, name+":before")
			resp, err := next.RoundTrip(r)
			*order = append(*order, name+":after")
			return resp, err
		})
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	base := httpclient.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})

	rt := httpclient.Chain(base, tag("a", &order), nil, tag("b", &order))
	req := httptest.NewRequest(http.MethodGet, "http://pos.local/books", nil)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, []string{"a:before", "b:before", "base", "b:after", "a:after"}, order)
}

func TestNew_AppliesOptions(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Seen-Request-ID", r.Header.Get(httpclient.RequestIDHeader))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := httpclient.New(
		httpclient.WithTimeout(5*time.Second),
		httpclient.WithMiddleware(httpclient.RequestIDWithGenerator(func() string { return "fixed-id" })),
	)
	assert.Equal(t, 5*time.Second, client.Timeout)

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "fixed-id", resp.Header.Get("X-Seen-Request-ID"))
}

func TestRequestID_KeepsExisting(t *testing.T) {
	t.Parallel()

	var seen string
	base := httpclient.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.Header.Get(httpclient.RequestIDHeader)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})
	rt := httpclient.Chain(base, httpclient.RequestID())

	req := httptest.NewRequest(http.MethodGet, "http://pos.local/", nil)
	req.Header.Set(httpclient.RequestIDHeader, "caller-id")
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "caller-id", seen)

	req = httptest.NewRequest(http.MethodGet, "http://pos.local/", nil)
	resp, err = rt.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Len(t, seen, 36, "uuid v4 string")
	assert.Empty(t, req.Header.Get(httpclient.RequestIDHeader), "caller request must not be mutated")
}

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))

	failing := httpclient.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	rt := httpclient.Chain(failing, httpclient.Logging(log))

	_, err := rt.RoundTrip(httptest.NewRequest(http.MethodPost, "http://pos.local/billing", nil))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"request failed"`)
	assert.Contains(t, out, `"path":"/billing"`)
	assert.Contains(t, out, `"component":"httpclient"`)
	assert.Contains(t, out, "connection refused")

	buf.Reset()
	forbidden := httpclient.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusForbidden, Body: http.NoBody, Request: r}, nil
	})
	rt = httpclient.Chain(forbidden, httpclient.Logging(log))
	resp, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://pos.local/clients", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Contains(t, buf.String(), `"status_code":403`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
