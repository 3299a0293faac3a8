package provider

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordedRequest captures what a fake provider endpoint received.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   map[string]any
}

// fakeEndpoint serves a canned status/body and records every request.
type fakeEndpoint struct {
	server   *httptest.Server
	hits     atomic.Int32
	requests chan recordedRequest
}

func newFakeEndpoint(t *testing.T, status int, body string) *fakeEndpoint {
	t.Helper()

	f := &fakeEndpoint{requests: make(chan recordedRequest, 8)}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var decoded map[string]any
		if len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &decoded))
		}
		f.requests <- recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   decoded,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeEndpoint) URL() string {
	return f.server.URL
}

func (f *fakeEndpoint) Hits() int {
	return int(f.hits.Load())
}

func (f *fakeEndpoint) LastRequest(t *testing.T) recordedRequest {
	t.Helper()
	select {
	case req := <-f.requests:
		return req
	default:
		t.Fatal("no request recorded")
		return recordedRequest{}
	}
}
