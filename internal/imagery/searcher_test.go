package imagery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsplashSearcher_Search(t *testing.T) {
	var gotQuery, gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 1, "results": [{"id": "abc", "urls": {"regular": "https://images.unsplash.com/photo-abc"}}]}`))
	}))
	defer server.Close()

	searcher := NewUnsplashSearcher("access-key", server.URL, nil)
	got, err := searcher.Search(context.Background(), "ocean waves")

	require.NoError(t, err)
	assert.Equal(t, "https://images.unsplash.com/photo-abc", got)
	assert.Equal(t, "/search/photos", gotPath)
	assert.Equal(t, "Client-ID access-key", gotAuth)
	assert.Contains(t, gotQuery, "query=ocean+waves")
	assert.Contains(t, gotQuery, "per_page=1")
	assert.Contains(t, gotQuery, "orientation=landscape")
}

func TestUnsplashSearcher_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "rate limited", status: http.StatusForbidden, body: `Rate Limit Exceeded`},
		{name: "server error", status: http.StatusInternalServerError, body: `{"errors": ["oops"]}`},
		{name: "no results", status: http.StatusOK, body: `{"total": 0, "results": []}`},
		{name: "bad json", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewUnsplashSearcher("key", server.URL, nil).Search(context.Background(), "x")
			assert.Error(t, err)
		})
	}
}

func TestUnsplashSearcher_NoAccessKey(t *testing.T) {
	_, err := NewUnsplashSearcher("", "http://127.0.0.1:0", nil).Search(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoAccessKey)
}

func TestResolver_WithUnsplashFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	resolver := NewResolver(NewUnsplashSearcher("key", server.URL, nil))

	assert.Equal(t, FallbackURL("tide pools"), resolver.Resolve(context.Background(), "Tide Pools"))
}
