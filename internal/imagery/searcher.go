package imagery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultUnsplashURL is the public Unsplash API endpoint.
const DefaultUnsplashURL = "https://api.unsplash.com"

var (
	ErrNoAccessKey = errors.New("unsplash access key is empty")
	ErrNoResults   = errors.New("no image found")
)

// Searcher looks up a single image URL for normalized keywords.
type Searcher interface {
	Search(ctx context.Context, keywords string) (string, error)
}

// UnsplashSearcher is a minimal client for the Unsplash photo search API.
type UnsplashSearcher struct {
	AccessKey string
	BaseURL   string
	httpDo    *http.Client
}

// NewUnsplashSearcher creates a searcher. An empty baseURL selects the public
// API; a nil client gets a 10 second timeout.
func NewUnsplashSearcher(accessKey, baseURL string, client *http.Client) *UnsplashSearcher {
	if baseURL == "" {
		baseURL = DefaultUnsplashURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &UnsplashSearcher{
		AccessKey: accessKey,
		BaseURL:   baseURL,
		httpDo:    client,
	}
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// Search returns the regular-size URL of the best landscape match.
func (u *UnsplashSearcher) Search(ctx context.Context, keywords string) (string, error) {
	if u.AccessKey == "" {
		return "", ErrNoAccessKey
	}

	query := url.Values{}
	query.Set("query", keywords)
	query.Set("per_page", "1")
	query.Set("orientation", "landscape")
	endpoint := fmt.Sprintf("%s/search/photos?%s", u.BaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+u.AccessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := u.httpDo.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unsplash http %d: %s", resp.StatusCode, body)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode unsplash response: %w", err)
	}
	if len(out.Results) == 0 || out.Results[0].URLs.Regular == "" {
		return "", fmt.Errorf("%w for %q", ErrNoResults, keywords)
	}
	return out.Results[0].URLs.Regular, nil
}
