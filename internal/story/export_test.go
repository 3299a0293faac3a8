package story

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStories() []Story {
	return []Story{
		{
			ID:            1,
			Title:         "Deep Sea Exploration",
			Description:   "Submersibles and the creatures of the abyss.",
			Image:         "https://images.example.com/deep-sea.jpg",
			ImageKeywords: "deep sea",
			RelatedURLs:   []string{"https://a.example.com/x"},
			CreatedAt:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:            2,
			Title:         "Sourdough Baking",
			Description:   "Wild yeast, hydration and crumb.",
			Image:         "https://images.example.com/bread.jpg",
			ImageKeywords: "sourdough bread",
			RelatedURLs:   []string{"https://b.example.com/y", "https://c.example.com/z"},
			CreatedAt:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportStories_RoundTrip(t *testing.T) {
	stories := createTestStories()
	var buf bytes.Buffer

	require.NoError(t, ExportStories(stories, "json", &buf))
	assert.Contains(t, buf.String(), `"imageKeywords": "deep sea"`)
	assert.Contains(t, buf.String(), `"relatedUrls"`)

	loaded, err := LoadStories(&buf)
	require.NoError(t, err)
	assert.Equal(t, stories, loaded)
}

func TestExportStories_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer

	err := ExportStories(createTestStories(), "xml", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
	assert.Zero(t, buf.Len())
}

func TestExportStories_NilWritesEmptyArray(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, ExportStories(nil, "JSON", &buf))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestExportChunks_RoundTrip(t *testing.T) {
	chunks := []Chunk{
		{ID: 1, Title: "What it is", Content: "Basics.", Image: "https://img/1", ImageKeywords: "basics"},
		{ID: 2, Title: "Where it came from", Content: "History.", Image: "https://img/2", ImageKeywords: "history"},
	}
	var buf bytes.Buffer

	require.NoError(t, ExportChunks(chunks, "json", &buf))
	loaded, err := LoadChunks(&buf)
	require.NoError(t, err)
	assert.Equal(t, chunks, loaded)
}

func TestLoadStories_InvalidJSON(t *testing.T) {
	_, err := LoadStories(strings.NewReader("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode stories")
}
