package story

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChunkStage(t *testing.T) {
	tests := []struct {
		id   int
		want Stage
	}{
		{id: 1, want: StageCoreConcept},
		{id: 2, want: StageHistoricalContext},
		{id: 3, want: StageExpertInsight},
		{id: 4, want: StageRealWorld},
		{id: 5, want: StageDeepDive},
		{id: 0, want: ""},
		{id: 6, want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Chunk{ID: tt.id}.Stage(), "chunk id %d", tt.id)
	}
}

func TestChunkStagesMatchCount(t *testing.T) {
	assert.Len(t, ChunkStages, ChunkCount)
	assert.Equal(t, "Real-World Application", StageRealWorld.Label())
}

func TestNewChatContext(t *testing.T) {
	s := createTestStories()[0]
	chunks := []Chunk{{ID: 1, Title: "Pressure", Content: "It gets heavy.", Image: "x"}}
	previous := []Message{{Text: "hi", Sender: SenderUser, Timestamp: time.Unix(0, 0)}}

	ctx := NewChatContext(s, chunks, previous)

	assert.Equal(t, s.Title, ctx.StoryTitle)
	assert.Equal(t, s.Description, ctx.StoryDescription)
	assert.Equal(t, []ChunkSummary{{Title: "Pressure", Content: "It gets heavy."}}, ctx.Chunks)
	assert.Equal(t, previous, ctx.PreviousMessages)
}

func TestFindStory(t *testing.T) {
	stories := createTestStories()

	found, ok := FindStory(stories, 2)
	assert.True(t, ok)
	assert.Equal(t, "Sourdough Baking", found.Title)

	_, ok = FindStory(stories, 9)
	assert.False(t, ok)
}
