package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yates-Labs/storyline/internal/orchestrator"
	"github.com/Yates-Labs/storyline/internal/story"
)

func TestReadHistory(t *testing.T) {
	input := "# exported from browser\nhttps://a.example\n\n  https://b.example  \n#https://skipped.example\n"

	urls, err := readHistory(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, urls)
}

func TestOutputStoriesTable(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, outputStoriesTable(&buf, orchestrator.MockStories()))

	out := buf.String()
	assert.Contains(t, out, "STORY")
	assert.Contains(t, out, "How Sourdough Works")
	assert.Contains(t, out, "https://picsum.photos/seed/")
	assert.Contains(t, out, "Total: 4 stories from 8 sources")
}

func TestOutputChunks(t *testing.T) {
	s := orchestrator.MockStories()[1]
	var buf bytes.Buffer

	outputChunks(&buf, s, orchestrator.MockChunks(s))

	out := buf.String()
	for _, stage := range story.ChunkStages {
		assert.Contains(t, out, stage.Label())
	}
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
	assert.Equal(t, "héllo wö…", clip("héllo wörld", 9))
}

func TestChatSession_MockMode(t *testing.T) {
	s := orchestrator.MockStories()[0]
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	session := &chatSession{
		pipeline: orchestrator.NewPipeline(nil, nil),
		story:    s,
		now:      func() time.Time { return clock },
	}

	var out bytes.Buffer
	err := session.Run(context.Background(), strings.NewReader("why does this matter?\n\nhow does it work\nexit\nignored\n"), &out)

	require.NoError(t, err)
	require.Len(t, session.history, 4)
	assert.Equal(t, story.SenderUser, session.history[0].Sender)
	assert.Equal(t, story.SenderAssistant, session.history[1].Sender)
	assert.Equal(t, clock, session.history[1].Timestamp)
	assert.Contains(t, session.history[1].Text, s.Title)
	assert.Contains(t, out.String(), "Chatting about: "+s.Title)
	assert.NotContains(t, out.String(), "ignored")
}
