package story

import "time"

// Stage names one position in the fixed five-step chunk progression.
type Stage string

const (
	StageCoreConcept       Stage = "core_concept"
	StageHistoricalContext Stage = "historical_context"
	StageExpertInsight     Stage = "expert_insight"
	StageRealWorld         Stage = "real_world_application"
	StageDeepDive          Stage = "deep_dive"
)

// ChunkStages is the ordered progression every story expands into.
// Chunk IDs are 1-based positions in this slice.
var ChunkStages = []Stage{
	StageCoreConcept,
	StageHistoricalContext,
	StageExpertInsight,
	StageRealWorld,
	StageDeepDive,
}

// ChunkCount is the number of chunks a story expands into.
const ChunkCount = 5

// Label returns the human-readable stage name used in prompts.
func (s Stage) Label() string {
	switch s {
	case StageCoreConcept:
		return "Core Concept"
	case StageHistoricalContext:
		return "Historical Context"
	case StageExpertInsight:
		return "Expert Insight"
	case StageRealWorld:
		return "Real-World Application"
	case StageDeepDive:
		return "Deep Dive"
	default:
		return string(s)
	}
}

// Story is a thematic cluster of browsing-history URLs.
type Story struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	ImageKeywords string    `json:"imageKeywords"`
	RelatedURLs   []string  `json:"relatedUrls"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Chunk is one bite-sized educational card expanding a Story.
type Chunk struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Image         string `json:"image"`
	ImageKeywords string `json:"imageKeywords"`
}

// Stage returns the progression stage for the chunk's position, or "" when
// the ID falls outside 1..ChunkCount.
func (c Chunk) Stage() Stage {
	if c.ID < 1 || c.ID > len(ChunkStages) {
		return ""
	}
	return ChunkStages[c.ID-1]
}

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one turn of a conversation about a story.
type Message struct {
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// ChunkSummary is the part of a chunk that grounds a chat reply.
type ChunkSummary struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ChatContext bundles the story, chunk and conversation data supplied to the
// chat flow. It is read-only input and never persisted.
type ChatContext struct {
	StoryTitle       string         `json:"storyTitle"`
	StoryDescription string         `json:"storyDescription"`
	Chunks           []ChunkSummary `json:"chunks"`
	PreviousMessages []Message      `json:"previousMessages"`
}

// NewChatContext builds a ChatContext for a story and its chunks.
func NewChatContext(s Story, chunks []Chunk, previous []Message) ChatContext {
	summaries := make([]ChunkSummary, len(chunks))
	for i, c := range chunks {
		summaries[i] = ChunkSummary{Title: c.Title, Content: c.Content}
	}
	return ChatContext{
		StoryTitle:       s.Title,
		StoryDescription: s.Description,
		Chunks:           summaries,
		PreviousMessages: previous,
	}
}

// FindStory returns the story with the given ID.
func FindStory(stories []Story, id int) (Story, bool) {
	for _, s := range stories {
		if s.ID == id {
			return s, true
		}
	}
	return Story{}, false
}
