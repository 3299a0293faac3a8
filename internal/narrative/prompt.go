package narrative

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Yates-Labs/storyline/internal/provider"
	"github.com/Yates-Labs/storyline/internal/story"
)

// StoriesPrompt asks for thematic stories grouping the given history URLs.
func StoriesPrompt(urls []string) provider.Prompt {
	var b strings.Builder

	b.WriteString("Analyze the following browsing history and group the pages into 3 to 5 thematic stories. ")
	b.WriteString("Each story should capture a coherent topic the reader has been exploring.\n\n")

	b.WriteString("# Browsing History\n\n")
	if len(urls) == 0 {
		b.WriteString("- (none)\n")
	}
	for i, u := range urls {
		if host := hostOf(u); host != "" {
			b.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, u, host))
		} else {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, u))
		}
	}
	b.WriteString("\n")

	b.WriteString("# Output Format\n\n")
	b.WriteString("Return a JSON array where every element has this shape:\n")
	b.WriteString("- id: integer, unique, starting at 1\n")
	b.WriteString("- title: short, engaging story title\n")
	b.WriteString("- description: 2-3 sentences explaining the theme\n")
	b.WriteString("- imageKeywords: 2-4 words describing a fitting photograph\n")
	b.WriteString("- relatedUrls: the history URLs that belong to this story\n\n")

	b.WriteString("Example:\n")
	b.WriteString(`[
  {
    "id": 1,
    "title": "The Science of Sleep",
    "description": "You have been reading about circadian rhythms and how rest shapes memory.",
    "imageKeywords": "night sky bedroom",
    "relatedUrls": ["https://example.com/sleep-cycles"]
  }
]`)
	b.WriteString("\n\n")
	b.WriteString("Return ONLY the JSON array. Do not wrap it in markdown or add commentary.")

	return provider.Prompt{
		System: "You are a curator who turns a reader's browsing history into engaging learning stories. You always answer with valid JSON.",
		User:   b.String(),
	}
}

// ChunksPrompt asks for the five stage chunks that expand one story.
func ChunksPrompt(s story.Story) provider.Prompt {
	var b strings.Builder

	b.WriteString("Expand the following story into exactly 5 educational chunks.\n\n")

	b.WriteString("# Story\n\n")
	b.WriteString(fmt.Sprintf("**Title:** %s\n\n", s.Title))
	b.WriteString(fmt.Sprintf("**Description:** %s\n\n", s.Description))
	if len(s.RelatedURLs) > 0 {
		b.WriteString("**Sources:**\n")
		for _, u := range s.RelatedURLs {
			b.WriteString(fmt.Sprintf("- %s\n", u))
		}
		b.WriteString("\n")
	}

	b.WriteString("# Chunks\n\n")
	b.WriteString("Write one chunk per stage, in this order:\n")
	for i, stage := range story.ChunkStages {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, stage.Label()))
	}
	b.WriteString("\n")

	b.WriteString("# Output Format\n\n")
	b.WriteString("Return a JSON array of exactly 5 objects with ids 1 to 5 in stage order:\n")
	b.WriteString("- id: integer 1-5\n")
	b.WriteString("- title: chunk heading\n")
	b.WriteString("- content: 2-3 paragraphs\n")
	b.WriteString("- imageKeywords: 2-4 words describing a fitting photograph\n\n")

	b.WriteString("Example:\n")
	b.WriteString(`[
  {
    "id": 1,
    "title": "What Sleep Actually Does",
    "content": "Sleep is an active process in which the brain consolidates memories...",
    "imageKeywords": "brain neurons"
  }
]`)
	b.WriteString("\n\n")
	b.WriteString("Return ONLY the JSON array. Do not wrap it in markdown or add commentary.")

	return provider.Prompt{
		System: "You are an expert educator who writes clear, accurate and engaging learning material. You always answer with valid JSON.",
		User:   b.String(),
	}
}

// ChatPrompt grounds a free-form question in a story and its chunks.
func ChatPrompt(message string, c story.ChatContext) provider.Prompt {
	var sys strings.Builder

	sys.WriteString("You are a friendly tutor helping a reader explore a topic they have been learning about. ")
	sys.WriteString("Answer conversationally in 1-3 short paragraphs and stay grounded in the material below.\n\n")
	sys.WriteString(fmt.Sprintf("**Story:** %s\n\n", c.StoryTitle))
	if c.StoryDescription != "" {
		sys.WriteString(fmt.Sprintf("**Summary:** %s\n\n", c.StoryDescription))
	}
	if len(c.Chunks) > 0 {
		sys.WriteString("**Material:**\n")
		for i, ch := range c.Chunks {
			sys.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, ch.Title, truncate(ch.Content, 300)))
		}
	}

	var user strings.Builder
	if len(c.PreviousMessages) > 0 {
		user.WriteString("Conversation so far:\n")
		for i, m := range c.PreviousMessages {
			user.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, m.Sender, m.Text))
		}
		user.WriteString("\n")
	}
	user.WriteString(fmt.Sprintf("Reader: %s", message))

	return provider.Prompt{
		System: strings.TrimSpace(sys.String()),
		User:   user.String(),
	}
}

// hostOf returns the host of a URL without a leading "www.", or "" when the
// URL has none.
func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
