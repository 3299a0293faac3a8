package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Yates-Labs/storyline/internal/imagery"
	"github.com/Yates-Labs/storyline/internal/story"
)

// mockCreatedAt keeps mock stories byte-for-byte reproducible.
var mockCreatedAt = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// MockStories returns fixed sample stories. No network is used.
func MockStories() []story.Story {
	stories := []story.Story{
		{
			ID:            1,
			Title:         "The Secret Life of Octopuses",
			Description:   "You've been diving into cephalopod intelligence, from camouflage tricks to problem-solving in the lab. These creatures think with their arms and keep surprising the scientists who study them.",
			ImageKeywords: "octopus underwater",
			RelatedURLs: []string{
				"https://en.wikipedia.org/wiki/Octopus",
				"https://www.nationalgeographic.com/animals/invertebrates/facts/octopus",
			},
		},
		{
			ID:            2,
			Title:         "How Sourdough Works",
			Description:   "Your reading on wild yeast, starters and long fermentation adds up to a crash course in the microbiology of bread.",
			ImageKeywords: "sourdough bread",
			RelatedURLs: []string{
				"https://www.kingarthurbaking.com/recipes/sourdough-starter",
				"https://en.wikipedia.org/wiki/Sourdough",
			},
		},
		{
			ID:            3,
			Title:         "Building for the Red Planet",
			Description:   "From habitat design to in-situ resource use, you've been exploring what it would take to live and work on Mars.",
			ImageKeywords: "mars landscape",
			RelatedURLs: []string{
				"https://mars.nasa.gov/",
				"https://www.esa.int/Science_Exploration/Human_and_Robotic_Exploration",
			},
		},
		{
			ID:            4,
			Title:         "The Psychology of Habits",
			Description:   "Cue, routine, reward: your recent articles unpack why habits stick and how small changes compound over time.",
			ImageKeywords: "morning routine",
			RelatedURLs: []string{
				"https://jamesclear.com/habits",
				"https://www.apa.org/topics/behavioral-science",
			},
		},
	}

	for i := range stories {
		stories[i].Image = imagery.FallbackURL(stories[i].ImageKeywords)
		stories[i].CreatedAt = mockCreatedAt
	}
	return stories
}

// mockChunkTemplates holds one title/body pair per stage, in stage order.
var mockChunkTemplates = [story.ChunkCount]struct {
	title   string
	content string
	image   string
}{
	{
		title:   "Understanding %s",
		content: "At its core, %s is about a handful of ideas that fit together. Once you see how they connect, the rest of the topic becomes much easier to follow.\n\nStart with the simplest version of the idea and build outward from there.",
		image:   "concept",
	},
	{
		title:   "The History Behind %s",
		content: "The story of %s goes back further than most people expect. Early thinkers noticed the same patterns we study today, even without modern tools.\n\nEach generation refined the explanation, and many of their debates still shape the field.",
		image:   "history",
	},
	{
		title:   "What Experts Say About %s",
		content: "Specialists who work on %s tend to stress the details that casual readers miss. Their view is that the interesting part lies in the exceptions.\n\nListening to how experts frame their open questions is a shortcut to understanding what really matters.",
		image:   "expert",
	},
	{
		title:   "%s in the Real World",
		content: "You can see %s at work in everyday life once you know where to look. Products, policies and habits are all shaped by it.\n\nTry spotting one example this week and ask yourself why it works the way it does.",
		image:   "everyday life",
	},
	{
		title:   "Going Deeper: %s",
		content: "If %s has caught your interest, there is plenty more to explore. Primary sources, long-form books and hands-on experiments all offer a richer picture.\n\nPick one thread from this story and follow it to its source.",
		image:   "library books",
	},
}

// MockChunks returns five fixed chunks for s, one per stage in stage order.
func MockChunks(s story.Story) []story.Chunk {
	base := s.ImageKeywords
	if strings.TrimSpace(base) == "" {
		base = s.Title
	}

	chunks := make([]story.Chunk, story.ChunkCount)
	for i, tmpl := range mockChunkTemplates {
		keywords := strings.TrimSpace(base + " " + tmpl.image)
		chunks[i] = story.Chunk{
			ID:            i + 1,
			Title:         fmt.Sprintf(tmpl.title, s.Title),
			Content:       fmt.Sprintf(tmpl.content, s.Title),
			Image:         imagery.FallbackURL(keywords),
			ImageKeywords: keywords,
		}
	}
	return chunks
}

// MockChatReply returns a keyword-triggered reply that always names the story.
func MockChatReply(message string, c story.ChatContext) string {
	title := c.StoryTitle
	if title == "" {
		title = "this topic"
	}
	msg := strings.ToLower(message)

	switch {
	case strings.Contains(msg, "why") || strings.Contains(msg, "matter"):
		return fmt.Sprintf("Great question! %s matters because it connects ideas you already know to something new. Understanding it helps you see patterns across many other subjects too.", title)
	case strings.Contains(msg, "how") || strings.Contains(msg, "work"):
		return fmt.Sprintf("Here's how %s works in a nutshell: a few simple principles combine, and their interaction produces the effects you've been reading about. The chunks in this story walk through each step.", title)
	case strings.Contains(msg, "example"):
		return fmt.Sprintf("A good example of %s is the one in the real-world application chunk. Try looking for similar cases in your own day, since they're more common than you might think.", title)
	case strings.Contains(msg, "learn") || strings.Contains(msg, "more"):
		return fmt.Sprintf("To learn more about %s, start with the deep dive chunk and then revisit the sources in your history. Following one thread to its original source is the fastest way to go deeper.", title)
	default:
		return fmt.Sprintf("That's an interesting thought about %s! Ask me why it matters, how it works, or for an example, and I'll dig in.", title)
	}
}
