package story

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ExportFormat represents supported export formats
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
)

// ExportStories writes stories in the requested format
func ExportStories(stories []Story, format string, writer io.Writer) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if stories == nil {
		stories = []Story{}
	}
	return exportJSON(stories, writer)
}

// ExportChunks writes chunks in the requested format
func ExportChunks(chunks []Chunk, format string, writer io.Writer) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if chunks == nil {
		chunks = []Chunk{}
	}
	return exportJSON(chunks, writer)
}

// LoadStories reads a JSON story export back into memory
func LoadStories(reader io.Reader) ([]Story, error) {
	var stories []Story
	if err := json.NewDecoder(reader).Decode(&stories); err != nil {
		return nil, fmt.Errorf("failed to decode stories: %w", err)
	}
	return stories, nil
}

// LoadChunks reads a JSON chunk export back into memory
func LoadChunks(reader io.Reader) ([]Chunk, error) {
	var chunks []Chunk
	if err := json.NewDecoder(reader).Decode(&chunks); err != nil {
		return nil, fmt.Errorf("failed to decode chunks: %w", err)
	}
	return chunks, nil
}

func checkFormat(format string) error {
	if ExportFormat(strings.ToLower(format)) != FormatJSON {
		return fmt.Errorf("unsupported export format: %s (supported: json)", format)
	}
	return nil
}

// exportJSON writes values as indented JSON
func exportJSON(v any, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
