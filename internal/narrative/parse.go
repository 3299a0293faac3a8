package narrative

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Yates-Labs/storyline/internal/story"
)

// StoryRecord is one story decoded from generated text, before images are
// attached.
type StoryRecord struct {
	ID            int
	Title         string
	Description   string
	ImageKeywords string
	RelatedURLs   []string
}

// ChunkRecord is one chunk decoded from generated text.
type ChunkRecord struct {
	ID            int
	Title         string
	Content       string
	ImageKeywords string
}

type rawStory struct {
	ID            flexID   `json:"id"`
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	ImageKeywords string   `json:"imageKeywords"`
	RelatedURLs   []string `json:"relatedUrls"`
}

type rawChunk struct {
	ID            flexID `json:"id"`
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content" validate:"required"`
	ImageKeywords string `json:"imageKeywords"`
}

var (
	openingFence = regexp.MustCompile("^```[A-Za-z0-9_+-]*")
	closingFence = regexp.MustCompile("```$")

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// StripFences removes the markdown code fence a provider may wrap around a
// structured payload. Repeated application returns the same result.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	for {
		stripped := s
		if strings.HasPrefix(stripped, "```") {
			stripped = openingFence.ReplaceAllString(stripped, "")
			stripped = strings.TrimSpace(stripped)
		}
		if strings.HasSuffix(stripped, "```") {
			stripped = closingFence.ReplaceAllString(stripped, "")
			stripped = strings.TrimSpace(stripped)
		}
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// ParseStories decodes a generated story array.
func ParseStories(text string) ([]StoryRecord, error) {
	var raw []rawStory
	if err := decodeArray(text, &raw); err != nil {
		return nil, &MalformedResponseError{Shape: "stories", Reason: "invalid JSON array", Err: err}
	}
	if len(raw) == 0 {
		return nil, &MalformedResponseError{Shape: "stories", Reason: "no items"}
	}

	ids := make([]int, len(raw))
	for i := range raw {
		raw[i].Title = strings.TrimSpace(raw[i].Title)
		raw[i].Description = strings.TrimSpace(raw[i].Description)
		if err := validate.Struct(raw[i]); err != nil {
			return nil, &MalformedResponseError{Shape: "stories", Reason: fmt.Sprintf("item %d", i+1), Err: describeValidation(err)}
		}
		ids[i] = int(raw[i].ID)
	}
	ids = repairIDs(ids)

	records := make([]StoryRecord, len(raw))
	for i, r := range raw {
		urls := r.RelatedURLs
		if urls == nil {
			urls = []string{}
		}
		records[i] = StoryRecord{
			ID:            ids[i],
			Title:         r.Title,
			Description:   r.Description,
			ImageKeywords: keywordsOrTitle(r.ImageKeywords, r.Title),
			RelatedURLs:   urls,
		}
	}
	return records, nil
}

// ParseChunks decodes a generated chunk array. Items beyond the fifth are
// dropped; shorter arrays are returned as they are.
func ParseChunks(text string) ([]ChunkRecord, error) {
	var raw []rawChunk
	if err := decodeArray(text, &raw); err != nil {
		return nil, &MalformedResponseError{Shape: "chunks", Reason: "invalid JSON array", Err: err}
	}
	if len(raw) == 0 {
		return nil, &MalformedResponseError{Shape: "chunks", Reason: "no items"}
	}
	if len(raw) > story.ChunkCount {
		raw = raw[:story.ChunkCount]
	}

	ids := make([]int, len(raw))
	for i := range raw {
		raw[i].Title = strings.TrimSpace(raw[i].Title)
		raw[i].Content = strings.TrimSpace(raw[i].Content)
		if err := validate.Struct(raw[i]); err != nil {
			return nil, &MalformedResponseError{Shape: "chunks", Reason: fmt.Sprintf("item %d", i+1), Err: describeValidation(err)}
		}
		ids[i] = int(raw[i].ID)
	}
	ids = repairChunkIDs(ids)

	records := make([]ChunkRecord, len(raw))
	for i, r := range raw {
		records[i] = ChunkRecord{
			ID:            ids[i],
			Title:         r.Title,
			Content:       r.Content,
			ImageKeywords: keywordsOrTitle(r.ImageKeywords, r.Title),
		}
	}
	return records, nil
}

// decodeArray strips fences and decodes a JSON array. When the payload is
// surrounded by prose, the outermost bracketed span is tried as well.
func decodeArray(text string, v any) error {
	payload := StripFences(text)
	err := json.Unmarshal([]byte(payload), v)
	if err == nil {
		return nil
	}

	start := strings.IndexByte(payload, '[')
	end := strings.LastIndexByte(payload, ']')
	if start < 0 || end <= start || (start == 0 && end == len(payload)-1) {
		return err
	}
	if retryErr := json.Unmarshal([]byte(payload[start:end+1]), v); retryErr != nil {
		return err
	}
	return nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("missing required field(s): %s", strings.Join(fields, ", "))
}

func keywordsOrTitle(keywords, title string) string {
	if k := strings.TrimSpace(keywords); k != "" {
		return k
	}
	return title
}

// repairIDs keeps the first occurrence of every positive id and gives missing
// or duplicated ids increasing values above the largest id seen.
func repairIDs(ids []int) []int {
	maxID := 0
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}

	seen := make(map[int]bool, len(ids))
	repaired := make([]int, len(ids))
	for i, id := range ids {
		if id <= 0 || seen[id] {
			maxID++
			id = maxID
		}
		seen[id] = true
		repaired[i] = id
	}
	return repaired
}

// repairChunkIDs keeps the first occurrence of every id in 1..ChunkCount and
// gives missing, duplicated or out-of-range ids the smallest unused position.
// Callers pass at most ChunkCount ids.
func repairChunkIDs(ids []int) []int {
	used := make(map[int]bool, len(ids))
	valid := make([]bool, len(ids))
	for i, id := range ids {
		if id >= 1 && id <= story.ChunkCount && !used[id] {
			used[id] = true
			valid[i] = true
		}
	}

	repaired := make([]int, len(ids))
	next := 1
	for i, id := range ids {
		if valid[i] {
			repaired[i] = id
			continue
		}
		for used[next] {
			next++
		}
		used[next] = true
		repaired[i] = next
	}
	return repaired
}

// flexID accepts ids written as numbers or numeric strings. Anything else
// decodes as zero and is repaired later.
type flexID int

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		*f = 0
		return nil
	}
	*f = flexID(n)
	return nil
}
