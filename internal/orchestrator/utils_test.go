package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHistory(t *testing.T) {
	got := cleanHistory([]string{" https://a.example ", "", "https://b.example", "https://a.example", "\t"})

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, got)
	assert.Empty(t, cleanHistory(nil))
}
