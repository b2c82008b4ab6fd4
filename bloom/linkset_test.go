package bloom_test

import (
	"fmt"
	"testing"

	"github.com/newsspeech/newscrawl/bloom"
	"github.com/stretchr/testify/assert"
)

func TestLinkSet_AddAndSeen(t *testing.T) {
	t.Parallel()

	s := bloom.NewLinkSet(1000, 0.01)

	// Link not yet added should not be seen
	assert.False(t, s.Seen("https://vnexpress.net/a-1.html"))

	s.Add("https://vnexpress.net/a-1.html")

	assert.True(t, s.Seen("https://vnexpress.net/a-1.html"))
	assert.False(t, s.Seen("https://vnexpress.net/a-2.html"))
}

func TestLinkSet_ExactMembership(t *testing.T) {
	t.Parallel()

	s := bloom.NewLinkSet(0, 0)
	s.Add("https://www.otofun.net/threads/a.1/")

	assert.False(t, s.Seen("https://www.otofun.net/threads/a.1"), "trailing slash differs")
	assert.False(t, s.Seen("https://www.otofun.net/threads/a.1/?page=2"), "query differs")
}

func TestLinkSet_NoFalsePositives(t *testing.T) {
	t.Parallel()

	// A tiny filter saturates quickly; the exact set must still reject
	// every link that was never added.
	s := bloom.NewLinkSet(1, 0.5)
	for i := 0; i < 200; i++ {
		s.Add(fmt.Sprintf("https://vnexpress.net/added-%d.html", i))
	}

	for i := 0; i < 200; i++ {
		assert.False(t, s.Seen(fmt.Sprintf("https://vnexpress.net/other-%d.html", i)))
	}
}

func TestLinkSet_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	s := bloom.NewLinkSet(1000, 0.01)
	s.Add("https://vnexpress.net/a-1.html")
	s.Add("https://vnexpress.net/a-1.html")
	s.Add("https://vnexpress.net/a-2.html")

	assert.Equal(t, 2, s.Len())
	count := s.EstimatedCount()
	assert.True(t, count >= 1 && count <= 3, "expected count near 2, got %d", count)
}

func TestLinkSet_CapGrowsWithExpectedLinks(t *testing.T) {
	t.Parallel()

	small := bloom.NewLinkSet(30, bloom.DefaultFPRate)
	large := bloom.NewLinkSet(200, bloom.DefaultFPRate)

	assert.Less(t, small.Cap(), large.Cap())
}
