// Package bloom provides link deduplication backed by Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/newsspeech/newscrawl"
)

// Sizing used by NewLinkSet when no estimate is given.
const (
	DefaultExpectedLinks = 1000
	DefaultFPRate        = 0.001
)

var _ newscrawl.LinkSet = (*LinkSet)(nil)

// LinkSet is an exact set of links fronted by a Bloom filter. Most lookups
// are for unseen links and are answered by the filter alone; a filter hit is
// confirmed against the exact set, so Seen never reports a false positive.
type LinkSet struct {
	filter *bloom.BloomFilter
	links  map[string]struct{}
}

// NewLinkSet creates a LinkSet sized for n expected links with the given
// filter false positive rate. Non-positive values use the defaults.
func NewLinkSet(n uint, fpRate float64) *LinkSet {
	if n == 0 {
		n = DefaultExpectedLinks
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFPRate
	}
	return &LinkSet{
		filter: bloom.NewWithEstimates(n, fpRate),
		links:  make(map[string]struct{}),
	}
}

// Seen reports whether link was added.
func (s *LinkSet) Seen(link string) bool {
	if !s.filter.TestString(link) {
		return false
	}
	_, ok := s.links[link]
	return ok
}

// Add records link. Adding a link twice has no effect.
func (s *LinkSet) Add(link string) {
	s.filter.AddString(link)
	s.links[link] = struct{}{}
}

// Len returns the number of distinct links added.
func (s *LinkSet) Len() int {
	return len(s.links)
}

// EstimatedCount returns the filter's approximation of the number of links.
func (s *LinkSet) EstimatedCount() uint {
	return uint(s.filter.ApproximatedSize())
}

// Cap returns the size of the filter in bits.
func (s *LinkSet) Cap() uint {
	return s.filter.Cap()
}
