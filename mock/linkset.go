package mock

import "github.com/newsspeech/newscrawl"

var _ newscrawl.LinkSet = (*LinkSet)(nil)

// LinkSet is a mock implementation of newscrawl.LinkSet.
type LinkSet struct {
	SeenFn func(link string) bool
	AddFn  func(link string)
	LenFn  func() int
}

func (s *LinkSet) Seen(link string) bool {
	return s.SeenFn(link)
}

func (s *LinkSet) Add(link string) {
	s.AddFn(link)
}

func (s *LinkSet) Len() int {
	return s.LenFn()
}
