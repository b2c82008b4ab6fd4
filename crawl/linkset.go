package crawl

// mapLinkSet is the default exact LinkSet.
type mapLinkSet map[string]struct{}

func newMapLinkSet() mapLinkSet {
	return make(mapLinkSet)
}

func (s mapLinkSet) Seen(link string) bool {
	_, ok := s[link]
	return ok
}

func (s mapLinkSet) Add(link string) {
	s[link] = struct{}{}
}

func (s mapLinkSet) Len() int {
	return len(s)
}
