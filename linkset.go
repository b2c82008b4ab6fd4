package newscrawl

// LinkSet tracks links already collected during one ingestion call.
// Membership is by exact string; links differing only by a trailing slash
// or query are distinct.
type LinkSet interface {
	// Seen reports whether link has been added.
	Seen(link string) bool

	// Add records link.
	Add(link string)

	// Len returns the number of links added.
	Len() int
}
