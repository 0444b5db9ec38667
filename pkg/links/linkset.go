package links

// LinkSet is an ordered, read-only collection of links for one event.
// The zero value is an empty set.
type LinkSet struct {
	links []Link
}

// Len returns the number of links.
func (s LinkSet) Len() int {
	return len(s.links)
}

// Links returns a copy of the links in order.
func (s LinkSet) Links() []Link {
	out := make([]Link, len(s.links))
	copy(out, s.links)
	return out
}

// Keys returns the link keys in order.
func (s LinkSet) Keys() []Key {
	keys := make([]Key, len(s.links))
	for i, link := range s.links {
		keys[i] = link.Key
	}
	return keys
}

// Get returns the link stored under key.
func (s LinkSet) Get(key Key) (Link, bool) {
	for _, link := range s.links {
		if link.Key == key {
			return link, true
		}
	}
	return Link{}, false
}

// add appends link unless its URL is empty or its key is already present.
func (s *LinkSet) add(link Link) bool {
	if link.URL == "" {
		return false
	}
	if _, exists := s.Get(link.Key); exists {
		return false
	}
	s.links = append(s.links, link)
	return true
}

// NewLinkSet builds a set from links, dropping entries with an empty URL or
// a duplicate key. Intended for renderers and tests; Builder is the normal
// way to obtain a set.
func NewLinkSet(links ...Link) LinkSet {
	var set LinkSet
	for _, link := range links {
		set.add(link)
	}
	return set
}
