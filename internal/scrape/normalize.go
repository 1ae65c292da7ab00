package scrape

import "strings"

// FlagLookup returns the locally cached image for a flag identifier.
type FlagLookup interface {
	Lookup(flagID string) (string, bool)
}

// Normalizer rewrites image and link references into fetchable absolute
// references, preferring locally cached flag images.
type Normalizer struct {
	origin string
	flags  FlagLookup
}

// NewNormalizer creates a Normalizer for the given source origin
// (for example "https://hamariweb.com"). flags may be nil.
func NewNormalizer(origin string, flags FlagLookup) *Normalizer {
	return &Normalizer{origin: strings.TrimRight(origin, "/"), flags: flags}
}

// Normalize returns the absolute form of raw, or "" when there is nothing
// usable (empty input or an inline data: reference).
func (n *Normalizer) Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if n.flags != nil {
		if id, ok := FlagID(raw); ok {
			if local, ok := n.flags.Lookup(id); ok && local != "" {
				return local
			}
		}
	}
	switch {
	case strings.HasPrefix(raw, "data:"):
		return ""
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return n.origin + raw
	default:
		return raw
	}
}
