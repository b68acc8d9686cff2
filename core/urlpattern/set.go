package urlpattern

import "net/url"

// Set is an immutable collection of patterns evaluated as a logical OR.
// An empty (or nil) Set matches every URL, which makes the zero filter mean
// "all requests". A Set is safe for concurrent use: it holds no mutable
// state after construction.
type Set struct {
	patterns []Pattern
}

// NewSet builds a set from already-compiled patterns.
func NewSet(patterns ...Pattern) *Set {
	s := &Set{patterns: make([]Pattern, len(patterns))}
	copy(s.patterns, patterns)
	return s
}

// ParseSet compiles a set from pattern strings. Parsing is atomic: the first
// malformed pattern fails the whole set and nothing is retained.
func ParseSet(raw []string) (*Set, error) {
	patterns := make([]Pattern, 0, len(raw))
	for _, text := range raw {
		p, err := Parse(text)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return &Set{patterns: patterns}, nil
}

// Matches reports whether u is accepted by the set: true when the set is
// empty, otherwise true iff at least one pattern accepts u. Matching is
// order-independent and side-effect-free.
func (s *Set) Matches(u *url.URL) bool {
	if s == nil || len(s.patterns) == 0 {
		return true
	}
	for _, p := range s.patterns {
		if p.MatchesURL(u) {
			return true
		}
	}
	return false
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Empty reports whether the set matches unconditionally.
func (s *Set) Empty() bool { return s.Len() == 0 }

// Strings returns the original pattern texts.
func (s *Set) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.String()
	}
	return out
}
