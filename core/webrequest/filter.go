package webrequest

import (
	"errors"

	"github.com/dmitrymomot/netkit/core/urlpattern"
)

// Filter restricts a listener to requests whose URL matches at least one of
// the given patterns. The zero Filter matches every request.
type Filter struct {
	// URLs holds match patterns such as "*://example.com/*". See the
	// urlpattern package for the grammar.
	URLs []string
}

// compile parses the filter once at registration time. A nil set stands for
// "match everything" so the dispatch path needs no empty-filter special case.
func (f Filter) compile() (*urlpattern.Set, error) {
	if len(f.URLs) == 0 {
		return nil, nil
	}
	set, err := urlpattern.ParseSet(f.URLs)
	if err != nil {
		return nil, errors.Join(ErrInvalidFilter, err)
	}
	return set, nil
}
