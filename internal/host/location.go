package host

import (
	"fmt"
	"net/url"
)

// Location is a read-only view of the dashboard URL. Scripts receive it as
// locationService.
type Location struct {
	path  string
	query url.Values
}

// NewLocation parses rawURL. An empty URL yields the root location.
func NewLocation(rawURL string) (*Location, error) {
	if rawURL == "" {
		return &Location{path: "/", query: url.Values{}}, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", rawURL, err)
	}
	return &Location{path: u.Path, query: u.Query()}, nil
}

// GetLocation returns the path and the encoded query.
func (l *Location) GetLocation() map[string]any {
	search := ""
	if len(l.query) > 0 {
		search = "?" + l.query.Encode()
	}
	return map[string]any{
		"pathname": l.path,
		"search":   search,
	}
}

// GetSearchObject returns the query parameters. Parameters given more than
// once keep their first value.
func (l *Location) GetSearchObject() map[string]any {
	out := make(map[string]any, len(l.query))
	for key, values := range l.query {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}
