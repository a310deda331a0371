package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"starhub/pkg/models"
)

const (
	// DefaultPerPage is the page size when the request carries no limit.
	DefaultPerPage = 20
	maxPerPage     = 100
)

// ListParams are the query knobs of a list request.
type ListParams struct {
	Search  string
	Page    int
	PerPage int
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

// ListResult is the SWAPI-compatible list envelope.
type ListResult struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []models.Record `json:"results"`
}

// Filter returns the records whose display name contains search,
// case-insensitively. An empty search returns the input unchanged; records
// with neither a name nor a title never match a non-empty search.
func Filter(items []models.Record, search string) []models.Record {
	if search == "" {
		return items
	}
	term := strings.ToLower(search)

	out := make([]models.Record, 0, len(items))
	for _, r := range items {
		name := r.Name()
		if name != "" && strings.Contains(strings.ToLower(name), term) {
			out = append(out, r)
		}
	}
	return out
}

// BuildPage filters and paginates a collection and builds the envelope.
// pageBase is the incoming request's scheme://host/path; next/previous carry
// only the page and search parameters. Out-of-range pages produce an empty
// results slice, not an error.
func BuildPage(items []models.Record, p ListParams, pageBase string) ListResult {
	p = p.normalized()
	filtered := Filter(items, p.Search)
	total := len(filtered)

	start := (p.Page - 1) * p.PerPage
	end := start + p.PerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	results := make([]models.Record, 0, end-start)
	results = append(results, filtered[start:end]...)

	res := ListResult{Count: total, Results: results}
	if (p.Page-1)*p.PerPage+p.PerPage < total {
		u := pageURL(pageBase, p.Page+1, p.Search)
		res.Next = &u
	}
	if p.Page > 1 {
		u := pageURL(pageBase, p.Page-1, p.Search)
		res.Previous = &u
	}
	return res
}

func pageURL(base string, page int, search string) string {
	s := fmt.Sprintf("%s?page=%d", base, page)
	if search != "" {
		s += "&search=" + url.QueryEscape(search)
	}
	return s
}
