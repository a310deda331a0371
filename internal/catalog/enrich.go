package catalog

import (
	"strings"

	"starhub/pkg/models"
)

// Enricher derives the "id" and "image" fields for raw upstream records.
// It is a total function over any record shape: missing inputs produce
// empty derived values, never errors.
type Enricher struct {
	CDNBase string
}

func NewEnricher(cdnBase string) *Enricher {
	return &Enricher{CDNBase: strings.TrimRight(cdnBase, "/")}
}

// Enrich returns a copy of raw with id and image filled in. An id or image
// already present on the record wins over the derived value.
func (e *Enricher) Enrich(cat Category, raw models.Record) models.Record {
	rec := raw.Clone()

	id := rec.ID()
	if id == "" {
		id = idFromURL(rec.URL())
	}
	rec["id"] = id

	if rec.Image() == "" {
		rec["image"] = ImageURL(e.CDNBase, cat, id)
	}
	return rec
}

// idFromURL takes the last non-empty path segment of a record's canonical
// URL. An empty or missing URL yields an empty id.
func idFromURL(u string) string {
	parts := strings.Split(u, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}
