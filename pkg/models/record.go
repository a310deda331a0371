package models

import "strconv"

// Record is one catalog entry in its origin-defined shape.
//
// Upstream fields are passed through untouched; enrichment only guarantees
// that "id" and "image" are present afterwards. Records are treated as
// immutable once they reach the cache, so anything that derives a new record
// must work on a Clone.
type Record map[string]any

// ID returns the record identifier, or "" when it has not been derived yet.
func (r Record) ID() string {
	return r.stringField("id")
}

// URL returns the record's canonical upstream reference URL.
func (r Record) URL() string {
	return r.stringField("url")
}

// Image returns the derived image URL, or "" before enrichment.
func (r Record) Image() string {
	return r.stringField("image")
}

// Name returns the display name of the record: the "name" field, or the
// "title" field for resources (films) that use titles instead. Empty when
// the record carries neither.
func (r Record) Name() string {
	if n := r.stringField("name"); n != "" {
		return n
	}
	return r.stringField("title")
}

// EpisodeID returns the numeric episode_id of a film record, 0 when absent.
// JSON decoding yields float64 for numbers, so all numeric shapes are
// accepted.
func (r Record) EpisodeID() int {
	switch v := r["episode_id"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// Clone returns a shallow copy so enrichment never mutates the decoded
// upstream payload in place.
func (r Record) Clone() Record {
	out := make(Record, len(r)+2)
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (r Record) stringField(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}
