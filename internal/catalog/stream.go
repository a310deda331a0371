package catalog

import (
	"time"

	"github.com/gin-gonic/gin"

	"starhub/pkg/models"
)

const (
	// streamFirstBatch caps the number of items in the opening batch so the
	// client can render something immediately.
	streamFirstBatch = 10

	streamStartPoll = 100 * time.Millisecond
	streamPoll      = 500 * time.Millisecond
)

type batchPayload struct {
	Items  []models.Record `json:"items"`
	Offset int             `json:"offset"`
	Done   bool            `json:"done"`
}

type donePayload struct {
	Total int  `json:"total"`
	Done  bool `json:"done"`
}

// stream delivers a category progressively over SSE: whatever is cached goes
// out right away as a `batch` event, further batches follow as the
// background load lands, and the stream always terminates with a `done`
// event. Search filtering matches the list route and is recomputed each
// tick; offsets count filtered items already sent.
func (h *Handler) stream(c *gin.Context) {
	cat, ok := h.category(c)
	if !ok {
		return
	}
	search := c.Query("search")

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	h.Loader.TriggerLoad(cat)

	ctx := c.Request.Context()
	deadline := time.NewTimer(listWaitCeiling)
	defer deadline.Stop()

	// Wait for the cache to hold anything at all. A category that stays
	// empty past the ceiling (upstream down) still gets its terminal event.
	startTick := time.NewTicker(streamStartPoll)
	defer startTick.Stop()

	var items []models.Record
	var loaded bool
	for {
		items, loaded = h.Store.Snapshot(cat)
		if len(items) > 0 || loaded {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			h.sendEvent(c, "done", donePayload{Total: 0, Done: true})
			return
		case <-startTick.C:
		}
	}
	startTick.Stop()

	filtered := Filter(items, search)
	first := filtered
	if len(first) > streamFirstBatch {
		first = filtered[:streamFirstBatch]
	}
	h.sendEvent(c, "batch", batchPayload{Items: first, Offset: 0})
	sent := len(first)

	if loaded {
		if sent < len(filtered) {
			h.sendEvent(c, "batch", batchPayload{Items: filtered[sent:], Offset: sent})
		}
		h.sendEvent(c, "done", donePayload{Total: len(filtered), Done: true})
		return
	}

	tick := time.NewTicker(streamPoll)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			items, loaded = h.Store.Snapshot(cat)
			filtered = Filter(items, search)
			if len(filtered) > sent {
				h.sendEvent(c, "batch", batchPayload{Items: filtered[sent:], Offset: sent})
				sent = len(filtered)
			}
			if loaded {
				h.sendEvent(c, "done", donePayload{Total: len(filtered), Done: true})
				return
			}
		}
	}
}

func (h *Handler) sendEvent(c *gin.Context, name string, payload any) {
	c.SSEvent(name, payload)
	c.Writer.Flush()
}
