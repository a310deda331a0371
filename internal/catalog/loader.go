package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"starhub/internal/events"
	"starhub/internal/metrics"
	"starhub/pkg/models"
)

// Broadcaster receives cache lifecycle events. Satisfied by events.Hub;
// may be nil when no feed is wired.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// Loader fills the store from the upstream client: fetch, enrich, run the
// category's post-processing transform, publish. Concurrent callers for the
// same category share a single in-flight load, so at most one upstream
// request per category is ever outstanding.
//
// Loads run on a background context. A caller that abandons its wait does
// not cancel the flight; it completes (or fails) on its own and later
// callers see the result.
type Loader struct {
	store      *Store
	client     *Client
	enricher   *Enricher
	transforms map[Category]Transform
	bus        Broadcaster

	group singleflight.Group
}

func NewLoader(store *Store, client *Client, enricher *Enricher, bus Broadcaster) *Loader {
	return &Loader{
		store:    store,
		client:   client,
		enricher: enricher,
		transforms: map[Category]Transform{
			Films: filmsTransform(enricher.CDNBase),
		},
		bus: bus,
	}
}

// EnsureLoaded blocks until the category is loaded or its load fails.
// Already-loaded categories return immediately with no I/O. A failed load
// leaves the category cold; the next call starts a fresh attempt.
func (l *Loader) EnsureLoaded(ctx context.Context, cat Category) error {
	if l.store.Loaded(cat) {
		return nil
	}
	select {
	case res := <-l.loadOnce(cat):
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitLoaded triggers a load if needed and waits until the category is
// loaded, the ceiling expires, or ctx is cancelled, whichever comes first.
// It reports whether the category ended up loaded; on false the caller
// serves whatever is cached (possibly nothing) while the flight continues
// in the background.
func (l *Loader) WaitLoaded(ctx context.Context, cat Category, ceiling time.Duration) bool {
	if l.store.Loaded(cat) {
		return true
	}

	timer := time.NewTimer(ceiling)
	defer timer.Stop()

	select {
	case <-l.loadOnce(cat):
	case <-timer.C:
	case <-ctx.Done():
	}
	return l.store.Loaded(cat)
}

// TriggerLoad starts a background load for a cold category and returns
// immediately.
func (l *Loader) TriggerLoad(cat Category) {
	if l.store.Loaded(cat) {
		return
	}
	l.loadOnce(cat)
}

// loadOnce joins the in-flight load for the category, starting one if none
// exists. The returned channel is buffered; ignoring it is safe.
func (l *Loader) loadOnce(cat Category) <-chan singleflight.Result {
	return l.group.DoChan(string(cat), func() (any, error) {
		return nil, l.load(cat)
	})
}

func (l *Loader) load(cat Category) error {
	// A flight started just before another one published wins nothing by
	// refetching.
	if l.store.Loaded(cat) {
		return nil
	}

	start := time.Now()
	raw, err := l.client.FetchCategory(context.Background(), cat)
	metrics.RecordUpstreamRequest(string(cat), err, time.Since(start).Seconds())
	if err != nil {
		zap.S().Errorw("category load failed", "category", cat, "error", err)
		if l.bus != nil {
			l.bus.BroadcastJSON(events.NewLoadFailed(string(cat), err))
		}
		return fmt.Errorf("load %s: %w", cat, err)
	}

	items := make([]models.Record, 0, len(raw))
	for _, r := range raw {
		items = append(items, l.enricher.Enrich(cat, r))
	}
	if tr := l.transforms[cat]; tr != nil {
		items = tr(items)
	}

	l.store.Publish(cat, items)
	metrics.CategoriesLoaded.Inc()
	zap.S().Infow("category loaded",
		"category", cat,
		"count", len(items),
		"elapsed", time.Since(start),
	)
	if l.bus != nil {
		l.bus.BroadcastJSON(events.NewLoaded(string(cat), len(items)))
	}
	return nil
}
