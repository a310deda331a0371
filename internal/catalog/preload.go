package catalog

import "go.uber.org/zap"

// Preload kicks off background loads for every category in parallel. Server
// readiness is not gated on it; a category that fails stays cold until the
// next request re-triggers its load.
func Preload(l *Loader) {
	zap.S().Infow("preloading catalog", "categories", len(All))
	for _, cat := range All {
		l.TriggerLoad(cat)
	}
}
