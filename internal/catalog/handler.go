package catalog

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// listWaitCeiling bounds how long a list or stream request waits for a cold
// category before serving whatever is cached. The triggered load keeps
// running past the ceiling.
const listWaitCeiling = 10 * time.Second

type Handler struct {
	Store   *Store
	Loader  *Loader
	PerPage int
}

func NewHandler(store *Store, loader *Loader, perPage int) *Handler {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Handler{Store: store, Loader: loader, PerPage: perPage}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/universe", h.universe)         // GET /api/universe
	rg.GET("/cache/status", h.cacheStatus)  // GET /api/cache/status
	rg.GET("/:category", h.list)            // GET /api/{category}
	rg.GET("/:category/:id", h.detail)      // GET /api/{category}/{id}
	rg.GET("/:category/stream", h.stream)   // GET /api/{category}/stream
}

// category resolves the route parameter, answering 404 itself for unknown
// names.
func (h *Handler) category(c *gin.Context) (Category, bool) {
	cat, ok := ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
	}
	return cat, ok
}

func (h *Handler) list(c *gin.Context) {
	cat, ok := h.category(c)
	if !ok {
		return
	}

	p := ListParams{
		Search:  c.Query("search"),
		Page:    parseInt(c.Query("page"), 1),
		PerPage: parseInt(c.Query("limit"), h.PerPage),
	}

	// Cold cache: kick the load and wait up to the ceiling, then serve
	// whatever is there. A slow upstream degrades to an empty page rather
	// than an error.
	h.Loader.WaitLoaded(c.Request.Context(), cat, listWaitCeiling)

	items, _ := h.Store.Snapshot(cat)
	c.JSON(http.StatusOK, BuildPage(items, p, requestBaseURL(c)))
}

func (h *Handler) detail(c *gin.Context) {
	cat, ok := h.category(c)
	if !ok {
		return
	}
	id := c.Param("id")

	if err := h.Loader.EnsureLoaded(c.Request.Context(), cat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to fetch %s", cat)})
		return
	}

	items, _ := h.Store.Snapshot(cat)
	for _, r := range items {
		if r.ID() == id {
			c.JSON(http.StatusOK, r)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func (h *Handler) universe(c *gin.Context) {
	g, ctx := errgroup.WithContext(c.Request.Context())
	for _, cat := range All {
		g.Go(func() error {
			return h.Loader.EnsureLoaded(ctx, cat)
		})
	}
	if err := g.Wait(); err != nil {
		// Serve the categories that did load; the rest show up empty.
		zap.S().Warnw("universe load incomplete", "error", err)
	}

	out := make(gin.H, len(All))
	for _, cat := range All {
		items, _ := h.Store.Snapshot(cat)
		out[string(cat)] = gin.H{"count": len(items), "results": items}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) cacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Status())
}

// requestBaseURL rebuilds scheme://host/path of the incoming request for
// pagination links.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, c.Request.URL.Path)
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
