package api

import (
	"cmp"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/microbrands/app/gallery"
	"github.com/lysyi3m/microbrands/app/metrics"
	"github.com/lysyi3m/microbrands/app/session"
)

func NewHandler(g *gallery.Gallery, sessions *session.Store, posts PostCounter,
	generator GeneratorInterface, m *metrics.Metrics, version string) *Handler {
	return &Handler{
		gallery:   g,
		sessions:  sessions,
		posts:     posts,
		generator: generator,
		metrics:   m,
		version:   version,
	}
}

// filterStateFromQuery builds a filter state from query parameters. Missing or
// empty industry and type select everything. Tags are taken verbatim; empty
// ones are dropped.
func filterStateFromQuery(c *gin.Context) gallery.FilterState {
	state := gallery.DefaultFilterState()
	state.Industry = cmp.Or(c.Query("industry"), gallery.All)
	state.Type = cmp.Or(c.Query("type"), gallery.All)
	state.Search = c.Query("search")

	var tags []string
	for _, tag := range c.QueryArray("tag") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	for _, tag := range strings.Split(c.Query("tags"), ",") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	state.Tags = gallery.NewTagSet(tags...)

	return state
}

func (h *Handler) GetFacets(c *gin.Context) {
	c.JSON(http.StatusOK, FacetsResponse{
		Industries: h.gallery.Industries(),
		Types:      gallery.ListTypes(),
		Tags:       h.gallery.Tags(),
	})
}

func (h *Handler) GetPosts(c *gin.Context) {
	summary := h.gallery.Summarize(filterStateFromQuery(c))
	h.metrics.ObserveVisible("query", summary.Visible)

	c.JSON(http.StatusOK, newPostsResponse(summary))
}

func (h *Handler) GetFeed(c *gin.Context) {
	summary := h.gallery.Summarize(filterStateFromQuery(c))
	h.metrics.ObserveVisible("feed", summary.Visible)

	rss, err := h.generator.Run(summary, c.Request.URL.RequestURI())
	if err != nil {
		slog.Error("RSS generation error", "path", c.Request.URL.Path, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(summary.Visible))
	c.Header("X-Feed-Total", strconv.Itoa(summary.Total))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
		"posts":     h.gallery.Len(),
		"sessions":  h.sessions.Count(),
	}

	if stored, err := h.posts.GetPostCount(c.Request.Context()); err == nil {
		health["stored_posts"] = stored
	} else {
		slog.Error("Database error", "operation", "get_post_count", "error", err)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APICreateSession(c *gin.Context) {
	s, err := h.sessions.Create()
	if err != nil {
		if errors.Is(err, session.ErrLimitReached) {
			slog.Warn("Session limit reached", "active", h.sessions.Count())
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session limit reached"})
			return
		}
		if errors.Is(err, session.ErrRateLimited) {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many new sessions, retry later"})
			return
		}
		slog.Error("Error creating session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	h.respondSession(c, http.StatusCreated, s.ID, s.Summary())
}

func (h *Handler) APIGetSession(c *gin.Context) {
	h.applySession(c, func(e *gallery.Engine) {})
}

func (h *Handler) APISetIndustry(c *gin.Context) {
	h.applyValue(c, (*gallery.Engine).SetIndustry)
}

func (h *Handler) APISetType(c *gin.Context) {
	h.applyValue(c, (*gallery.Engine).SetType)
}

func (h *Handler) APISetSearch(c *gin.Context) {
	h.applyValue(c, (*gallery.Engine).SetSearchText)
}

// APIToggleTag takes the tag from the body so any string, including ones with
// slashes, can be toggled.
func (h *Handler) APIToggleTag(c *gin.Context) {
	h.applyValue(c, (*gallery.Engine).ToggleTag)
}

func (h *Handler) APIClearTags(c *gin.Context) {
	h.applySession(c, (*gallery.Engine).ClearTags)
}

func (h *Handler) APIResetSession(c *gin.Context) {
	h.applySession(c, (*gallery.Engine).ResetAll)
}

func (h *Handler) APIDeleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.sessions.Delete(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		slog.Error("Error deleting session", "session", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) applyValue(c *gin.Context, set func(e *gallery.Engine, value string)) {
	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	h.applySession(c, func(e *gallery.Engine) {
		set(e, *req.Value)
	})
}

func (h *Handler) applySession(c *gin.Context, fn func(e *gallery.Engine)) {
	id := c.Param("id")
	s, err := h.sessions.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		slog.Error("Error loading session", "session", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}

	h.respondSession(c, http.StatusOK, s.ID, s.Apply(fn))
}

func (h *Handler) respondSession(c *gin.Context, status int, id string, summary gallery.Summary) {
	h.metrics.ObserveVisible("session", summary.Visible)

	c.JSON(status, SessionResponse{
		ID:            id,
		PostsResponse: newPostsResponse(summary),
	})
}
