package api

import (
	"context"

	"github.com/lysyi3m/microbrands/app/database"
	"github.com/lysyi3m/microbrands/app/feed"
	"github.com/lysyi3m/microbrands/app/gallery"
	"github.com/lysyi3m/microbrands/app/metrics"
	"github.com/lysyi3m/microbrands/app/session"
)

type GeneratorInterface interface {
	Run(summary gallery.Summary, selfPath string) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

// PostCounter reports the size of the stored catalog snapshot.
type PostCounter interface {
	GetPostCount(ctx context.Context) (int, error)
}

var _ PostCounter = (database.PostRepository)(nil)

type Handler struct {
	gallery   *gallery.Gallery
	sessions  *session.Store
	posts     PostCounter
	generator GeneratorInterface
	metrics   *metrics.Metrics
	version   string
}

type FiltersResponse struct {
	Industry string   `json:"industry"`
	Type     string   `json:"type"`
	Search   string   `json:"search"`
	Tags     []string `json:"tags"`
}

type PostsResponse struct {
	Posts           []gallery.BrandPost `json:"posts"`
	Total           int                 `json:"total"`
	Visible         int                 `json:"visible"`
	TagFilterActive bool                `json:"tag_filter_active"`
	Filters         FiltersResponse     `json:"filters"`
}

type SessionResponse struct {
	ID string `json:"id"`
	PostsResponse
}

type FacetsResponse struct {
	Industries []string `json:"industries"`
	Types      []string `json:"types"`
	Tags       []string `json:"tags"`
}

// ValueRequest is the body of the single-field session updates.
type ValueRequest struct {
	Value *string `json:"value" binding:"required"`
}

func newPostsResponse(summary gallery.Summary) PostsResponse {
	return PostsResponse{
		Posts:           summary.Posts,
		Total:           summary.Total,
		Visible:         summary.Visible,
		TagFilterActive: summary.TagFilterActive,
		Filters: FiltersResponse{
			Industry: summary.State.Industry,
			Type:     summary.State.Type,
			Search:   summary.State.Search,
			Tags:     summary.State.Tags.Sorted(),
		},
	}
}
