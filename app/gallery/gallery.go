package gallery

import (
	"slices"
)

// Gallery is an immutable post collection with its facets and search keys
// computed once up front. It is safe for concurrent readers.
type Gallery struct {
	posts      []BrandPost
	keys       []searchKeys
	industries []string
	tags       []string
	filterer   *Filterer
}

// Summary is the result of evaluating a filter state against a gallery.
type Summary struct {
	State           FilterState
	Posts           []BrandPost
	Total           int
	Visible         int
	TagFilterActive bool
}

func NewGallery(posts []BrandPost) *Gallery {
	owned := make([]BrandPost, len(posts))
	keys := make([]searchKeys, len(posts))
	for i, post := range posts {
		if post.CreativeTags == nil {
			post.CreativeTags = []string{}
		} else {
			post.CreativeTags = slices.Clone(post.CreativeTags)
		}
		owned[i] = post
		keys[i] = newSearchKeys(post)
	}

	return &Gallery{
		posts:      owned,
		keys:       keys,
		industries: ListIndustries(owned),
		tags:       ListTags(owned),
		filterer:   NewFilterer(),
	}
}

func (g *Gallery) Len() int {
	return len(g.posts)
}

// Posts returns a copy of the full collection in catalog order.
func (g *Gallery) Posts() []BrandPost {
	return slices.Clone(g.posts)
}

func (g *Gallery) Industries() []string {
	return slices.Clone(g.industries)
}

func (g *Gallery) Tags() []string {
	return slices.Clone(g.tags)
}

// Visible returns the posts passing every criterion of state, preserving
// catalog order.
func (g *Gallery) Visible(state FilterState) []BrandPost {
	query := g.filterer.normalizeQuery(state.Search)

	visible := make([]BrandPost, 0, len(g.posts))
	for i, post := range g.posts {
		if g.filterer.matches(post, g.keys[i], state, query) {
			visible = append(visible, post)
		}
	}

	return visible
}

func (g *Gallery) Summarize(state FilterState) Summary {
	visible := g.Visible(state)
	return Summary{
		State:           state.Clone(),
		Posts:           visible,
		Total:           len(g.posts),
		Visible:         len(visible),
		TagFilterActive: state.TagFilterActive(),
	}
}
