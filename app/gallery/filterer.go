package gallery

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// searchKeys holds the lowercased fields that free-text search runs against.
type searchKeys struct {
	brandName   string
	description string
	industry    string
}

func newSearchKeys(post BrandPost) searchKeys {
	lower := cases.Lower(language.Und)
	return searchKeys{
		brandName:   lower.String(post.BrandName),
		description: lower.String(post.Description),
		industry:    lower.String(post.Industry),
	}
}

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run returns the posts that satisfy every criterion of state, in their
// original order. The result is never nil.
func (f *Filterer) Run(posts []BrandPost, state FilterState) []BrandPost {
	query := f.normalizeQuery(state.Search)

	visible := make([]BrandPost, 0, len(posts))
	for _, post := range posts {
		if f.matches(post, newSearchKeys(post), state, query) {
			visible = append(visible, post)
		}
	}

	return visible
}

// Visible is the pure form of Filterer.Run.
func Visible(state FilterState, posts []BrandPost) []BrandPost {
	return NewFilterer().Run(posts, state)
}

func (f *Filterer) normalizeQuery(search string) string {
	if search == "" {
		return ""
	}
	return cases.Lower(language.Und).String(search)
}

func (f *Filterer) matches(post BrandPost, keys searchKeys, state FilterState, query string) bool {
	return f.matchesIndustry(post, state.Industry) &&
		f.matchesType(post, state.Type) &&
		f.matchesSearch(keys, query) &&
		f.matchesTags(post, state.Tags)
}

func (f *Filterer) matchesIndustry(post BrandPost, industry string) bool {
	return industry == All || post.Industry == industry
}

func (f *Filterer) matchesType(post BrandPost, postType string) bool {
	return postType == All || string(post.PostType) == postType
}

func (f *Filterer) matchesSearch(keys searchKeys, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(keys.brandName, query) ||
		strings.Contains(keys.description, query) ||
		strings.Contains(keys.industry, query)
}

// matchesTags passes a post carrying any one of the selected tags.
func (f *Filterer) matchesTags(post BrandPost, selected TagSet) bool {
	if selected.Len() == 0 {
		return true
	}
	for _, tag := range post.CreativeTags {
		if selected.Has(tag) {
			return true
		}
	}
	return false
}
