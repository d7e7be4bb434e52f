package gallery

import (
	"slices"
)

// All is the filter value meaning "criterion not applied".
const All = "all"

type PostType string

const (
	PostTypePost     PostType = "post"
	PostTypeCarousel PostType = "carousel"
)

func (pt PostType) Valid() bool {
	return pt == PostTypePost || pt == PostTypeCarousel
}

// BrandPost is a single curated gallery record. Records are supplied by the
// catalog and never modified afterwards.
type BrandPost struct {
	ID           string   `yaml:"id" json:"id"`
	BrandName    string   `yaml:"brand_name" json:"brand_name"`
	Industry     string   `yaml:"industry" json:"industry"`
	PostType     PostType `yaml:"post_type" json:"post_type"`
	Description  string   `yaml:"description" json:"description"`
	CreativeTags []string `yaml:"creative_tags" json:"creative_tags"`
	ImageURL     string   `yaml:"image_url" json:"image_url"`
	SocialURL    string   `yaml:"social_url" json:"social_url"`
}

func (p BrandPost) HasTag(tag string) bool {
	return slices.Contains(p.CreativeTags, tag)
}

// TagSet is an unordered set of selected tags. The zero value is an empty set
// ready for use.
type TagSet struct {
	tags map[string]struct{}
}

func NewTagSet(tags ...string) TagSet {
	var ts TagSet
	for _, tag := range tags {
		ts.add(tag)
	}
	return ts
}

func (ts *TagSet) add(tag string) {
	if ts.tags == nil {
		ts.tags = make(map[string]struct{})
	}
	ts.tags[tag] = struct{}{}
}

func (ts TagSet) Has(tag string) bool {
	_, ok := ts.tags[tag]
	return ok
}

func (ts TagSet) Len() int {
	return len(ts.tags)
}

// Toggle removes tag if present and adds it otherwise.
func (ts *TagSet) Toggle(tag string) {
	if ts.Has(tag) {
		delete(ts.tags, tag)
		return
	}
	ts.add(tag)
}

func (ts *TagSet) Clear() {
	ts.tags = nil
}

// Sorted returns the tags in ascending order. Never nil.
func (ts TagSet) Sorted() []string {
	out := make([]string, 0, len(ts.tags))
	for tag := range ts.tags {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}

func (ts TagSet) Clone() TagSet {
	return NewTagSet(ts.Sorted()...)
}

func (ts TagSet) Equal(other TagSet) bool {
	if ts.Len() != other.Len() {
		return false
	}
	for tag := range ts.tags {
		if !other.Has(tag) {
			return false
		}
	}
	return true
}

// FilterState is the combination of facet selections and search text that
// decides which posts are visible.
type FilterState struct {
	Industry string
	Type     string
	Search   string
	Tags     TagSet
}

func DefaultFilterState() FilterState {
	return FilterState{
		Industry: All,
		Type:     All,
	}
}

func (s FilterState) TagFilterActive() bool {
	return s.Tags.Len() > 0
}

func (s FilterState) Clone() FilterState {
	clone := s
	clone.Tags = s.Tags.Clone()
	return clone
}

func (s FilterState) Equal(other FilterState) bool {
	return s.Industry == other.Industry &&
		s.Type == other.Type &&
		s.Search == other.Search &&
		s.Tags.Equal(other.Tags)
}
