package gallery

import (
	"slices"
)

// ListIndustries returns the All sentinel followed by every distinct industry
// in order of first appearance.
func ListIndustries(posts []BrandPost) []string {
	seen := make(map[string]struct{}, len(posts))
	industries := []string{All}

	for _, post := range posts {
		if _, ok := seen[post.Industry]; ok {
			continue
		}
		seen[post.Industry] = struct{}{}
		industries = append(industries, post.Industry)
	}

	return industries
}

// ListTags returns every distinct creative tag, sorted ascending.
func ListTags(posts []BrandPost) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)

	for _, post := range posts {
		for _, tag := range post.CreativeTags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	slices.Sort(tags)
	return tags
}

// ListTypes returns the selectable content types, All first.
func ListTypes() []string {
	return []string{All, string(PostTypePost), string(PostTypeCarousel)}
}
