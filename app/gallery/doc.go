// Package gallery decides which brand posts are visible for a given
// combination of filters.
//
// Four criteria combine with logical AND:
//
//   - Industry: exact, case-sensitive match unless the filter is All.
//   - Type: exact match on post type unless the filter is All.
//   - Search: case-insensitive substring of the brand name, description or
//     industry. An empty search matches everything.
//   - Tags: a post needs at least one of the selected tags. No selection
//     matches everything.
//
// Results keep catalog order. Unknown filter values are not rejected; they
// simply match nothing.
//
// Facets (ListIndustries, ListTags, ListTypes) are derived from the whole
// collection and never narrowed by the current selection.
package gallery
