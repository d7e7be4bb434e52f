package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioPosts is the three record collection used across the engine tests.
func scenarioPosts() []BrandPost {
	return []BrandPost{
		{ID: "A", BrandName: "Amla Naturals", Industry: "Food", PostType: PostTypePost, CreativeTags: []string{"minimal", "bold"}},
		{ID: "B", BrandName: "Khadi Loom", Industry: "Fashion", PostType: PostTypeCarousel, CreativeTags: []string{"bold"}},
		{ID: "C", BrandName: "Chai Point", Industry: "Food", PostType: PostTypeCarousel, CreativeTags: []string{"playful"}},
	}
}

func ids(posts []BrandPost) []string {
	out := make([]string, 0, len(posts))
	for _, post := range posts {
		out = append(out, post.ID)
	}
	return out
}

func TestFilterer_Run_DefaultStateReturnsEverything(t *testing.T) {
	t.Parallel()

	posts := scenarioPosts()
	result := NewFilterer().Run(posts, DefaultFilterState())

	assert.Equal(t, []string{"A", "B", "C"}, ids(result))
}

func TestFilterer_Run_Criteria(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		state    FilterState
		expected []string
	}{
		{
			name:     "industry match",
			state:    FilterState{Industry: "Food", Type: All},
			expected: []string{"A", "C"},
		},
		{
			name:     "industry is case sensitive",
			state:    FilterState{Industry: "food", Type: All},
			expected: []string{},
		},
		{
			name:     "unknown industry matches nothing",
			state:    FilterState{Industry: "Aerospace", Type: All},
			expected: []string{},
		},
		{
			name:     "type match",
			state:    FilterState{Industry: All, Type: "carousel"},
			expected: []string{"B", "C"},
		},
		{
			name:     "industry and type combine with AND",
			state:    FilterState{Industry: "Food", Type: "carousel"},
			expected: []string{"C"},
		},
		{
			name:     "single tag",
			state:    FilterState{Industry: All, Type: All, Tags: NewTagSet("bold")},
			expected: []string{"A", "B"},
		},
		{
			name:     "tags use OR semantics",
			state:    FilterState{Industry: All, Type: All, Tags: NewTagSet("minimal", "playful")},
			expected: []string{"A", "C"},
		},
		{
			name:     "tag present on no record",
			state:    FilterState{Industry: All, Type: All, Tags: NewTagSet("retro")},
			expected: []string{},
		},
		{
			name:     "search on brand name",
			state:    FilterState{Industry: All, Type: All, Search: "chai"},
			expected: []string{"C"},
		},
		{
			name:     "search on industry",
			state:    FilterState{Industry: All, Type: All, Search: "FASH"},
			expected: []string{"B"},
		},
		{
			name:     "search without match",
			state:    FilterState{Industry: All, Type: All, Search: "zzz"},
			expected: []string{},
		},
		{
			name:     "search is not trimmed",
			state:    FilterState{Industry: All, Type: All, Search: " chai"},
			expected: []string{},
		},
		{
			name:     "all criteria together",
			state:    FilterState{Industry: "Food", Type: "post", Search: "amla", Tags: NewTagSet("bold", "retro")},
			expected: []string{"A"},
		},
	}

	filterer := NewFilterer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := filterer.Run(scenarioPosts(), tt.state)
			require.NotNil(t, result)
			assert.Equal(t, tt.expected, ids(result))
		})
	}
}

func TestFilterer_Run_SearchesDescription(t *testing.T) {
	t.Parallel()

	posts := []BrandPost{
		{ID: "1", BrandName: "Bhuira Jams", Industry: "Food", Description: "Small-batch Himalayan preserves"},
		{ID: "2", BrandName: "Loom Story", Industry: "Fashion", Description: "Handwoven cotton sarees"},
	}

	result := Visible(FilterState{Industry: All, Type: All, Search: "himalayan"}, posts)

	assert.Equal(t, []string{"1"}, ids(result))
}

func TestFilterer_Run_CaseInsensitiveSearch(t *testing.T) {
	t.Parallel()

	posts := []BrandPost{
		{ID: "1", BrandName: "Amla Naturals", Industry: "Wellness"},
		{ID: "2", BrandName: "Loom Story", Industry: "Fashion"},
	}

	lower := Visible(FilterState{Industry: All, Type: All, Search: "amla"}, posts)
	upper := Visible(FilterState{Industry: All, Type: All, Search: "AMLA"}, posts)

	assert.Equal(t, []string{"1"}, ids(lower))
	assert.Equal(t, lower, upper)
}

func TestFilterer_Run_UnicodeSearch(t *testing.T) {
	t.Parallel()

	posts := []BrandPost{
		{ID: "1", BrandName: "ΟΔΟΣ Ceramics", Industry: "Home"},
		{ID: "2", BrandName: "Café Kolkata", Industry: "Food"},
	}

	assert.Equal(t, []string{"1"}, ids(Visible(FilterState{Industry: All, Type: All, Search: "ΟΔΟΣ"}, posts)))
	assert.Equal(t, []string{"2"}, ids(Visible(FilterState{Industry: All, Type: All, Search: "CAFÉ"}, posts)))
}

func TestFilterer_Run_PreservesOriginalData(t *testing.T) {
	t.Parallel()

	original := BrandPost{
		ID:           "amla-1",
		BrandName:    "Amla Naturals",
		Industry:     "Wellness",
		PostType:     PostTypeCarousel,
		Description:  "Cold-pressed amla juice",
		CreativeTags: []string{"earthy", "earthy", "minimal"},
		ImageURL:     "https://cdn.example.com/amla.jpg",
		SocialURL:    "https://instagram.com/amla",
	}

	result := Visible(FilterState{Industry: All, Type: All, Tags: NewTagSet("earthy")}, []BrandPost{original})

	require.Len(t, result, 1)
	assert.Equal(t, original, result[0])
}

func TestFilterer_Run_EmptyCollection(t *testing.T) {
	t.Parallel()

	result := Visible(DefaultFilterState(), nil)

	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestFilterer_Run_PreservesOrder(t *testing.T) {
	t.Parallel()

	posts := []BrandPost{
		{ID: "1", Industry: "Food", CreativeTags: []string{"bold"}},
		{ID: "2", Industry: "Home", CreativeTags: []string{"calm"}},
		{ID: "3", Industry: "Food", CreativeTags: []string{"calm"}},
		{ID: "4", Industry: "Food", CreativeTags: []string{"bold", "calm"}},
		{ID: "5", Industry: "Home", CreativeTags: []string{"bold"}},
	}
	position := make(map[string]int, len(posts))
	for i, post := range posts {
		position[post.ID] = i
	}

	states := []FilterState{
		DefaultFilterState(),
		{Industry: "Food", Type: All},
		{Industry: All, Type: All, Tags: NewTagSet("calm")},
		{Industry: All, Type: All, Tags: NewTagSet("bold", "calm")},
		{Industry: "Home", Type: All, Tags: NewTagSet("bold")},
	}

	for _, state := range states {
		last := -1
		for _, post := range Visible(state, posts) {
			assert.Greater(t, position[post.ID], last, "output must be an order-preserving subsequence")
			last = position[post.ID]
		}
	}
}

func TestFilterer_Run_DefaultStateIsSuperset(t *testing.T) {
	t.Parallel()

	posts := scenarioPosts()
	all := Visible(DefaultFilterState(), posts)

	states := []FilterState{
		{Industry: "Food", Type: All},
		{Industry: All, Type: "post"},
		{Industry: All, Type: All, Search: "o"},
		{Industry: All, Type: All, Tags: NewTagSet("bold", "playful", "minimal")},
		{Industry: "Fashion", Type: "carousel", Search: "loom", Tags: NewTagSet("bold")},
	}

	for _, state := range states {
		for _, post := range Visible(state, posts) {
			assert.Contains(t, all, post)
		}
	}
}

func TestFilterer_MatchesSearch(t *testing.T) {
	t.Parallel()

	filterer := NewFilterer()
	keys := newSearchKeys(BrandPost{BrandName: "Hello World", Description: "UPPERCASE text", Industry: "Beauty"})

	tests := []struct {
		query    string
		expected bool
	}{
		{"", true},
		{"hello", true},
		{"WORLD", true},
		{"uppercase", true},
		{"beau", true},
		{"xyz", false},
		{"hello beauty", false},
	}

	for _, tt := range tests {
		got := filterer.matchesSearch(keys, filterer.normalizeQuery(tt.query))
		assert.Equal(t, tt.expected, got, "query %q", tt.query)
	}
}
