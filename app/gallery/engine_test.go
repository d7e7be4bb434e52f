package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newScenarioEngine() *Engine {
	return NewEngine(NewGallery(scenarioPosts()))
}

func TestNewEngine_DefaultState(t *testing.T) {
	t.Parallel()

	engine := newScenarioEngine()

	assert.True(t, engine.State().Equal(DefaultFilterState()))
	assert.Equal(t, 3, engine.Total())
	assert.Equal(t, 3, engine.VisibleCount())
	assert.False(t, engine.TagFilterActive())
}

func TestEngine_Scenario(t *testing.T) {
	t.Parallel()

	engine := newScenarioEngine()

	engine.SetIndustry("Food")
	assert.Equal(t, []string{"A", "C"}, ids(engine.Visible()))

	engine.SetType("carousel")
	assert.Equal(t, []string{"C"}, ids(engine.Visible()))

	engine.ResetAll()
	engine.ToggleTag("bold")
	assert.Equal(t, []string{"A", "B"}, ids(engine.Visible()))
	assert.True(t, engine.TagFilterActive())

	engine.ToggleTag("bold")
	assert.Equal(t, []string{"A", "B", "C"}, ids(engine.Visible()))
	assert.False(t, engine.TagFilterActive())

	engine.SetSearchText("zzz")
	assert.Empty(t, engine.Visible())
	assert.Equal(t, 0, engine.VisibleCount())
	assert.Equal(t, 3, engine.Total())
}

func TestEngine_MutationsTouchOneField(t *testing.T) {
	t.Parallel()

	engine := newScenarioEngine()
	engine.SetIndustry("Food")
	engine.SetType("post")
	engine.SetSearchText("  Amla ")
	engine.ToggleTag("bold")

	state := engine.State()
	assert.Equal(t, "Food", state.Industry)
	assert.Equal(t, "post", state.Type)
	assert.Equal(t, "  Amla ", state.Search)
	assert.Equal(t, []string{"bold"}, state.Tags.Sorted())

	engine.SetType(All)
	state = engine.State()
	assert.Equal(t, "Food", state.Industry)
	assert.Equal(t, All, state.Type)
	assert.Equal(t, "  Amla ", state.Search)
	assert.Equal(t, []string{"bold"}, state.Tags.Sorted())
}

func TestEngine_ToggleTagInvolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prepare func(e *Engine)
		tag     string
	}{
		{name: "from default", prepare: func(*Engine) {}, tag: "bold"},
		{name: "tag already selected", prepare: func(e *Engine) { e.ToggleTag("bold") }, tag: "bold"},
		{
			name: "other tags selected",
			prepare: func(e *Engine) {
				e.ToggleTag("minimal")
				e.SetIndustry("Food")
			},
			tag: "playful",
		},
		{name: "tag unknown to catalog", prepare: func(e *Engine) { e.SetSearchText("amla") }, tag: "nonexistent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := newScenarioEngine()
			tt.prepare(engine)
			before := engine.State()
			visibleBefore := engine.Visible()

			engine.ToggleTag(tt.tag)
			engine.ToggleTag(tt.tag)

			assert.True(t, before.Equal(engine.State()))
			assert.Equal(t, visibleBefore, engine.Visible())
		})
	}
}

func TestEngine_ClearTags(t *testing.T) {
	t.Parallel()

	engine := newScenarioEngine()
	engine.SetIndustry("Food")
	engine.ToggleTag("bold")
	engine.ToggleTag("playful")

	engine.ClearTags()

	state := engine.State()
	assert.Equal(t, 0, state.Tags.Len())
	assert.Equal(t, "Food", state.Industry)
	assert.False(t, engine.TagFilterActive())
	assert.Equal(t, []string{"A", "C"}, ids(engine.Visible()))
}

func TestEngine_ResetAllRestoresFullCollection(t *testing.T) {
	t.Parallel()

	mutations := []func(e *Engine){
		func(e *Engine) { e.SetIndustry("Fashion") },
		func(e *Engine) { e.SetType("post") },
		func(e *Engine) { e.SetSearchText("zzz") },
		func(e *Engine) { e.ToggleTag("playful") },
		func(e *Engine) {
			e.SetIndustry("unknown")
			e.ToggleTag("x")
			e.SetType("carousel")
		},
	}

	for _, mutate := range mutations {
		engine := newScenarioEngine()
		mutate(engine)
		engine.ResetAll()

		assert.Equal(t, scenarioPosts(), engine.Visible())
		assert.True(t, engine.State().Equal(DefaultFilterState()))
	}
}

func TestEngine_StateIsACopy(t *testing.T) {
	t.Parallel()

	engine := newScenarioEngine()
	engine.ToggleTag("bold")

	state := engine.State()
	state.Tags.Toggle("playful")
	state.Industry = "Fashion"

	assert.Equal(t, []string{"bold"}, engine.State().Tags.Sorted())
	assert.Equal(t, All, engine.State().Industry)
}

func TestEngine_Summary(t *testing.T) {
	t.Parallel()

	engine := newScenarioEngine()
	engine.ToggleTag("bold")

	summary := engine.Summary()

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Visible)
	assert.True(t, summary.TagFilterActive)
	assert.Equal(t, []string{"A", "B"}, ids(summary.Posts))
	assert.Equal(t, []string{"bold"}, summary.State.Tags.Sorted())
}
