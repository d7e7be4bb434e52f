package gallery

// Engine owns a filter state over a gallery. Every mutation replaces exactly
// one part of the state, and every read is evaluated against the current
// state. An Engine is not safe for concurrent use.
type Engine struct {
	gallery *Gallery
	state   FilterState
}

func NewEngine(g *Gallery) *Engine {
	return &Engine{
		gallery: g,
		state:   DefaultFilterState(),
	}
}

func (e *Engine) SetIndustry(value string) {
	e.state.Industry = value
}

func (e *Engine) SetType(value string) {
	e.state.Type = value
}

// SetSearchText stores value verbatim. Case folding happens at match time.
func (e *Engine) SetSearchText(value string) {
	e.state.Search = value
}

func (e *Engine) ToggleTag(tag string) {
	e.state.Tags.Toggle(tag)
}

func (e *Engine) ClearTags() {
	e.state.Tags.Clear()
}

func (e *Engine) ResetAll() {
	e.state = DefaultFilterState()
}

// State returns a copy of the current filter state.
func (e *Engine) State() FilterState {
	return e.state.Clone()
}

func (e *Engine) Visible() []BrandPost {
	return e.gallery.Visible(e.state)
}

func (e *Engine) Total() int {
	return e.gallery.Len()
}

func (e *Engine) VisibleCount() int {
	return len(e.Visible())
}

func (e *Engine) TagFilterActive() bool {
	return e.state.TagFilterActive()
}

func (e *Engine) Summary() Summary {
	return e.gallery.Summarize(e.state)
}
