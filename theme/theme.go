// Package theme is the data model for cross-platform widget themes: a named
// mapping from (widget, state) pairs to rendering properties, with a
// fallback to the enabled state on lookup.
package theme

import (
	"cmp"
	"fmt"
	"slices"
)

// Key addresses one widget in one state.
type Key struct {
	Widget Widget
	State  WidgetState
}

func (k Key) String() string {
	return k.Widget.String() + "." + k.State.String()
}

// Theme is a named set of widget properties.
//
// A Theme built by Empty, DefaultTheme or Unmarshal holds an entry for
// every known widget in DefaultState, so Get never fails for a known widget.
// Themes are safe for concurrent reads; GetMut and SetName need exclusive
// access.
type Theme struct {
	name       string
	properties map[Key]*WidgetProperties
}

// Empty creates a theme with empty properties for every known widget in
// DefaultState.
func Empty(name string) *Theme {
	t := &Theme{
		name:       name,
		properties: make(map[Key]*WidgetProperties, int(widgetCount-1)*int(stateCount)),
	}
	t.ensureDefaults()
	return t
}

// Default returns the light default theme.
func Default() *Theme {
	return DefaultTheme(ShadeLight)
}

func (t *Theme) ensureDefaults() {
	if t.properties == nil {
		t.properties = make(map[Key]*WidgetProperties, int(widgetCount-1)*int(stateCount))
	}
	for _, w := range Widgets() {
		key := Key{Widget: w, State: DefaultState}
		if _, ok := t.properties[key]; !ok {
			t.properties[key] = &WidgetProperties{}
		}
	}
}

func (t *Theme) Name() string { return t.name }

func (t *Theme) SetName(name string) { t.name = name }

// Get returns the properties of widget in state, falling back to the
// widget's DefaultState entry when the exact pair is absent.
//
// Get panics when neither entry exists. That only happens for widgets
// outside the known set or for a Theme that was not built by one of this
// package's constructors.
func (t *Theme) Get(widget Widget, state WidgetState) WidgetProperties {
	if props, ok := t.properties[Key{Widget: widget, State: state}]; ok {
		return *props
	}
	if props, ok := t.properties[Key{Widget: widget, State: DefaultState}]; ok {
		return *props
	}
	panic(fmt.Sprintf("theme: no properties for widget %s in state %s", widget, state))
}

// GetMut returns the properties stored for the exact (widget, state) pair,
// inserting empty properties first if the pair is absent. It never falls
// back to DefaultState.
func (t *Theme) GetMut(widget Widget, state WidgetState) *WidgetProperties {
	if t.properties == nil {
		t.properties = make(map[Key]*WidgetProperties)
	}
	key := Key{Widget: widget, State: state}
	props, ok := t.properties[key]
	if !ok {
		props = &WidgetProperties{}
		t.properties[key] = props
	}
	return props
}

// Has reports whether the exact pair has an entry.
func (t *Theme) Has(widget Widget, state WidgetState) bool {
	_, ok := t.properties[Key{Widget: widget, State: state}]
	return ok
}

// Len returns the number of stored entries.
func (t *Theme) Len() int { return len(t.properties) }

// Keys returns the stored keys ordered by widget, then state.
func (t *Theme) Keys() []Key {
	keys := make([]Key, 0, len(t.properties))
	for k := range t.properties {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if c := cmp.Compare(a.Widget, b.Widget); c != 0 {
			return c
		}
		return cmp.Compare(a.State, b.State)
	})
	return keys
}

// Clone returns a deep copy of t.
func (t *Theme) Clone() *Theme {
	out := &Theme{
		name:       t.name,
		properties: make(map[Key]*WidgetProperties, len(t.properties)),
	}
	for k, v := range t.properties {
		out.properties[k] = v.clone()
	}
	return out
}
