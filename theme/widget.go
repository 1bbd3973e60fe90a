package theme

import "fmt"

// Widget identifies a kind of styleable control.
//
// The zero value is WidgetUnknown, which is never part of the known set and
// is never pre-populated in a Theme.
type Widget uint8

const (
	WidgetUnknown Widget = iota
	WidgetButton
	WidgetCheckbox
	WidgetRadioButton
	WidgetComboBox
	WidgetComboBoxButton
	WidgetDateTimePicker
	WidgetEditor
	WidgetListView
	WidgetListViewItem
	WidgetListViewExpandButton
	WidgetMenuBar
	WidgetMenuBarItem
	WidgetPopupMenu
	WidgetPopupMenuItem
	WidgetMenuSeparator
	WidgetNavigationBack
	WidgetNavigationForward
	WidgetNavigationMenu
	WidgetNavigationPageDown
	WidgetNavigationPageUp
	WidgetProgressBar
	WidgetProgressBarChunk
	WidgetScrollBarArrow
	WidgetScrollBarHandle
	WidgetSpinnerDown
	WidgetSpinnerUp
	WidgetTabBody
	WidgetTabPane
	WidgetTabItem
	WidgetTaskbar
	WidgetTextBody
	WidgetTextTitle
	WidgetTextHyperlink
	WidgetTextLabel
	WidgetToolbarButton
	WidgetToolbarDropdownButton
	WidgetToolbarSeparator
	WidgetTooltipBalloon
	WidgetTooltipBalloonStem

	widgetCount
)

var widgetNames = [...]string{
	WidgetUnknown:               "unknown",
	WidgetButton:                "button",
	WidgetCheckbox:              "checkbox",
	WidgetRadioButton:           "radio-button",
	WidgetComboBox:              "combo-box",
	WidgetComboBoxButton:        "combo-box-button",
	WidgetDateTimePicker:        "date-time-picker",
	WidgetEditor:                "editor",
	WidgetListView:              "list-view",
	WidgetListViewItem:          "list-view-item",
	WidgetListViewExpandButton:  "list-view-expand-button",
	WidgetMenuBar:               "menu-bar",
	WidgetMenuBarItem:           "menu-bar-item",
	WidgetPopupMenu:             "popup-menu",
	WidgetPopupMenuItem:         "popup-menu-item",
	WidgetMenuSeparator:         "menu-separator",
	WidgetNavigationBack:        "navigation-back",
	WidgetNavigationForward:     "navigation-forward",
	WidgetNavigationMenu:        "navigation-menu",
	WidgetNavigationPageDown:    "navigation-page-down",
	WidgetNavigationPageUp:      "navigation-page-up",
	WidgetProgressBar:           "progress-bar",
	WidgetProgressBarChunk:      "progress-bar-chunk",
	WidgetScrollBarArrow:        "scroll-bar-arrow",
	WidgetScrollBarHandle:       "scroll-bar-handle",
	WidgetSpinnerDown:           "spinner-down",
	WidgetSpinnerUp:             "spinner-up",
	WidgetTabBody:               "tab-body",
	WidgetTabPane:               "tab-pane",
	WidgetTabItem:               "tab-item",
	WidgetTaskbar:               "taskbar",
	WidgetTextBody:              "text-body",
	WidgetTextTitle:             "text-title",
	WidgetTextHyperlink:         "text-hyperlink",
	WidgetTextLabel:             "text-label",
	WidgetToolbarButton:         "toolbar-button",
	WidgetToolbarDropdownButton: "toolbar-dropdown-button",
	WidgetToolbarSeparator:      "toolbar-separator",
	WidgetTooltipBalloon:        "tooltip-balloon",
	WidgetTooltipBalloonStem:    "tooltip-balloon-stem",
}

// Widgets returns every known widget in declaration order.
func Widgets() []Widget {
	out := make([]Widget, 0, widgetCount-1)
	for w := WidgetButton; w < widgetCount; w++ {
		out = append(out, w)
	}
	return out
}

// Known reports whether w belongs to the known widget set.
func (w Widget) Known() bool {
	return w > WidgetUnknown && w < widgetCount
}

func (w Widget) String() string {
	if int(w) < len(widgetNames) {
		return widgetNames[w]
	}
	return fmt.Sprintf("widget(%d)", uint8(w))
}

// ParseWidget resolves a name produced by Widget.String.
func ParseWidget(name string) (Widget, error) {
	for w := WidgetButton; w < widgetCount; w++ {
		if widgetNames[w] == name {
			return w, nil
		}
	}
	return WidgetUnknown, fmt.Errorf("unknown widget %q", name)
}

func (w Widget) MarshalText() ([]byte, error) {
	if !w.Known() {
		return nil, fmt.Errorf("cannot encode %s", w)
	}
	return []byte(w.String()), nil
}

func (w *Widget) UnmarshalText(text []byte) error {
	parsed, err := ParseWidget(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// WidgetState is an interaction or visual state a widget is rendered in.
//
// The zero value is StateEnabled, the default state used as the lookup
// fallback.
type WidgetState uint8

const (
	StateEnabled WidgetState = iota
	StateDisabled
	StateFocused
	StateSelected
	StateHovered
	StatePressed
	StateChecked

	stateCount
)

// DefaultState is the state every lookup falls back to.
const DefaultState = StateEnabled

var stateNames = [...]string{
	StateEnabled:  "enabled",
	StateDisabled: "disabled",
	StateFocused:  "focused",
	StateSelected: "selected",
	StateHovered:  "hovered",
	StatePressed:  "pressed",
	StateChecked:  "checked",
}

// States returns every known state, disabled first.
func States() []WidgetState {
	return []WidgetState{
		StateDisabled,
		StateEnabled,
		StateFocused,
		StateSelected,
		StateHovered,
		StatePressed,
		StateChecked,
	}
}

// Known reports whether s belongs to the known state set.
func (s WidgetState) Known() bool {
	return s < stateCount
}

func (s WidgetState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// ParseState resolves a name produced by WidgetState.String.
func ParseState(name string) (WidgetState, error) {
	for i, n := range stateNames {
		if n == name {
			return WidgetState(i), nil
		}
	}
	return DefaultState, fmt.Errorf("unknown widget state %q", name)
}

func (s WidgetState) MarshalText() ([]byte, error) {
	if !s.Known() {
		return nil, fmt.Errorf("cannot encode %s", s)
	}
	return []byte(s.String()), nil
}

func (s *WidgetState) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Shade is the light or dark appearance preference.
type Shade uint8

const (
	ShadeLight Shade = iota
	ShadeDark
)

func (s Shade) String() string {
	switch s {
	case ShadeLight:
		return "light"
	case ShadeDark:
		return "dark"
	}
	return fmt.Sprintf("shade(%d)", uint8(s))
}

// ParseShade accepts "light" or "dark".
func ParseShade(name string) (Shade, error) {
	switch name {
	case "light":
		return ShadeLight, nil
	case "dark":
		return ShadeDark, nil
	}
	return ShadeLight, fmt.Errorf("unknown shade %q", name)
}

func (s Shade) MarshalText() ([]byte, error) {
	if s > ShadeDark {
		return nil, fmt.Errorf("cannot encode %s", s)
	}
	return []byte(s.String()), nil
}

func (s *Shade) UnmarshalText(text []byte) error {
	parsed, err := ParseShade(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
