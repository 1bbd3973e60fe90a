package theme

// WidgetProperties holds the style of one widget in one state.
//
// Every field is independently optional: an absent field means the caller
// decides, it is never an implicit default. The zero value has every field
// absent. Setters allocate fresh storage, so copies of a WidgetProperties
// never observe each other's later updates.
type WidgetProperties struct {
	border        *Border
	background    *Fill
	text          *TextStyle
	menuText      *TextStyle
	textShadow    *Shadow
	boxShadow     *Shadow
	margin        *Margin
	padding       *Margin
	defaultSize   *Size
	menuBarSize   *Size
	scrollBarSize *Size
}

func optional[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func (p WidgetProperties) Border() (Border, bool) {
	if p.border == nil {
		return Border{}, false
	}
	return p.border.clone(), true
}

func (p *WidgetProperties) SetBorder(border Border) *WidgetProperties {
	b := border.clone()
	p.border = &b
	return p
}

func (p WidgetProperties) Background() (Fill, bool) { return optional(p.background) }

func (p *WidgetProperties) SetBackground(fill Fill) *WidgetProperties {
	p.background = &fill
	return p
}

// SetBackgroundColor is shorthand for SetBackground(SolidFill(color)).
func (p *WidgetProperties) SetBackgroundColor(color Color) *WidgetProperties {
	return p.SetBackground(SolidFill(color))
}

func (p WidgetProperties) TextStyle() (TextStyle, bool) { return optional(p.text) }

func (p *WidgetProperties) SetTextStyle(style TextStyle) *WidgetProperties {
	p.text = &style
	return p
}

func (p WidgetProperties) MenuTextStyle() (TextStyle, bool) { return optional(p.menuText) }

func (p *WidgetProperties) SetMenuTextStyle(style TextStyle) *WidgetProperties {
	p.menuText = &style
	return p
}

func (p WidgetProperties) TextShadow() (Shadow, bool) { return optional(p.textShadow) }

func (p *WidgetProperties) SetTextShadow(shadow Shadow) *WidgetProperties {
	p.textShadow = &shadow
	return p
}

func (p WidgetProperties) BoxShadow() (Shadow, bool) { return optional(p.boxShadow) }

func (p *WidgetProperties) SetBoxShadow(shadow Shadow) *WidgetProperties {
	p.boxShadow = &shadow
	return p
}

func (p WidgetProperties) Margin() (Margin, bool) { return optional(p.margin) }

func (p *WidgetProperties) SetMargin(margin Margin) *WidgetProperties {
	p.margin = &margin
	return p
}

func (p WidgetProperties) Padding() (Margin, bool) { return optional(p.padding) }

func (p *WidgetProperties) SetPadding(padding Margin) *WidgetProperties {
	p.padding = &padding
	return p
}

func (p WidgetProperties) DefaultSize() (Size, bool) { return optional(p.defaultSize) }

func (p *WidgetProperties) SetDefaultSize(size Size) *WidgetProperties {
	p.defaultSize = &size
	return p
}

func (p WidgetProperties) MenuBarSize() (Size, bool) { return optional(p.menuBarSize) }

func (p *WidgetProperties) SetMenuBarSize(size Size) *WidgetProperties {
	p.menuBarSize = &size
	return p
}

func (p WidgetProperties) ScrollBarSize() (Size, bool) { return optional(p.scrollBarSize) }

func (p *WidgetProperties) SetScrollBarSize(size Size) *WidgetProperties {
	p.scrollBarSize = &size
	return p
}

// IsEmpty reports whether every field is absent.
func (p WidgetProperties) IsEmpty() bool {
	return p == WidgetProperties{}
}

func (p *WidgetProperties) clone() *WidgetProperties {
	out := *p
	if p.border != nil {
		b := p.border.clone()
		out.border = &b
	}
	return &out
}
