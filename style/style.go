// Package style defines canonical per-character style record shared by all
// document producers and the rule used to cascade it down a document tree.
package style

import (
	"strconv"
	"strings"
)

// DefaultColor is the color of text which does not specify one.
const DefaultColor = "black"

// Attributes is resolved style of a single character. Values are copied,
// never modified in place once assigned to a character.
type Attributes struct {
	Bold      bool
	Italic    bool
	Underline bool
	Color     string
	FontSize  *float64
}

// Default returns unstyled attributes.
func Default() Attributes {
	return Attributes{Color: DefaultColor}
}

// WithSize returns a copy of attributes with font size set.
func (a Attributes) WithSize(size float64) Attributes {
	a.FontSize = &size
	return a
}

// Equal reports whether all fields match, font size is compared by value.
func (a Attributes) Equal(b Attributes) bool {
	if a.Bold != b.Bold || a.Italic != b.Italic || a.Underline != b.Underline || a.color() != b.color() {
		return false
	}
	switch {
	case a.FontSize == nil && b.FontSize == nil:
		return true
	case a.FontSize == nil || b.FontSize == nil:
		return false
	}
	return *a.FontSize == *b.FontSize
}

func (a Attributes) color() string {
	if len(a.Color) == 0 {
		return DefaultColor
	}
	return a.Color
}

// Describe renders attributes as human readable list, for example
// "BOLD | COLOR:red". Unstyled attributes produce "NORMAL".
func (a Attributes) Describe() string {
	var attrs []string
	if a.Bold {
		attrs = append(attrs, "BOLD")
	}
	if a.Italic {
		attrs = append(attrs, "ITALIC")
	}
	if a.Underline {
		attrs = append(attrs, "UNDERLINED")
	}
	if c := a.color(); c != DefaultColor {
		attrs = append(attrs, "COLOR:"+c)
	}
	if a.FontSize != nil && *a.FontSize != 0 {
		attrs = append(attrs, "SIZE:"+strconv.FormatFloat(*a.FontSize, 'f', -1, 64))
	}
	if len(attrs) == 0 {
		return "NORMAL"
	}
	return strings.Join(attrs, " | ")
}

func (a Attributes) String() string {
	return a.Describe()
}

// Overrides are style changes introduced locally by a document node. Flags
// can only be switched on, color and size replace inherited value when set.
type Overrides struct {
	Bold      bool
	Italic    bool
	Underline bool
	Color     *string
	FontSize  *float64
}

// IsEmpty reports whether overrides would change nothing.
func (o Overrides) IsEmpty() bool {
	return !o.Bold && !o.Italic && !o.Underline && o.Color == nil && o.FontSize == nil
}

// Add combines two sets of overrides, later color and size win.
func (o Overrides) Add(other Overrides) Overrides {
	o.Bold = o.Bold || other.Bold
	o.Italic = o.Italic || other.Italic
	o.Underline = o.Underline || other.Underline
	if other.Color != nil {
		o.Color = other.Color
	}
	if other.FontSize != nil {
		o.FontSize = other.FontSize
	}
	return o
}

// Merge computes attributes of a node from the attributes inherited from its
// parent and node's own overrides. Inheritance is additive: a flag which is
// on in parent stays on for the whole subtree.
func Merge(parent Attributes, o Overrides) Attributes {
	res := parent
	res.Bold = parent.Bold || o.Bold
	res.Italic = parent.Italic || o.Italic
	res.Underline = parent.Underline || o.Underline
	if o.Color != nil {
		res.Color = *o.Color
	}
	if o.FontSize != nil {
		size := *o.FontSize
		res.FontSize = &size
	}
	if len(res.Color) == 0 {
		res.Color = DefaultColor
	}
	return res
}
