package style

import (
	"testing"
)

func ptr[T any](v T) *T {
	return &v
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		parent Attributes
		o      Overrides
		want   Attributes
	}{
		{
			name:   "no overrides",
			parent: Default(),
			want:   Default(),
		},
		{
			name:   "bold added",
			parent: Default(),
			o:      Overrides{Bold: true},
			want:   Attributes{Bold: true, Color: DefaultColor},
		},
		{
			name:   "flags are never reset",
			parent: Attributes{Bold: true, Italic: true, Underline: true, Color: "blue"},
			o:      Overrides{},
			want:   Attributes{Bold: true, Italic: true, Underline: true, Color: "blue"},
		},
		{
			name:   "color replaced when set",
			parent: Attributes{Color: "blue"},
			o:      Overrides{Color: ptr("red")},
			want:   Attributes{Color: "red"},
		},
		{
			name:   "size replaced when set",
			parent: Default().WithSize(10),
			o:      Overrides{FontSize: ptr(14.5)},
			want:   Default().WithSize(14.5),
		},
		{
			name:   "empty parent color normalized",
			parent: Attributes{},
			o:      Overrides{Italic: true},
			want:   Attributes{Italic: true, Color: DefaultColor},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.parent, tt.o)
			if !got.Equal(tt.want) {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMergeDoesNotAlias(t *testing.T) {
	size := 12.0
	o := Overrides{FontSize: &size}
	got := Merge(Default(), o)
	size = 20
	if *got.FontSize != 12 {
		t.Errorf("merged font size follows override storage: %v", *got.FontSize)
	}
}

func TestMergeMonotonic(t *testing.T) {
	// every combination of parent flags and overrides must keep parent flags on
	for mask := range 8 {
		parent := Attributes{Bold: mask&1 != 0, Italic: mask&2 != 0, Underline: mask&4 != 0, Color: DefaultColor}
		for omask := range 8 {
			o := Overrides{Bold: omask&1 != 0, Italic: omask&2 != 0, Underline: omask&4 != 0}
			got := Merge(parent, o)
			if (parent.Bold && !got.Bold) || (parent.Italic && !got.Italic) || (parent.Underline && !got.Underline) {
				t.Fatalf("Merge(%+v, %+v) = %+v lost inherited flag", parent, o, got)
			}
		}
	}
}

func TestEqual(t *testing.T) {
	if !Default().Equal(Attributes{}) {
		t.Error("empty color must be equal to default color")
	}
	if Default().Equal(Default().WithSize(12)) {
		t.Error("missing size must differ from explicit size")
	}
	if !Default().WithSize(12).Equal(Default().WithSize(12)) {
		t.Error("sizes must be compared by value")
	}
	if Default().Equal(Attributes{Underline: true}) {
		t.Error("underline must be compared")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		a    Attributes
		want string
	}{
		{Default(), "NORMAL"},
		{Attributes{}, "NORMAL"},
		{Attributes{Bold: true}, "BOLD"},
		{Attributes{Bold: true, Italic: true, Underline: true, Color: "rgb(255,0,0)"}, "BOLD | ITALIC | UNDERLINED | COLOR:rgb(255,0,0)"},
		{Default().WithSize(12), "SIZE:12"},
		{Default().WithSize(11.955), "SIZE:11.955"},
		{Default().WithSize(0), "NORMAL"},
		{Attributes{Italic: true, Color: "blue"}.WithSize(9.5), "ITALIC | COLOR:blue | SIZE:9.5"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.a.Describe(); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverridesAdd(t *testing.T) {
	o := Overrides{Bold: true, Color: ptr("blue")}.Add(Overrides{Italic: true, Color: ptr("red")})
	if !o.Bold || !o.Italic || o.Underline {
		t.Errorf("unexpected flags %+v", o)
	}
	if *o.Color != "red" {
		t.Errorf("later color must win, got %q", *o.Color)
	}
	if !(Overrides{}).IsEmpty() || o.IsEmpty() {
		t.Error("IsEmpty() is wrong")
	}
}
