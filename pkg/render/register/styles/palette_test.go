package styles

import (
	"testing"

	"github.com/matzehuels/galdraw/pkg/errors"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"", "classic", "blueprint"} {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("palette %q invalid: %v", name, err)
		}
	}
	if _, err := Lookup("neon"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("Lookup(neon) = %v, want INVALID_STYLE", err)
	}
}

func TestClassicMatchesDefaults(t *testing.T) {
	p := Default()
	if p.LineWidth != 0.1 || p.JunctionWidth != 0.12 || p.ArrowHead != 0.5 {
		t.Errorf("classic widths = %v/%v/%v", p.LineWidth, p.JunctionWidth, p.ArrowHead)
	}
	if p.Background != "#ffffff" || p.Stroke != "#000000" {
		t.Errorf("classic colours = %s/%s", p.Background, p.Stroke)
	}
}

func TestMerge(t *testing.T) {
	p := Classic.Merge(Palette{Stroke: "#ff0000", LineWidth: 0.2})
	if p.Stroke != "#ff0000" || p.LineWidth != 0.2 {
		t.Errorf("Merge did not apply overrides: %+v", p)
	}
	if p.Background != Classic.Background || p.ArrowHead != Classic.ArrowHead {
		t.Errorf("Merge changed unset fields: %+v", p)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Palette
		wantErr bool
	}{
		{"classic", Classic, false},
		{"short hex", Classic.Merge(Palette{Text: "#abc"}), false},
		{"named colour", Classic.Merge(Palette{Stroke: "red"}), true},
		{"bad hex", Classic.Merge(Palette{BoxFill: "#ggg"}), true},
		{"missing hash", Classic.Merge(Palette{Background: "ffffff"}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("Validate() code = %s", errors.GetCode(err))
			}
		})
	}
	bad := Classic
	bad.LineWidth = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero line width accepted")
	}
}

func TestRGBAndHexDigits(t *testing.T) {
	r, g, b := RGB("#ff8000")
	if r != 1 || g != float64(0x80)/255 || b != 0 {
		t.Errorf("RGB(#ff8000) = %v %v %v", r, g, b)
	}
	if got := HexDigits("#abc"); got != "AABBCC" {
		t.Errorf("HexDigits(#abc) = %q", got)
	}
	if got := HexDigits("#1b3a6b"); got != "1B3A6B" {
		t.Errorf("HexDigits(#1b3a6b) = %q", got)
	}
}
