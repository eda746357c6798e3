package vdom

import "testing"

func TestParseSelector(t *testing.T) {
	tests := []struct {
		sel     string
		tag     string
		id      string
		hasID   bool
		classes string
	}{
		{"div", "div", "", false, ""},
		{"div#app", "div", "app", true, ""},
		{"p.x.y", "p", "", false, "x y"},
		{"span#x.a.b", "span", "x", true, "a b"},
		{"svg", "svg", "", false, ""},
		{"", "", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			s := ParseSelector(tt.sel)
			if s.Tag != tt.tag {
				t.Errorf("Tag = %q, want %q", s.Tag, tt.tag)
			}
			if s.ID != tt.id || s.HasID != tt.hasID {
				t.Errorf("ID = %q (%v), want %q (%v)", s.ID, s.HasID, tt.id, tt.hasID)
			}
			if s.Classes != tt.classes {
				t.Errorf("Classes = %q, want %q", s.Classes, tt.classes)
			}
		})
	}
}

func TestBuildSelector(t *testing.T) {
	tests := []struct {
		tag, id, class string
		want           string
	}{
		{"div", "", "", "div"},
		{"div", "app", "", "div#app"},
		{"p", "", " a  b ", "p.a.b"},
		{"span", "x", "a", "span#x.a"},
	}
	for _, tt := range tests {
		if got := BuildSelector(tt.tag, tt.id, tt.class); got != tt.want {
			t.Errorf("BuildSelector(%q, %q, %q) = %q, want %q", tt.tag, tt.id, tt.class, got, tt.want)
		}
	}
}

func TestSelectorRoundTrip(t *testing.T) {
	for _, sel := range []string{"div", "div#a", "div.b.c", "section#main.card.wide"} {
		s := ParseSelector(sel)
		if got := BuildSelector(s.Tag, s.ID, s.Classes); got != sel {
			t.Errorf("round trip of %q = %q", sel, got)
		}
	}
}
