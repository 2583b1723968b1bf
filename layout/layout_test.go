// Package layout tests for the CSS box model and layout engine.
package layout

import (
	"testing"

	"github.com/chrisuehlinger/dragbounds/css"
	"github.com/chrisuehlinger/dragbounds/dom"
	"github.com/chrisuehlinger/dragbounds/html"
)

func TestDimensionsBoxCalculations(t *testing.T) {
	dims := Dimensions{
		Content: Rect{X: 10, Y: 10, Width: 100, Height: 50},
		Padding: EdgeSizes{Top: 5, Right: 5, Bottom: 5, Left: 5},
		Border:  EdgeSizes{Top: 2, Right: 2, Bottom: 2, Left: 2},
		Margin:  EdgeSizes{Top: 10, Right: 10, Bottom: 10, Left: 10},
	}

	paddingBox := dims.PaddingBox()
	if paddingBox.X != 5 || paddingBox.Y != 5 || paddingBox.Width != 110 || paddingBox.Height != 60 {
		t.Errorf("PaddingBox wrong: got %+v", paddingBox)
	}

	borderBox := dims.BorderBox()
	if borderBox.X != 3 || borderBox.Y != 3 || borderBox.Width != 114 || borderBox.Height != 64 {
		t.Errorf("BorderBox wrong: got %+v", borderBox)
	}

	marginBox := dims.MarginBox()
	if marginBox.X != -7 || marginBox.Y != -7 || marginBox.Width != 134 || marginBox.Height != 84 {
		t.Errorf("MarginBox wrong: got %+v", marginBox)
	}
}

func TestEdgeSizesSums(t *testing.T) {
	e := EdgeSizes{Top: 1, Right: 2, Bottom: 3, Left: 4}
	if e.Horizontal() != 6 || e.Vertical() != 4 {
		t.Errorf("Horizontal/Vertical wrong: %v %v", e.Horizontal(), e.Vertical())
	}
}

func layoutHTML(t *testing.T, src string) (*dom.Document, *Result) {
	t.Helper()
	doc, err := html.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc, NewEngine(800, 600, nil).Layout(doc)
}

func mustGet(t *testing.T, doc *dom.Document, id string) *dom.Element {
	t.Helper()
	el := doc.GetElementById(id)
	if el == nil {
		t.Fatalf("no element #%s", id)
	}
	return el
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(0, -1, nil)
	if e.ViewportWidth != DefaultViewportWidth || e.ViewportHeight != DefaultViewportHeight {
		t.Errorf("viewport = %vx%v, want defaults", e.ViewportWidth, e.ViewportHeight)
	}
}

func TestLayout_BlockFlow(t *testing.T) {
	doc, r := layoutHTML(t, `<style>body { margin: 0 }</style>
<div id="a" style="height: 50px; margin: 10px; padding: 5px; border: 2px solid"></div>
<div id="b" style="height: 20px"></div>`)

	a := mustGet(t, doc, "a")
	g := a.Geometry()
	if g == nil {
		t.Fatal("expected geometry on #a")
	}
	if g.X != 10 || g.Y != 10 || g.Width != 780 || g.Height != 64 {
		t.Errorf("#a border box = (%v,%v %vx%v), want (10,10 780x64)", g.X, g.Y, g.Width, g.Height)
	}
	if a.ClientWidth() != 776 || a.ClientHeight() != 60 {
		t.Errorf("#a client = %vx%v, want 776x60", a.ClientWidth(), a.ClientHeight())
	}
	if a.OffsetParent() != doc.Body() {
		t.Errorf("#a offsetParent = %v, want body", a.OffsetParent())
	}
	if a.OffsetLeft() != 10 || a.OffsetTop() != 10 {
		t.Errorf("#a offset = (%v,%v), want (10,10)", a.OffsetLeft(), a.OffsetTop())
	}
	if got := r.ComputedValue(a, "width"); got != "766px" {
		t.Errorf("#a used width = %q, want 766px", got)
	}

	b := mustGet(t, doc, "b")
	if b.OffsetTop() != 84 || b.OffsetWidth() != 800 {
		t.Errorf("#b offsetTop/offsetWidth = %v/%v, want 84/800", b.OffsetTop(), b.OffsetWidth())
	}
	if got := r.ComputedValue(doc.Body(), "height"); got != "104px" {
		t.Errorf("body used height = %q, want 104px", got)
	}
	if doc.Body().OffsetParent() != nil {
		t.Error("body should have no offsetParent")
	}
}

func TestLayout_DisplayNone(t *testing.T) {
	doc, r := layoutHTML(t, `<div id="gone" style="display: none; height: 10px"><p id="kid"></p></div>`)

	gone := mustGet(t, doc, "gone")
	if r.Box(gone) != nil || r.Box(doc.Head()) != nil {
		t.Error("display:none elements must not get boxes")
	}
	if gone.OffsetHeight() != 0 || gone.OffsetParent() != nil {
		t.Errorf("hidden geometry = %v/%v, want 0/nil", gone.OffsetHeight(), gone.OffsetParent())
	}
	if got := r.ComputedValue(gone, "height"); got != "10px" {
		t.Errorf("hidden computed height = %q, want 10px", got)
	}
	if got := r.ComputedValue(mustGet(t, doc, "kid"), "width"); got != "auto" {
		t.Errorf("descendant of hidden width = %q, want auto", got)
	}
}

func TestLayout_PositionedOffsetParent(t *testing.T) {
	doc, _ := layoutHTML(t, `
<div id="outer" style="position: relative; padding: 10px; border: 1px solid; height: 100px">
  <div id="inner" style="margin-left: 4px; height: 10px"></div>
</div>`)

	outer := mustGet(t, doc, "outer")
	if outer.OffsetParent() != doc.Body() || outer.OffsetLeft() != 8 || outer.OffsetTop() != 8 {
		t.Errorf("#outer offset = %v (%v,%v), want body (8,8)", outer.OffsetParent(), outer.OffsetLeft(), outer.OffsetTop())
	}
	inner := mustGet(t, doc, "inner")
	if inner.OffsetParent() != outer {
		t.Fatalf("#inner offsetParent = %v, want #outer", inner.OffsetParent())
	}
	if inner.OffsetLeft() != 14 || inner.OffsetTop() != 10 {
		t.Errorf("#inner offset = (%v,%v), want (14,10)", inner.OffsetLeft(), inner.OffsetTop())
	}
}

func TestLayout_RelativeShiftMovesSubtree(t *testing.T) {
	doc, _ := layoutHTML(t, `<style>body { margin: 0 }</style>
<div id="r" style="position: relative; left: 5px; top: -3px; height: 10px"><div id="c" style="height: 4px"></div></div>`)

	r := mustGet(t, doc, "r")
	if g := r.Geometry(); g.X != 5 || g.Y != -3 {
		t.Errorf("#r at (%v,%v), want (5,-3)", g.X, g.Y)
	}
	c := mustGet(t, doc, "c")
	if g := c.Geometry(); g.X != 5 || g.Y != -3 {
		t.Errorf("#c at (%v,%v), want (5,-3)", g.X, g.Y)
	}
	if c.OffsetLeft() != 0 || c.OffsetTop() != 0 {
		t.Errorf("#c offset = (%v,%v), want (0,0)", c.OffsetLeft(), c.OffsetTop())
	}
}

func TestLayout_CenteredBorderBox(t *testing.T) {
	doc, r := layoutHTML(t, `<style>body { margin: 0 }</style>
<div id="c" style="width: 200px; margin: 0 auto; padding: 10px; box-sizing: border-box; height: 50px"></div>`)

	c := mustGet(t, doc, "c")
	g := c.Geometry()
	if g.X != 300 || g.Width != 200 || g.Height != 50 {
		t.Errorf("#c border box = (%v, %vx%v), want (300, 200x50)", g.X, g.Width, g.Height)
	}
	if c.ClientWidth() != 200 {
		t.Errorf("#c clientWidth = %v, want 200", c.ClientWidth())
	}
	if got := r.ComputedValue(c, "width"); got != "200px" {
		t.Errorf("#c used width = %q, want 200px", got)
	}
}

func TestLayout_FlexRow(t *testing.T) {
	doc, _ := layoutHTML(t, `<style>body { margin: 0 }</style>
<div id="row" style="display: flex; width: 300px; height: 40px">
  <div id="a" style="width: 100px"></div>
  <div id="b" style="flex-grow: 1; margin-left: 10px"></div>
  <div id="c" style="flex-grow: 1; height: 10px"></div>
</div>`)

	tests := []struct {
		id      string
		x, w, h float64
	}{
		{"a", 0, 100, 40},
		{"b", 110, 95, 40},
		{"c", 205, 95, 10},
	}
	for _, tt := range tests {
		g := mustGet(t, doc, tt.id).Geometry()
		if g.X != tt.x || g.Width != tt.w || g.Height != tt.h {
			t.Errorf("#%s = (x %v, %vx%v), want (x %v, %vx%v)", tt.id, g.X, g.Width, g.Height, tt.x, tt.w, tt.h)
		}
	}
}

func TestLayout_PreservesScroll(t *testing.T) {
	doc, err := html.Parse(`<div id="s" style="height: 10px"></div>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	s := mustGet(t, doc, "s")
	s.SetScrollTop(12)

	NewEngine(800, 600, nil).Layout(doc)
	if s.ScrollTop() != 12 {
		t.Errorf("scrollTop after layout = %v, want 12", s.ScrollTop())
	}
}

func TestLayout_AddedStylesheet(t *testing.T) {
	doc, err := html.Parse(`<style>#a { height: 10px; width: 100px }</style><div id="a"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine(800, 600, nil)
	e.AddStylesheet(css.ParseStylesheet(`#a { height: 30px }`))
	e.Layout(doc)

	a := mustGet(t, doc, "a")
	if a.OffsetHeight() != 30 || a.OffsetWidth() != 100 {
		t.Errorf("#a offset size = %vx%v, want 100x30", a.OffsetWidth(), a.OffsetHeight())
	}
}
