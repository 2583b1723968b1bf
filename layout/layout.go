// Package layout handles the layout/box model calculations.
package layout

import (
	"github.com/chrisuehlinger/dragbounds/css"
	"github.com/chrisuehlinger/dragbounds/dom"
)

// Dimensions represents the dimensions of a layout box.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// Rect represents a rectangular area.
type Rect struct {
	X, Y, Width, Height float64
}

// EdgeSizes represents the sizes of edges (top, right, bottom, left).
type EdgeSizes struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns Left + Right.
func (e EdgeSizes) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns Top + Bottom.
func (e EdgeSizes) Vertical() float64 {
	return e.Top + e.Bottom
}

// BoxType represents the type of layout box.
type BoxType int

const (
	BlockBox BoxType = iota
	FlexBox
)

// LayoutBox represents a box in the layout tree. Every rendered element gets
// exactly one box; text is not laid out.
type LayoutBox struct {
	Dimensions Dimensions
	BoxType    BoxType
	Element    *dom.Element
	Style      *css.ComputedStyle
	Children   []*LayoutBox
}

// PaddingBox returns the area covered by content and padding.
func (d *Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the area covered by content, padding, and border.
func (d *Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the area covered by content, padding, border, and margin.
func (d *Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// ExpandedBy returns a rectangle expanded by the given edge sizes.
func (r Rect) ExpandedBy(edge EdgeSizes) Rect {
	return Rect{
		X:      r.X - edge.Left,
		Y:      r.Y - edge.Top,
		Width:  r.Width + edge.Left + edge.Right,
		Height: r.Height + edge.Top + edge.Bottom,
	}
}

// Walk visits box and its descendants in tree order.
func (box *LayoutBox) Walk(fn func(*LayoutBox)) {
	fn(box)
	for _, child := range box.Children {
		child.Walk(fn)
	}
}

// translate moves box and its descendants by (dx, dy).
func (box *LayoutBox) translate(dx, dy float64) {
	box.Walk(func(b *LayoutBox) {
		b.Dimensions.Content.X += dx
		b.Dimensions.Content.Y += dy
	})
}

// positioned reports whether the box establishes an offsetParent.
func (box *LayoutBox) positioned() bool {
	return box.Style.GetPropertyValue("position") != "static"
}
