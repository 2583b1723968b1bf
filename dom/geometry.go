package dom

// ElementGeometry holds computed layout geometry for an element.
// It is written by the layout engine and read by the offset/client accessors.
type ElementGeometry struct {
	// Border box coordinates relative to the viewport
	X, Y, Width, Height float64

	ContentWidth, ContentHeight                          float64
	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft float64
	BorderTop, BorderRight, BorderBottom, BorderLeft     float64
	MarginTop, MarginRight, MarginBottom, MarginLeft     float64

	OffsetTop, OffsetLeft     float64
	OffsetWidth, OffsetHeight float64
	OffsetParent              *Element

	ScrollTop, ScrollLeft     float64
	ClientTop, ClientLeft     float64
	ClientWidth, ClientHeight float64
}

// DOMRect represents a rectangle in the DOM.
type DOMRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Top returns the top edge (y for positive height, y + height for negative).
func (r DOMRect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

// Left returns the left edge (x for positive width, x + width for negative).
func (r DOMRect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

// Right returns the right edge.
func (r DOMRect) Right() float64 {
	if r.Width < 0 {
		return r.X
	}
	return r.X + r.Width
}

// Bottom returns the bottom edge.
func (r DOMRect) Bottom() float64 {
	if r.Height < 0 {
		return r.Y
	}
	return r.Y + r.Height
}
