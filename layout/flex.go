package layout

import (
	"strconv"
	"strings"
)

// layoutFlexRow lays out the children of a single-line row flex container
// inside inner and returns the line's cross size.
//
// Items start from their specified width (0 when auto) and share positive
// free space by flex-grow. Items with an auto height are stretched to the
// line unless align-items or align-self says otherwise.
func (box *LayoutBox) layoutFlexRow(inner Rect) float64 {
	items := box.Children
	free := inner.Width
	var totalGrow float64
	for _, item := range items {
		item.calculateEdges(inner.Width)
		d := &item.Dimensions
		width, ok := lengthOrPercent(item.Style.GetPropertyValue("width"), inner.Width)
		if ok && item.borderBoxSizing() {
			width = max(0, width-d.Padding.Horizontal()-d.Border.Horizontal())
		}
		if !ok {
			width = 0
		}
		d.Content.Width = width
		free -= d.MarginBox().Width
		totalGrow += item.flexGrow()
	}

	x := inner.X
	var lineHeight float64
	for _, item := range items {
		d := &item.Dimensions
		if free > 0 && totalGrow > 0 {
			d.Content.Width += free * item.flexGrow() / totalGrow
		}
		d.Content.X = x + d.Margin.Left + d.Border.Left + d.Padding.Left
		d.Content.Y = inner.Y + d.Margin.Top + d.Border.Top + d.Padding.Top

		height, definite := item.specifiedHeight(inner.Height)
		child := Rect{X: d.Content.X, Y: d.Content.Y, Width: d.Content.Width, Height: -1}
		if definite {
			child.Height = height
		}
		var contentHeight float64
		if item.BoxType == FlexBox {
			contentHeight = item.layoutFlexRow(child)
		} else {
			contentHeight = item.layoutBlockChildren(child)
		}
		if definite {
			d.Content.Height = height
		} else {
			d.Content.Height = contentHeight
		}

		mb := d.MarginBox()
		x += mb.Width
		lineHeight = max(lineHeight, mb.Height)
	}

	cross := lineHeight
	if inner.Height >= 0 {
		cross = inner.Height
	}
	for _, item := range items {
		if _, definite := item.specifiedHeight(inner.Height); definite || !box.stretches(item) {
			continue
		}
		d := &item.Dimensions
		d.Content.Height = max(d.Content.Height, cross-d.Margin.Vertical()-d.Border.Vertical()-d.Padding.Vertical())
	}
	for _, item := range items {
		item.applyRelativeOffset(inner)
	}
	return cross
}

func (box *LayoutBox) flexGrow() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(box.Style.GetPropertyValue("flex-grow")), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// stretches reports whether item's cross size follows the flex line.
func (box *LayoutBox) stretches(item *LayoutBox) bool {
	align := item.Style.GetPropertyValue("align-self")
	if align == "" || align == "auto" {
		align = box.Style.GetPropertyValue("align-items")
	}
	return align == "" || align == "stretch" || align == "normal"
}
