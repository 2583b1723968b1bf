package layout

import "github.com/chrisuehlinger/dragbounds/dom"

// publishGeometry writes an ElementGeometry to every element under root.
// Elements without a box get an empty geometry and no offsetParent.
func (r *Result) publishGeometry(root, body *dom.Element) {
	var visit func(el *dom.Element, container *LayoutBox)
	visit = func(el *dom.Element, container *LayoutBox) {
		box := r.boxes[el]
		g := &dom.ElementGeometry{}
		if prev := el.Geometry(); prev != nil {
			g.ScrollTop, g.ScrollLeft = prev.ScrollTop, prev.ScrollLeft
		}
		next := container
		if box != nil {
			fillGeometry(g, box)
			r.setOffsets(g, el, box, container, body)
			if el == body || box.positioned() {
				next = box
			}
		}
		el.SetGeometry(g)
		for _, child := range el.Children() {
			visit(child, next)
		}
	}
	visit(root, nil)
}

func fillGeometry(g *dom.ElementGeometry, box *LayoutBox) {
	d := box.Dimensions
	bb := d.BorderBox()
	g.X, g.Y, g.Width, g.Height = bb.X, bb.Y, bb.Width, bb.Height
	g.ContentWidth, g.ContentHeight = d.Content.Width, d.Content.Height
	g.PaddingTop, g.PaddingRight, g.PaddingBottom, g.PaddingLeft = d.Padding.Top, d.Padding.Right, d.Padding.Bottom, d.Padding.Left
	g.BorderTop, g.BorderRight, g.BorderBottom, g.BorderLeft = d.Border.Top, d.Border.Right, d.Border.Bottom, d.Border.Left
	g.MarginTop, g.MarginRight, g.MarginBottom, g.MarginLeft = d.Margin.Top, d.Margin.Right, d.Margin.Bottom, d.Margin.Left
	g.OffsetWidth, g.OffsetHeight = bb.Width, bb.Height
	g.ClientTop, g.ClientLeft = d.Border.Top, d.Border.Left
	g.ClientWidth = d.Content.Width + d.Padding.Horizontal()
	g.ClientHeight = d.Content.Height + d.Padding.Vertical()
}

// setOffsets computes offsetParent and offsetTop/Left. The root, body and
// fixed boxes have no offsetParent. Offsets against body, or against no
// parent, are measured from the document origin; otherwise from the
// offsetParent's padding edge.
func (r *Result) setOffsets(g *dom.ElementGeometry, el *dom.Element, box, container *LayoutBox, body *dom.Element) {
	g.OffsetLeft, g.OffsetTop = g.X, g.Y
	if container == nil || el == body || box.Style.GetPropertyValue("position") == "fixed" {
		return
	}
	g.OffsetParent = container.Element
	if container.Element == body {
		return
	}
	pb := container.Dimensions.PaddingBox()
	g.OffsetLeft = g.X - pb.X
	g.OffsetTop = g.Y - pb.Y
}
