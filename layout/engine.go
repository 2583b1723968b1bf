package layout

import (
	"strings"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/dragbounds/css"
	"github.com/chrisuehlinger/dragbounds/dom"
)

// Default viewport size used when the engine is given a non-positive one.
const (
	DefaultViewportWidth  = 800.0
	DefaultViewportHeight = 600.0
)

// Engine lays out documents against a fixed viewport.
type Engine struct {
	ViewportWidth  float64
	ViewportHeight float64

	stylesheets []*css.Stylesheet
	logger      *zap.Logger
}

// NewEngine creates a layout engine. A nil logger disables logging.
func NewEngine(viewportWidth, viewportHeight float64, logger *zap.Logger) *Engine {
	if viewportWidth <= 0 {
		viewportWidth = DefaultViewportWidth
	}
	if viewportHeight <= 0 {
		viewportHeight = DefaultViewportHeight
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		logger:         logger.Named("layout"),
	}
}

// AddStylesheet adds an author stylesheet applied after the document's own
// <style> elements, such as one fetched for a <link rel="stylesheet">.
func (e *Engine) AddStylesheet(ss *css.Stylesheet) {
	e.stylesheets = append(e.stylesheets, ss)
}

// Result is the outcome of one layout pass.
type Result struct {
	Root *LayoutBox

	boxes  map[*dom.Element]*LayoutBox
	styles map[*dom.Element]*css.ComputedStyle
}

// Box returns the layout box of el, or nil when el is not rendered.
func (r *Result) Box(el *dom.Element) *LayoutBox {
	return r.boxes[el]
}

// ComputedStyle returns the computed style of el, or nil when el was not in
// the document at layout time.
func (r *Result) ComputedStyle(el *dom.Element) *css.ComputedStyle {
	return r.styles[el]
}

// ComputedValue returns the value getComputedStyle would report for property.
// width and height are used values for rendered boxes.
func (r *Result) ComputedValue(el *dom.Element, property string) string {
	cs := r.styles[el]
	if cs == nil {
		return ""
	}
	return cs.GetPropertyValue(property)
}

// Layout computes styles and box geometry for every element of doc and
// stores the geometry on the elements.
func (e *Engine) Layout(doc *dom.Document) *Result {
	r := &Result{
		boxes:  make(map[*dom.Element]*LayoutBox),
		styles: make(map[*dom.Element]*css.ComputedStyle),
	}
	root := doc.DocumentElement()
	if root == nil {
		return r
	}

	resolver := css.NewStyleResolverForDocument(doc)
	for _, ss := range e.stylesheets {
		resolver.AddAuthorStylesheet(ss)
	}
	r.computeStyles(resolver, root, nil)

	r.Root = r.buildLayoutTree(root)
	if r.Root != nil {
		viewport := Rect{Width: e.ViewportWidth, Height: e.ViewportHeight}
		r.Root.layout(viewport, 0)
		r.Root.Walk(func(b *LayoutBox) {
			b.publishUsedSize()
			r.boxes[b.Element] = b
		})
	}
	r.publishGeometry(root, doc.Body())

	e.logger.Debug("layout complete",
		zap.Int("elements", len(r.styles)),
		zap.Int("boxes", len(r.boxes)),
		zap.Float64("viewport_width", e.ViewportWidth),
	)
	return r
}

func (r *Result) computeStyles(resolver *css.StyleResolver, el *dom.Element, parent *css.ComputedStyle) {
	cs := resolver.ResolveStyles(el, parent)
	r.styles[el] = cs
	for _, child := range el.Children() {
		r.computeStyles(resolver, child, cs)
	}
}

// buildLayoutTree creates boxes for el and its rendered descendants.
func (r *Result) buildLayoutTree(el *dom.Element) *LayoutBox {
	style := r.styles[el]
	display := style.GetPropertyValue("display")
	if display == "none" {
		return nil
	}
	box := &LayoutBox{Element: el, Style: style}
	if display == "flex" || display == "inline-flex" {
		box.BoxType = FlexBox
	}
	for _, child := range el.Children() {
		if cb := r.buildLayoutTree(child); cb != nil {
			box.Children = append(box.Children, cb)
		}
	}
	return box
}

// layout places box inside the containing block cb with its margin edge at
// y. A negative cb.Height means the containing block height is not definite.
func (box *LayoutBox) layout(cb Rect, y float64) {
	box.calculateEdges(cb.Width)
	box.calculateWidth(cb.Width)

	d := &box.Dimensions
	d.Content.X = cb.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = y + d.Margin.Top + d.Border.Top + d.Padding.Top

	height, definite := box.specifiedHeight(cb.Height)
	if definite {
		d.Content.Height = height
	}
	inner := Rect{X: d.Content.X, Y: d.Content.Y, Width: d.Content.Width, Height: -1}
	if definite {
		inner.Height = height
	}

	var contentHeight float64
	if box.BoxType == FlexBox {
		contentHeight = box.layoutFlexRow(inner)
	} else {
		contentHeight = box.layoutBlockChildren(inner)
	}
	if !definite {
		d.Content.Height = contentHeight
	}

	box.applyRelativeOffset(cb)
}

// layoutBlockChildren stacks the children vertically and returns the sum of
// their margin box heights. Margins do not collapse.
func (box *LayoutBox) layoutBlockChildren(inner Rect) float64 {
	var height float64
	for _, child := range box.Children {
		child.layout(inner, inner.Y+height)
		height += child.Dimensions.MarginBox().Height
	}
	return height
}

// calculateEdges resolves margins, borders and paddings. Percentages refer to
// the containing block width; auto margins resolve to 0 here.
func (box *LayoutBox) calculateEdges(cbWidth float64) {
	d := &box.Dimensions
	d.Margin = box.edges("margin-%s", cbWidth)
	d.Padding = box.edges("padding-%s", cbWidth)
	d.Border = box.edges("border-%s-width", cbWidth)
}

func (box *LayoutBox) edges(pattern string, cbWidth float64) EdgeSizes {
	side := func(name string) float64 {
		return resolveLength(box.Style.GetPropertyValue(strings.Replace(pattern, "%s", name, 1)), cbWidth)
	}
	return EdgeSizes{
		Top:    side("top"),
		Right:  side("right"),
		Bottom: side("bottom"),
		Left:   side("left"),
	}
}

// calculateWidth sets the content width. An auto width fills the containing
// block; a fixed width with both horizontal margins auto is centred.
func (box *LayoutBox) calculateWidth(cbWidth float64) {
	d := &box.Dimensions
	style := box.Style
	nonContent := d.Padding.Horizontal() + d.Border.Horizontal()

	width, ok := lengthOrPercent(style.GetPropertyValue("width"), cbWidth)
	if !ok {
		d.Content.Width = max(0, cbWidth-d.Margin.Horizontal()-nonContent)
		return
	}
	if box.borderBoxSizing() {
		width = max(0, width-nonContent)
	}
	d.Content.Width = width

	if style.GetPropertyValue("margin-left") == "auto" && style.GetPropertyValue("margin-right") == "auto" {
		underflow := max(0, cbWidth-width-nonContent)
		d.Margin.Left = underflow / 2
		d.Margin.Right = underflow / 2
	}
}

// specifiedHeight returns the content height from the height property when
// it is definite.
func (box *LayoutBox) specifiedHeight(cbHeight float64) (float64, bool) {
	value := box.Style.GetPropertyValue("height")
	height, ok := css.ParsePx(value)
	if !ok {
		pct, isPct := css.ParsePercent(value)
		if !isPct || cbHeight < 0 {
			return 0, false
		}
		height = cbHeight * pct / 100
	}
	if box.borderBoxSizing() {
		height = max(0, height-box.Dimensions.Padding.Vertical()-box.Dimensions.Border.Vertical())
	}
	return height, true
}

func (box *LayoutBox) borderBoxSizing() bool {
	return box.Style.GetPropertyValue("box-sizing") == "border-box"
}

// applyRelativeOffset shifts a position:relative box by its left/top insets,
// or by the negated right/bottom insets when left/top are auto.
func (box *LayoutBox) applyRelativeOffset(cb Rect) {
	if box.Style.GetPropertyValue("position") != "relative" {
		return
	}
	inset := func(primary, opposite string) float64 {
		if v, ok := lengthOrPercent(box.Style.GetPropertyValue(primary), cb.Width); ok {
			return v
		}
		if v, ok := lengthOrPercent(box.Style.GetPropertyValue(opposite), cb.Width); ok {
			return -v
		}
		return 0
	}
	dx, dy := inset("left", "right"), inset("top", "bottom")
	if dx != 0 || dy != 0 {
		box.translate(dx, dy)
	}
}

// publishUsedSize replaces the computed width and height with used values,
// measured per box-sizing.
func (box *LayoutBox) publishUsedSize() {
	d := box.Dimensions
	width, height := d.Content.Width, d.Content.Height
	if box.borderBoxSizing() {
		bb := d.BorderBox()
		width, height = bb.Width, bb.Height
	}
	box.Style.SetPropertyValue("width", css.FormatPx(width))
	box.Style.SetPropertyValue("height", css.FormatPx(height))
}

// lengthOrPercent resolves a px or percentage value. Keywords report false.
func lengthOrPercent(value string, reference float64) (float64, bool) {
	if px, ok := css.ParsePx(value); ok {
		return px, true
	}
	if pct, ok := css.ParsePercent(value); ok {
		return reference * pct / 100, true
	}
	return 0, false
}

func resolveLength(value string, reference float64) float64 {
	v, _ := lengthOrPercent(value, reference)
	return v
}
