// Package render paints laid-out boxes and drag envelopes into a pixel canvas.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/chrisuehlinger/dragbounds/domutil"
	"github.com/chrisuehlinger/dragbounds/layout"
)

// Canvas is a fixed-size RGBA pixel buffer.
type Canvas struct {
	Pixels []color.RGBA
	Width  int
	Height int
}

// NewCanvas creates a canvas cleared to white.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{
		Pixels: make([]color.RGBA, width*height),
		Width:  width,
		Height: height,
	}
	c.Clear(color.RGBA{255, 255, 255, 255})
	return c
}

// DisplayCommand is one entry of a display list.
type DisplayCommand interface {
	Execute(c *Canvas)
}

// SolidColorCommand fills a rectangle.
type SolidColorCommand struct {
	Color color.RGBA
	Rect  layout.Rect
}

// Execute paints the rectangle.
func (cmd *SolidColorCommand) Execute(c *Canvas) {
	c.FillRect(int(cmd.Rect.X), int(cmd.Rect.Y), int(cmd.Rect.Width), int(cmd.Rect.Height), cmd.Color)
}

// BorderCommand paints the four border edges of a rectangle.
type BorderCommand struct {
	Color  color.RGBA
	Rect   layout.Rect
	Widths layout.EdgeSizes
}

// Execute paints the edges.
func (cmd *BorderCommand) Execute(c *Canvas) {
	x, y := int(cmd.Rect.X), int(cmd.Rect.Y)
	w, h := int(cmd.Rect.Width), int(cmd.Rect.Height)
	if t := int(cmd.Widths.Top); t > 0 {
		c.FillRect(x, y, w, t, cmd.Color)
	}
	if r := int(cmd.Widths.Right); r > 0 {
		c.FillRect(x+w-r, y, r, h, cmd.Color)
	}
	if b := int(cmd.Widths.Bottom); b > 0 {
		c.FillRect(x, y+h-b, w, b, cmd.Color)
	}
	if l := int(cmd.Widths.Left); l > 0 {
		c.FillRect(x, y, l, h, cmd.Color)
	}
}

// Paint draws the backgrounds and borders of root and its descendants in
// tree order.
func (c *Canvas) Paint(root *layout.LayoutBox) {
	for _, cmd := range BuildDisplayList(root) {
		cmd.Execute(c)
	}
}

// BuildDisplayList collects the paint commands for a layout tree. Parents
// paint before their children.
func BuildDisplayList(root *layout.LayoutBox) []DisplayCommand {
	var list []DisplayCommand
	if root == nil {
		return list
	}
	root.Walk(func(box *layout.LayoutBox) {
		if box.Style == nil {
			return
		}
		borderBox := box.Dimensions.BorderBox()
		if bg, ok := ParseColor(box.Style.GetPropertyValue("background-color")); ok && bg.A > 0 {
			list = append(list, &SolidColorCommand{Color: bg, Rect: borderBox})
		}
		if cmd := borderCommand(box, borderBox); cmd != nil {
			list = append(list, cmd)
		}
	})
	return list
}

func borderCommand(box *layout.LayoutBox, rect layout.Rect) *BorderCommand {
	widths := box.Dimensions.Border
	if widths == (layout.EdgeSizes{}) {
		return nil
	}
	// One color per box; the top edge wins.
	col := borderColor(box, "border-top-color")
	return &BorderCommand{Color: col, Rect: rect, Widths: widths}
}

func borderColor(box *layout.LayoutBox, property string) color.RGBA {
	v := box.Style.GetPropertyValue(property)
	if v == "" || v == "currentcolor" {
		v = box.Style.GetPropertyValue("color")
	}
	if col, ok := ParseColor(v); ok {
		return col
	}
	return color.RGBA{0, 0, 0, 255}
}

// PaintEnvelope shades the area box's border box can sweep while its offset
// stays inside env. Unset limits extend to the canvas edge.
func (c *Canvas) PaintEnvelope(box *layout.LayoutBox, env domutil.Rect, fill, stroke color.RGBA) {
	bb := box.Dimensions.BorderBox()
	x1, x2 := sweep(bb.X, bb.Width, env.Left, env.Right, c.Width)
	y1, y2 := sweep(bb.Y, bb.Height, env.Top, env.Bottom, c.Height)
	if x2 <= x1 || y2 <= y1 {
		return
	}
	c.FillRect(x1, y1, x2-x1, y2-y1, fill)
	c.StrokeRect(x1, y1, x2-x1, y2-y1, stroke)
}

func sweep(origin, size float64, lo, hi domutil.Limit, edge int) (int, int) {
	start, end := 0, edge
	if lo.Set && !math.IsNaN(lo.Value) {
		start = int(math.Floor(origin + lo.Value))
	}
	if hi.Set && !math.IsNaN(hi.Value) {
		end = int(math.Ceil(origin + hi.Value + size))
	}
	return start, end
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.RGBA) {
	for i := range c.Pixels {
		c.Pixels[i] = col
	}
}

// At returns the pixel at (x, y), or transparent outside the canvas.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return color.RGBA{}
	}
	return c.Pixels[y*c.Width+x]
}

// SetPixelBlend composites col over the pixel at (x, y).
func (c *Canvas) SetPixelBlend(x, y int, col color.RGBA) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	idx := y*c.Width + x
	dst := c.Pixels[idx]

	srcA := float64(col.A) / 255
	dstA := float64(dst.A) / 255
	outA := srcA + dstA*(1-srcA)
	if outA == 0 {
		c.Pixels[idx] = color.RGBA{}
		return
	}
	mix := func(s, d uint8) uint8 {
		return uint8(math.Round((float64(s)*srcA + float64(d)*dstA*(1-srcA)) / outA))
	}
	c.Pixels[idx] = color.RGBA{
		R: mix(col.R, dst.R),
		G: mix(col.G, dst.G),
		B: mix(col.B, dst.B),
		A: uint8(math.Round(outA * 255)),
	}
}

// FillRect fills a rectangle clipped to the canvas. Translucent colors are
// composited.
func (c *Canvas) FillRect(x, y, width, height int, col color.RGBA) {
	x1, y1 := max(x, 0), max(y, 0)
	x2, y2 := min(x+width, c.Width), min(y+height, c.Height)
	for py := y1; py < y2; py++ {
		for px := x1; px < x2; px++ {
			if col.A == 255 {
				c.Pixels[py*c.Width+px] = col
			} else {
				c.SetPixelBlend(px, py, col)
			}
		}
	}
}

// StrokeRect draws a one pixel outline just inside the rectangle.
func (c *Canvas) StrokeRect(x, y, width, height int, col color.RGBA) {
	if width <= 0 || height <= 0 {
		return
	}
	c.FillRect(x, y, width, 1, col)
	c.FillRect(x, y+height-1, width, 1, col)
	c.FillRect(x, y+1, 1, height-2, col)
	c.FillRect(x+width-1, y+1, 1, height-2, col)
}

// ToImage copies the canvas into an image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, c.Pixels[y*c.Width+x])
		}
	}
	return img
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.ToImage())
}
