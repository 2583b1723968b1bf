package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/dragbounds/domutil"
	"github.com/chrisuehlinger/dragbounds/html"
	"github.com/chrisuehlinger/dragbounds/layout"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

const paintPage = `<style>body { margin: 0 }</style>
<div id="area" style="position: relative; width: 100px; height: 60px; background-color: red; border: 2px solid blue">
  <div id="box" style="width: 20px; height: 10px; background-color: #000"></div>
</div>`

func layoutPage(t *testing.T) *layout.Result {
	t.Helper()
	doc, err := html.Parse(paintPage)
	require.NoError(t, err)
	return layout.NewEngine(200, 100, nil).Layout(doc)
}

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(4, 3)
	assert.Len(t, c.Pixels, 12)
	assert.Equal(t, white, c.At(3, 2))
	assert.Equal(t, color.RGBA{}, c.At(4, 0))

	empty := NewCanvas(-1, 5)
	assert.Equal(t, 0, empty.Width)
	assert.Empty(t, empty.Pixels)
}

func TestFillRect_Clips(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillRect(-5, 8, 8, 10, red)

	assert.Equal(t, red, c.At(0, 9))
	assert.Equal(t, red, c.At(2, 8))
	assert.Equal(t, white, c.At(3, 8))
	assert.Equal(t, white, c.At(0, 7))
}

func TestFillRect_Blends(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Clear(black)
	c.FillRect(0, 0, 1, 1, color.RGBA{255, 255, 255, 128})

	got := c.At(0, 0)
	assert.InDelta(t, 128, int(got.R), 1)
	assert.Equal(t, uint8(255), got.A)
}

func TestStrokeRect(t *testing.T) {
	c := NewCanvas(6, 6)
	c.StrokeRect(1, 1, 4, 4, blue)

	assert.Equal(t, blue, c.At(1, 1))
	assert.Equal(t, blue, c.At(4, 4))
	assert.Equal(t, blue, c.At(1, 3))
	assert.Equal(t, white, c.At(2, 2))
	assert.Equal(t, white, c.At(0, 0))
}

func TestBuildDisplayList(t *testing.T) {
	result := layoutPage(t)
	list := BuildDisplayList(result.Root)

	var fills, borders int
	for _, cmd := range list {
		switch cmd.(type) {
		case *SolidColorCommand:
			fills++
		case *BorderCommand:
			borders++
		}
	}
	assert.Equal(t, 2, fills)
	assert.Equal(t, 1, borders)
	assert.Empty(t, BuildDisplayList(nil))
}

func TestPaint(t *testing.T) {
	result := layoutPage(t)
	c := NewCanvas(200, 100)
	c.Paint(result.Root)

	// #area's border box spans 0..104 x 0..64 with a 2px blue border.
	assert.Equal(t, blue, c.At(0, 0))
	assert.Equal(t, blue, c.At(103, 63))
	assert.Equal(t, red, c.At(50, 40))
	// #box sits at the content origin (2, 2).
	assert.Equal(t, black, c.At(2, 2))
	assert.Equal(t, black, c.At(21, 11))
	assert.Equal(t, red, c.At(22, 12))
	assert.Equal(t, white, c.At(150, 80))
}

func TestPaintEnvelope(t *testing.T) {
	result := layoutPage(t)
	doc := result.Root.Element.OwnerDocument()
	box := result.Box(doc.GetElementById("box"))
	require.NotNil(t, box)

	fill := color.RGBA{0, 255, 0, 255}
	stroke := color.RGBA{0, 0, 0, 255}

	c := NewCanvas(200, 100)
	c.PaintEnvelope(box, domutil.Rect{Left: domutil.At(0), Top: domutil.At(0), Right: domutil.At(80), Bottom: domutil.At(50)}, fill, stroke)
	// Border box 20x10 at (2, 2) sweeps to (102, 62).
	assert.Equal(t, stroke, c.At(2, 2))
	assert.Equal(t, fill, c.At(50, 30))
	assert.Equal(t, stroke, c.At(101, 61))
	assert.Equal(t, white, c.At(102, 62))

	c = NewCanvas(200, 100)
	c.PaintEnvelope(box, domutil.Rect{Right: domutil.At(10)}, fill, stroke)
	assert.Equal(t, stroke, c.At(0, 0))
	assert.Equal(t, fill, c.At(20, 99-1))
	assert.Equal(t, white, c.At(32, 50))

	c = NewCanvas(10, 10)
	c.PaintEnvelope(box, domutil.Rect{Left: domutil.At(5), Right: domutil.At(-30)}, fill, stroke)
	assert.Equal(t, white, c.At(5, 5))
}

func TestWritePNG(t *testing.T) {
	c := NewCanvas(3, 2)
	c.FillRect(0, 0, 1, 1, red)

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"red", red, true},
		{"  Blue ", blue, true},
		{"transparent", color.RGBA{}, true},
		{"#f00", red, true},
		{"#0000ff", blue, true},
		{"#00000080", color.RGBA{0, 0, 0, 128}, true},
		{"rgb(255, 0, 0)", red, true},
		{"rgba(0, 0, 255, 0.5)", color.RGBA{0, 0, 255, 128}, true},
		{"rgb(100% 0% 0%)", red, true},
		{"", color.RGBA{}, false},
		{"#12", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
		{"rgb(1, 2)", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
