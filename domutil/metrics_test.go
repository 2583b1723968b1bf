package domutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/dragbounds/dom"
	"github.com/chrisuehlinger/dragbounds/html"
	"github.com/chrisuehlinger/dragbounds/layout"
)

func TestParseInt(t *testing.T) {
	tests := map[string]float64{
		"12px":    12,
		"12.9px":  12,
		" -3px":   -3,
		"+4":      4,
		"0":       0,
		"007em":   7,
		"1e3px":   1,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseInt(in), in)
	}
	for _, in := range []string{"", "auto", "px", "-", ".5px"} {
		assert.True(t, math.IsNaN(parseInt(in)), "parseInt(%q) should be NaN", in)
	}
}

func TestParseFloat(t *testing.T) {
	tests := map[string]float64{
		"100px":     100,
		"12.5px":    12.5,
		".5":        0.5,
		"-2.25em":   -2.25,
		"1e3px":     1000,
		"1e+2":      100,
		"3e":        3,
		"4.em":      4,
		"Infinity":  math.Inf(1),
		"-Infinity": math.Inf(-1),
	}
	for in, want := range tests {
		assert.Equal(t, want, parseFloat(in), in)
	}
	for _, in := range []string{"", "auto", ".", "-.", "e5"} {
		assert.True(t, math.IsNaN(parseFloat(in)), "parseFloat(%q) should be NaN", in)
	}
}

func TestReadBoxMetrics(t *testing.T) {
	doc := dom.NewDocument()
	el := doc.CreateElement("div")
	el.SetGeometry(&dom.ElementGeometry{ClientWidth: 40, ClientHeight: 30, OffsetLeft: 6, OffsetTop: 7})
	styles := StyleReaderFunc(func(_ *dom.Element, property string) string {
		switch property {
		case "margin-top":
			return "1.7px"
		case "border-left-width":
			return "2px"
		case "padding-right":
			return "auto"
		}
		return "0px"
	})

	m := ReadBoxMetrics(el, styles)
	assert.Equal(t, 1.0, m.Margin.Top)
	assert.Equal(t, 2.0, m.Border.Left)
	assert.True(t, math.IsNaN(m.Padding.Right))
	assert.Equal(t, 40.0, m.ClientWidth)
	assert.Equal(t, 30.0, m.ClientHeight)
	assert.Equal(t, 6.0, m.OffsetLeft)
	assert.Equal(t, 7.0, m.OffsetTop)
	assert.True(t, math.IsNaN(m.InnerWidth()))
	assert.Equal(t, 42.0, m.OuterWidth())
}

func TestGetComputedSize(t *testing.T) {
	doc, err := html.Parse(`<style>body { margin: 0 } #a { padding: 4px }</style>
<div id="a" style="height: 12.5px"></div><div id="hidden" style="display: none"></div>`)
	require.NoError(t, err)
	result := layout.NewEngine(640, 480, nil).Layout(doc)

	w, h := GetComputedSize(doc.GetElementById("a"), result)
	assert.Equal(t, 632.0, w)
	assert.Equal(t, 12.5, h)

	w, h = GetComputedSize(doc.GetElementById("hidden"), result)
	assert.True(t, math.IsNaN(w), "auto width should parse as NaN")
	assert.True(t, math.IsNaN(h))
}

func TestCascadeStyles(t *testing.T) {
	doc, err := html.Parse(`<style>.box { margin: 2em 3px }</style>
<div style="font-size: 10px"><div id="b" class="box" style="width: 70px"></div></div>`)
	require.NoError(t, err)
	b := doc.GetElementById("b")

	styles := CascadeStyles{}
	assert.Equal(t, "20px", styles.ComputedValue(b, "margin-top"))
	assert.Equal(t, "3px", styles.ComputedValue(b, "margin-left"))

	w, h := GetComputedSize(b, styles)
	assert.Equal(t, 70.0, w)
	assert.True(t, math.IsNaN(h))
}
