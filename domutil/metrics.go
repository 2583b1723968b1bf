package domutil

import (
	"math"
	"strconv"
	"strings"

	"github.com/chrisuehlinger/dragbounds/css"
	"github.com/chrisuehlinger/dragbounds/dom"
)

// StyleReader supplies getComputedStyle values.
type StyleReader interface {
	ComputedValue(el *dom.Element, property string) string
}

// StyleReaderFunc adapts a function to StyleReader.
type StyleReaderFunc func(el *dom.Element, property string) string

// ComputedValue implements StyleReader.
func (f StyleReaderFunc) ComputedValue(el *dom.Element, property string) string {
	return f(el, property)
}

// CascadeStyles reads values from the css cascade of the element's document
// on every call. Without a layout pass, width and height report specified
// values rather than used ones.
type CascadeStyles struct{}

// ComputedValue implements StyleReader.
func (CascadeStyles) ComputedValue(el *dom.Element, property string) string {
	var chain []*dom.Element
	for a := el; a != nil; a = a.ParentElement() {
		chain = append(chain, a)
	}
	resolver := css.NewStyleResolver()
	if doc := el.OwnerDocument(); doc != nil {
		resolver = css.NewStyleResolverForDocument(doc)
	}
	var cs *css.ComputedStyle
	for i := len(chain) - 1; i >= 0; i-- {
		cs = resolver.ResolveStyles(chain[i], cs)
	}
	return cs.GetPropertyValue(property)
}

// Edges holds one value per box side.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// BoxMetrics is a snapshot of the box model values the bounds computation
// reads. Style values are truncated to integers; a value that does not start
// with a number is NaN.
type BoxMetrics struct {
	Margin  Edges
	Border  Edges
	Padding Edges

	ClientWidth, ClientHeight float64
	OffsetLeft, OffsetTop     float64
}

// ReadBoxMetrics reads the current metrics of el.
func ReadBoxMetrics(el *dom.Element, styles StyleReader) BoxMetrics {
	edges := func(prefix, suffix string) Edges {
		side := func(name string) float64 {
			return parseInt(styles.ComputedValue(el, prefix+name+suffix))
		}
		return Edges{Top: side("top"), Right: side("right"), Bottom: side("bottom"), Left: side("left")}
	}
	return BoxMetrics{
		Margin:       edges("margin-", ""),
		Border:       edges("border-", "-width"),
		Padding:      edges("padding-", ""),
		ClientWidth:  el.ClientWidth(),
		ClientHeight: el.ClientHeight(),
		OffsetLeft:   el.OffsetLeft(),
		OffsetTop:    el.OffsetTop(),
	}
}

// OuterWidth is the client width plus horizontal borders. Margin is left out
// because offsetLeft already includes it.
func (m BoxMetrics) OuterWidth() float64 {
	return m.ClientWidth + m.Border.Left + m.Border.Right
}

// OuterHeight is the client height plus vertical borders.
func (m BoxMetrics) OuterHeight() float64 {
	return m.ClientHeight + m.Border.Top + m.Border.Bottom
}

// InnerWidth is the client width minus horizontal padding.
func (m BoxMetrics) InnerWidth() float64 {
	return m.ClientWidth - m.Padding.Left - m.Padding.Right
}

// InnerHeight is the client height minus vertical padding.
func (m BoxMetrics) InnerHeight() float64 {
	return m.ClientHeight - m.Padding.Top - m.Padding.Bottom
}

// GetComputedSize returns the computed width and height of el parsed as
// floats. Values such as "auto" yield NaN.
func GetComputedSize(el *dom.Element, styles StyleReader) (width, height float64) {
	return parseFloat(styles.ComputedValue(el, "width")), parseFloat(styles.ComputedValue(el, "height"))
}

// parseInt parses the leading integer of s, ignoring any trailing unit.
func parseInt(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == digits {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseFloat parses the longest leading decimal number of s.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	if strings.HasPrefix(s[end:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	mantissa := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return math.NaN()
	}

	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		if exp < len(s) && isDigit(s[exp]) {
			for exp < len(s) && isDigit(s[exp]) {
				exp++
			}
			end = exp
		}
	}

	// Out of range input still yields ±Inf or 0 alongside the error.
	v, _ := strconv.ParseFloat(s[:end], 64)
	return v
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
