package render

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor reads a CSS color: a named color, transparent, #rgb, #rgba,
// #rrggbb, #rrggbbaa, rgb() or rgba().
func ParseColor(value string) (color.RGBA, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case v == "":
		return color.RGBA{}, false
	case v == "transparent":
		return color.RGBA{}, true
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:])
	case strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba("):
		return parseRGBFunc(v)
	}
	col, ok := colornames.Map[v]
	return col, ok
}

func parseHex(h string) (color.RGBA, bool) {
	if len(h) == 3 || len(h) == 4 {
		var b strings.Builder
		for i := 0; i < len(h); i++ {
			b.WriteByte(h[i])
			b.WriteByte(h[i])
		}
		h = b.String()
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, false
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, true
}

func parseRGBFunc(v string) (color.RGBA, bool) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return color.RGBA{}, false
	}
	args := strings.FieldsFunc(v[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i := range ch {
		c, ok := channel(args[i])
		if !ok {
			return color.RGBA{}, false
		}
		ch[i] = c
	}
	alpha := uint8(255)
	if len(args) == 4 {
		a, ok := alphaChannel(args[3])
		if !ok {
			return color.RGBA{}, false
		}
		alpha = a
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, true
}

func channel(s string) (uint8, bool) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, false
		}
		return clampByte(f * 255 / 100), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clampByte(f), true
}

func alphaChannel(s string) (uint8, bool) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, false
		}
		return clampByte(f * 255 / 100), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clampByte(f * 255), true
}

func clampByte(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f + 0.5)
}
