package css

import (
	"strings"
)

// Stylesheet is a parsed list of style rules.
type Stylesheet struct {
	Rules []*Rule
}

// Rule is a qualified rule: a selector list and its declaration block.
type Rule struct {
	SelectorText string
	Selector     *CSSSelector
	Declarations []Declaration
}

// Declaration is a single property: value pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// ParseStylesheet parses CSS text. Rules whose selector fails to parse are
// dropped and at-rules are skipped, the same recovery a browser applies.
func ParseStylesheet(text string) *Stylesheet {
	text = stripComments(text)
	ss := &Stylesheet{}

	for pos := 0; pos < len(text); {
		for pos < len(text) && isWhitespace(text[pos]) {
			pos++
		}
		if pos >= len(text) {
			break
		}

		if text[pos] == '@' {
			pos = skipAtRule(text, pos)
			continue
		}

		open := strings.IndexByte(text[pos:], '{')
		if open < 0 {
			break
		}
		prelude := strings.TrimSpace(text[pos : pos+open])
		blockStart := pos + open + 1
		blockEnd := matchingBrace(text, pos+open)
		block := text[blockStart:blockEnd]
		pos = min(blockEnd+1, len(text))

		sel, err := ParseSelector(prelude)
		if err != nil {
			continue
		}
		ss.Rules = append(ss.Rules, &Rule{
			SelectorText: prelude,
			Selector:     sel,
			Declarations: ParseDeclarations(block),
		})
	}
	return ss
}

// ParseDeclarations parses a declaration block body (without braces).
// Shorthands are expanded into their longhands.
func ParseDeclarations(block string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Split(block, ";") {
		property, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		property = strings.ToLower(strings.TrimSpace(property))
		value = strings.TrimSpace(value)

		important := false
		if idx := strings.LastIndex(value, "!"); idx >= 0 &&
			strings.EqualFold(strings.TrimSpace(value[idx+1:]), "important") {
			important = true
			value = strings.TrimSpace(value[:idx])
		}
		if property == "" || value == "" {
			continue
		}
		decls = append(decls, ExpandShorthand(property, value, important)...)
	}
	return decls
}

func stripComments(text string) string {
	var sb strings.Builder
	for {
		start := strings.Index(text, "/*")
		if start < 0 {
			sb.WriteString(text)
			return sb.String()
		}
		sb.WriteString(text[:start])
		end := strings.Index(text[start+2:], "*/")
		if end < 0 {
			return sb.String()
		}
		text = text[start+2+end+2:]
	}
}

// skipAtRule returns the position after the at-rule starting at pos.
func skipAtRule(text string, pos int) int {
	for i := pos; i < len(text); i++ {
		switch text[i] {
		case ';':
			return i + 1
		case '{':
			return min(matchingBrace(text, i)+1, len(text))
		}
	}
	return len(text)
}

// matchingBrace returns the index of the brace closing the one at open, or
// len(text) if the block is unterminated.
func matchingBrace(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(text)
}

var boxSides = []string{"top", "right", "bottom", "left"}

// ExpandShorthand expands margin, padding, border-width, border-style and the
// border shorthands into longhand declarations. Other properties pass through.
func ExpandShorthand(property, value string, important bool) []Declaration {
	decl := func(p, v string) Declaration {
		return Declaration{Property: p, Value: v, Important: important}
	}

	switch property {
	case "margin", "padding":
		return expandSides(value, func(side string) string { return property + "-" + side }, decl)
	case "border-width":
		return expandSides(value, func(side string) string { return "border-" + side + "-width" }, decl)
	case "border-style":
		return expandSides(value, func(side string) string { return "border-" + side + "-style" }, decl)
	case "border":
		var out []Declaration
		for _, side := range boxSides {
			out = append(out, expandBorderSide(side, value, decl)...)
		}
		return out
	case "border-top", "border-right", "border-bottom", "border-left":
		return expandBorderSide(strings.TrimPrefix(property, "border-"), value, decl)
	}
	return []Declaration{decl(property, value)}
}

// expandSides applies the 1-4 value box shorthand rule.
func expandSides(value string, name func(string) string, decl func(string, string) Declaration) []Declaration {
	parts := strings.Fields(value)
	var vals [4]string
	switch len(parts) {
	case 1:
		vals = [4]string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		vals = [4]string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		vals = [4]string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		vals = [4]string{parts[0], parts[1], parts[2], parts[3]}
	default:
		return nil
	}
	out := make([]Declaration, 0, 4)
	for i, side := range boxSides {
		out = append(out, decl(name(side), vals[i]))
	}
	return out
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

// expandBorderSide splits "<width> <style> <color>" in any order.
func expandBorderSide(side, value string, decl func(string, string) Declaration) []Declaration {
	width, style, color := "medium", "none", "currentcolor"
	for _, part := range strings.Fields(value) {
		lower := strings.ToLower(part)
		switch {
		case borderStyles[lower]:
			style = lower
		case lower == "thin" || lower == "medium" || lower == "thick" || isLength(lower):
			width = lower
		default:
			color = part
		}
	}
	return []Declaration{
		decl("border-"+side+"-width", width),
		decl("border-"+side+"-style", style),
		decl("border-"+side+"-color", color),
	}
}

func isLength(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return isDigit(c) || ((c == '.' || c == '-' || c == '+') && len(s) > 1)
}
