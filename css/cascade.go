package css

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/chrisuehlinger/dragbounds/dom"
)

// DefaultFontSize is the initial font-size in pixels.
const DefaultFontSize = 16.0

// initialValues holds the initial computed value of the properties the box
// model reads. Unlisted properties default to "".
var initialValues = map[string]string{
	"display":   "inline",
	"position":  "static",
	"width":     "auto",
	"height":    "auto",
	"font-size": "16px",
}

func init() {
	for _, side := range boxSides {
		initialValues["margin-"+side] = "0px"
		initialValues["padding-"+side] = "0px"
		initialValues["border-"+side+"-width"] = "medium"
		initialValues["border-"+side+"-style"] = "none"
	}
}

// matchedDeclaration is a declaration tagged with its cascade position.
type matchedDeclaration struct {
	Declaration
	userAgent   bool
	inline      bool
	specificity Specificity
	order       int
}

// StyleResolver cascades user-agent and author stylesheets and inline style
// into ComputedStyles.
type StyleResolver struct {
	userAgentSheets []*Stylesheet
	authorSheets    []*Stylesheet
}

// NewStyleResolver creates a resolver with no stylesheets.
func NewStyleResolver() *StyleResolver {
	return &StyleResolver{}
}

// NewStyleResolverForDocument creates a resolver loaded with the default
// user-agent stylesheet and the text of every <style> element in the
// document, in tree order.
func NewStyleResolverForDocument(doc *dom.Document) *StyleResolver {
	sr := NewStyleResolver()
	sr.AddUserAgentStylesheet(UserAgentStylesheet())
	for _, el := range doc.GetElementsByTagName("style") {
		sr.AddAuthorStylesheet(ParseStylesheet(el.AsNode().TextContent()))
	}
	return sr
}

// AddUserAgentStylesheet appends a stylesheet to the user-agent origin.
func (sr *StyleResolver) AddUserAgentStylesheet(ss *Stylesheet) {
	sr.userAgentSheets = append(sr.userAgentSheets, ss)
}

// AddAuthorStylesheet appends an author stylesheet.
func (sr *StyleResolver) AddAuthorStylesheet(ss *Stylesheet) {
	sr.authorSheets = append(sr.authorSheets, ss)
}

// collectDeclarations gathers matching user-agent and author declarations
// followed by the element's inline declarations.
func (sr *StyleResolver) collectDeclarations(el *dom.Element) []matchedDeclaration {
	var matched []matchedDeclaration
	order := 0
	collect := func(sheets []*Stylesheet, userAgent bool) {
		for _, ss := range sheets {
			for _, rule := range ss.Rules {
				spec, ok := matchRule(rule, el)
				if !ok {
					continue
				}
				for _, decl := range rule.Declarations {
					matched = append(matched, matchedDeclaration{
						Declaration: decl,
						userAgent:   userAgent,
						specificity: spec,
						order:       order,
					})
					order++
				}
			}
		}
	}
	collect(sr.userAgentSheets, true)
	collect(sr.authorSheets, false)

	inline := el.Style()
	for _, prop := range inline.PropertyNames() {
		for _, decl := range ExpandShorthand(prop, inline.GetPropertyValue(prop), inline.GetPropertyPriority(prop) == "important") {
			matched = append(matched, matchedDeclaration{Declaration: decl, inline: true, order: order})
			order++
		}
	}
	return matched
}

// matchRule returns the specificity of the most specific complex selector of
// the rule that matches el.
func matchRule(rule *Rule, el *dom.Element) (Specificity, bool) {
	var best Specificity
	found := false
	for _, cs := range rule.Selector.ComplexSelectors {
		if !cs.MatchElement(el) {
			continue
		}
		if spec := cs.CalculateSpecificity(); !found || best.Less(spec) {
			best = spec
		}
		found = true
	}
	return best, found
}

// cascadeLayer orders user agent < normal author < inline < important author
// < important inline. User-agent !important is not honoured.
func cascadeLayer(d matchedDeclaration) int {
	if d.userAgent {
		return 0
	}
	layer := 1
	if d.inline {
		layer = 2
	}
	if d.Important {
		layer += 2
	}
	return layer
}

func sortByPrecedence(decls []matchedDeclaration) {
	sort.SliceStable(decls, func(i, j int) bool {
		a, b := decls[i], decls[j]
		if la, lb := cascadeLayer(a), cascadeLayer(b); la != lb {
			return la < lb
		}
		if cmp := a.specificity.Compare(b.specificity); cmp != 0 {
			return cmp < 0
		}
		return a.order < b.order
	})
}

// ResolveStyles computes the style for an element. parent supplies the
// inherited font-size used to resolve em units; it may be nil.
func (sr *StyleResolver) ResolveStyles(el *dom.Element, parent *ComputedStyle) *ComputedStyle {
	decls := sr.collectDeclarations(el)
	sortByPrecedence(decls)

	specified := make(map[string]string, len(decls))
	for _, d := range decls {
		specified[d.Property] = d.Value
	}

	parentFont := DefaultFontSize
	if parent != nil {
		parentFont = parent.FontSize()
	}
	cs := NewComputedStyle(el)

	fontSize := parentFont
	if v, ok := specified["font-size"]; ok {
		if px, ok := resolveLength(v, parentFont); ok {
			fontSize = px
		}
	}
	cs.values["font-size"] = FormatPx(fontSize)

	for prop, value := range specified {
		if prop == "font-size" {
			continue
		}
		if px, ok := resolveLength(value, fontSize); ok {
			value = FormatPx(px)
		}
		cs.values[prop] = value
	}

	for _, side := range boxSides {
		widthProp := "border-" + side + "-width"
		style := cs.GetPropertyValue("border-" + side + "-style")
		if style == "none" || style == "hidden" {
			cs.values[widthProp] = "0px"
			continue
		}
		switch cs.GetPropertyValue(widthProp) {
		case "thin":
			cs.values[widthProp] = "1px"
		case "medium":
			cs.values[widthProp] = "3px"
		case "thick":
			cs.values[widthProp] = "5px"
		}
	}
	return cs
}

// ComputedStyle holds the computed values of an element's properties.
type ComputedStyle struct {
	element *dom.Element
	values  map[string]string
}

// NewComputedStyle creates an empty computed style for an element.
func NewComputedStyle(el *dom.Element) *ComputedStyle {
	return &ComputedStyle{element: el, values: make(map[string]string)}
}

// Element returns the element this style applies to.
func (cs *ComputedStyle) Element() *dom.Element {
	return cs.element
}

// GetPropertyValue returns the computed value of a property, falling back to
// its initial value.
func (cs *ComputedStyle) GetPropertyValue(property string) string {
	property = strings.ToLower(property)
	if v, ok := cs.values[property]; ok {
		return v
	}
	return initialValues[property]
}

// SetPropertyValue overrides a computed value. The layout engine uses it to
// publish used widths and heights.
func (cs *ComputedStyle) SetPropertyValue(property, value string) {
	cs.values[strings.ToLower(property)] = value
}

// GetLength returns a pixel property value, or 0 for keywords, percentages
// and unparseable values.
func (cs *ComputedStyle) GetLength(property string) float64 {
	if px, ok := ParsePx(cs.GetPropertyValue(property)); ok {
		return px
	}
	return 0
}

// FontSize returns the computed font-size in pixels.
func (cs *ComputedStyle) FontSize() float64 {
	if px, ok := ParsePx(cs.GetPropertyValue("font-size")); ok {
		return px
	}
	return DefaultFontSize
}

// ParsePx parses an absolute "<n>px" value (or a bare 0).
func ParsePx(value string) (float64, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "0" {
		return 0, true
	}
	num, ok := strings.CutSuffix(value, "px")
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParsePercent parses a "<n>%" value.
func ParsePercent(value string) (float64, bool) {
	num, ok := strings.CutSuffix(strings.TrimSpace(value), "%")
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// resolveLength converts absolute and font-relative lengths to pixels.
// Percentages, keywords and unknown units are left to the caller.
func resolveLength(value string, fontSize float64) (float64, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "0" {
		return 0, true
	}
	units := []struct {
		suffix string
		factor float64
	}{
		{"px", 1},
		{"rem", DefaultFontSize},
		{"em", fontSize},
		{"pt", 4.0 / 3.0},
		{"pc", 16},
		{"in", 96},
		{"cm", 96 / 2.54},
		{"mm", 96 / 25.4},
	}
	for _, u := range units {
		num, ok := strings.CutSuffix(value, u.suffix)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		return f * u.factor, true
	}
	return 0, false
}

// FormatPx renders a pixel length the way getComputedStyle does.
func FormatPx(px float64) string {
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return "0px"
	}
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}
