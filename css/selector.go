// Package css parses and matches CSS selectors, parses author stylesheets
// and cascades them into per-element computed styles.
package css

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSelector is returned for selector strings that cannot be parsed.
var ErrInvalidSelector = errors.New("invalid selector")

// CSSSelector represents a parsed CSS selector list.
type CSSSelector struct {
	// A selector is a list of complex selectors separated by commas
	ComplexSelectors []*ComplexSelector
}

// ComplexSelector is a chain of compound selectors separated by combinators.
type ComplexSelector struct {
	Compounds []*CompoundSelector
}

// CompoundSelector is a sequence of simple selectors.
type CompoundSelector struct {
	TypeSelector      string // "" when absent, "*" for universal
	IDSelectors       []string
	ClassSelectors    []string
	AttributeMatchers []*AttributeMatcher
	PseudoClasses     []*PseudoClassSelector
	Combinator        CombinatorType // Combinator following this compound selector
}

// CombinatorType represents the type of combinator.
type CombinatorType int

const (
	CombinatorNone              CombinatorType = iota
	CombinatorDescendant                       // (whitespace)
	CombinatorChild                            // >
	CombinatorNextSibling                      // +
	CombinatorSubsequentSibling                // ~
)

// AttributeMatcher represents an attribute selector.
type AttributeMatcher struct {
	Name            string
	Operator        AttributeOperator
	Value           string
	CaseInsensitive bool
}

// AttributeOperator represents the operator in an attribute selector.
type AttributeOperator int

const (
	AttrExists    AttributeOperator = iota // [attr]
	AttrEquals                             // [attr=value]
	AttrIncludes                           // [attr~=value]
	AttrDashMatch                          // [attr|=value]
	AttrPrefix                             // [attr^=value]
	AttrSuffix                             // [attr$=value]
	AttrSubstring                          // [attr*=value]
)

// PseudoClassSelector represents a pseudo-class.
type PseudoClassSelector struct {
	Name     string
	Selector *CSSSelector // argument of :not()
}

var supportedPseudoClasses = map[string]bool{
	"not":         true,
	"root":        true,
	"first-child": true,
	"last-child":  true,
	"only-child":  true,
	"empty":       true,
}

// selectorParser is a byte scanner over a selector string.
type selectorParser struct {
	input string
	pos   int
}

// ParseSelector parses a CSS selector list.
func ParseSelector(input string) (*CSSSelector, error) {
	p := &selectorParser{input: input}
	sel, err := p.parseSelectorList()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.input[p.pos])
	}
	return sel, nil
}

// MustParseSelector is like ParseSelector but panics on error.
func MustParseSelector(input string) *CSSSelector {
	sel, err := ParseSelector(input)
	if err != nil {
		panic(err)
	}
	return sel
}

func (p *selectorParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w %q at offset %d: %s", ErrInvalidSelector, p.input, p.pos, fmt.Sprintf(format, args...))
}

func (p *selectorParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *selectorParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *selectorParser) skipWhitespace() bool {
	start := p.pos
	for !p.eof() && isWhitespace(p.input[p.pos]) {
		p.pos++
	}
	return p.pos > start
}

func (p *selectorParser) parseSelectorList() (*CSSSelector, error) {
	sel := &CSSSelector{}
	for {
		p.skipWhitespace()
		complex, err := p.parseComplexSelector()
		if err != nil {
			return nil, err
		}
		sel.ComplexSelectors = append(sel.ComplexSelectors, complex)
		p.skipWhitespace()
		if p.peek() != ',' {
			return sel, nil
		}
		p.pos++
	}
}

func (p *selectorParser) parseComplexSelector() (*ComplexSelector, error) {
	complex := &ComplexSelector{}
	for {
		compound, err := p.parseCompoundSelector()
		if err != nil {
			return nil, err
		}
		complex.Compounds = append(complex.Compounds, compound)

		hadWhitespace := p.skipWhitespace()
		switch c := p.peek(); c {
		case '>', '+', '~':
			p.pos++
			compound.Combinator = map[byte]CombinatorType{
				'>': CombinatorChild,
				'+': CombinatorNextSibling,
				'~': CombinatorSubsequentSibling,
			}[c]
			p.skipWhitespace()
		case 0, ',', ')':
			return complex, nil
		default:
			if !hadWhitespace {
				return nil, p.errorf("unexpected %q", c)
			}
			compound.Combinator = CombinatorDescendant
		}
	}
}

func (p *selectorParser) parseCompoundSelector() (*CompoundSelector, error) {
	compound := &CompoundSelector{}
	hasContent := false

	if p.peek() == '*' {
		p.pos++
		compound.TypeSelector = "*"
		hasContent = true
	} else if isNameStart(p.peek()) {
		compound.TypeSelector = strings.ToLower(p.consumeIdent())
		hasContent = true
	}

	for {
		switch p.peek() {
		case '#':
			p.pos++
			name := p.consumeName()
			if name == "" {
				return nil, p.errorf("expected id after '#'")
			}
			compound.IDSelectors = append(compound.IDSelectors, name)
		case '.':
			p.pos++
			if !isNameStart(p.peek()) {
				return nil, p.errorf("expected class name after '.'")
			}
			compound.ClassSelectors = append(compound.ClassSelectors, p.consumeIdent())
		case '[':
			attr, err := p.parseAttributeSelector()
			if err != nil {
				return nil, err
			}
			compound.AttributeMatchers = append(compound.AttributeMatchers, attr)
		case ':':
			pc, err := p.parsePseudoClass()
			if err != nil {
				return nil, err
			}
			compound.PseudoClasses = append(compound.PseudoClasses, pc)
		default:
			if !hasContent {
				return nil, p.errorf("expected selector")
			}
			return compound, nil
		}
		hasContent = true
	}
}

func (p *selectorParser) parseAttributeSelector() (*AttributeMatcher, error) {
	p.pos++ // [
	p.skipWhitespace()
	if !isNameStart(p.peek()) {
		return nil, p.errorf("expected attribute name")
	}
	attr := &AttributeMatcher{Name: strings.ToLower(p.consumeIdent())}
	p.skipWhitespace()

	if p.peek() == ']' {
		p.pos++
		attr.Operator = AttrExists
		return attr, nil
	}

	switch {
	case p.peek() == '=':
		p.pos++
		attr.Operator = AttrEquals
	case strings.HasPrefix(p.input[p.pos:], "~="):
		attr.Operator = AttrIncludes
		p.pos += 2
	case strings.HasPrefix(p.input[p.pos:], "|="):
		attr.Operator = AttrDashMatch
		p.pos += 2
	case strings.HasPrefix(p.input[p.pos:], "^="):
		attr.Operator = AttrPrefix
		p.pos += 2
	case strings.HasPrefix(p.input[p.pos:], "$="):
		attr.Operator = AttrSuffix
		p.pos += 2
	case strings.HasPrefix(p.input[p.pos:], "*="):
		attr.Operator = AttrSubstring
		p.pos += 2
	default:
		return nil, p.errorf("expected attribute operator")
	}

	p.skipWhitespace()
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		value, err := p.consumeString()
		if err != nil {
			return nil, err
		}
		attr.Value = value
	case isNameStart(c) || isDigit(c):
		attr.Value = p.consumeName()
	default:
		return nil, p.errorf("expected attribute value")
	}

	p.skipWhitespace()
	if c := p.peek(); c == 'i' || c == 'I' {
		attr.CaseInsensitive = true
		p.pos++
	} else if c == 's' || c == 'S' {
		p.pos++
	}
	p.skipWhitespace()
	if p.peek() != ']' {
		return nil, p.errorf("unterminated attribute selector")
	}
	p.pos++
	return attr, nil
}

func (p *selectorParser) parsePseudoClass() (*PseudoClassSelector, error) {
	p.pos++ // :
	if p.peek() == ':' {
		return nil, p.errorf("pseudo-elements never match elements")
	}
	if !isNameStart(p.peek()) {
		return nil, p.errorf("expected pseudo-class name")
	}
	pc := &PseudoClassSelector{Name: strings.ToLower(p.consumeIdent())}
	if !supportedPseudoClasses[pc.Name] {
		return nil, p.errorf("unsupported pseudo-class :%s", pc.Name)
	}

	if pc.Name != "not" {
		return pc, nil
	}
	if p.peek() != '(' {
		return nil, p.errorf(":not requires an argument")
	}
	p.pos++
	inner, err := p.parseSelectorList()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.peek() != ')' {
		return nil, p.errorf("unterminated :not()")
	}
	p.pos++
	pc.Selector = inner
	return pc, nil
}

// consumeIdent reads an identifier. The caller has checked isNameStart.
func (p *selectorParser) consumeIdent() string {
	return p.consumeName()
}

// consumeName reads name code points and escapes.
func (p *selectorParser) consumeName() string {
	var sb strings.Builder
	for !p.eof() {
		c := p.input[p.pos]
		switch {
		case c == '\\':
			p.pos++
			sb.WriteString(p.consumeEscape())
		case isNameChar(c):
			sb.WriteByte(c)
			p.pos++
		default:
			return sb.String()
		}
	}
	return sb.String()
}

// consumeEscape reads the escape body after a backslash.
func (p *selectorParser) consumeEscape() string {
	if p.eof() {
		return "\uFFFD"
	}
	start := p.pos
	for p.pos < len(p.input) && p.pos-start < 6 && isHexDigit(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		c := p.input[p.pos]
		p.pos++
		return string(c)
	}
	code, _ := strconv.ParseUint(p.input[start:p.pos], 16, 32)
	if !p.eof() && isWhitespace(p.input[p.pos]) {
		p.pos++
	}
	if code == 0 || code > 0x10FFFF {
		return "\uFFFD"
	}
	return string(rune(code))
}

func (p *selectorParser) consumeString() (string, error) {
	quote := p.input[p.pos]
	p.pos++
	var sb strings.Builder
	for !p.eof() {
		c := p.input[p.pos]
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil
		case '\\':
			p.pos++
			sb.WriteString(p.consumeEscape())
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated string")
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '-' || c == '\\' || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

// Specificity represents CSS selector specificity.
type Specificity struct {
	A int // ID selectors
	B int // Class selectors, attribute selectors, pseudo-classes
	C int // Type selectors
}

// Compare compares two specificities. Returns -1, 0, or 1.
func (s Specificity) Compare(other Specificity) int {
	switch {
	case s.A != other.A:
		return cmpInt(s.A, other.A)
	case s.B != other.B:
		return cmpInt(s.B, other.B)
	default:
		return cmpInt(s.C, other.C)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Less returns true if this specificity is less than the other.
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

// CalculateSpecificity calculates the specificity of a complex selector.
// :not() contributes the specificity of its most specific argument.
func (cs *ComplexSelector) CalculateSpecificity() Specificity {
	var spec Specificity
	for _, compound := range cs.Compounds {
		spec.A += len(compound.IDSelectors)
		spec.B += len(compound.ClassSelectors) + len(compound.AttributeMatchers)
		for _, pc := range compound.PseudoClasses {
			if pc.Selector == nil {
				spec.B++
				continue
			}
			inner := pc.Selector.CalculateSpecificity()
			spec.A += inner.A
			spec.B += inner.B
			spec.C += inner.C
		}
		if compound.TypeSelector != "" && compound.TypeSelector != "*" {
			spec.C++
		}
	}
	return spec
}

// CalculateSpecificity returns the maximum specificity of any complex selector.
func (s *CSSSelector) CalculateSpecificity() Specificity {
	var maxSpec Specificity
	for _, cs := range s.ComplexSelectors {
		if spec := cs.CalculateSpecificity(); maxSpec.Less(spec) {
			maxSpec = spec
		}
	}
	return maxSpec
}
