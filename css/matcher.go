package css

import (
	"strings"

	"github.com/chrisuehlinger/dragbounds/dom"
)

// MatchElement tests if a selector matches an element.
func (s *CSSSelector) MatchElement(el *dom.Element) bool {
	for _, cs := range s.ComplexSelectors {
		if cs.MatchElement(el) {
			return true
		}
	}
	return false
}

// MatchElement tests if a complex selector matches an element, walking the
// compounds right to left.
func (cs *ComplexSelector) MatchElement(el *dom.Element) bool {
	if len(cs.Compounds) == 0 {
		return false
	}
	last := len(cs.Compounds) - 1
	if !cs.Compounds[last].MatchElement(el) {
		return false
	}
	return cs.matchFrom(last-1, el)
}

// matchFrom matches compounds[0..i] against the context of el, backtracking
// over descendant and subsequent-sibling combinators.
func (cs *ComplexSelector) matchFrom(i int, el *dom.Element) bool {
	if i < 0 {
		return true
	}
	compound := cs.Compounds[i]

	switch compound.Combinator {
	case CombinatorDescendant:
		for anc := el.ParentElement(); anc != nil; anc = anc.ParentElement() {
			if compound.MatchElement(anc) && cs.matchFrom(i-1, anc) {
				return true
			}
		}
		return false

	case CombinatorChild:
		parent := el.ParentElement()
		return parent != nil && compound.MatchElement(parent) && cs.matchFrom(i-1, parent)

	case CombinatorNextSibling:
		prev := previousElementSibling(el)
		return prev != nil && compound.MatchElement(prev) && cs.matchFrom(i-1, prev)

	case CombinatorSubsequentSibling:
		for prev := previousElementSibling(el); prev != nil; prev = previousElementSibling(prev) {
			if compound.MatchElement(prev) && cs.matchFrom(i-1, prev) {
				return true
			}
		}
		return false
	}
	return false
}

// MatchElement tests if every simple selector in the compound matches.
func (c *CompoundSelector) MatchElement(el *dom.Element) bool {
	if c.TypeSelector != "" && c.TypeSelector != "*" && !strings.EqualFold(el.LocalName(), c.TypeSelector) {
		return false
	}
	for _, id := range c.IDSelectors {
		if el.Id() != id {
			return false
		}
	}
	for _, class := range c.ClassSelectors {
		if !el.HasClass(class) {
			return false
		}
	}
	for _, attr := range c.AttributeMatchers {
		if !matchAttributeSelector(attr, el) {
			return false
		}
	}
	for _, pc := range c.PseudoClasses {
		if !matchPseudoClass(pc, el) {
			return false
		}
	}
	return true
}

func matchAttributeSelector(attr *AttributeMatcher, el *dom.Element) bool {
	if !el.HasAttribute(attr.Name) {
		return false
	}
	if attr.Operator == AttrExists {
		return true
	}

	attrValue := el.GetAttribute(attr.Name)
	matchValue := attr.Value
	if attr.CaseInsensitive {
		attrValue = strings.ToLower(attrValue)
		matchValue = strings.ToLower(matchValue)
	}

	switch attr.Operator {
	case AttrEquals:
		return attrValue == matchValue
	case AttrIncludes:
		for _, word := range strings.Fields(attrValue) {
			if word == matchValue {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return attrValue == matchValue || strings.HasPrefix(attrValue, matchValue+"-")
	case AttrPrefix:
		return matchValue != "" && strings.HasPrefix(attrValue, matchValue)
	case AttrSuffix:
		return matchValue != "" && strings.HasSuffix(attrValue, matchValue)
	case AttrSubstring:
		return matchValue != "" && strings.Contains(attrValue, matchValue)
	}
	return false
}

func matchPseudoClass(pc *PseudoClassSelector, el *dom.Element) bool {
	switch pc.Name {
	case "root":
		parent := el.ParentNode()
		return parent != nil && parent.NodeType() == dom.DocumentNode
	case "empty":
		for c := el.AsNode().FirstChild(); c != nil; c = c.NextSibling() {
			if c.NodeType() == dom.ElementNode || (c.NodeType() == dom.TextNode && c.NodeValue() != "") {
				return false
			}
		}
		return true
	case "first-child":
		return previousElementSibling(el) == nil
	case "last-child":
		return nextElementSibling(el) == nil
	case "only-child":
		return previousElementSibling(el) == nil && nextElementSibling(el) == nil
	case "not":
		return pc.Selector != nil && !pc.Selector.MatchElement(el)
	}
	return false
}

func previousElementSibling(el *dom.Element) *dom.Element {
	for n := el.AsNode().PreviousSibling(); n != nil; n = n.PreviousSibling() {
		if n.NodeType() == dom.ElementNode {
			return n.AsElement()
		}
	}
	return nil
}

func nextElementSibling(el *dom.Element) *dom.Element {
	for n := el.AsNode().NextSibling(); n != nil; n = n.NextSibling() {
		if n.NodeType() == dom.ElementNode {
			return n.AsElement()
		}
	}
	return nil
}

// Matches parses selectorStr and tests it against el, the Element.matches()
// operation.
func Matches(el *dom.Element, selectorStr string) (bool, error) {
	selector, err := ParseSelector(selectorStr)
	if err != nil {
		return false, err
	}
	return selector.MatchElement(el), nil
}

// QuerySelector returns the first descendant of root in tree order matching
// the selector, or nil.
func QuerySelector(root *dom.Node, selectorStr string) (*dom.Element, error) {
	selector, err := ParseSelector(selectorStr)
	if err != nil {
		return nil, err
	}
	var found *dom.Element
	dom.Walk(root, func(el *dom.Element) bool {
		if selector.MatchElement(el) {
			found = el
			return false
		}
		return true
	})
	return found, nil
}

// QuerySelectorAll returns all descendants of root matching the selector.
func QuerySelectorAll(root *dom.Node, selectorStr string) ([]*dom.Element, error) {
	selector, err := ParseSelector(selectorStr)
	if err != nil {
		return nil, err
	}
	var results []*dom.Element
	dom.Walk(root, func(el *dom.Element) bool {
		if selector.MatchElement(el) {
			results = append(results, el)
		}
		return true
	})
	return results, nil
}
