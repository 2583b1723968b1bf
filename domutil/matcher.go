// Package domutil provides the DOM helpers a draggable component needs:
// selector matching along an element's ancestor chain, computed size
// reads, and the drag-bounds envelope with position clamping.
package domutil

import (
	"errors"
)

// ErrUnsupportedCapability is returned when a node exposes none of the
// selector matching capabilities in SelectorCapabilities.
var ErrUnsupportedCapability = errors.New("domutil: no selector matching capability")

// SelectorCapabilities lists the equivalent selector matching methods in the
// order they are tried.
var SelectorCapabilities = []string{
	"matches",
	"webkitMatchesSelector",
	"mozMatchesSelector",
	"msMatchesSelector",
	"oMatchesSelector",
}

// SelectorFunc tests a selector against the node it was obtained from.
type SelectorFunc func(selector string) (bool, error)

// Node is the view of a DOM node the ancestor matcher walks. Implementations
// must be comparable so that a node can be checked against a boundary.
type Node interface {
	// ParentNode returns the parent, or nil at the root.
	ParentNode() Node
	// SelectorCapability returns the named selector matching method.
	SelectorCapability(name string) (SelectorFunc, bool)
}

// DiscoverSelectorCapability returns the first entry of SelectorCapabilities
// that n exposes.
func DiscoverSelectorCapability(n Node) (string, error) {
	if n == nil {
		return "", ErrUnsupportedCapability
	}
	for _, name := range SelectorCapabilities {
		if _, ok := n.SelectorCapability(name); ok {
			return name, nil
		}
	}
	return "", ErrUnsupportedCapability
}

// MatchesSelectorAndParentsTo reports whether el, or any ancestor up to and
// including boundary, matches selector. A nil boundary searches to the root.
// It returns false when no selector capability is available or the selector
// cannot be evaluated.
func MatchesSelectorAndParentsTo(el Node, selector string, boundary Node) bool {
	ok, _ := MatchSelectorAndParentsTo(el, selector, boundary)
	return ok
}

// MatchSelectorAndParentsTo is MatchesSelectorAndParentsTo reporting why a
// walk could not be performed. The capability is discovered once, on el.
// Ancestors that do not expose it, such as the document, never match.
func MatchSelectorAndParentsTo(el Node, selector string, boundary Node) (bool, error) {
	capability, err := DiscoverSelectorCapability(el)
	if err != nil {
		return false, err
	}

	for node := el; node != nil; node = node.ParentNode() {
		if test, ok := node.SelectorCapability(capability); ok {
			matched, err := test(selector)
			if err != nil {
				return false, err
			}
			if matched {
				return true, nil
			}
		}
		if boundary != nil && node == boundary {
			return false, nil
		}
	}
	return false, nil
}
