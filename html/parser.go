// Package html parses HTML into a dom.Document using golang.org/x/net/html
// as the underlying parser implementation.
package html

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/dragbounds/dom"
)

// Parse parses HTML from a string and returns a document.
func Parse(htmlContent string) (*dom.Document, error) {
	return ParseReader(strings.NewReader(htmlContent))
}

// ParseReader parses HTML from an io.Reader and returns a document.
// The HTML5 tree builder always produces <html>, <head> and <body>.
func ParseReader(r io.Reader) (*dom.Document, error) {
	netNode, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := dom.NewDocument()
	if err := convertChildren(doc, doc.AsNode(), netNode); err != nil {
		return nil, err
	}
	return doc, nil
}

// convertChildren appends converted copies of n's children to parent.
// Doctype nodes are dropped.
func convertChildren(doc *dom.Document, parent *dom.Node, n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		var child *dom.Node
		switch c.Type {
		case html.ElementNode:
			el := doc.CreateElement(c.Data)
			for _, attr := range c.Attr {
				name := attr.Key
				if attr.Namespace != "" {
					name = attr.Namespace + ":" + attr.Key
				}
				el.SetAttribute(name, attr.Val)
			}
			child = el.AsNode()
			if c.DataAtom == atom.Template {
				// Template contents are inert; keep the element only.
				break
			}
			if err := convertChildren(doc, child, c); err != nil {
				return err
			}
		case html.TextNode:
			child = doc.CreateTextNode(c.Data)
		case html.CommentNode:
			child = doc.CreateComment(c.Data)
		default:
			continue
		}

		var err error
		if parent.NodeType() == dom.DocumentNode {
			_, err = doc.AppendChild(child)
		} else {
			_, err = parent.AppendChild(child)
		}
		if err != nil {
			return fmt.Errorf("build tree at <%s>: %w", c.Data, err)
		}
	}
	return nil
}
