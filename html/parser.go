// Package html builds a dom.Document from HTML markup using
// golang.org/x/net/html as the underlying parser.
//
// There is no layout engine behind the document. Element boxes come from
// a data-rect="left top width height" attribute on the element, in pixels
// relative to the layout viewport; elements without one have no box.
package html

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/anchorpos/dom"
)

// RectAttr is the attribute holding an element's box.
const RectAttr = "data-rect"

// Parse parses HTML from a string.
func Parse(htmlContent string) (*dom.Document, error) {
	return ParseReader(strings.NewReader(htmlContent))
}

// ParseReader parses HTML from an io.Reader.
func ParseReader(r io.Reader) (*dom.Document, error) {
	netNode, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	doc := dom.NewDocument()
	for c := netNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		root, err := convertElement(doc, c)
		if err != nil {
			return nil, err
		}
		doc.AppendChild(root.AsNode())
	}
	return doc, nil
}

// convertElement converts n and its subtree. Comments and doctypes are
// dropped; nothing in a document without layout observes them.
func convertElement(doc *dom.Document, n *html.Node) (*dom.Element, error) {
	el := doc.CreateElement(n.Data)
	for _, attr := range n.Attr {
		if attr.Namespace != "" {
			continue
		}
		// The tokenizer accepts attribute names the DOM rejects; drop them.
		_ = el.SetAttributeWithError(attr.Key, attr.Val)
	}
	if v := el.GetAttribute(RectAttr); v != "" {
		g, err := ParseRect(v)
		if err != nil {
			return nil, fmt.Errorf("html: <%s id=%q>: %w", n.Data, el.Id(), err)
		}
		el.SetGeometry(&g)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			child, err := convertElement(doc, c)
			if err != nil {
				return nil, err
			}
			el.AppendChild(child)
		case html.TextNode:
			el.AsNode().AppendChild(doc.CreateTextNode(c.Data))
		}
	}
	return el, nil
}

// ParseRect parses a data-rect value: four numbers, left top width height,
// separated by spaces or commas. A px unit on each number is allowed.
func ParseRect(s string) (dom.ElementGeometry, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return dom.ElementGeometry{}, fmt.Errorf("bad %s %q: want left top width height", RectAttr, s)
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		if err != nil {
			return dom.ElementGeometry{}, fmt.Errorf("bad %s %q: %w", RectAttr, s, err)
		}
		v[i] = n
	}
	if v[2] < 0 || v[3] < 0 {
		return dom.ElementGeometry{}, fmt.Errorf("bad %s %q: negative size", RectAttr, s)
	}
	return dom.ElementGeometry{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// Script is a classic script element: external when Src is set, inline
// otherwise.
type Script struct {
	Src  string
	Text string
}

// Scripts returns the document's classic scripts in document order.
// Scripts with a non-JavaScript type are skipped.
func Scripts(doc *dom.Document) []Script {
	var out []Script
	doc.Walk(func(el *dom.Element) bool {
		if atom.Lookup([]byte(el.LocalName())) != atom.Script {
			return true
		}
		switch strings.ToLower(strings.TrimSpace(el.GetAttribute("type"))) {
		case "", "text/javascript", "application/javascript":
			out = append(out, Script{Src: strings.TrimSpace(el.GetAttribute("src")), Text: el.TextContent()})
		}
		return true
	})
	return out
}
