package dom

import "strings"

// Document represents the entire HTML document.
type Document Node

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// CreateElement creates a new element with the given tag name.
func (d *Document) CreateElement(tagName string) *Element {
	localName := strings.ToLower(tagName)
	node := newNode(ElementNode, strings.ToUpper(localName), d)
	node.elementData = &elementData{
		localName: localName,
		tagName:   strings.ToUpper(localName),
	}
	return (*Element)(node)
}

// CreateTextNode creates a new Text node.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.textData = &data
	return node
}

// AppendChild appends a child node to the document.
func (d *Document) AppendChild(child *Node) *Node {
	return d.AsNode().AppendChild(child)
}

// DocumentElement returns the root element.
func (d *Document) DocumentElement() *Element {
	for c := d.AsNode().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

// Body returns the body element, or nil.
func (d *Document) Body() *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for _, child := range root.Children() {
		if child.LocalName() == "body" {
			return child
		}
	}
	return nil
}

// GetElementById returns the first element in tree order with the given id.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	d.Walk(func(el *Element) bool {
		if el.Id() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// Walk visits every element in tree order until fn returns false.
func (d *Document) Walk(fn func(*Element) bool) {
	walkElements(d.AsNode(), fn)
}

func walkElements(n *Node, fn func(*Element) bool) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType != ElementNode {
			continue
		}
		if !fn((*Element)(c)) {
			return false
		}
		if !walkElements(c, fn) {
			return false
		}
	}
	return true
}
