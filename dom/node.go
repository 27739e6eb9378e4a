package dom

import (
	"strings"
)

// Node represents a node in the DOM tree. Document, Element and Text share
// this representation.
type Node struct {
	nodeType NodeType
	nodeName string
	ownerDoc *Document

	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Type-specific data (only one will be non-nil based on nodeType)
	elementData *elementData
	textData    *string
}

// ElementGeometry holds layout geometry for an element.
// Coordinates are the border box relative to the layout viewport.
type ElementGeometry struct {
	X, Y, Width, Height float64
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName        string
	tagName          string
	attributes       *attrList
	styleDeclaration *CSSStyleDeclaration

	// Layout geometry - set by whoever lays the document out
	geometry *ElementGeometry
}

func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of this node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of this node.
func (n *Node) NodeName() string {
	return n.nodeName
}

// OwnerDocument returns the Document that owns this node.
// For Document nodes, this returns nil.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent Element, or nil if the parent is not an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// NextSibling returns the next sibling node, or nil if this is the last child.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// ChildNodes returns a snapshot of the child nodes.
func (n *Node) ChildNodes() []*Node {
	var nodes []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		nodes = append(nodes, c)
	}
	return nodes
}

// IsConnected returns true if the node's root is a document.
func (n *Node) IsConnected() bool {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root.nodeType == DocumentNode
}

// contains reports whether other is n or one of its descendants.
func (n *Node) contains(other *Node) bool {
	for p := other; p != nil; p = p.parentNode {
		if p == n {
			return true
		}
	}
	return false
}

// NodeValue returns the text of a Text node and "" otherwise.
func (n *Node) NodeValue() string {
	if n.textData != nil {
		return *n.textData
	}
	return ""
}

// TextContent returns the text content of the node and its descendants.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode:
		return ""
	case TextNode:
		return n.NodeValue()
	default:
		var sb strings.Builder
		n.collectTextContent(&sb)
		return sb.String()
	}
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode:
			sb.WriteString(child.NodeValue())
		case ElementNode:
			child.collectTextContent(sb)
		}
	}
}

// SetTextContent replaces all children of an element with a single text node.
func (n *Node) SetTextContent(value string) {
	switch n.nodeType {
	case DocumentNode:
		return
	case TextNode:
		n.textData = &value
	default:
		for n.firstChild != nil {
			n.RemoveChild(n.firstChild)
		}
		if value != "" {
			n.AppendChild(n.ownerDoc.CreateTextNode(value))
		}
	}
}

// AppendChild adds a node to the end of the list of children of this node.
// For error-returning version, use AppendChildWithError.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a node to the end of the list of children of this node.
// Returns an error if the operation violates DOM hierarchy constraints.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrHierarchyRequest("The new child is null.")
	}
	if n.nodeType == TextNode {
		return nil, ErrHierarchyRequest("Text nodes cannot have children.")
	}
	if child.nodeType == DocumentNode {
		return nil, ErrHierarchyRequest("A document cannot be inserted.")
	}
	if child.contains(n) {
		return nil, ErrHierarchyRequest("The new child contains the parent.")
	}

	if child.parentNode != nil {
		child.parentNode.RemoveChild(child)
	}
	child.parentNode = n
	child.prevSibling = n.lastChild
	child.nextSibling = nil
	if n.lastChild != nil {
		n.lastChild.nextSibling = child
	} else {
		n.firstChild = child
	}
	n.lastChild = child
	return child, nil
}

// RemoveChild removes a child node from this node.
// For error-returning version, use RemoveChildWithError.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child node from this node.
// Returns NotFoundError if child is not a child of this node.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil || child.parentNode != n {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
	return child, nil
}
