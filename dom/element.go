package dom

import (
	"strings"
)

// PositionCheckAttr marks an element that is being measured for
// positioning. The user-agent rules treat a hidden element carrying it as
// rendered, so it has a box while keeping its other styling.
const PositionCheckAttr = "data-position-check"

// Element represents an element in the DOM.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// TagName returns the uppercased tag name.
func (e *Element) TagName() string {
	return e.AsNode().elementData.tagName
}

// LocalName returns the lowercased local name.
func (e *Element) LocalName() string {
	return e.AsNode().elementData.localName
}

// Id returns the element's id attribute.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// SetId sets the element's id attribute.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

func (e *Element) attributes() *attrList {
	data := e.AsNode().elementData
	if data.attributes == nil {
		data.attributes = &attrList{}
	}
	return data.attributes
}

// AttributeNames returns the attribute names in insertion order.
func (e *Element) AttributeNames() []string {
	return e.attributes().names()
}

// GetAttribute returns the value of the attribute with the given name.
// The name is lowercased before lookup.
func (e *Element) GetAttribute(name string) string {
	if a := e.attributes().get(strings.ToLower(name)); a != nil {
		return a.value
	}
	return ""
}

// SetAttribute sets the value of the attribute with the given name.
func (e *Element) SetAttribute(name, value string) {
	e.SetAttributeWithError(name, value)
}

// SetAttributeWithError sets the value of the attribute with the given name.
// Returns an error if the name is invalid.
func (e *Element) SetAttributeWithError(name, value string) error {
	if !IsValidAttributeLocalName(name) {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}
	name = strings.ToLower(name)
	e.attributes().set(name, value)

	if name == "style" && e.AsNode().elementData.styleDeclaration != nil {
		e.AsNode().elementData.styleDeclaration.RefreshFromAttribute()
	}
	return nil
}

// IsValidAttributeLocalName checks if a string is a valid attribute local name.
// A string is valid if its length is at least 1 and it does not contain
// ASCII whitespace, U+0000 NULL, "/", "=" or ">".
func IsValidAttributeLocalName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		if r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r' {
			return false
		}
		if r == '\x00' || r == '/' || r == '=' || r == '>' {
			return false
		}
	}
	return true
}

// HasAttribute returns true if the element has the given attribute.
func (e *Element) HasAttribute(name string) bool {
	return e.attributes().has(strings.ToLower(name))
}

// RemoveAttribute removes the attribute with the given name.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	if e.attributes().remove(name) && name == "style" && e.AsNode().elementData.styleDeclaration != nil {
		e.AsNode().elementData.styleDeclaration.RefreshFromAttribute()
	}
}

// ToggleAttribute toggles the presence of an attribute.
// If force is provided, it forces add (true) or remove (false).
// Returns true if the attribute is present after the operation.
func (e *Element) ToggleAttribute(name string, force ...bool) bool {
	result, _ := e.ToggleAttributeWithError(name, force...)
	return result
}

// ToggleAttributeWithError toggles the presence of an attribute.
// Returns an error if the name is invalid.
func (e *Element) ToggleAttributeWithError(name string, force ...bool) (bool, error) {
	if !IsValidAttributeLocalName(name) {
		return false, ErrInvalidCharacter("The string contains invalid characters.")
	}
	name = strings.ToLower(name)
	has := e.attributes().has(name)

	if len(force) > 0 {
		if force[0] {
			if !has {
				e.attributes().set(name, "")
			}
			return true, nil
		}
		if has {
			e.attributes().remove(name)
		}
		return false, nil
	}

	if has {
		e.attributes().remove(name)
		return false, nil
	}
	e.attributes().set(name, "")
	return true, nil
}

// Children returns the element children of this element.
func (e *Element) Children() []*Element {
	var children []*Element
	for _, c := range e.AsNode().ChildNodes() {
		if c.nodeType == ElementNode {
			children = append(children, (*Element)(c))
		}
	}
	return children
}

// ParentElement returns the parent element, or nil.
func (e *Element) ParentElement() *Element {
	return e.AsNode().ParentElement()
}

// AppendChild appends child to this element and returns it.
func (e *Element) AppendChild(child *Element) *Element {
	if n := e.AsNode().AppendChild(child.AsNode()); n != nil {
		return (*Element)(n)
	}
	return nil
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	if p := e.AsNode().parentNode; p != nil {
		p.RemoveChild(e.AsNode())
	}
}

// TextContent returns the text content of the element.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent replaces the element's children with text.
func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

// Style returns the CSSStyleDeclaration for this element's inline styles.
func (e *Element) Style() *CSSStyleDeclaration {
	data := e.AsNode().elementData
	if data.styleDeclaration == nil {
		data.styleDeclaration = NewCSSStyleDeclaration(e)
	}
	return data.styleDeclaration
}

// Geometry returns the element's layout geometry.
// Returns nil if layout has not been computed.
func (e *Element) Geometry() *ElementGeometry {
	return e.AsNode().elementData.geometry
}

// SetGeometry sets the element's layout geometry.
func (e *Element) SetGeometry(g *ElementGeometry) {
	e.AsNode().elementData.geometry = g
}

// IsRendered reports whether the element currently generates a box: it is
// connected, has geometry, and neither it nor an ancestor is hidden, unless
// the hidden element carries PositionCheckAttr.
func (e *Element) IsRendered() bool {
	if !e.AsNode().IsConnected() || e.Geometry() == nil {
		return false
	}
	for p := e; p != nil; p = p.ParentElement() {
		if p.HasAttribute("hidden") && !p.HasAttribute(PositionCheckAttr) {
			return false
		}
	}
	return true
}

// GetBoundingClientRect returns a DOMRect representing the element's border box.
// Elements that are not rendered return a zero-sized rect.
func (e *Element) GetBoundingClientRect() *DOMRect {
	if !e.IsRendered() {
		return NewDOMRect(0, 0, 0, 0)
	}
	geom := e.Geometry()
	return NewDOMRect(geom.X, geom.Y, geom.Width, geom.Height)
}
