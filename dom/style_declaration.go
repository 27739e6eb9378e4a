package dom

import (
	"strings"
)

// CSSStyleDeclaration is an element's inline style, kept in sync with its
// style attribute. Custom properties (--name) keep their case; other
// property names are lowercased and camelCase is converted to kebab-case.
type CSSStyleDeclaration struct {
	element *Element
	decls   []declaration
}

type declaration struct {
	name      string
	value     string
	important bool
}

// NewCSSStyleDeclaration creates the declaration block for element, read
// from its style attribute.
func NewCSSStyleDeclaration(element *Element) *CSSStyleDeclaration {
	sd := &CSSStyleDeclaration{element: element}
	sd.RefreshFromAttribute()
	return sd
}

func (sd *CSSStyleDeclaration) index(name string) int {
	for i, d := range sd.decls {
		if d.name == name {
			return i
		}
	}
	return -1
}

// CSSText serializes the block as "name: value; name: value".
func (sd *CSSStyleDeclaration) CSSText() string {
	var b strings.Builder
	for i, d := range sd.decls {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d.name)
		b.WriteString(": ")
		b.WriteString(d.value)
		if d.important {
			b.WriteString(" !important")
		}
	}
	return b.String()
}

// Length returns the number of properties set.
func (sd *CSSStyleDeclaration) Length() int {
	return len(sd.decls)
}

// GetPropertyValue returns the value of property, or "" when unset.
func (sd *CSSStyleDeclaration) GetPropertyValue(property string) string {
	if i := sd.index(normalizeCSSPropertyName(property)); i >= 0 {
		return sd.decls[i].value
	}
	return ""
}

// SetProperty sets property. An empty value removes it. A property that is
// already set keeps its position.
func (sd *CSSStyleDeclaration) SetProperty(property, value string, priority ...string) {
	name := normalizeCSSPropertyName(property)
	if name == "" {
		return
	}
	if value == "" {
		sd.RemoveProperty(name)
		return
	}

	d := declaration{
		name:      name,
		value:     value,
		important: len(priority) > 0 && strings.EqualFold(priority[0], "important"),
	}
	if i := sd.index(name); i >= 0 {
		sd.decls[i] = d
	} else {
		sd.decls = append(sd.decls, d)
	}
	sd.syncToAttribute()
}

// RemoveProperty removes property and returns its old value.
func (sd *CSSStyleDeclaration) RemoveProperty(property string) string {
	i := sd.index(normalizeCSSPropertyName(property))
	if i < 0 {
		return ""
	}
	old := sd.decls[i].value
	sd.decls = append(sd.decls[:i], sd.decls[i+1:]...)
	sd.syncToAttribute()
	return old
}

// PropertyNames returns the property names in declaration order.
func (sd *CSSStyleDeclaration) PropertyNames() []string {
	names := make([]string, len(sd.decls))
	for i, d := range sd.decls {
		names[i] = d.name
	}
	return names
}

// RefreshFromAttribute reloads the block from the element's style attribute.
func (sd *CSSStyleDeclaration) RefreshFromAttribute() {
	sd.decls = nil
	if sd.element == nil || !sd.element.HasAttribute("style") {
		return
	}
	for _, part := range splitDeclarations(sd.element.GetAttribute("style")) {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = normalizeCSSPropertyName(strings.TrimSpace(name))
		value = strings.TrimSpace(value)

		important := false
		if v, found := cutSuffixFold(value, "!important"); found {
			value, important = strings.TrimSpace(v), true
		}
		if name == "" || value == "" {
			continue
		}

		d := declaration{name: name, value: value, important: important}
		if i := sd.index(name); i >= 0 {
			sd.decls[i] = d
		} else {
			sd.decls = append(sd.decls, d)
		}
	}
}

// splitDeclarations splits on semicolons outside parentheses, so clamp()
// and calc() values stay whole.
func splitDeclarations(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func cutSuffixFold(s, suffix string) (string, bool) {
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return s[:len(s)-len(suffix)], true
	}
	return s, false
}

// syncToAttribute writes the block back to the style attribute without
// re-parsing it.
func (sd *CSSStyleDeclaration) syncToAttribute() {
	if sd.element == nil {
		return
	}
	if text := sd.CSSText(); text != "" {
		sd.element.attributes().set("style", text)
	} else {
		sd.element.attributes().remove("style")
	}
}

// normalizeCSSPropertyName lowercases name and converts camelCase to
// kebab-case ("backgroundColor" -> "background-color"). Custom properties
// are returned unchanged.
func normalizeCSSPropertyName(name string) string {
	if name == "" || strings.HasPrefix(name, "--") {
		return name
	}
	if strings.Contains(name, "-") {
		return strings.ToLower(name)
	}

	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
