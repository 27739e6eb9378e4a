package dom

// Attr represents an attribute of an Element.
type Attr struct {
	name  string
	value string
}

// Name returns the attribute name.
func (a *Attr) Name() string {
	return a.name
}

// Value returns the attribute value.
func (a *Attr) Value() string {
	return a.value
}

// attrList keeps an element's attributes in insertion order.
type attrList struct {
	attrs []*Attr
}

func (l *attrList) get(name string) *Attr {
	for _, a := range l.attrs {
		if a.name == name {
			return a
		}
	}
	return nil
}

func (l *attrList) has(name string) bool {
	return l.get(name) != nil
}

func (l *attrList) set(name, value string) {
	if a := l.get(name); a != nil {
		a.value = value
		return
	}
	l.attrs = append(l.attrs, &Attr{name: name, value: value})
}

func (l *attrList) remove(name string) bool {
	for i, a := range l.attrs {
		if a.name == name {
			l.attrs = append(l.attrs[:i], l.attrs[i+1:]...)
			return true
		}
	}
	return false
}

func (l *attrList) names() []string {
	names := make([]string, len(l.attrs))
	for i, a := range l.attrs {
		names[i] = a.name
	}
	return names
}
