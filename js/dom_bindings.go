package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/anchorpos/dom"
)

// DOMBinder provides methods to bind DOM objects to JavaScript.
type DOMBinder struct {
	runtime  *Runtime
	nodeMap  map[*dom.Node]*goja.Object // Same JS object for the same DOM node
	document *dom.Document
	jsDoc    *goja.Object
}

// NewDOMBinder creates a new DOM binder for the given runtime.
func NewDOMBinder(runtime *Runtime) *DOMBinder {
	return &DOMBinder{
		runtime: runtime,
		nodeMap: make(map[*dom.Node]*goja.Object),
	}
}

// BindDocument creates the document object.
func (b *DOMBinder) BindDocument(doc *dom.Document) *goja.Object {
	vm := b.runtime.vm
	b.document = doc
	jsDoc := vm.NewObject()
	b.jsDoc = jsDoc

	jsDoc.Set("nodeName", doc.AsNode().NodeName())

	jsDoc.DefineAccessorProperty("documentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.elementValue(doc.DocumentElement())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.DefineAccessorProperty("body", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.elementValue(doc.Body())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("Failed to execute 'getElementById' on 'Document': 1 argument required, but only 0 present."))
		}
		return b.elementValue(doc.GetElementById(call.Arguments[0].String()))
	})

	jsDoc.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required, but only 0 present."))
		}
		name := call.Arguments[0].String()
		if !dom.IsValidAttributeLocalName(name) {
			b.throwDOMError(dom.ErrInvalidCharacter("The tag name provided ('" + name + "') is not a valid name."))
		}
		return b.BindElement(doc.CreateElement(name))
	})

	return jsDoc
}

// nodeValue returns the JS object for an element or the bound document,
// and null for anything else.
func (b *DOMBinder) nodeValue(n *dom.Node) goja.Value {
	switch {
	case n == nil:
		return goja.Null()
	case n.NodeType() == dom.ElementNode:
		return b.BindElement((*dom.Element)(n))
	case b.document != nil && n == b.document.AsNode():
		return b.jsDoc
	}
	return goja.Null()
}

// elementValue returns null for a nil element.
func (b *DOMBinder) elementValue(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	return b.BindElement(el)
}

// BindElement returns the JS object for el.
func (b *DOMBinder) BindElement(el *dom.Element) *goja.Object {
	if el == nil {
		return nil
	}
	node := el.AsNode()
	if jsObj, ok := b.nodeMap[node]; ok {
		return jsObj
	}

	vm := b.runtime.vm
	jsEl := vm.NewObject()
	b.nodeMap[node] = jsEl

	// Store reference to the Go element
	jsEl.Set("_goElement", el)

	jsEl.DefineAccessorProperty("tagName", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.TagName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("id", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Id())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			el.SetId(call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("hidden", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.HasAttribute("hidden"))
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			el.ToggleAttribute("hidden", call.Arguments[0].ToBoolean())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("textContent", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.TextContent())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			el.SetTextContent(call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("nodeName", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(node.NodeName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("ownerDocument", vm.ToValue(func(goja.FunctionCall) goja.Value {
		if doc := node.OwnerDocument(); doc != nil {
			return b.nodeValue(doc.AsNode())
		}
		return goja.Null()
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("parentNode", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.nodeValue(node.ParentNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("parentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.elementValue(el.ParentElement())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("children", vm.ToValue(func(goja.FunctionCall) goja.Value {
		children := el.Children()
		values := make([]interface{}, len(children))
		for i, c := range children {
			values[i] = b.BindElement(c)
		}
		return vm.NewArray(values...)
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("isConnected", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(node.IsConnected())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("style", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.BindStyle(el)
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	b.bindAttributeMethods(jsEl, el)

	jsEl.Set("getBoundingClientRect", func(goja.FunctionCall) goja.Value {
		return b.bindRect(el.GetBoundingClientRect())
	})

	jsEl.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': 1 argument required, but only 0 present."))
		}
		child, ok := b.elementOf(call.Arguments[0])
		if !ok {
			panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': parameter 1 is not of type 'Element'."))
		}
		if _, err := node.AppendChildWithError(child.AsNode()); err != nil {
			if domErr, ok := err.(*dom.DOMError); ok {
				b.throwDOMError(domErr)
			}
			panic(vm.NewGoError(err))
		}
		return call.Arguments[0]
	})

	jsEl.Set("remove", func(goja.FunctionCall) goja.Value {
		el.Remove()
		return goja.Undefined()
	})

	return jsEl
}

func (b *DOMBinder) bindAttributeMethods(jsEl *goja.Object, el *dom.Element) {
	vm := b.runtime.vm

	jsEl.Set("getAttributeNames", func(goja.FunctionCall) goja.Value {
		names := el.AttributeNames()
		values := make([]interface{}, len(names))
		for i, n := range names {
			values[i] = n
		}
		return vm.NewArray(values...)
	})

	jsEl.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("Failed to execute 'getAttribute' on 'Element': 1 argument required, but only 0 present."))
		}
		name := call.Arguments[0].String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})

	jsEl.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(vm.NewTypeError("Failed to execute 'setAttribute' on 'Element': 2 arguments required."))
		}
		if err := el.SetAttributeWithError(call.Arguments[0].String(), call.Arguments[1].String()); err != nil {
			b.throwDOMError(err.(*dom.DOMError))
		}
		return goja.Undefined()
	})

	jsEl.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("Failed to execute 'hasAttribute' on 'Element': 1 argument required, but only 0 present."))
		}
		return vm.ToValue(el.HasAttribute(call.Arguments[0].String()))
	})

	jsEl.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			el.RemoveAttribute(call.Arguments[0].String())
		}
		return goja.Undefined()
	})

	jsEl.Set("toggleAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("Failed to execute 'toggleAttribute' on 'Element': 1 argument required, but only 0 present."))
		}
		var force []bool
		if len(call.Arguments) > 1 && !goja.IsUndefined(call.Arguments[1]) {
			force = append(force, call.Arguments[1].ToBoolean())
		}
		present, err := el.ToggleAttributeWithError(call.Arguments[0].String(), force...)
		if err != nil {
			b.throwDOMError(err.(*dom.DOMError))
		}
		return vm.ToValue(present)
	})
}

// BindStyle returns a CSSStyleDeclaration object for the element's inline style.
func (b *DOMBinder) BindStyle(el *dom.Element) *goja.Object {
	vm := b.runtime.vm
	sd := el.Style()
	jsStyle := vm.NewObject()

	jsStyle.DefineAccessorProperty("cssText", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(sd.CSSText())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			el.SetAttribute("style", call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsStyle.DefineAccessorProperty("length", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(sd.Length())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsStyle.Set("getPropertyValue", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return vm.ToValue("")
		}
		return vm.ToValue(sd.GetPropertyValue(call.Arguments[0].String()))
	})

	jsStyle.Set("setProperty", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(vm.NewTypeError("Failed to execute 'setProperty' on 'CSSStyleDeclaration': 2 arguments required."))
		}
		var priority []string
		if len(call.Arguments) > 2 {
			priority = append(priority, call.Arguments[2].String())
		}
		value := call.Arguments[1]
		if goja.IsNull(value) {
			sd.RemoveProperty(call.Arguments[0].String())
			return goja.Undefined()
		}
		sd.SetProperty(call.Arguments[0].String(), value.String(), priority...)
		return goja.Undefined()
	})

	jsStyle.Set("removeProperty", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return vm.ToValue("")
		}
		return vm.ToValue(sd.RemoveProperty(call.Arguments[0].String()))
	})

	return jsStyle
}

// bindRect creates a DOMRect object.
func (b *DOMBinder) bindRect(r *dom.DOMRect) *goja.Object {
	vm := b.runtime.vm
	obj := vm.NewObject()
	obj.Set("x", r.X)
	obj.Set("y", r.Y)
	obj.Set("width", r.Width)
	obj.Set("height", r.Height)
	obj.Set("top", r.Top())
	obj.Set("right", r.Right())
	obj.Set("bottom", r.Bottom())
	obj.Set("left", r.Left())
	return obj
}

// elementOf unwraps a JS element object.
func (b *DOMBinder) elementOf(v goja.Value) (*dom.Element, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, false
	}
	ref := obj.Get("_goElement")
	if ref == nil {
		return nil, false
	}
	el, ok := ref.Export().(*dom.Element)
	return el, ok && el != nil
}

// throwDOMError throws an Error whose name is the DOMException name.
func (b *DOMBinder) throwDOMError(err *dom.DOMError) {
	vm := b.runtime.vm
	ctor, _ := goja.AssertConstructor(vm.Get("Error"))
	exc, cerr := ctor(nil, vm.ToValue(err.Message))
	if cerr != nil {
		panic(vm.NewGoError(err))
	}
	exc.Set("name", err.Name)
	exc.Set("code", domExceptionCode(err.Name))
	panic(exc)
}

// domExceptionCode returns the legacy exception code for a DOMException name.
func domExceptionCode(name string) int {
	switch name {
	case "HierarchyRequestError":
		return 3
	case "InvalidCharacterError":
		return 5
	case "NotFoundError":
		return 8
	}
	return 0
}
