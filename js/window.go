package js

import (
	"time"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/anchorpos/host"
)

// listenerKey identifies a script listener for removeEventListener.
type listenerKey struct {
	eventType string
	fn        *goja.Object
}

// setupWindow makes the global object the window and exposes the viewport
// and scroll state of the host window.
func (r *Runtime) setupWindow() {
	vm := r.vm
	window := vm.GlobalObject()
	win := r.win

	vm.Set("window", window)
	vm.Set("self", window)
	vm.Set("globalThis", window)

	getter := func(fn func() float64) goja.Value {
		return vm.ToValue(func(goja.FunctionCall) goja.Value { return vm.ToValue(fn()) })
	}
	window.DefineAccessorProperty("innerWidth", getter(win.ClientWidth), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	window.DefineAccessorProperty("innerHeight", getter(win.ClientHeight), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	window.DefineAccessorProperty("scrollX", getter(win.ScrollX), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	window.DefineAccessorProperty("scrollY", getter(win.ScrollY), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	window.DefineAccessorProperty("pageXOffset", getter(win.ScrollX), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	window.DefineAccessorProperty("pageYOffset", getter(win.ScrollY), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	window.Set("scrollTo", func(call goja.FunctionCall) goja.Value {
		x, y := r.scrollArgs(call, win.ScrollX(), win.ScrollY())
		win.ScrollTo(x, y)
		return goja.Undefined()
	})
	window.Set("scroll", window.Get("scrollTo"))
	window.Set("scrollBy", func(call goja.FunctionCall) goja.Value {
		dx, dy := r.scrollArgs(call, 0, 0)
		win.ScrollBy(dx, dy)
		return goja.Undefined()
	})
	window.Set("resizeTo", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(vm.NewTypeError("Failed to execute 'resizeTo' on 'Window': 2 arguments required."))
		}
		win.Resize(call.Arguments[0].ToFloat(), call.Arguments[1].ToFloat())
		return goja.Undefined()
	})

	r.bindEventTarget(window, win.EventTarget)

	if vv := win.VisualViewport(); vv != nil {
		jsVV := vm.NewObject()
		jsVV.DefineAccessorProperty("offsetTop", getter(vv.OffsetTop), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
		jsVV.DefineAccessorProperty("offsetLeft", getter(vv.OffsetLeft), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
		jsVV.DefineAccessorProperty("width", getter(vv.Width), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
		jsVV.DefineAccessorProperty("height", getter(vv.Height), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
		r.bindEventTarget(jsVV, vv.EventTarget)
		window.Set("visualViewport", jsVV)
	} else {
		window.Set("visualViewport", goja.Null())
	}
}

// scrollArgs reads (x, y) or ({left, top}) arguments. Missing members keep
// the defaults.
func (r *Runtime) scrollArgs(call goja.FunctionCall, x, y float64) (float64, float64) {
	if len(call.Arguments) == 0 {
		return x, y
	}
	first := call.Arguments[0]
	if obj, ok := first.(*goja.Object); ok {
		if v := obj.Get("left"); v != nil && !goja.IsUndefined(v) {
			x = v.ToFloat()
		}
		if v := obj.Get("top"); v != nil && !goja.IsUndefined(v) {
			y = v.ToFloat()
		}
		return x, y
	}
	x = first.ToFloat()
	if len(call.Arguments) > 1 {
		y = call.Arguments[1].ToFloat()
	}
	return x, y
}

// bindEventTarget adds addEventListener and removeEventListener to obj,
// backed by target.
func (r *Runtime) bindEventTarget(obj *goja.Object, target *host.EventTarget) {
	vm := r.vm
	ids := make(map[listenerKey]int)

	obj.Set("addEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(vm.NewTypeError("Failed to execute 'addEventListener': 2 arguments required."))
		}
		eventType := call.Arguments[0].String()
		callback, ok := goja.AssertFunction(call.Arguments[1])
		if !ok {
			return goja.Undefined()
		}
		key := listenerKey{eventType, call.Arguments[1].ToObject(vm)}
		if _, dup := ids[key]; dup {
			return goja.Undefined()
		}

		var opts host.ListenerOptions
		if len(call.Arguments) > 2 {
			if o, ok := call.Arguments[2].(*goja.Object); ok {
				if v := o.Get("once"); v != nil {
					opts.Once = v.ToBoolean()
				}
				if v := o.Get("passive"); v != nil {
					opts.Passive = v.ToBoolean()
				}
			}
		}

		var fire host.Listener = func(e host.Event) {
			if opts.Once {
				delete(ids, key)
			}
			ev := vm.NewObject()
			ev.Set("type", e.Type)
			ev.Set("target", obj)
			ev.Set("currentTarget", obj)
			r.invoke(callback, ev)
		}
		ids[key] = target.AddEventListener(eventType, fire, opts)
		return goja.Undefined()
	})

	obj.Set("removeEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		fn, ok := call.Arguments[1].(*goja.Object)
		if !ok {
			return goja.Undefined()
		}
		key := listenerKey{call.Arguments[0].String(), fn}
		if id, ok := ids[key]; ok {
			target.RemoveEventListener(key.eventType, id)
			delete(ids, key)
		}
		return goja.Undefined()
	})
}

// setupFrames exposes the host's animation-frame queue and a clock.
func (r *Runtime) setupFrames() {
	vm := r.vm
	start := time.Now()
	now := func() float64 { return float64(time.Since(start).Nanoseconds()) / 1e6 }

	performance := vm.NewObject()
	performance.Set("now", func(goja.FunctionCall) goja.Value {
		return vm.ToValue(now())
	})
	vm.Set("performance", performance)

	vm.Set("requestAnimationFrame", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("Failed to execute 'requestAnimationFrame': 1 argument required."))
		}
		callback, ok := goja.AssertFunction(call.Arguments[0])
		if !ok {
			panic(vm.NewTypeError("Failed to execute 'requestAnimationFrame': parameter 1 is not of type 'Function'."))
		}
		id := r.win.RequestAnimationFrame(func() {
			r.invoke(callback, vm.ToValue(now()))
		})
		return vm.ToValue(id)
	})

	vm.Set("cancelAnimationFrame", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			r.win.CancelAnimationFrame(int(call.Arguments[0].ToInteger()))
		}
		return goja.Undefined()
	})
}
