package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/anchorpos/position"
)

// strategyGlobals names the global each scenario strategy is exposed as.
var strategyGlobals = map[string]position.Strategy{
	"verticalTooltipPositionStrategy":   position.VerticalTooltip,
	"horizontalTooltipPositionStrategy": position.HorizontalTooltip,
	"dropdownPositionStrategy":          position.Dropdown,
	"popupPositionStrategy":             position.Popup,
}

// setupPositioning exposes the strategies and position().
//
//	const cancel = position(target, anchor, dropdownPositionStrategy, fits => {...});
//
// The strategy may also be given by name ("dropdown"). position returns a
// function that stops tracking scroll and resize for the target.
func (r *Runtime) setupPositioning() {
	vm := r.vm

	for global, s := range strategyGlobals {
		obj := vm.NewObject()
		obj.Set("name", s.Name())
		obj.Set("_goStrategy", s)
		obj.Set("toString", func(goja.FunctionCall) goja.Value { return vm.ToValue(s.Name()) })
		vm.Set(global, obj)
	}

	vm.Set("position", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 3 {
			panic(vm.NewTypeError("Failed to execute 'position': 3 arguments required, but only %d present.", len(call.Arguments)))
		}
		target, ok := r.binder.elementOf(call.Arguments[0])
		if !ok {
			panic(vm.NewTypeError("Failed to execute 'position': parameter 1 is not of type 'Element'."))
		}
		anchor, ok := r.binder.elementOf(call.Arguments[1])
		if !ok {
			panic(vm.NewTypeError("Failed to execute 'position': parameter 2 is not of type 'Element'."))
		}
		strategy, err := r.strategyOf(call.Arguments[2])
		if err != nil {
			panic(vm.NewTypeError("Failed to execute 'position': %v", err))
		}

		var onSettled func(bool)
		if len(call.Arguments) > 3 && !goja.IsUndefined(call.Arguments[3]) && !goja.IsNull(call.Arguments[3]) {
			callback, ok := goja.AssertFunction(call.Arguments[3])
			if !ok {
				panic(vm.NewTypeError("Failed to execute 'position': parameter 4 is not of type 'Function'."))
			}
			onSettled = func(fits bool) { r.invoke(callback, vm.ToValue(fits)) }
		}

		cancel := position.Position(r.win, target, anchor, strategy, onSettled, position.WithLogger(r.logger))
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			cancel()
			return goja.Undefined()
		})
	})
}

// strategyOf accepts a strategy object or a strategy name.
func (r *Runtime) strategyOf(v goja.Value) (position.Strategy, error) {
	if obj, ok := v.(*goja.Object); ok {
		if ref := obj.Get("_goStrategy"); ref != nil {
			if s, ok := ref.Export().(position.Strategy); ok {
				return s, nil
			}
		}
	}
	return position.Lookup(v.String())
}
