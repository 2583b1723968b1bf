package js

import (
	"errors"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/dragbounds/domutil"
)

// setupHelpers installs the drag helper functions as globals:
//
//	matchesSelectorAndParentsTo(el, selector, baseNode) -> bool
//	addEvent(el, event, handler), removeEvent(el, event, handler)
//	getComputedSize(el) -> [width, height]
//	getBoundPosition(el, bounds, x, y) -> [x, y]
//	offsetXYFromParent(evt, offsetParent) -> {x, y}
//
// The first three accept any object; the rest need elements bound by the
// runtime's DOMBinder.
func (r *Runtime) setupHelpers() {
	vm := r.vm

	vm.Set("matchesSelectorAndParentsTo", func(call goja.FunctionCall) goja.Value {
		el := NewObjectNode(vm, call.Argument(0))
		boundary := NewObjectNode(vm, call.Argument(2))
		ok, err := domutil.MatchSelectorAndParentsTo(el, call.Argument(1).String(), boundary)
		if err != nil && !errors.Is(err, domutil.ErrUnsupportedCapability) {
			r.logger.Debug("selector test failed", zap.Error(err))
		}
		return vm.ToValue(ok)
	})

	vm.Set("addEvent", func(call goja.FunctionCall) goja.Value {
		target, _ := call.Argument(0).(*goja.Object)
		AddEvent(vm, target, call.Argument(1).String(), call.Argument(2))
		return goja.Undefined()
	})
	vm.Set("removeEvent", func(call goja.FunctionCall) goja.Value {
		target, _ := call.Argument(0).(*goja.Object)
		RemoveEvent(vm, target, call.Argument(1).String(), call.Argument(2))
		return goja.Undefined()
	})

	vm.Set("getComputedSize", func(call goja.FunctionCall) goja.Value {
		el := r.dom.getGoElement(call.Argument(0))
		if el == nil {
			panic(vm.NewTypeError("getComputedSize: argument is not an element"))
		}
		w, h := domutil.GetComputedSize(el, r.dom.styles)
		return vm.ToValue([]float64{w, h})
	})

	vm.Set("getBoundPosition", func(call goja.FunctionCall) goja.Value {
		el := r.dom.getGoElement(call.Argument(0))
		if el == nil {
			panic(vm.NewTypeError("getBoundPosition: argument is not an element"))
		}
		pos := domutil.Position{X: call.Argument(2).ToFloat(), Y: call.Argument(3).ToFloat()}
		resolver := domutil.NewResolver(r.dom.styles, r.logger)
		pos, err := resolver.BoundPosition(el, boundsFromValue(call.Argument(1)), pos)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue([]float64{pos.X, pos.Y})
	})

	vm.Set("offsetXYFromParent", func(call goja.FunctionCall) goja.Value {
		parent := r.dom.getGoElement(call.Argument(1))
		if parent == nil {
			panic(vm.NewTypeError("offsetXYFromParent: offsetParent is not an element"))
		}
		evt := call.Argument(0).ToObject(vm)
		pos := domutil.OffsetXYFromParent(evt.Get("clientX").ToFloat(), evt.Get("clientY").ToFloat(), parent)
		out := vm.NewObject()
		out.Set("x", pos.X)
		out.Set("y", pos.Y)
		return out
	})
}

// boundsFromValue converts a JS bounds argument. Strings are "parent" or a
// selector; objects supply optional numeric left, top, right and bottom.
// The object is copied, never modified.
func boundsFromValue(v goja.Value) domutil.Bounds {
	obj, ok := v.(*goja.Object)
	if !ok {
		return domutil.ParseBounds(v.String())
	}
	limit := func(name string) domutil.Limit {
		f := obj.Get(name)
		if f == nil {
			return domutil.Limit{}
		}
		switch f.Export().(type) {
		case int64, float64:
			return domutil.At(f.ToFloat())
		}
		return domutil.Limit{}
	}
	return domutil.RectBounds(domutil.Rect{
		Left:   limit("left"),
		Top:    limit("top"),
		Right:  limit("right"),
		Bottom: limit("bottom"),
	})
}
