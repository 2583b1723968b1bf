package js

import (
	"github.com/dop251/goja"
)

// AddEvent registers handler for event on target using the first mechanism
// the target offers: attachEvent("on"+event), a capturing
// addEventListener, or the on<event> property. A nil target is ignored.
func AddEvent(vm *goja.Runtime, target *goja.Object, event string, handler goja.Value) {
	if target == nil {
		return
	}
	if attach, ok := goja.AssertFunction(target.Get("attachEvent")); ok {
		attach(target, vm.ToValue("on"+event), handler)
		return
	}
	if add, ok := goja.AssertFunction(target.Get("addEventListener")); ok {
		add(target, vm.ToValue(event), handler, vm.ToValue(true))
		return
	}
	target.Set("on"+event, handler)
}

// RemoveEvent undoes AddEvent: detachEvent, a capturing
// removeEventListener, or clearing the on<event> property.
func RemoveEvent(vm *goja.Runtime, target *goja.Object, event string, handler goja.Value) {
	if target == nil {
		return
	}
	if detach, ok := goja.AssertFunction(target.Get("detachEvent")); ok {
		detach(target, vm.ToValue("on"+event), handler)
		return
	}
	if remove, ok := goja.AssertFunction(target.Get("removeEventListener")); ok {
		remove(target, vm.ToValue(event), handler, vm.ToValue(true))
		return
	}
	target.Set("on"+event, goja.Null())
}
