package js

import (
	"sync"

	"github.com/dop251/goja"
)

// EventPhase represents the phase of event dispatch.
type EventPhase int

const (
	EventPhaseNone      EventPhase = 0
	EventPhaseCapturing EventPhase = 1
	EventPhaseAtTarget  EventPhase = 2
	EventPhaseBubbling  EventPhase = 3
)

// eventListener represents a registered event listener.
type eventListener struct {
	id       int
	callback goja.Callable
	value    goja.Value // Original value for comparison
	options  listenerOptions
}

// listenerOptions represents addEventListener options.
type listenerOptions struct {
	capture bool
	once    bool
}

// EventTarget manages event listeners for a target.
type EventTarget struct {
	listeners map[string][]eventListener
	nextID    int
	mu        sync.RWMutex
}

// NewEventTarget creates a new EventTarget.
func NewEventTarget() *EventTarget {
	return &EventTarget{
		listeners: make(map[string][]eventListener),
	}
}

// AddEventListener registers an event listener. A listener already
// registered with the same capture flag is ignored.
func (et *EventTarget) AddEventListener(eventType string, callback goja.Callable, value goja.Value, opts listenerOptions) {
	et.mu.Lock()
	defer et.mu.Unlock()

	for _, l := range et.listeners[eventType] {
		if l.value.SameAs(value) && l.options.capture == opts.capture {
			return
		}
	}

	et.nextID++
	et.listeners[eventType] = append(et.listeners[eventType], eventListener{
		id:       et.nextID,
		callback: callback,
		value:    value,
		options:  opts,
	})
}

// RemoveEventListener unregisters an event listener. The capture flag must
// match the one it was added with.
func (et *EventTarget) RemoveEventListener(eventType string, value goja.Value, capture bool) {
	et.mu.Lock()
	defer et.mu.Unlock()

	listeners := et.listeners[eventType]
	for i, l := range listeners {
		if l.value.SameAs(value) && l.options.capture == capture {
			et.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// DispatchEvent calls the listeners for the event's type that belong to
// phase. At the target every listener runs in registration order. It
// returns false if a listener cancelled the event.
func (et *EventTarget) DispatchEvent(event *goja.Object, phase EventPhase) bool {
	eventType := event.Get("type").String()
	et.mu.RLock()
	listeners := append([]eventListener(nil), et.listeners[eventType]...)
	et.mu.RUnlock()

	for _, l := range listeners {
		if phase == EventPhaseCapturing && !l.options.capture {
			continue
		}
		if phase == EventPhaseBubbling && l.options.capture {
			continue
		}
		if l.options.once {
			et.removeByID(eventType, l.id)
		}

		l.callback(goja.Undefined(), event)

		if stop := event.Get("_stopImmediate"); stop != nil && stop.ToBoolean() {
			break
		}
	}

	if prevented := event.Get("defaultPrevented"); prevented != nil {
		return !prevented.ToBoolean()
	}
	return true
}

func (et *EventTarget) removeByID(eventType string, id int) {
	et.mu.Lock()
	defer et.mu.Unlock()
	listeners := et.listeners[eventType]
	for i, l := range listeners {
		if l.id == id {
			et.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners for eventType.
func (et *EventTarget) ListenerCount(eventType string) int {
	et.mu.RLock()
	defer et.mu.RUnlock()
	return len(et.listeners[eventType])
}

// EventBinder provides methods to add event handling to JS objects.
type EventBinder struct {
	runtime   *Runtime
	targetMap map[*goja.Object]*EventTarget
	mu        sync.RWMutex
}

// NewEventBinder creates a new event binder.
func NewEventBinder(runtime *Runtime) *EventBinder {
	return &EventBinder{
		runtime:   runtime,
		targetMap: make(map[*goja.Object]*EventTarget),
	}
}

// GetOrCreateTarget gets or creates an EventTarget for a JS object.
func (eb *EventBinder) GetOrCreateTarget(obj *goja.Object) *EventTarget {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if target, ok := eb.targetMap[obj]; ok {
		return target
	}
	target := NewEventTarget()
	eb.targetMap[obj] = target
	return target
}

// BindEventTarget adds addEventListener, removeEventListener and
// dispatchEvent to a JS object.
func (eb *EventBinder) BindEventTarget(obj *goja.Object) {
	vm := eb.runtime.vm

	obj.Set("addEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		callback, ok := goja.AssertFunction(call.Arguments[1])
		if !ok {
			return goja.Undefined()
		}
		opts := eb.parseOptions(call.Argument(2))
		eb.GetOrCreateTarget(obj).AddEventListener(call.Arguments[0].String(), callback, call.Arguments[1], opts)
		return goja.Undefined()
	})

	obj.Set("removeEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		if _, ok := goja.AssertFunction(call.Arguments[1]); !ok {
			return goja.Undefined()
		}
		opts := eb.parseOptions(call.Argument(2))
		eb.GetOrCreateTarget(obj).RemoveEventListener(call.Arguments[0].String(), call.Arguments[1], opts.capture)
		return goja.Undefined()
	})

	obj.Set("dispatchEvent", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return vm.ToValue(true)
		}
		event := call.Arguments[0].ToObject(vm)
		event.Set("target", obj)
		event.Set("currentTarget", obj)
		event.Set("eventPhase", int(EventPhaseAtTarget))
		return vm.ToValue(eb.GetOrCreateTarget(obj).DispatchEvent(event, EventPhaseAtTarget))
	})
}

// parseOptions reads the third addEventListener argument, either a capture
// boolean or an options object.
func (eb *EventBinder) parseOptions(arg goja.Value) listenerOptions {
	var opts listenerOptions
	if goja.IsUndefined(arg) || goja.IsNull(arg) {
		return opts
	}
	obj, isObject := arg.(*goja.Object)
	if !isObject {
		opts.capture = arg.ToBoolean()
		return opts
	}
	if v := obj.Get("capture"); v != nil {
		opts.capture = v.ToBoolean()
	}
	if v := obj.Get("once"); v != nil {
		opts.once = v.ToBoolean()
	}
	return opts
}

// CreateEvent creates a new Event object.
func (eb *EventBinder) CreateEvent(eventType string, cancelable bool) *goja.Object {
	event := eb.runtime.vm.NewObject()

	event.Set("type", eventType)
	event.Set("target", goja.Null())
	event.Set("currentTarget", goja.Null())
	event.Set("eventPhase", int(EventPhaseNone))
	event.Set("cancelable", cancelable)
	event.Set("defaultPrevented", false)
	event.Set("_stopImmediate", false)

	event.Set("preventDefault", func(call goja.FunctionCall) goja.Value {
		if event.Get("cancelable").ToBoolean() {
			event.Set("defaultPrevented", true)
		}
		return goja.Undefined()
	})
	event.Set("stopImmediatePropagation", func(call goja.FunctionCall) goja.Value {
		event.Set("_stopImmediate", true)
		return goja.Undefined()
	})
	return event
}

// SetupEventConstructors installs the Event constructor on the global object.
func (eb *EventBinder) SetupEventConstructors() {
	vm := eb.runtime.vm
	vm.Set("Event", func(call goja.ConstructorCall) *goja.Object {
		eventType := ""
		if len(call.Arguments) > 0 {
			eventType = call.Arguments[0].String()
		}
		cancelable := false
		if init, ok := call.Argument(1).(*goja.Object); ok {
			if v := init.Get("cancelable"); v != nil {
				cancelable = v.ToBoolean()
			}
		}
		return eb.CreateEvent(eventType, cancelable)
	})
}
