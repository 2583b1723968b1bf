package js

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEvent_PrefersAttachEvent(t *testing.T) {
	r := NewRuntime(nil, nil)
	run(t, r, `
		var calls = [];
		var legacy = {
			attachEvent: function(name, h) { calls.push('attach:' + name); },
			detachEvent: function(name, h) { calls.push('detach:' + name); },
			addEventListener: function() { calls.push('add'); },
			removeEventListener: function() { calls.push('remove'); }
		};
		function h() {}
		addEvent(legacy, 'mousedown', h);
		removeEvent(legacy, 'mousedown', h);
	`)
	result, _ := r.Execute("calls.join(',')")
	assert.Equal(t, "attach:onmousedown,detach:onmousedown", result.String())
}

func TestAddEvent_UsesCapturingListener(t *testing.T) {
	r := NewRuntime(nil, nil)
	run(t, r, `
		var calls = [];
		var modern = {
			addEventListener: function(e, h, capture) { calls.push('add:' + e + ':' + capture); },
			removeEventListener: function(e, h, capture) { calls.push('remove:' + e + ':' + capture); }
		};
		addEvent(modern, 'touchstart', function() {});
		removeEvent(modern, 'touchstart', function() {});
	`)
	result, _ := r.Execute("calls.join(',')")
	assert.Equal(t, "add:touchstart:true,remove:touchstart:true", result.String())
}

func TestAddEvent_FallsBackToProperty(t *testing.T) {
	r := NewRuntime(nil, nil)
	run(t, r, `
		var plain = {};
		function h() {}
		addEvent(plain, 'mouseup', h);
		var assigned = plain.onmouseup === h;
		removeEvent(plain, 'mouseup', h);
	`)
	assigned, _ := r.Execute("assigned")
	assert.True(t, assigned.ToBoolean())
	cleared, _ := r.Execute("plain.onmouseup === null")
	assert.True(t, cleared.ToBoolean())
}

func TestAddEvent_NilTarget(t *testing.T) {
	r := NewRuntime(nil, nil)
	run(t, r, `addEvent(null, 'x', function() {}); removeEvent(undefined, 'x', function() {});`)

	assert.NotPanics(t, func() {
		AddEvent(r.VM(), nil, "x", goja.Undefined())
		RemoveEvent(r.VM(), nil, "x", goja.Undefined())
	})
}

func TestAddEvent_BoundEventTarget(t *testing.T) {
	r := newTargetRuntime(t)
	vm := r.VM()
	target := vm.Get("target").ToObject(vm)
	run(t, r, `var hits = 0; function onDrag() { hits++; }`)
	handler := vm.Get("onDrag")

	AddEvent(vm, target, "drag", handler)
	run(t, r, `target.dispatchEvent(new Event('drag'));`)
	RemoveEvent(vm, target, "drag", handler)
	run(t, r, `target.dispatchEvent(new Event('drag'));`)

	hits, err := r.Execute("hits")
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.ToInteger())
	assert.Zero(t, r.Events().GetOrCreateTarget(target).ListenerCount("drag"))
}
