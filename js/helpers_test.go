package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/dragbounds/domutil"
	"github.com/chrisuehlinger/dragbounds/html"
	"github.com/chrisuehlinger/dragbounds/layout"
)

func TestObjectNode_PrefixedCapabilities(t *testing.T) {
	r := NewRuntime(nil, nil)
	run(t, r, `
		function named(name, parent) {
			return {
				name: name,
				parentNode: parent,
				webkitMatchesSelector: function(s) { return s === this.name; }
			};
		}
		var root = named('root', null);
		var mid = named('mid', root);
		var leaf = named('leaf', mid);
		var bare = {parentNode: root};
		var thrower = {matches: function() { throw new Error('bad selector'); }};
	`)

	tests := []struct {
		code string
		want bool
	}{
		{"matchesSelectorAndParentsTo(leaf, 'mid', mid)", true},
		{"matchesSelectorAndParentsTo(leaf, 'root', mid)", false},
		{"matchesSelectorAndParentsTo(leaf, 'leaf', leaf)", true},
		{"matchesSelectorAndParentsTo(leaf, 'root')", true},
		{"matchesSelectorAndParentsTo(leaf, 'root', null)", true},
		{"matchesSelectorAndParentsTo(bare, 'root')", false},
		{"matchesSelectorAndParentsTo(thrower, 'x')", false},
	}
	for _, tt := range tests {
		result, err := r.Execute(tt.code)
		require.NoError(t, err, tt.code)
		assert.Equal(t, tt.want, result.ToBoolean(), tt.code)
	}

	vm := r.VM()
	leaf := NewObjectNode(vm, vm.Get("leaf"))
	name, err := domutil.DiscoverSelectorCapability(leaf)
	require.NoError(t, err)
	assert.Equal(t, "webkitMatchesSelector", name)
	assert.Equal(t, NewObjectNode(vm, vm.Get("mid")), leaf.ParentNode())
	assert.Nil(t, NewObjectNode(vm, vm.Get("root")).ParentNode())
	assert.Nil(t, NewObjectNode(vm, vm.ToValue(3)))
}

const dragPage = `<style>body { margin: 0 }</style>
<div id="area" class="handle" style="position: relative; width: 300px; height: 200px; padding: 10px; border: 5px solid">
  <div id="box" style="width: 50px; height: 40px; margin: 3px; border: 1px solid"><span id="grip"></span></div>
</div>`

func newDOMRuntime(t *testing.T) *Runtime {
	t.Helper()
	doc, err := html.Parse(dragPage)
	require.NoError(t, err)
	result := layout.NewEngine(800, 600, nil).Layout(doc)

	r := NewRuntime(result, nil)
	r.DOM().BindDocument(doc)
	return r
}

func TestHelpers_DOMElements(t *testing.T) {
	r := newDOMRuntime(t)
	run(t, r, `
		var grip = document.getElementById('grip');
		var box = document.querySelector('#box');
		var area = document.getElementById('area');
	`)

	checks := map[string]bool{
		"matchesSelectorAndParentsTo(grip, '.handle', null)":      true,
		"matchesSelectorAndParentsTo(grip, '.handle', box)":       false,
		"matchesSelectorAndParentsTo(grip, 'div > div', box)":     true,
		"matchesSelectorAndParentsTo(grip, '.missing', document)": false,
		"box.parentNode === area":                                 true,
		"document.documentElement.parentNode === document":        true,
		"box.offsetParent === area":                               true,
	}
	for code, want := range checks {
		result, err := r.Execute(code)
		require.NoError(t, err, code)
		assert.Equal(t, want, result.ToBoolean(), code)
	}

	_, err := r.Execute("box.matches('div[')")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SyntaxError")
}

func TestHelpers_Geometry(t *testing.T) {
	r := newDOMRuntime(t)
	run(t, r, `
		var box = document.getElementById('box');
		var size = getComputedSize(box);
		var clamped = getBoundPosition(box, 'parent', 500, -20);
		var bySelector = getBoundPosition(box, '#area', -100, 100);
		var explicit = getBoundPosition(box, {left: 0, right: 10, top: 'x'}, 50, -5);
		var rel = offsetXYFromParent({clientX: 100, clientY: 50}, box.offsetParent);
	`)

	expect := map[string]float64{
		"size[0]":       50,
		"size[1]":       40,
		"clamped[0]":    242,
		"clamped[1]":    0,
		"bySelector[0]": 0,
		"bySelector[1]": 100,
		"explicit[0]":   10,
		"explicit[1]":   -5,
		"rel.x":         100,
		"rel.y":         50,
	}
	for code, want := range expect {
		result, err := r.Execute(code)
		require.NoError(t, err, code)
		assert.Equal(t, want, result.ToFloat(), code)
	}

	_, err := r.Execute("getBoundPosition(box, '#nowhere', 0, 0)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find an element")

	_, err = r.Execute("getComputedSize({})")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TypeError")
}
