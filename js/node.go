package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/dragbounds/domutil"
)

// ObjectNode presents a goja object as a domutil.Node. Selector
// capabilities are looked up as methods on the object and the parent is
// read from its parentNode property.
type ObjectNode struct {
	vm  *goja.Runtime
	obj *goja.Object
}

// NewObjectNode wraps obj. Null, undefined and primitive values yield a nil
// Node.
func NewObjectNode(vm *goja.Runtime, v goja.Value) domutil.Node {
	obj, ok := v.(*goja.Object)
	if !ok || obj == nil {
		return nil
	}
	return ObjectNode{vm: vm, obj: obj}
}

// Object returns the wrapped object.
func (n ObjectNode) Object() *goja.Object {
	return n.obj
}

// ParentNode implements domutil.Node.
func (n ObjectNode) ParentNode() domutil.Node {
	return NewObjectNode(n.vm, n.obj.Get("parentNode"))
}

// SelectorCapability implements domutil.Node. Exceptions thrown by the
// method are returned as errors.
func (n ObjectNode) SelectorCapability(name string) (domutil.SelectorFunc, bool) {
	fn, ok := goja.AssertFunction(n.obj.Get(name))
	if !ok {
		return nil, false
	}
	return func(selector string) (bool, error) {
		res, err := fn(n.obj, n.vm.ToValue(selector))
		if err != nil {
			return false, err
		}
		return res.ToBoolean(), nil
	}, true
}
