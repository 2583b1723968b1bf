package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/dragbounds/css"
	"github.com/chrisuehlinger/dragbounds/dom"
	"github.com/chrisuehlinger/dragbounds/domutil"
)

// DOMBinder provides methods to bind DOM objects to JavaScript.
type DOMBinder struct {
	runtime *Runtime
	styles  domutil.StyleReader
	nodeMap map[*dom.Node]*goja.Object // Cache to return same JS object for same DOM node
}

// NewDOMBinder creates a new DOM binder for the given runtime.
func NewDOMBinder(runtime *Runtime, styles domutil.StyleReader) *DOMBinder {
	if styles == nil {
		styles = domutil.CascadeStyles{}
	}
	return &DOMBinder{
		runtime: runtime,
		styles:  styles,
		nodeMap: make(map[*dom.Node]*goja.Object),
	}
}

// BindDocument exposes doc as the global "document" and returns it.
func (b *DOMBinder) BindDocument(doc *dom.Document) *goja.Object {
	vm := b.runtime.vm
	node := doc.AsNode()
	if jsDoc, ok := b.nodeMap[node]; ok {
		vm.Set("document", jsDoc)
		return jsDoc
	}

	jsDoc := vm.NewObject()
	jsDoc.Set("_goNode", node)
	jsDoc.Set("nodeType", int(dom.DocumentNode))
	jsDoc.Set("nodeName", doc.NodeName())
	jsDoc.Set("parentNode", goja.Null())

	jsDoc.DefineAccessorProperty("documentElement", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementValue(doc.DocumentElement())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	jsDoc.DefineAccessorProperty("body", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementValue(doc.Body())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return b.elementValue(doc.GetElementById(call.Argument(0).String()))
	})
	jsDoc.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		el, err := css.QuerySelector(node, call.Argument(0).String())
		if err != nil {
			b.throwSyntaxError(err)
		}
		return b.elementValue(el)
	})

	b.runtime.events.BindEventTarget(jsDoc)
	b.nodeMap[node] = jsDoc
	vm.Set("document", jsDoc)
	return jsDoc
}

// BindElement returns the JS object for el, creating it on first use.
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
	jsEl.Set("_goNode", node)
	jsEl.Set("nodeType", int(dom.ElementNode))

	getter := func(name string, fn func() any) {
		jsEl.DefineAccessorProperty(name, vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(fn())
		}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}
	getter("tagName", func() any { return el.TagName() })
	getter("nodeName", func() any { return el.TagName() })
	getter("id", func() any { return el.Id() })
	getter("className", func() any { return el.ClassName() })
	getter("offsetLeft", func() any { return el.OffsetLeft() })
	getter("offsetTop", func() any { return el.OffsetTop() })
	getter("offsetWidth", func() any { return el.OffsetWidth() })
	getter("offsetHeight", func() any { return el.OffsetHeight() })
	getter("clientWidth", func() any { return el.ClientWidth() })
	getter("clientHeight", func() any { return el.ClientHeight() })
	getter("scrollLeft", func() any { return el.ScrollLeft() })
	getter("scrollTop", func() any { return el.ScrollTop() })

	jsEl.DefineAccessorProperty("parentNode", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(el.ParentNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	jsEl.DefineAccessorProperty("offsetParent", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementValue(el.OffsetParent())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	jsEl.DefineAccessorProperty("ownerDocument", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if doc := el.OwnerDocument(); doc != nil {
			return b.BindDocument(doc)
		}
		return goja.Null()
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})
	jsEl.Set("matches", func(call goja.FunctionCall) goja.Value {
		ok, err := css.Matches(el, call.Argument(0).String())
		if err != nil {
			b.throwSyntaxError(err)
		}
		return vm.ToValue(ok)
	})
	jsEl.Set("getBoundingClientRect", func(call goja.FunctionCall) goja.Value {
		r := el.GetBoundingClientRect()
		rect := vm.NewObject()
		rect.Set("x", r.X)
		rect.Set("y", r.Y)
		rect.Set("width", r.Width)
		rect.Set("height", r.Height)
		rect.Set("left", r.Left())
		rect.Set("top", r.Top())
		rect.Set("right", r.Right())
		rect.Set("bottom", r.Bottom())
		return rect
	})

	b.runtime.events.BindEventTarget(jsEl)
	b.nodeMap[node] = jsEl
	return jsEl
}

func (b *DOMBinder) elementValue(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	return b.BindElement(el)
}

func (b *DOMBinder) nodeValue(n *dom.Node) goja.Value {
	switch {
	case n == nil:
		return goja.Null()
	case n.IsElement():
		return b.BindElement(n.AsElement())
	case n.NodeType() == dom.DocumentNode:
		return b.BindDocument(n.AsDocument())
	}
	return goja.Null()
}

// getGoElement extracts the Go element behind a bound JS object.
func (b *DOMBinder) getGoElement(v goja.Value) *dom.Element {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	v = obj.Get("_goNode")
	if v == nil {
		return nil
	}
	if n, ok := v.Export().(*dom.Node); ok && n.IsElement() {
		return n.AsElement()
	}
	return nil
}

// throwSyntaxError throws a SyntaxError for an unparsable selector.
func (b *DOMBinder) throwSyntaxError(err error) {
	vm := b.runtime.vm
	ctor, ok := goja.AssertConstructor(vm.Get("SyntaxError"))
	if !ok {
		panic(vm.NewGoError(err))
	}
	exc, cerr := ctor(nil, vm.ToValue(err.Error()))
	if cerr != nil {
		panic(vm.NewGoError(err))
	}
	panic(vm.ToValue(exc))
}
