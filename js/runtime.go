// Package js exposes the drag helpers to JavaScript through the goja engine.
// It also lets plain goja objects stand in for DOM nodes, so the helpers'
// capability probing can be exercised against any object shape.
package js

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/dragbounds/domutil"
)

// Runtime wraps a goja JavaScript runtime with the helper globals installed.
type Runtime struct {
	vm      *goja.Runtime
	logger  *zap.Logger
	events  *EventBinder
	dom     *DOMBinder
	mu      sync.Mutex
	errors  []error
	onError func(error)
}

// NewRuntime creates a new JavaScript runtime. styles backs getComputedSize
// and getBoundPosition; nil reads through the css cascade. A nil logger
// disables logging.
func NewRuntime(styles domutil.StyleReader, logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runtime{
		vm:     goja.New(),
		logger: logger.Named("js"),
	}
	r.events = NewEventBinder(r)
	r.dom = NewDOMBinder(r, styles)

	r.setupConsole()
	r.events.SetupEventConstructors()
	r.setupHelpers()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Events returns the runtime's event binder.
func (r *Runtime) Events() *EventBinder {
	return r.events
}

// DOM returns the runtime's DOM binder.
func (r *Runtime) DOM() *DOMBinder {
	return r.dom
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Recover from panics in the goja parser/runtime
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.recordError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

func (r *Runtime) recordError(err error) {
	r.errors = append(r.errors, err)
	r.logger.Warn("script error", zap.Error(err))
	if r.onError != nil {
		r.onError(err)
	}
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// setupConsole routes console output to the logger.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	levels := map[string]func(string, ...zap.Field){
		"log":   r.logger.Info,
		"info":  r.logger.Info,
		"debug": r.logger.Debug,
		"warn":  r.logger.Warn,
		"error": r.logger.Error,
	}
	for name, log := range levels {
		console.Set(name, func(call goja.FunctionCall) goja.Value {
			log("console."+name, zap.String("message", formatArgs(call.Arguments)))
			return goja.Undefined()
		})
	}
	r.vm.Set("console", console)
}

// formatArgs joins console arguments the way browsers print them.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
