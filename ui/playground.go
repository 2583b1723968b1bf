// Package ui provides the drag playground user interface using Fyne.
package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/dragbounds/dom"
	"github.com/chrisuehlinger/dragbounds/domutil"
	"github.com/chrisuehlinger/dragbounds/layout"
)

var (
	outlineColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	nodeColor    = color.NRGBA{R: 0x33, G: 0x7a, B: 0xb7, A: 0xff}
	nodeFill     = color.NRGBA{R: 0x33, G: 0x7a, B: 0xb7, A: 0x40}
)

// Playground shows a laid-out document with one element made draggable
// inside its bounds.
type Playground struct {
	app    fyne.App
	window fyne.Window

	result   *layout.Result
	resolver *domutil.Resolver
	node     *dom.Element
	bounds   domutil.Bounds

	surface *fyne.Container
	box     *DraggableBox
	status  *widget.Label

	logger *zap.Logger
}

// NewPlayground creates the playground window for node. The envelope is
// resolved once up front; resolution errors are returned.
func NewPlayground(a fyne.App, result *layout.Result, node *dom.Element, bounds domutil.Bounds, opts Options, logger *zap.Logger) (*Playground, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ui")

	nodeBox := result.Box(node)
	if nodeBox == nil {
		return nil, fmt.Errorf("element %s is not rendered", describe(node))
	}

	p := &Playground{
		app:      a,
		result:   result,
		resolver: domutil.NewResolver(result, logger),
		node:     node,
		bounds:   bounds,
		logger:   logger,
	}
	env, err := p.resolver.ResolveEnvelope(node, bounds)
	if err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	p.window = a.NewWindow(opts.Title)
	p.window.Resize(fyne.NewSize(float32(opts.Width), float32(opts.Height)))

	p.setupUI(nodeBox, env)
	p.setupKeyboardShortcuts()

	logger.Info("playground ready",
		zap.String("node", describe(node)),
		zap.Stringer("bounds", bounds),
	)
	return p, nil
}

// setupUI draws every rendered box as an outline and replaces the node's
// subtree with the draggable box.
func (p *Playground) setupUI(nodeBox *layout.LayoutBox, env domutil.Rect) {
	var objects []fyne.CanvasObject
	var draw func(b *layout.LayoutBox)
	draw = func(b *layout.LayoutBox) {
		if b == nodeBox {
			return
		}
		objects = append(objects, boxRectangle(b, 0, 0, outlineColor))
		for _, child := range b.Children {
			draw(child)
		}
	}
	if p.result.Root != nil {
		draw(p.result.Root)
	}

	p.box = NewDraggableBox(nodeBox, env, p.logger)
	p.box.OnMoved = p.updateStatus
	p.box.OnDragEnd = func(pos domutil.Position) {
		p.logger.Debug("drag end", zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
	}
	objects = append(objects, p.box)

	p.surface = container.NewWithoutLayout(objects...)
	p.status = widget.NewLabel("")
	p.updateStatus(p.box.Offset())

	p.window.SetContent(container.NewBorder(nil, p.status, nil, nil, container.NewScroll(p.surface)))
}

func (p *Playground) setupKeyboardShortcuts() {
	// Ctrl+R: return the node to its natural position
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyR,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(shortcut fyne.Shortcut) {
		p.box.Reset()
	})

	// Ctrl+W: close
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyW,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(shortcut fyne.Shortcut) {
		p.window.Close()
	})
}

func (p *Playground) updateStatus(pos domutil.Position) {
	env := p.box.Envelope()
	p.status.SetText(fmt.Sprintf("x: %g  y: %g  |  left %s  top %s  right %s  bottom %s",
		pos.X, pos.Y, env.Left, env.Top, env.Right, env.Bottom))
}

// Window returns the playground window.
func (p *Playground) Window() fyne.Window {
	return p.window
}

// Box returns the draggable box.
func (p *Playground) Box() *DraggableBox {
	return p.box
}

// Status returns the text of the status line.
func (p *Playground) Status() string {
	return p.status.Text
}

// Run shows the window and runs the application event loop.
func (p *Playground) Run() {
	p.window.ShowAndRun()
}

// boxRectangle outlines the border box of b, offset by (originX, originY).
func boxRectangle(b *layout.LayoutBox, originX, originY float64, stroke color.Color) *canvas.Rectangle {
	bb := b.Dimensions.BorderBox()
	r := canvas.NewRectangle(color.Transparent)
	r.StrokeColor = stroke
	r.StrokeWidth = 1
	r.Move(fyne.NewPos(float32(bb.X-originX), float32(bb.Y-originY)))
	r.Resize(fyne.NewSize(float32(bb.Width), float32(bb.Height)))
	return r
}

func describe(el *dom.Element) string {
	if el == nil {
		return "<nil>"
	}
	if id := el.Id(); id != "" {
		return el.LocalName() + "#" + id
	}
	return el.LocalName()
}
