package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/dragbounds/dom"
	"github.com/chrisuehlinger/dragbounds/domutil"
	"github.com/chrisuehlinger/dragbounds/layout"
)

// DraggableBox is a widget drawing one element's subtree that follows drag
// gestures, keeping its offset inside an envelope.
type DraggableBox struct {
	widget.BaseWidget

	Element *dom.Element

	// OnMoved is called with the clamped offset after every drag step.
	OnMoved func(domutil.Position)
	// OnDragEnd is called when the gesture finishes.
	OnDragEnd func(domutil.Position)

	origin   fyne.Position
	envelope domutil.Rect
	offset   domutil.Position
	content  *fyne.Container
	logger   *zap.Logger
}

var _ fyne.Draggable = (*DraggableBox)(nil)

// NewDraggableBox creates a draggable widget for a laid-out box. Offsets are
// relative to the box's natural border-box position.
func NewDraggableBox(box *layout.LayoutBox, envelope domutil.Rect, logger *zap.Logger) *DraggableBox {
	if logger == nil {
		logger = zap.NewNop()
	}
	bb := box.Dimensions.BorderBox()

	body := canvas.NewRectangle(nodeFill)
	body.StrokeColor = nodeColor
	body.StrokeWidth = 2
	body.Resize(fyne.NewSize(float32(bb.Width), float32(bb.Height)))
	objects := []fyne.CanvasObject{body}
	for _, child := range box.Children {
		child.Walk(func(b *layout.LayoutBox) {
			objects = append(objects, boxRectangle(b, bb.X, bb.Y, nodeColor))
		})
	}

	d := &DraggableBox{
		Element:  box.Element,
		origin:   fyne.NewPos(float32(bb.X), float32(bb.Y)),
		envelope: envelope,
		content:  container.NewWithoutLayout(objects...),
		logger:   logger,
	}
	d.ExtendBaseWidget(d)
	d.Move(d.origin)
	d.Resize(fyne.NewSize(float32(bb.Width), float32(bb.Height)))
	return d
}

// CreateRenderer implements fyne.Widget.
func (d *DraggableBox) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.content)
}

// Offset returns the current offset from the natural position.
func (d *DraggableBox) Offset() domutil.Position {
	return d.offset
}

// Envelope returns the envelope the offset is clamped to.
func (d *DraggableBox) Envelope() domutil.Rect {
	return d.envelope
}

// SetEnvelope replaces the envelope and re-clamps the current offset.
func (d *DraggableBox) SetEnvelope(env domutil.Rect) {
	d.envelope = env
	d.SetOffset(d.offset)
}

// SetOffset clamps pos into the envelope and moves the widget there.
func (d *DraggableBox) SetOffset(pos domutil.Position) {
	d.offset = domutil.Clamp(pos, d.envelope)
	d.Move(fyne.NewPos(d.origin.X+float32(d.offset.X), d.origin.Y+float32(d.offset.Y)))
	if d.OnMoved != nil {
		d.OnMoved(d.offset)
	}
}

// Reset returns the box to its natural position.
func (d *DraggableBox) Reset() {
	d.SetOffset(domutil.Position{})
}

// Dragged implements fyne.Draggable.
func (d *DraggableBox) Dragged(ev *fyne.DragEvent) {
	d.SetOffset(domutil.Position{
		X: d.offset.X + float64(ev.Dragged.DX),
		Y: d.offset.Y + float64(ev.Dragged.DY),
	})
}

// DragEnd implements fyne.Draggable.
func (d *DraggableBox) DragEnd() {
	d.logger.Debug("drag finished",
		zap.String("element", describe(d.Element)),
		zap.Float64("x", d.offset.X),
		zap.Float64("y", d.offset.Y),
	)
	if d.OnDragEnd != nil {
		d.OnDragEnd(d.offset)
	}
}
