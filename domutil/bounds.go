package domutil

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/dragbounds/css"
	"github.com/chrisuehlinger/dragbounds/dom"
)

// Limit is an optional coordinate. An unset Limit, or one holding NaN,
// never constrains.
type Limit struct {
	Value float64
	Set   bool
}

// At returns a set Limit.
func At(v float64) Limit {
	return Limit{Value: v, Set: true}
}

func (l Limit) String() string {
	if !l.Set {
		return "none"
	}
	return strconv.FormatFloat(l.Value, 'g', -1, 64)
}

// Rect is a movement envelope in node-local offset coordinates.
type Rect struct {
	Left, Top, Right, Bottom Limit
}

// BoundsMode selects how Bounds is resolved.
type BoundsMode int

const (
	// BoundsRect uses Bounds.Rect as given.
	BoundsRect BoundsMode = iota
	// BoundsParent uses the node's parent element.
	BoundsParent
	// BoundsSelector uses the first element in the document matching
	// Bounds.Selector.
	BoundsSelector
)

// Bounds describes the area a node may be dragged within. It is a value
// type; resolution never modifies the caller's copy.
type Bounds struct {
	Mode     BoundsMode
	Selector string
	Rect     Rect
}

// ParentBounds bounds a node by its parent.
func ParentBounds() Bounds {
	return Bounds{Mode: BoundsParent}
}

// SelectorBounds bounds a node by the first element matching selector.
func SelectorBounds(selector string) Bounds {
	return Bounds{Mode: BoundsSelector, Selector: selector}
}

// RectBounds bounds a node by an explicit envelope.
func RectBounds(r Rect) Bounds {
	return Bounds{Mode: BoundsRect, Rect: r}
}

// ParseBounds interprets the string form of bounds: "parent" or a selector.
func ParseBounds(s string) Bounds {
	if s == "parent" {
		return ParentBounds()
	}
	return SelectorBounds(s)
}

func (b Bounds) String() string {
	switch b.Mode {
	case BoundsParent:
		return `"parent"`
	case BoundsSelector:
		return strconv.Quote(b.Selector)
	default:
		r := b.Rect
		return fmt.Sprintf("{left:%s top:%s right:%s bottom:%s}", r.Left, r.Top, r.Right, r.Bottom)
	}
}

// Position is a drag offset from the node's natural placement.
type Position struct {
	X, Y float64
}

// Resolver turns Bounds into envelopes using the live element tree.
type Resolver struct {
	styles StyleReader
	logger *zap.Logger
}

// NewResolver creates a Resolver. A nil styles reads through CascadeStyles;
// a nil logger disables logging.
func NewResolver(styles StyleReader, logger *zap.Logger) *Resolver {
	if styles == nil {
		styles = CascadeStyles{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{styles: styles, logger: logger.Named("bounds")}
}

// ResolveEnvelope returns the envelope el may move within. Explicit bounds
// are returned unchanged; parent and selector bounds are measured from the
// current layout. Failures are *BoundsResolutionError.
func (r *Resolver) ResolveEnvelope(el *dom.Element, b Bounds) (Rect, error) {
	if b.Mode == BoundsRect {
		return b.Rect, nil
	}
	bound, err := r.boundElement(el, b)
	if err != nil {
		r.logger.Debug("bounds resolution failed", zap.Stringer("bounds", b), zap.Error(err))
		return Rect{}, err
	}
	return Envelope(ReadBoxMetrics(el, r.styles), ReadBoxMetrics(bound, r.styles)), nil
}

// BoundPosition resolves b for el and clamps pos into it.
func (r *Resolver) BoundPosition(el *dom.Element, b Bounds, pos Position) (Position, error) {
	env, err := r.ResolveEnvelope(el, b)
	if err != nil {
		return pos, err
	}
	return Clamp(pos, env), nil
}

func (r *Resolver) boundElement(el *dom.Element, b Bounds) (*dom.Element, error) {
	fail := func(err error) (*dom.Element, error) {
		return nil, &BoundsResolutionError{Bounds: b, Err: err}
	}
	if el == nil {
		return fail(ErrNoElement)
	}

	switch b.Mode {
	case BoundsParent:
		parent := el.ParentNode()
		if parent == nil {
			return fail(ErrNoElement)
		}
		if !parent.IsElement() {
			return fail(ErrNotElement)
		}
		return parent.AsElement(), nil

	case BoundsSelector:
		doc := el.OwnerDocument()
		if doc == nil {
			return fail(ErrNoDocument)
		}
		found, err := css.QuerySelector(doc.AsNode(), b.Selector)
		if err != nil {
			return fail(err)
		}
		if found == nil {
			return fail(ErrNoElement)
		}
		return found, nil
	}
	return fail(ErrUnknownMode)
}

// Envelope computes the envelope of a node from its metrics and those of its
// bound. The node's margin and the bound's padding are folded into the
// limits.
func Envelope(node, bound BoxMetrics) Rect {
	return Rect{
		Left: At(-node.OffsetLeft + bound.Padding.Left + node.Margin.Left),
		Top:  At(-node.OffsetTop + bound.Padding.Top + node.Margin.Top),
		Right: At(bound.InnerWidth() - node.OuterWidth() - node.OffsetLeft +
			bound.Padding.Right - node.Margin.Right),
		Bottom: At(bound.InnerHeight() - node.OuterHeight() - node.OffsetTop +
			bound.Padding.Bottom - node.Margin.Bottom),
	}
}

// Clamp keeps pos inside env. Per axis the max limit applies before the min
// limit, so an inverted envelope yields its left or top value.
func Clamp(pos Position, env Rect) Position {
	return Position{
		X: clampAxis(pos.X, env.Left, env.Right),
		Y: clampAxis(pos.Y, env.Top, env.Bottom),
	}
}

func clampAxis(v float64, lo, hi Limit) float64 {
	if hi.Set && v > hi.Value {
		v = hi.Value
	}
	if lo.Set && v < lo.Value {
		v = lo.Value
	}
	return v
}

// OffsetXYFromParent converts viewport client coordinates into coordinates
// relative to offsetParent, including its scroll offset. The body is taken
// to sit at the origin.
func OffsetXYFromParent(clientX, clientY float64, offsetParent *dom.Element) Position {
	var rect dom.DOMRect
	if doc := offsetParent.OwnerDocument(); doc == nil || offsetParent != doc.Body() {
		rect = offsetParent.GetBoundingClientRect()
	}
	return Position{
		X: clientX + offsetParent.ScrollLeft() - rect.Left(),
		Y: clientY + offsetParent.ScrollTop() - rect.Top(),
	}
}
