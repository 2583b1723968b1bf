package domutil

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/dragbounds/css"
	"github.com/chrisuehlinger/dragbounds/dom"
	"github.com/chrisuehlinger/dragbounds/html"
	"github.com/chrisuehlinger/dragbounds/layout"
)

// styleMap is a StyleReader backed by per-element property maps. Missing
// properties read as "0px".
type styleMap map[*dom.Element]map[string]string

func (m styleMap) ComputedValue(el *dom.Element, property string) string {
	if v, ok := m[el][property]; ok {
		return v
	}
	return "0px"
}

// scenario builds a parent of client size 300x200 holding a node at offset
// (10, 5) with client size 100x50 and 2px horizontal margins.
func scenario(t *testing.T) (parent, node *dom.Element, styles styleMap) {
	t.Helper()
	doc := dom.NewDocument()
	parent = doc.CreateElement("div")
	node = doc.CreateElement("div")
	_, err := doc.AppendChild(parent.AsNode())
	require.NoError(t, err)
	_, err = parent.AppendChild(node.AsNode())
	require.NoError(t, err)

	parent.SetGeometry(&dom.ElementGeometry{ClientWidth: 300, ClientHeight: 200})
	node.SetGeometry(&dom.ElementGeometry{ClientWidth: 100, ClientHeight: 50, OffsetLeft: 10, OffsetTop: 5})
	styles = styleMap{node: {"margin-left": "2px", "margin-right": "2px"}}
	return parent, node, styles
}

func TestResolveEnvelope_ParentScenario(t *testing.T) {
	_, node, styles := scenario(t)

	env, err := NewResolver(styles, nil).ResolveEnvelope(node, ParentBounds())
	require.NoError(t, err)

	want := Rect{Left: At(-8), Top: At(-5), Right: At(188), Bottom: At(145)}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("envelope mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEnvelope_ExplicitRectIsIdentity(t *testing.T) {
	_, node, styles := scenario(t)
	r := NewResolver(styles, nil)

	explicit := Rect{Left: At(-3), Bottom: At(math.NaN())}
	env, err := r.ResolveEnvelope(node, RectBounds(explicit))
	require.NoError(t, err)
	if diff := cmp.Diff(explicit, env, cmp.Comparer(func(a, b float64) bool {
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	})); diff != "" {
		t.Errorf("explicit bounds changed (-want +got):\n%s", diff)
	}

	// A nil element is irrelevant for explicit bounds.
	env, err = r.ResolveEnvelope(nil, RectBounds(explicit))
	require.NoError(t, err)
	assert.Equal(t, explicit.Left, env.Left)
}

func TestResolveEnvelope_Errors(t *testing.T) {
	parent, node, styles := scenario(t)
	r := NewResolver(styles, nil)

	tests := []struct {
		name   string
		el     *dom.Element
		bounds Bounds
		cause  error
	}{
		{"selector without match", node, SelectorBounds("#missing"), ErrNoElement},
		{"invalid selector", node, SelectorBounds("div["), css.ErrInvalidSelector},
		{"parent is the document", parent, ParentBounds(), ErrNotElement},
		{"detached node", parent.OwnerDocument().CreateElement("p"), ParentBounds(), ErrNoElement},
		{"nil node", nil, SelectorBounds("div"), ErrNoElement},
		{"unknown mode", node, Bounds{Mode: BoundsMode(42)}, ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ResolveEnvelope(tt.el, tt.bounds)
			var bre *BoundsResolutionError
			require.True(t, errors.As(err, &bre), "want *BoundsResolutionError, got %v", err)
			assert.Equal(t, tt.bounds, bre.Bounds)
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestResolveEnvelope_SelectorUsesFirstMatch(t *testing.T) {
	parent, node, styles := scenario(t)
	parent.SetAttribute("class", "area")
	// A later match in tree order must not be used.
	other := parent.OwnerDocument().CreateElement("div")
	other.SetAttribute("class", "area")
	other.SetGeometry(&dom.ElementGeometry{ClientWidth: 1000, ClientHeight: 1000})
	_, err := parent.AppendChild(other.AsNode())
	require.NoError(t, err)

	r := NewResolver(styles, nil)
	bySelector, err := r.ResolveEnvelope(node, SelectorBounds(".area"))
	require.NoError(t, err)
	byParent, err := r.ResolveEnvelope(node, ParentBounds())
	require.NoError(t, err)
	assert.Equal(t, byParent, bySelector)
}

func TestResolveEnvelope_Layout(t *testing.T) {
	doc, err := html.Parse(`<style>body { margin: 0 }</style>
<div id="box" style="position: relative; width: 300px; height: 200px; padding: 10px; border: 5px solid">
  <div id="n" style="width: 50px; height: 40px; margin: 3px; border: 1px solid"></div>
</div>`)
	require.NoError(t, err)
	result := layout.NewEngine(800, 600, nil).Layout(doc)
	n := doc.GetElementById("n")

	r := NewResolver(result, nil)
	want := Rect{Left: At(0), Top: At(0), Right: At(242), Bottom: At(152)}
	for _, b := range []Bounds{ParentBounds(), SelectorBounds("#box"), ParseBounds("div#box")} {
		env, err := r.ResolveEnvelope(n, b)
		require.NoError(t, err, b.String())
		if diff := cmp.Diff(want, env); diff != "" {
			t.Errorf("%s: envelope mismatch (-want +got):\n%s", b, diff)
		}
	}

	pos, err := r.BoundPosition(n, ParentBounds(), Position{X: 500, Y: -20})
	require.NoError(t, err)
	assert.Equal(t, Position{X: 242, Y: 0}, pos)
}

func TestBoundPosition_PropagatesError(t *testing.T) {
	_, node, styles := scenario(t)
	in := Position{X: 1, Y: 2}
	pos, err := NewResolver(styles, nil).BoundPosition(node, SelectorBounds(".nope"), in)
	assert.Error(t, err)
	assert.Equal(t, in, pos)
}

func TestClamp(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		pos  Position
		env  Rect
		want Position
	}{
		{"only right", Position{50, 7}, Rect{Right: At(20)}, Position{20, 7}},
		{"only right inside", Position{5, 7}, Rect{Right: At(20)}, Position{5, 7}},
		{"only left", Position{-50, 7}, Rect{Left: At(-10)}, Position{-10, 7}},
		{"vertical pair", Position{0, 99}, Rect{Top: At(0), Bottom: At(40)}, Position{0, 40}},
		{"all four", Position{-5, -5}, Rect{Left: At(0), Top: At(1), Right: At(10), Bottom: At(11)}, Position{0, 1}},
		{"unbounded", Position{1e9, -1e9}, Rect{}, Position{1e9, -1e9}},
		{"malformed yields left", Position{7, 0}, Rect{Left: At(10), Right: At(5)}, Position{10, 0}},
		{"malformed yields top", Position{0, -100}, Rect{Top: At(10), Bottom: At(5)}, Position{0, 10}},
		{"nan bound never constrains", Position{50, 50}, Rect{Right: At(nan), Top: At(nan)}, Position{50, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.pos, tt.env))
		})
	}
}

func TestEnvelope_NaNPropagates(t *testing.T) {
	node := BoxMetrics{ClientWidth: 10, Margin: Edges{Left: math.NaN()}}
	env := Envelope(node, BoxMetrics{ClientWidth: 100})
	assert.True(t, math.IsNaN(env.Left.Value))
	assert.Equal(t, 90.0, env.Right.Value)
	assert.Equal(t, 500.0, Clamp(Position{X: 500}, Rect{Left: env.Left}).X)
}

func TestBoxMetricsSizes(t *testing.T) {
	m := BoxMetrics{
		ClientWidth:  100,
		ClientHeight: 50,
		Border:       Edges{Top: 1, Right: 2, Bottom: 3, Left: 4},
		Padding:      Edges{Top: 5, Right: 6, Bottom: 7, Left: 8},
		Margin:       Edges{Top: 100, Right: 100, Bottom: 100, Left: 100},
	}
	assert.Equal(t, 106.0, m.OuterWidth())
	assert.Equal(t, 54.0, m.OuterHeight())
	assert.Equal(t, 86.0, m.InnerWidth())
	assert.Equal(t, 38.0, m.InnerHeight())
}

func TestParseBoundsAndString(t *testing.T) {
	assert.Equal(t, ParentBounds(), ParseBounds("parent"))
	assert.Equal(t, SelectorBounds(".x"), ParseBounds(".x"))
	assert.Equal(t, `"parent"`, ParentBounds().String())
	assert.Equal(t, `".x"`, SelectorBounds(".x").String())
	assert.Equal(t, "{left:-1 top:none right:2.5 bottom:none}", RectBounds(Rect{Left: At(-1), Right: At(2.5)}).String())
}

func TestOffsetXYFromParent(t *testing.T) {
	doc, err := html.Parse(`<style>body { margin: 0 }</style><div id="p" style="position: relative; top: 40px; left: 30px; height: 100px"></div>`)
	require.NoError(t, err)
	layout.NewEngine(800, 600, nil).Layout(doc)

	p := doc.GetElementById("p")
	p.SetScrollTop(5)
	assert.Equal(t, Position{X: 70, Y: 75}, OffsetXYFromParent(100, 110, p))

	doc.Body().SetScrollLeft(3)
	assert.Equal(t, Position{X: 103, Y: 110}, OffsetXYFromParent(100, 110, doc.Body()))
}
