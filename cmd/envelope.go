package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/dragbounds/domutil"
)

type envelopeReport struct {
	Node     string         `json:"node"`
	Bounds   string         `json:"bounds"`
	Envelope rectReport     `json:"envelope"`
	Position positionReport `json:"position"`
}

// boundsFlags are the flags selecting a Bounds, shared by envelope and view.
type boundsFlags struct {
	bounds string
	rect   string
}

func (f *boundsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.bounds, "bounds", "b", "parent", `"parent" or a selector for the bounding element`)
	cmd.Flags().StringVar(&f.rect, "rect", "", "explicit envelope as left,top,right,bottom; empty fields are unbounded")
}

func (f *boundsFlags) resolve() (domutil.Bounds, error) {
	if f.rect == "" {
		return domutil.ParseBounds(f.bounds), nil
	}
	r, err := parseRect(f.rect)
	if err != nil {
		return domutil.Bounds{}, err
	}
	return domutil.RectBounds(r), nil
}

// parseRect reads "left,top,right,bottom". Blank fields stay unset.
func parseRect(s string) (domutil.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return domutil.Rect{}, fmt.Errorf("--rect needs 4 comma separated values, got %d", len(parts))
	}
	var limits [4]domutil.Limit
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return domutil.Rect{}, fmt.Errorf("--rect field %d: %w", i+1, err)
		}
		limits[i] = domutil.At(v)
	}
	return domutil.Rect{Left: limits[0], Top: limits[1], Right: limits[2], Bottom: limits[3]}, nil
}

func newEnvelopeCmd(s *session) *cobra.Command {
	var (
		file, node string
		x, y       float64
		bf         boundsFlags
	)
	cmd := &cobra.Command{
		Use:   "envelope",
		Short: "Resolve the drag envelope of a node and clamp a position into it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bounds, err := bf.resolve()
			if err != nil {
				return err
			}
			p, err := s.loadPage(cmd, file)
			if err != nil {
				return err
			}
			el, err := p.element(node)
			if err != nil {
				return err
			}

			resolver := domutil.NewResolver(p.result, s.logger)
			env, err := resolver.ResolveEnvelope(el, bounds)
			if err != nil {
				return err
			}
			return writeJSON(cmd, envelopeReport{
				Node:     node,
				Bounds:   bounds.String(),
				Envelope: newRectReport(env),
				Position: newPositionReport(domutil.Clamp(domutil.Position{X: x, Y: y}, env)),
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `HTML document to load ("-" for stdin)`)
	cmd.Flags().StringVarP(&node, "node", "n", "", "selector of the dragged node")
	cmd.Flags().Float64Var(&x, "x", 0, "candidate x offset")
	cmd.Flags().Float64Var(&y, "y", 0, "candidate y offset")
	bf.register(cmd)
	return cmd
}
