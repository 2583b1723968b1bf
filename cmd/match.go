package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/dragbounds/dom"
	"github.com/chrisuehlinger/dragbounds/domutil"
)

type matchReport struct {
	Node     string `json:"node"`
	Selector string `json:"selector"`
	Boundary string `json:"boundary,omitempty"`
	Matched  bool   `json:"matched"`
}

func newMatchCmd(s *session) *cobra.Command {
	var file, node, selector, boundary string
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Test whether a node or one of its ancestors up to a boundary matches a selector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.loadPage(cmd, file)
			if err != nil {
				return err
			}
			el, err := p.element(node)
			if err != nil {
				return err
			}
			var stop *dom.Element
			if boundary != "" {
				if stop, err = p.element(boundary); err != nil {
					return err
				}
			}

			matched, err := domutil.MatchSelectorAndParentsTo(domutil.ElementNode(el), selector, domutil.ElementNode(stop))
			if err != nil {
				return err
			}
			return writeJSON(cmd, matchReport{
				Node:     node,
				Selector: selector,
				Boundary: boundary,
				Matched:  matched,
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `HTML document to load ("-" for stdin)`)
	cmd.Flags().StringVarP(&node, "node", "n", "", "selector of the starting node")
	cmd.Flags().StringVarP(&selector, "selector", "s", "", "selector to test")
	cmd.Flags().StringVar(&boundary, "boundary", "", "selector of the boundary node (default: walk to the root)")
	_ = cmd.MarkFlagRequired("selector")
	return cmd
}
