package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/dragbounds/domutil"
)

type sizeReport struct {
	Node   string   `json:"node"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

func newSizeCmd(s *session) *cobra.Command {
	var file, node string
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Print the computed width and height of a node",
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
			w, h := domutil.GetComputedSize(el, p.result)
			return writeJSON(cmd, sizeReport{Node: node, Width: number(w), Height: number(h)})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `HTML document to load ("-" for stdin)`)
	cmd.Flags().StringVarP(&node, "node", "n", "", "selector of the node")
	return cmd
}
