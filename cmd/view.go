package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/dragbounds/ui"
)

func newViewCmd(s *session) *cobra.Command {
	var (
		file, node string
		bf         boundsFlags
	)
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a window where the node can be dragged inside its bounds",
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

			opts := ui.Options{Title: s.cfg.View.Title, Width: s.cfg.View.Width, Height: s.cfg.View.Height}
			playground, err := ui.NewPlayground(s.newApp(), p.result, el, bounds, opts, s.logger)
			if err != nil {
				return err
			}
			s.run(playground)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `HTML document to load ("-" for stdin)`)
	cmd.Flags().StringVarP(&node, "node", "n", "", "selector of the dragged node")
	bf.register(cmd)
	return cmd
}
