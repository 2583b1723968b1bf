package cmd

import (
	"fmt"
	"image/color"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/dragbounds/domutil"
	"github.com/chrisuehlinger/dragbounds/render"
)

var (
	envelopeFill   = color.RGBA{R: 0, G: 160, B: 255, A: 64}
	envelopeStroke = color.RGBA{R: 0, G: 110, B: 200, A: 255}
)

type snapshotReport struct {
	Node     string     `json:"node"`
	Output   string     `json:"output"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Envelope rectReport `json:"envelope"`
}

func newSnapshotCmd(s *session) *cobra.Command {
	var (
		file, node, output string
		bf                 boundsFlags
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Paint the page with the node's drag envelope shaded and save it as PNG",
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
			box := p.result.Box(el)
			if box == nil {
				return fmt.Errorf("element %s is not rendered", node)
			}
			env, err := domutil.NewResolver(p.result, s.logger).ResolveEnvelope(el, bounds)
			if err != nil {
				return err
			}

			canvas := render.NewCanvas(int(s.cfg.Layout.ViewportWidth), int(s.cfg.Layout.ViewportHeight))
			canvas.Paint(p.result.Root)
			canvas.PaintEnvelope(box, env, envelopeFill, envelopeStroke)

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create snapshot: %w", err)
			}
			if err := canvas.WritePNG(f); err != nil {
				f.Close()
				return fmt.Errorf("failed to encode snapshot: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			s.logger.Info("snapshot written", zap.String("output", output), zap.String("node", node))

			return writeJSON(cmd, snapshotReport{
				Node:     node,
				Output:   output,
				Width:    canvas.Width,
				Height:   canvas.Height,
				Envelope: newRectReport(env),
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `HTML document to load ("-" for stdin)`)
	cmd.Flags().StringVarP(&node, "node", "n", "", "selector of the dragged node")
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write")
	_ = cmd.MarkFlagRequired("output")
	bf.register(cmd)
	return cmd
}
