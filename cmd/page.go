package cmd

import (
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/dragbounds/css"
	"github.com/chrisuehlinger/dragbounds/dom"
	"github.com/chrisuehlinger/dragbounds/domutil"
	"github.com/chrisuehlinger/dragbounds/layout"
	"github.com/chrisuehlinger/dragbounds/network"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// page is a parsed and laid-out document.
type page struct {
	doc    *dom.Document
	result *layout.Result
}

// loadPage loads the HTML document at path (a file, an http(s) URL, or "-"
// for stdin) with its linked stylesheets and lays it out in the configured
// viewport.
func (s *session) loadPage(cmd *cobra.Command, path string) (*page, error) {
	if path == "" {
		return nil, fmt.Errorf("--file is required")
	}
	client, err := network.NewClient(
		network.WithTimeout(s.cfg.Network.Timeout),
		network.WithUserAgent(s.cfg.Network.UserAgent),
		network.WithMaxRedirects(s.cfg.Network.MaxRedirects),
	)
	if err != nil {
		return nil, err
	}
	loader := network.NewLoader(client, s.logger, network.WithStdin(cmd.InOrStdin()))

	ctx := cmd.Context()
	doc, res, err := loader.LoadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	engine := layout.NewEngine(s.cfg.Layout.ViewportWidth, s.cfg.Layout.ViewportHeight, s.logger)
	for _, ss := range loader.LinkedStylesheets(ctx, doc, res.Location) {
		engine.AddStylesheet(ss)
	}
	s.logger.Debug("document loaded", zap.String("source", path))
	return &page{doc: doc, result: engine.Layout(doc)}, nil
}

// element returns the first element matching selector.
func (p *page) element(selector string) (*dom.Element, error) {
	if selector == "" {
		return nil, fmt.Errorf("a node selector is required")
	}
	el, err := css.QuerySelector(p.doc.AsNode(), selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return el, nil
}

// writeJSON prints v as indented JSON on the command's output.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// number renders NaN and infinities as JSON null.
func number(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

type rectReport struct {
	Left   *float64 `json:"left"`
	Top    *float64 `json:"top"`
	Right  *float64 `json:"right"`
	Bottom *float64 `json:"bottom"`
}

func limitReport(l domutil.Limit) *float64 {
	if !l.Set {
		return nil
	}
	return number(l.Value)
}

func newRectReport(r domutil.Rect) rectReport {
	return rectReport{
		Left:   limitReport(r.Left),
		Top:    limitReport(r.Top),
		Right:  limitReport(r.Right),
		Bottom: limitReport(r.Bottom),
	}
}

type positionReport struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func newPositionReport(p domutil.Position) positionReport {
	return positionReport{X: number(p.X), Y: number(p.Y)}
}
