// Package cmd implements the dragbounds command line.
package cmd

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/dragbounds/config"
	"github.com/chrisuehlinger/dragbounds/logging"
	"github.com/chrisuehlinger/dragbounds/ui"
)

// session carries what the subcommands of one invocation share.
type session struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger

	newApp func() fyne.App
	run    func(*ui.Playground)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{
		newApp: func() fyne.App { return app.NewWithID("io.github.chrisuehlinger.dragbounds") },
		run:    (*ui.Playground).Run,
	})
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dragbounds",
		Short:         "Resolve drag bounds and match selectors against HTML documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), s.cfgFile)
			if err != nil {
				return err
			}
			s.cfg = cfg
			logging.InitializeStderr(cfg.Logger)
			s.logger = logging.GetLogger()
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&s.cfgFile, "config", "c", "", "config file (default is ./dragbounds.yaml)")

	rootCmd.AddCommand(
		newEnvelopeCmd(s),
		newMatchCmd(s),
		newSizeCmd(s),
		newSnapshotCmd(s),
		newViewCmd(s),
	)
	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
