// Command trcheck fails when a translation key used in the source is missing
// from one of the supported locales.
package main

import (
	"fmt"
	"os"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/worktrack/worktrack/modules"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/commands"
	"github.com/worktrack/worktrack/pkg/logging"
	"github.com/worktrack/worktrack/pkg/session"
)

func newRootCmd() *cobra.Command {
	var (
		root      string
		languages []string
	)
	cmd := &cobra.Command{
		Use:           "trcheck",
		Short:         "Check that every translation key exists in every locale",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := application.New(&application.ApplicationOptions{Sessions: session.NewMemoryStore()})
			if err := modules.Load(app); err != nil {
				return errors.Wrap(err, "load modules")
			}
			logger := logging.ConsoleLogger(logrus.InfoLevel)
			missing, err := commands.CheckTrUsage(logger, app.Bundle(), root, languages)
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				return errors.Errorf("%d translation key(s) missing", len(missing))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "source tree to scan")
	cmd.Flags().StringSliceVar(&languages, "lang", []string{"en", "zh"}, "locales that must define every key")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
