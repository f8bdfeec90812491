package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mvvm/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┬  ┬┬  ┬┌┬┐
  │││└┐┌┘└┐┌┘│││
  ┴ ┴ └┘  └┘ ┴ ┴
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every command that builds a view model.
type globalFlags struct {
	configDir  string
	metricsOut string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mvvm",
		Short: "Reactive data binding for HTML templates",
		Long: `mvvm binds YAML or JSON data to HTML templates.

Every property of the data is observed. Template interpolations
({{ path }}) and v-model inputs become watchers that update the
rendered fragment whenever a property along their path is written.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configDir, "config", "c", ".", "Directory containing mvvm.json")
	rootCmd.PersistentFlags().StringVar(&flags.metricsOut, "metrics-out", "", "Write Prometheus metrics to this file (- for stdout)")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		renderCmd(flags),
		watchCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner(cmd *cobra.Command) {
	fmt.Fprint(cmd.OutOrStdout(), banner)
}
