package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mvvm/internal/errors"
	"github.com/vango-dev/mvvm/pkg/compile"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		dataFile     string
		templateFile string
		sets         []string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template against data",
		Long: `Compile an HTML template against a YAML or JSON data file and print
the rendered fragment.

Each --set writes a value through the bound properties before rendering,
so every interpolation and v-model input reading that path is updated.

Examples:
  mvvm render --data data.yaml --template page.html
  mvvm render -d data.yaml -t page.html --set user.name=Bob
  mvvm render -d data.yaml -t page.html --set 'user={name: Carol}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			model, err := e.loadModel(dataFile)
			if err != nil {
				return err
			}

			src, err := os.Open(templateFile)
			if err != nil {
				return errors.New("E201").Wrap(err)
			}
			defer src.Close()

			tmpl, err := compile.Compile(src, model,
				compile.WithLogger(e.logger),
				compile.WithWatcherOptions(e.watchOpts...),
			)
			if err != nil {
				return err
			}
			e.logger.Debug("mvvm: compiled template", "file", templateFile, "bindings", len(tmpl.Bindings()))

			if err := e.applySets(model, sets); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := tmpl.Render(out); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return e.writeMetrics(out)
		},
	}

	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "YAML or JSON data file")
	cmd.Flags().StringVarP(&templateFile, "template", "t", "", "HTML template file")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Write path=value before rendering (repeatable)")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}
