package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mvvm/pkg/reactive"
)

func watchCmd(flags *globalFlags) *cobra.Command {
	var (
		dataFile string
		path     string
		sets     []string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the values a watcher receives",
		Long: `Create a watcher on a path, apply each --set in order and print every
value the watcher is called with.

Examples:
  mvvm watch --data data.yaml --path user.name --set user.name=Bob
  mvvm watch -d data.yaml -p user.name --set 'user={name: Carol}' --set user.name=Dave`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			model, err := e.loadModel(dataFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := model.Watch(path, func(v reactive.Value) {
				fmt.Fprintf(out, "change: %s\n", reactive.Text(v))
			}, e.watchOpts...)
			fmt.Fprintf(out, "initial: %s\n", reactive.Text(w.Value()))

			if err := e.applySets(model, sets); err != nil {
				return err
			}
			return e.writeMetrics(out)
		},
	}

	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "YAML or JSON data file")
	cmd.Flags().StringVarP(&path, "path", "p", "", "Dotted path to watch")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Write path=value after the watcher is created (repeatable)")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}
