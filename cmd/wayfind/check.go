package main

import (
	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/pkg/manifest"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func checkCmd() *cobra.Command {
	var strictViews bool

	cmd := &cobra.Command{
		Use:   "check <manifest>",
		Short: "Validate a route manifest",
		Long: `Check parses a route manifest and compiles every pattern, failing on
the first invalid declaration. Nothing is executed; this is the
fail-fast path for CI.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			var opts []router.TreeOption
			if strictViews {
				opts = append(opts, router.ForbidDuplicateViews())
			}
			tree, err := m.Build(opts...)
			if err != nil {
				return err
			}

			routes := tree.Routes()
			success("%s: %d routes compile", args[0], len(routes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strictViews, "strict-views", false, "Reject duplicate view ids")

	return cmd
}
