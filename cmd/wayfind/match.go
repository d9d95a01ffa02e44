package main

import (
	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/pkg/manifest"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// matchOptions merges the manifest policy with command-line overrides.
func matchOptions(m *manifest.Manifest, trimSlash, foldCase bool) router.MatchOptions {
	return router.MatchOptions{
		TrimTrailingSlash:     trimSlash || m.Policy.TrimTrailingSlash,
		CaseInsensitiveStatic: foldCase || m.Policy.CaseInsensitiveStatic,
	}
}

func matchCmd() *cobra.Command {
	var trimSlash, foldCase bool

	cmd := &cobra.Command{
		Use:   "match <manifest> <path>",
		Short: "Probe a path against a manifest",
		Long: `Match compiles the manifest and runs the matcher once against the
given path, printing the matched chain, parameters, and wildcard
remainder. Nothing is committed; the history stack is not involved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			tree, err := m.Build()
			if err != nil {
				return err
			}

			opts := matchOptions(m, trimSlash, foldCase)
			result, ok := tree.MatchWith(args[1], opts)
			if !ok {
				warn("%s: no route matches", args[1])
				return nil
			}

			success("%s", args[1])
			for i, node := range result.Chain {
				info("%*s%s  →  %s", i*2, "", node.Pattern(), node.View())
			}
			if result.CatchAllView != "" {
				info("catch-all view: %s", result.CatchAllView)
			}
			for name, value := range result.Params {
				info("param %s = %q", name, value)
			}
			if result.Remainder != "" {
				info("remainder = %q", result.Remainder)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trimSlash, "trim-trailing-slash", false, "Treat /a/ as /a")
	cmd.Flags().BoolVar(&foldCase, "fold-case", false, "Match static segments case-insensitively")

	return cmd
}
