package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/pkg/manifest"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func routesCmd() *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:   "routes <manifest>",
		Short: "Print the compiled route tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			tree, err := m.Build()
			if err != nil {
				return err
			}

			if flat {
				for _, r := range tree.Routes() {
					line := fmt.Sprintf("%-40s %s", r.Path, r.View)
					if r.CatchAllView != "" {
						line += fmt.Sprintf("  (catch-all: %s)", r.CatchAllView)
					}
					fmt.Println(line)
				}
				return nil
			}

			tree.Walk(func(n *router.Node, depth int) bool {
				indent := strings.Repeat("  ", depth)
				line := fmt.Sprintf("%s%s  →  %s", indent, n.Pattern(), n.View())
				if n.CatchAllView() != "" {
					line += fmt.Sprintf("  (catch-all: %s)", n.CatchAllView())
				}
				fmt.Println(line)
				return true
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&flat, "flat", false, "Print full patterns instead of the tree")

	return cmd
}
