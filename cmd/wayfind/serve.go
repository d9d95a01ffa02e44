package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/pkg/inspect"
	"github.com/wayfind-dev/wayfind/pkg/manifest"
)

func serveCmd() *cobra.Command {
	var addr, initial string

	cmd := &cobra.Command{
		Use:   "serve <manifest>",
		Short: "Run the inspection server over a manifest",
		Long: `Serve builds a navigation session from the manifest and exposes it
over HTTP: route table, match probe, history, navigation endpoint,
Prometheus metrics, and a websocket feed of committed navigations.

This is a development aid. The session lives in this process only;
nothing is persisted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			session, err := m.Session()
			if err != nil {
				return err
			}
			if err := session.Init(initial); err != nil {
				return err
			}
			defer session.Close()

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			srv := inspect.New(session, inspect.WithLogger(logger))
			defer srv.Close()

			printBanner()
			success("serving %s on %s", args[0], addr)
			info("routes:   GET  http://localhost%s/routes", addr)
			info("match:    GET  http://localhost%s/match?path=/...", addr)
			info("history:  GET  http://localhost%s/history", addr)
			info("navigate: POST http://localhost%s/navigate", addr)
			info("metrics:  GET  http://localhost%s/metrics", addr)
			info("feed:     GET  ws://localhost%s/ws", addr)

			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8930", "Listen address")
	cmd.Flags().StringVar(&initial, "initial", "/", "Initial navigation path")

	return cmd
}
