// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/startup-analyzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis and project API over HTTP",
	Long: `Serve starts the HTTP/JSON API:

  GET    /                 API root
  GET    /health           health check
  POST   /analyze          run one analysis
  GET    /projects         list projects (?status=, ?q=, ?limit=)
  POST   /projects         create a project
  GET    /projects/{id}    fetch a project
  DELETE /projects/{id}    delete a project

Requests are served concurrently; each analysis is independent. The server
stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8000)")
	serveCmd.Flags().Bool("no-store", false, "disable project storage and the /projects routes")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	noStore, _ := cmd.Flags().GetBool("no-store")

	p, err := newPipeline(ctx, nil)
	if err != nil {
		return err
	}
	defer p.shutdown(context.WithoutCancel(ctx))

	var store server.ProjectStore
	if !noStore {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
		logger.Info("project store opened", "path", cfg.Store.Path)
	}

	srv := server.New(p.analyzer, store,
		server.WithLogger(logger),
		server.WithVersion(version),
	)
	return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ReadHeaderTimeout)
}
