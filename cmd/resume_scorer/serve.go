package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/server"
)

type serveOptions struct {
	host string
	port int
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes REST endpoints for scoring resumes and inspecting keywords.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "Host to bind (overrides server.host)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "Port to listen on (overrides server.port)")

	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions) error {
	a, err := newApp(cmd.Context(), root, cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	if opts.host != "" {
		a.cfg.Server.Host = opts.host
	}
	if opts.port != 0 {
		a.cfg.Server.Port = opts.port
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(a.cfg, a.scorer, a.metrics, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
