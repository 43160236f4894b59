package cli

import (
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/geomech/pkg/api"
	"github.com/matzehuels/geomech/pkg/observability"
)

// serveCommand starts the HTTP API. It stops gracefully when the command
// context is cancelled.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculations over HTTP",
		Long: `Serve the calculations as a JSON API.

Routes:
  GET  /healthz              liveness and version
  GET  /v1/tools             list tools (?category=)
  GET  /v1/tools/{name}      describe a tool
  POST /v1/tools/{name}      run a tool (?no_cache=true)
  GET  /v1/runs              archived runs (?tool=&limit=)
  GET  /v1/runs/{id}         one archived run
  GET  /v1/units             unit system
  GET  /metrics              Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			logger := loggerFromContext(ctx)

			if addr == "" {
				addr = c.Config.Server.Addr
			}

			opts := api.Options{
				Logger:         logger,
				RequestTimeout: c.Config.Server.RequestTimeout.Duration,
			}
			if !noMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				prom, err := observability.NewPrometheus(reg)
				if err != nil {
					return err
				}
				observability.SetToolHooks(prom)
				observability.SetCacheHooks(prom)
				observability.SetHTTPHooks(prom)
				defer observability.Reset()
				opts.Metrics = prom.Handler()
			}

			runner, closeFn, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer closeFn()
			opts.Runner = runner

			srv := api.New(opts)
			err = srv.ListenAndServe(ctx, addr, func(a net.Addr) {
				printSuccess(out, "Listening on http://%s", a)
				printDetail(out, "cache: %s · archive: %s · metrics: %t",
					c.Config.Cache.Backend, c.Config.Archive.Backend, !noMetrics)
			})
			if err != nil {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}
