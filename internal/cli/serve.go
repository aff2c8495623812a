package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagplacer/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the placement HTTP API",
		Long: `Run the placement HTTP API until interrupted.

Endpoints:
  GET  /healthz       liveness probe
  GET  /version       build information
  POST /v1/place      place tags on a scene
  POST /v1/spiral     list spiral candidates
  POST /v1/resolve    resolve candidates against obstacles

Requests fall back to the [placement] values of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, c.Config.Options())
			newPrinter(cmd).info("Listening on %s", styleAccent.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
