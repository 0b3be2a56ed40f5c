package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fightmetrics/internal/server"
	"github.com/matzehuels/fightmetrics/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var flags configFlags
	var addr string
	var fps int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an animated instance over HTTP",
		Long: `Serve mounts one instance on a single event loop and exposes its current
frame, graph and metrics over HTTP.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}

			metrics := server.NewMetrics()
			observability.SetBackdropHooks(metrics)
			observability.SetHTTPHooks(metrics)

			srv := server.New(server.Options{
				Config:  cfg,
				FPS:     fps,
				Logger:  loggerFromContext(cmd.Context()),
				Metrics: metrics,
				Hooks:   observability.HTTP(),
			})

			base := baseURL(addr)
			printInfo("Serving %s", StyleTitle.Render("FightMetrics backdrop"))
			printLink("frame  ", base+"/frame.svg")
			printLink("graph  ", base+"/graph.json")
			printLink("metrics", base+"/metrics")
			return srv.Serve(cmd.Context(), addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().IntVar(&fps, "fps", defaultFPS, "frames per second")
	return cmd
}

// baseURL turns a listen address into a clickable URL.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return fmt.Sprintf("http://%s", addr)
}
