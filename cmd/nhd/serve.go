package main

import (
	"github.com/spf13/cobra"

	"github.com/North-Head-Digital/nhd-website/pkg/server"
)

var (
	servePort      int
	servePublicDir string
)

// serveCmd runs the development static server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the public directory for local development",
	Long: `Serves static files from the public directory. Unknown paths fall back to
portal.html (/portal), portal/app/index.html (/portal/app/*) or index.html.
Form-encoded POSTs to / are captured and logged so the form fallback can be
tested locally.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("public") {
			cfg.Server.PublicDir = servePublicDir
		}

		return server.NewDevServer(cfg, logger).Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 3001, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVar(&servePublicDir, "public", "public", "Directory to serve")
}
