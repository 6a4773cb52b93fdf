package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/logging"
	"tableflip.dev/daybook/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command, d *daybook) {
	var transport string
	ho := mcp.HTTPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes calendars and events as resources and
tools. Every call requires the signed-in session of this data directory.`,
		Example: `
daybook mcp --transport stdio
daybook mcp --http-port 0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			runner := mcp.Runner{
				Service:   d.svc,
				Name:      "daybook",
				Version:   version,
				Transport: t,
				HTTP:      ho,
				OnListening: func(url string) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", url)
				},
			}

			// Pick up edits made by the CLI or the UI while the server runs.
			if err := d.svc.Store.Watch(cmd.Context()); err != nil {
				logging.Error("mcp: watch data directory", err)
			}
			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&ho.Host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&ho.Port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&ho.Path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&ho.CertFile, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&ho.KeyFile, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}
