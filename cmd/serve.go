package cmd

import (
	"log"

	"github.com/alexiusacademia/gorcdraft/internal/server"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve report previews, PDFs and schedules over HTTP",
	Long: `Start the report preview server.

Routes:
  GET /health/live
  GET /reports/:taskId            HTML report, ?band=1-80 or ?band=all
  GET /reports/:taskId/pdf        PDF report
  GET /schedules/:taskId/GF.xlsx  beam and slab schedules (GF or FF; JSON without .xlsx)

Examples:
  gorcdraft serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (default $GORCDRAFT_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	port := servePort
	if port == "" {
		port = cfg.Port
	}

	syn, c, st, err := newSyncer()
	if err != nil {
		return err
	}
	defer st.Close()

	app := server.New(&server.Handlers{
		Reports:   c,
		Snapshots: syn,
		Budget:    cfg.PageBudget,
	})

	log.Printf("[SERVE] analysis service %s", cfg.APIURL)
	log.Printf("[SERVE] listening on :%s", port)
	return app.Listen(":" + port)
}
