package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/config"
	"github.com/alexiusacademia/gorcdraft/internal/store"
	"github.com/alexiusacademia/gorcdraft/internal/syncer"
	"github.com/alexiusacademia/gorcdraft/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	apiURL string
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "gorcdraft",
	Short: "Structural drafting and BS 8110 calculation reports",
	Long: `gorcdraft - Go Reinforced Concrete Drafting

A CLI tool for tracing building plans into walls, columns, beams and slabs,
sending them to the analysis service and producing the calculation sheets
of the BS 8110 design it returns.

This tool helps structural engineers:
  - Replay drafting sessions for the ground and first floor
  - Submit plan geometry and persist structural edits
  - Generate paginated calculation reports (HTML and PDF)
  - Export beam envelopes and beam/slab schedules
  - Render single SVG details of beams, columns, slabs, stairs and footings

Settings are read from the environment (GORCDRAFT_*) or a .env file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if apiURL != "" {
			cfg.APIURL = apiURL
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gorcdraft v%-45s║\n", version.Version)
		fmt.Println("  ║   Go Reinforced Concrete Drafting                         ║")
		fmt.Println("  ║   BS 8110 calculation sheets                              ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Drafting sessions with scale calibration and snapping")
		fmt.Println("    • Structure submission and edit persistence")
		fmt.Println("    • Paginated calculation reports in 80-page bands")
		fmt.Println("    • Bending moment and shear force envelopes")
		fmt.Println("    • Beam and slab schedules exported to Excel")
		fmt.Println()
		fmt.Println("  Use 'gorcdraft --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Analysis service base URL (default $GORCDRAFT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Local state database (default $GORCDRAFT_DB)")
}

// newSyncer connects to the analysis service and the local state database.
// The caller closes the returned store.
func newSyncer() (*syncer.Syncer, *client.Client, *store.Store, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	c := client.New(cfg.APIURL)
	return syncer.New(c, st), c, st, nil
}

// writeFile creates path and streams the rendered output into it.
func writeFile(path string, render func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render(f)
}
