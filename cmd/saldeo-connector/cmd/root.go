package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/saldeo-connector/internal/config"
	"github.com/rezonia/saldeo-connector/internal/saldeo"
)

var (
	version = "1.0.0"

	// Global flags
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "saldeo-connector",
	Short: "Submit invoices to Saldeo and retrieve generated PDFs",
	Long: `Saldeo Connector integrates the payments platform with the Saldeo
invoicing service.

It submits invoice documents over Saldeo's signed HTTP/XML API, resolves
and downloads the PDFs Saldeo generates, and renders payment reports for
accounting.

Credentials come from a YAML config file or environment variables
(SALDEO_USERNAME, SALDEO_API_TOKEN, SALDEO_COMPANY_PROGRAM_ID,
SALDEO_BASE_URL).

Examples:
  # Submit a sales invoice PDF as a document
  saldeo-connector submit faktura.pdf --year 2024 --month 08

  # Download the generated PDF for an invoice
  saldeo-connector fetch "FV-123/2025" -o faktura.pdf --validate

  # Render the finished-payments report
  saldeo-connector report -o report.xlsx --template szablon.xlsx

  # Run the HTTP API
  saldeo-connector serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file (env vars override)")
}

// loadConfig reads the shared configuration for all subcommands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	return cfg, nil
}

func newProviderClient(cfg *config.Config) *saldeo.Client {
	return saldeo.NewClient(cfg.ClientConfig(), saldeo.WithTimeout(cfg.Timeout()))
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
