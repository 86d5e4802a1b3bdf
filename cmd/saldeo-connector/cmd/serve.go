package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/saldeo-connector/internal/payments"
	"github.com/rezonia/saldeo-connector/internal/server"
)

var (
	serveAddress  string
	serveTemplate string
	serveDebug    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the connector HTTP API",
	Long: `Start an HTTP server exposing document submission, invoice PDF
retrieval, and payment report rendering.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveTemplate, "template", "", "XLSX template for the report endpoint (optional)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable request logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv := server.NewServer(&server.Config{
		Address:        serveAddress,
		PaymentsURL:    cfg.Payments.URL,
		ReportTemplate: serveTemplate,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   2 * time.Minute,
		Debug:          serveDebug,
	}, newProviderClient(cfg), payments.NewClient())

	fmt.Printf("Listening on %s\n", serveAddress)
	return srv.Run()
}
