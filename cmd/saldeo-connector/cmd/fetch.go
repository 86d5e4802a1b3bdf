package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"
)

var (
	fetchOutput   string
	fetchValidate bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <invoice-number>",
	Short: "Download the PDF Saldeo generated for an invoice",
	Long: `Resolve an invoice by its number through Saldeo's listing API and
download the generated PDF.

With --validate the downloaded file is additionally checked for PDF
structural validity before the command reports success.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "invoice.pdf", "Output file path")
	fetchCmd.Flags().BoolVar(&fetchValidate, "validate", false, "Validate the downloaded PDF structure")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newProviderClient(cfg)
	number := args[0]

	out, err := os.Create(fetchOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", fetchOutput, err)
	}

	if err := client.FetchInvoicePDF(context.Background(), number, out); err != nil {
		out.Close()
		os.Remove(fetchOutput)
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", fetchOutput, err)
	}

	if fetchValidate {
		printVerbose("validating %s\n", fetchOutput)
		if err := api.ValidateFile(fetchOutput, nil); err != nil {
			return fmt.Errorf("downloaded file failed PDF validation: %w", err)
		}
	}

	fmt.Printf("Saved invoice %s to %s\n", number, fetchOutput)
	return nil
}
