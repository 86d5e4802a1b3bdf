package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/saldeo-connector/internal/payments"
	"github.com/rezonia/saldeo-connector/internal/report"
)

var (
	reportOutput   string
	reportTemplate string
	reportSuffix   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render finished payments into an XLSX invoicing report",
	Long: `Fetch completed payment sessions from the payments platform and
write them into an XLSX report for accounting. When --template points at an
existing workbook its "Faktury" sheet is filled in; otherwise a fresh
workbook with a header row is created.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "report.xlsx", "Output file path")
	reportCmd.Flags().StringVar(&reportTemplate, "template", "", "XLSX template to fill (optional)")
	reportCmd.Flags().StringVar(&reportSuffix, "suffix", time.Now().Format("2006/01"), "Invoice series suffix stamped on every row")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Payments.URL == "" {
		return fmt.Errorf("payments url is not configured (set payments.url or %s)", "PAYMENTS_API_URL")
	}

	client := payments.NewClient()
	records, err := client.Fetch(context.Background(), cfg.Payments.URL)
	if err != nil {
		return err
	}
	printVerbose("fetched %d finished payment(s)\n", len(records))

	if err := report.Fill(records, reportTemplate, reportOutput, reportSuffix); err != nil {
		return err
	}

	fmt.Printf("Wrote %d payment(s) to %s\n", len(records), reportOutput)
	return nil
}
