package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/saldeo-connector/internal/saldeo"
)

var (
	submitYear  int
	submitMonth string
)

var submitCmd = &cobra.Command{
	Use:   "submit <pdf>...",
	Short: "Submit local PDF files to Saldeo as documents",
	Long: `Submit one or more local PDF files to Saldeo in a single
document/add request. Each file becomes a manifest entry with its own
attachment; Saldeo correlates them by attachment identifier.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

func init() {
	now := time.Now()
	submitCmd.Flags().IntVar(&submitYear, "year", now.Year(), "Accounting year for the documents")
	submitCmd.Flags().StringVar(&submitMonth, "month", now.Format("01"), "Accounting month for the documents (two digits)")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newProviderClient(cfg)

	manifest := &saldeo.Manifest{}
	attachments := make(map[string][]byte, len(args))
	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		id := fmt.Sprintf("file%d", i+1)
		manifest.Documents = append(manifest.Documents, saldeo.Document{
			Year:         submitYear,
			Month:        submitMonth,
			Filename:     filepath.Base(path),
			AttachmentID: id,
		})
		attachments[id] = data
		printVerbose("queued %s as %s\n", path, id)
	}

	resp, err := client.AddDocuments(context.Background(), manifest, attachments)
	if err != nil {
		return err
	}

	// The provider reports failures inside the XML body, not via HTTP
	// status; surface the raw body either way.
	printVerbose("provider response:\n%s\n", resp.Body)
	if resp.Status != "" && !resp.OK() {
		return fmt.Errorf("provider reported status %s:\n%s", resp.Status, resp.Body)
	}

	fmt.Printf("Submitted %d document(s)", len(args))
	if resp.Status != "" {
		fmt.Printf(", provider status: %s", resp.Status)
	}
	fmt.Println()
	return nil
}
