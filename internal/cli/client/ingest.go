package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

// IngestResponse represents the knowledge base build API response.
type IngestResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	ChunksCreated int    `json:"chunks_created"`
}

// IngestCmd creates the ingest command.
func IngestCmd() *cobra.Command {
	var htmlPath string

	cmd := &cobra.Command{
		Use:   "ingest [files...]",
		Short: "Build the knowledge base",
		Long:  "Uploads product documents plus the page under test and builds the knowledge base.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if htmlPath == "" {
				return fmt.Errorf("--html is required")
			}
			return runIngest(cmd, args, htmlPath)
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "Path to the HTML page under test (required)")

	return cmd
}

func runIngest(cmd *cobra.Command, filePaths []string, htmlPath string) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("Uploading %d document(s) and %s...\n", len(filePaths), htmlPath)

	var resp IngestResponse
	if err := api.PostMultipart("/build-knowledge-base", filePaths, htmlPath, &resp); err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("%s %d chunks created.\n", resp.Message, resp.ChunksCreated)
	return nil
}
