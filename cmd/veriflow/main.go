package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloo-solutions/veriflow/internal/cli"
	"github.com/cloo-solutions/veriflow/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "veriflow",
		Short: "Veriflow CLI - grounded test plan and Selenium script generation",
		Long: `Veriflow CLI drives the veriflow API: ingest product documents and the
page under test, generate a grounded test plan, then generate Selenium
scripts per test case.

Environment variables:
  VERIFLOW_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.IngestCmd())
	rootCmd.AddCommand(client.PlanCmd())
	rootCmd.AddCommand(client.ScriptCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
