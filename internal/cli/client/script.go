package client

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ScriptResponse represents the script generation API response.
type ScriptResponse struct {
	Status string `json:"status"`
	Script string `json:"script"`
}

// ScriptCmd creates the script command.
func ScriptCmd() *cobra.Command {
	var (
		ids      []string
		all      bool
		caseText string
		caseFile string
	)

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Generate Selenium scripts",
		Long: `Generates Selenium scripts for test cases from the last generated plan,
or for a manually supplied scenario with --case or --case-file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if caseFile != "" {
				data, err := os.ReadFile(caseFile)
				if err != nil {
					return fmt.Errorf("failed to read case file: %w", err)
				}
				caseText = string(data)
			}
			if caseText != "" {
				return runManualScript(cmd, caseText)
			}
			if !all && len(ids) == 0 {
				return fmt.Errorf("select test cases with --id or --all, or use --case for manual mode")
			}
			return runPlanScripts(cmd, ids, all)
		},
	}

	cmd.Flags().StringSliceVar(&ids, "id", nil, "Test_ID from the last plan (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "Generate scripts for every row of the last plan")
	cmd.Flags().StringVar(&caseText, "case", "", "Manual test scenario text")
	cmd.Flags().StringVar(&caseFile, "case-file", "", "File containing a manual test scenario")

	return cmd
}

func runManualScript(cmd *cobra.Command, caseText string) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	script, err := generateScript(api, caseText)
	if err != nil {
		return err
	}
	fmt.Println(script)
	return nil
}

func runPlanScripts(cmd *cobra.Command, ids []string, all bool) error {
	raw, err := LoadLastPlan()
	if err != nil {
		return err
	}

	rows := ParsePlanTable(raw)
	if len(rows) == 0 {
		return fmt.Errorf("the saved plan contains no parseable test cases; use --case for manual mode")
	}

	var selected []TestCaseRow
	if all {
		selected = rows
	} else {
		for _, id := range ids {
			row, ok := FindRowByID(rows, id)
			if !ok {
				return fmt.Errorf("test case %s not found in the last plan", id)
			}
			selected = append(selected, row)
		}
	}

	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	for i, row := range selected {
		fmt.Printf("[%d/%d] Generating script for %s - %s...\n", i+1, len(selected), row.TestID, row.Scenario)

		script, err := generateScript(api, row.CaseString())
		if err != nil {
			return fmt.Errorf("script generation for %s failed: %w", row.TestID, err)
		}

		fmt.Println(strings.Repeat("-", 60))
		fmt.Println(script)
		fmt.Println(strings.Repeat("-", 60))
	}

	return nil
}

func generateScript(api *APIClient, testCase string) (string, error) {
	var resp ScriptResponse
	if err := api.Post("/generate-selenium-script", map[string]string{"test_case": testCase}, &resp); err != nil {
		return "", err
	}
	return resp.Script, nil
}
