package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

// PlanResponse represents the test plan generation API response.
type PlanResponse struct {
	Status   string `json:"status"`
	TestPlan string `json:"test_plan"`
}

// PlanCmd creates the plan command.
func PlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <prompt>",
		Short: "Generate a grounded test plan",
		Long:  "Generates a markdown test plan grounded in the ingested knowledge base and caches it for script generation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args[0])
		},
	}
}

func runPlan(cmd *cobra.Command, prompt string) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Generating test plan...")

	var resp PlanResponse
	if err := api.Post("/generate-test-cases", map[string]string{"prompt": prompt}, &resp); err != nil {
		return fmt.Errorf("plan generation failed: %w", err)
	}

	if err := SaveLastPlan(resp.TestPlan); err != nil {
		return err
	}

	rows := ParsePlanTable(resp.TestPlan)
	if len(rows) == 0 {
		// Model output is a soft contract; show it raw instead of failing.
		fmt.Println(resp.TestPlan)
		fmt.Println()
		fmt.Println("Could not parse a test case table from the plan. Use 'veriflow script --case' for manual mode.")
		return nil
	}

	fmt.Println()
	fmt.Print(RenderRows(rows))
	fmt.Printf("\n%d test case(s). Generate scripts with 'veriflow script --id <Test_ID>' or '--all'.\n", len(rows))
	return nil
}
