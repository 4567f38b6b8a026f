package client

import (
	"fmt"
	"strings"
)

// TestCaseRow is one parsed row of a model-generated test plan table. Rows
// live only in session state and are regenerated with every new plan.
type TestCaseRow struct {
	TestID         string
	Feature        string
	Scenario       string
	ExpectedResult string
	GroundedSource string
}

// CaseString renders the row as the scenario text sent to script generation.
func (r TestCaseRow) CaseString() string {
	return fmt.Sprintf(
		"Test_ID: %s\nFeature: %s\nScenario: %s\nExpected_Result: %s\nSource: %s",
		r.TestID, r.Feature, r.Scenario, r.ExpectedResult, r.GroundedSource,
	)
}

// ParsePlanTable extracts test case rows from a markdown table embedded in
// model output. The parser is a best-effort heuristic over free text: it
// keeps pipe-prefixed lines, drops separator and header rows, and tolerates
// missing trailing cells. Zero rows is not an error; callers fall back to
// manual mode.
func ParsePlanTable(raw string) []TestCaseRow {
	var rows []TestCaseRow

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}

		cells := strings.Split(strings.Trim(line, "|"), "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}

		if len(cells) == 0 || strings.Contains(cells[0], "---") || strings.Contains(cells[0], "Test_ID") {
			continue
		}
		if len(cells) < 4 {
			continue
		}

		rows = append(rows, TestCaseRow{
			TestID:         cells[0],
			Feature:        cells[1],
			Scenario:       cells[2],
			ExpectedResult: cells[3],
			GroundedSource: cellAt(cells, 4),
		})
	}

	return rows
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

// RenderRows formats parsed rows as an aligned plain-text table.
func RenderRows(rows []TestCaseRow) string {
	headers := []string{"Test_ID", "Feature", "Scenario", "Expected_Result", "Grounded_Source"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.TestID, r.Feature, r.Scenario, r.ExpectedResult, r.GroundedSource}
		for j, c := range cells[i] {
			if len(c) > widths[j] {
				widths[j] = len(c)
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for j, c := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			b.WriteString(c)
			b.WriteString(strings.Repeat(" ", widths[j]-len(c)))
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	for _, row := range cells {
		writeRow(row)
	}
	return b.String()
}

// FindRowByID returns the row whose Test_ID matches id, case-insensitively.
func FindRowByID(rows []TestCaseRow, id string) (TestCaseRow, bool) {
	for _, r := range rows {
		if strings.EqualFold(r.TestID, id) {
			return r, true
		}
	}
	return TestCaseRow{}, false
}
