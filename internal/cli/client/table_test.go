package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlan = `Here is the test plan:

| Test_ID | Feature | Scenario | Expected_Result | Grounded_Source |
|---------|---------|----------|-----------------|-----------------|
| TC-001 | Discount | Apply valid code SAVE15 | Price reduces by 15% | rules.txt |
| TC-002 | Discount | Apply invalid code | Error banner shown | rules.txt |

Let me know if you need more.`

func TestParsePlanTable(t *testing.T) {
	rows := ParsePlanTable(samplePlan)
	require.Len(t, rows, 2)

	assert.Equal(t, "TC-001", rows[0].TestID)
	assert.Equal(t, "Discount", rows[0].Feature)
	assert.Equal(t, "Apply valid code SAVE15", rows[0].Scenario)
	assert.Equal(t, "Price reduces by 15%", rows[0].ExpectedResult)
	assert.Equal(t, "rules.txt", rows[0].GroundedSource)

	assert.Equal(t, "TC-002", rows[1].TestID)
	assert.Equal(t, "Error banner shown", rows[1].ExpectedResult)
}

func TestParsePlanTable_MissingSourceCell(t *testing.T) {
	plan := "| TC-003 | Checkout | Submit empty form | Validation errors |"
	rows := ParsePlanTable(plan)
	require.Len(t, rows, 1)
	assert.Equal(t, "TC-003", rows[0].TestID)
	assert.Equal(t, "", rows[0].GroundedSource)
}

func TestParsePlanTable_SkipsShortRows(t *testing.T) {
	plan := "| TC-004 | Checkout |\n| TC-005 | Checkout | Submit | OK | faq.md |"
	rows := ParsePlanTable(plan)
	require.Len(t, rows, 1)
	assert.Equal(t, "TC-005", rows[0].TestID)
}

func TestParsePlanTable_NoTable(t *testing.T) {
	rows := ParsePlanTable("Sorry, I cannot produce a table for that request.")
	assert.Empty(t, rows)
}

func TestParsePlanTable_SeparatorVariants(t *testing.T) {
	plan := "| :--- | :--- | :--- | :--- | :--- |\n| TC-006 | F | S | E | src |"
	rows := ParsePlanTable(plan)
	require.Len(t, rows, 1)
	assert.Equal(t, "TC-006", rows[0].TestID)
}

func TestCaseString(t *testing.T) {
	row := TestCaseRow{
		TestID:         "TC-001",
		Feature:        "Discount",
		Scenario:       "Apply valid code SAVE15",
		ExpectedResult: "Price reduces by 15%",
		GroundedSource: "rules.txt",
	}

	got := row.CaseString()
	assert.Equal(t, "Test_ID: TC-001\nFeature: Discount\nScenario: Apply valid code SAVE15\nExpected_Result: Price reduces by 15%\nSource: rules.txt", got)
}

func TestRenderRows(t *testing.T) {
	rows := ParsePlanTable(samplePlan)
	out := RenderRows(rows)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Test_ID")
	assert.Contains(t, lines[1], "TC-001")
	assert.Contains(t, lines[2], "TC-002")
}

func TestFindRowByID(t *testing.T) {
	rows := ParsePlanTable(samplePlan)

	row, ok := FindRowByID(rows, "tc-002")
	require.True(t, ok)
	assert.Equal(t, "TC-002", row.TestID)

	_, ok = FindRowByID(rows, "TC-999")
	assert.False(t, ok)
}
