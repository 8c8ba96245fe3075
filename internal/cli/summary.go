package cli

import (
	"fmt"

	"github.com/celconf/celconf/internal/classify"
	"github.com/celconf/celconf/internal/report"
)

// printRunSummary prints a formatted run summary.
func printRunSummary(counts *report.Counts, policy classify.Policy) {
	out.Println("")
	out.SummaryHeader("Run Summary")

	out.SummaryPassed("Passed", fmt.Sprintf("%d", counts.Passed))
	if counts.Failed > 0 {
		out.SummaryFailed("Failed", fmt.Sprintf("%d", counts.Failed))
	}
	if counts.Diags > 0 {
		out.SummaryItem("Diagnostics", fmt.Sprintf("%d", counts.Diags))
	}
	out.SummaryItem("Total", fmt.Sprintf("%d", counts.Total))
	out.SummaryItem("Match policy", policy.String())

	if len(counts.Failures) > 0 {
		out.Println("")
		out.SummarySectionLabel("Failed Scenarios:")
		for _, f := range counts.Failures {
			label := fmt.Sprintf("  %s/%s", f.Suite, f.Scenario)
			out.SummaryFailed(label, f.Reason)
		}
	}

	out.Println("")

	if counts.Failed == 0 {
		out.FinalSuccess("All %d scenarios passed.", counts.Total)
	} else {
		out.FinalFailure("%d of %d scenarios failed.", counts.Failed, counts.Total)
	}
}
