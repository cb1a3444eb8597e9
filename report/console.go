package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	passedText = color.New(color.FgGreen)
	failedText = color.New(color.FgRed)
)

// PrintSummary writes the end-of-run totals to the console.
func PrintSummary(dest io.Writer, s Summary) {
	fmt.Fprintln(dest)
	fmt.Fprintf(dest, "Ran %d test case(s) in %.2fs (%.2f req/s)\n",
		s.TotalRequests, s.TotalDuration.Seconds(), s.RequestsPerSecond)
	if s.Failed == 0 {
		passedText.Fprintf(dest, "All %d executed test case(s) passed\n", s.Passed)
	} else {
		failedText.Fprintf(dest, "FAILED: %d of %d test case(s) did not pass\n", s.Failed, s.TotalRequests)
	}
	if s.Skipped > 0 {
		fmt.Fprintf(dest, "Skipped: %d\n", s.Skipped)
	}
}
