// Command kgx3-endpoint-tests runs the KGX3 submit endpoint regression
// suite: it loads test cases from a CSV file, posts each one to the
// endpoint, checks the returned status codes, and writes a run log and an
// HTML performance report.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/preprintwatch/kgx3-endpoint-tests/cases"
	"github.com/preprintwatch/kgx3-endpoint-tests/history"
	"github.com/preprintwatch/kgx3-endpoint-tests/logging"
	"github.com/preprintwatch/kgx3-endpoint-tests/report"
	"github.com/preprintwatch/kgx3-endpoint-tests/runner"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 2
	}

	cfg, err := params.resolveConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	runLog, err := logging.NewRunLog(cfg.LogFile, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer runLog.Close()

	runLog.Infof("Starting API tests against: %s", cfg.EndpointURL)

	testCases, err := cases.LoadFile(cfg.CasesFile)
	if err != nil {
		runLog.Errorf("Error loading test cases: %s", err)
		return 2
	}
	if len(testCases) == 0 {
		runLog.Errorf("No test cases found in %s", cfg.CasesFile)
		return 2
	}

	runner.DescribeFilters(os.Stdout, params.filters)

	r := &runner.Runner{
		EndpointURL: cfg.EndpointURL,
		Timeout:     params.effectiveTimeout(cfg),
		Delay:       params.effectiveDelay(cfg),
		Log:         runLog,
		Verbose:     params.debug,
	}

	if params.wait > 0 {
		if err := r.Preflight(params.wait); err != nil {
			runLog.Errorf("%s", err)
			return 2
		}
	}

	results := r.RunSuite(testCases, params.filters.AsFilter)
	summary := report.Summarize(results, cfg.EndpointURL)

	reportPath := cfg.ReportPath
	if reportPath == "" {
		reportPath = report.DefaultPath(time.Now())
	}
	reportOK := true
	if err := report.WriteFile(reportPath, summary, results.Outcomes); err != nil {
		runLog.Errorf("Error generating HTML report: %s", err)
		reportOK = false
	} else {
		runLog.Successf("Successfully generated HTML report: %s", reportPath)
	}

	if cfg.HistoryDB != "" {
		archiveRun(runLog, cfg.HistoryDB, results, summary)
	}

	report.PrintSummary(os.Stdout, summary)

	if !results.OK() || !reportOK {
		return 1
	}
	return 0
}

// archiveRun saves the run to the history database. Archiving is
// best-effort: failures are logged and do not fail the run.
func archiveRun(runLog *logging.RunLog, dbPath string, results runner.Results, summary report.Summary) {
	store, err := history.Open(dbPath)
	if err != nil {
		runLog.Errorf("Error opening run history database: %s", err)
		return
	}
	defer store.Close()
	if _, err := store.SaveRun(results.Started, summary, results.Outcomes); err != nil {
		runLog.Errorf("Error archiving run history: %s", err)
	}
}
