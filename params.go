package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/preprintwatch/kgx3-endpoint-tests/config"
	"github.com/preprintwatch/kgx3-endpoint-tests/runner"
)

type commandParams struct {
	configPath string
	url        string
	casesFile  string
	logFile    string
	reportPath string
	historyDB  string
	timeout    time.Duration
	delay      time.Duration
	wait       time.Duration
	filters    runner.RegexFilters
	debug      bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&c.url, "url", "", "KGX3 endpoint URL (overrides config)")
	fs.StringVar(&c.casesFile, "cases", "", "CSV file of test cases (overrides config)")
	fs.StringVar(&c.logFile, "log", "", "run log file path (overrides config)")
	fs.StringVar(&c.reportPath, "report", "", "HTML report path (default: timestamped file)")
	fs.StringVar(&c.historyDB, "history", "", "SQLite database for run history (default: disabled)")
	fs.DurationVar(&c.timeout, "timeout", 0, "per-request timeout (overrides config)")
	fs.DurationVar(&c.delay, "delay", -1, "pause between test cases (overrides config)")
	fs.DurationVar(&c.wait, "wait", 0, "wait this long for the endpoint to become reachable before starting")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select test cases to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select test cases not to run")
	fs.BoolVar(&c.debug, "debug", false, "log an equivalent curl command for every executed case")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

// resolveConfig overlays the command line options onto the (file or
// default) configuration.
func (c *commandParams) resolveConfig() (config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if c.url != "" {
		cfg.EndpointURL = c.url
	}
	if c.casesFile != "" {
		cfg.CasesFile = c.casesFile
	}
	if c.logFile != "" {
		cfg.LogFile = c.logFile
	}
	if c.reportPath != "" {
		cfg.ReportPath = c.reportPath
	}
	if c.historyDB != "" {
		cfg.HistoryDB = c.historyDB
	}
	return cfg, cfg.Validate()
}

func (c *commandParams) effectiveTimeout(cfg config.Config) time.Duration {
	if c.timeout > 0 {
		return c.timeout
	}
	return cfg.Timeout()
}

func (c *commandParams) effectiveDelay(cfg config.Config) time.Duration {
	if c.delay >= 0 {
		return c.delay
	}
	return cfg.Delay()
}
