// Package runner executes the test cases against the KGX3 endpoint, one
// request at a time, and records the outcomes.
package runner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"time"

	"github.com/preprintwatch/kgx3-endpoint-tests/cases"
	"github.com/preprintwatch/kgx3-endpoint-tests/logging"
)

const (
	// DefaultTimeout matches the very generous per-request limit the KGX3
	// endpoint needs while a submission is processed synchronously.
	DefaultTimeout = 200 * time.Second

	maxLoggedBody    = 500
	preflightBackoff = 500 * time.Millisecond
)

type submitPayload struct {
	Title  string `json:"title"`
	PDFURL string `json:"pdf_url"`
	Email  string `json:"email"`
}

// Runner issues one POST per test case and classifies the result.
type Runner struct {
	EndpointURL string
	Timeout     time.Duration // zero means DefaultTimeout
	Delay       time.Duration // pause between cases; zero means none
	HTTPClient  *http.Client  // optional; a client with Timeout is built otherwise
	Log         *logging.RunLog
	Verbose     bool // log an equivalent curl command per executed case
}

func (r *Runner) client() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Preflight polls the endpoint until it answers with any HTTP response at
// all, or the deadline passes. The submit endpoint has no status resource,
// so even a 404 or 405 proves the service is reachable.
func (r *Runner) Preflight(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: timeout}
	var lastErr error
	for {
		resp, err := client.Get(r.EndpointURL)
		if err == nil {
			resp.Body.Close()
			r.Log.Infof("Endpoint is reachable (status %d)", resp.StatusCode)
			return nil
		}
		lastErr = err
		if !time.Now().Before(deadline) {
			return fmt.Errorf("endpoint %s was not reachable within %s: %w", r.EndpointURL, timeout, lastErr)
		}
		time.Sleep(preflightBackoff)
	}
}

// RunSuite executes every test case in order. Cases excluded by the filter
// are recorded as skipped without sending a request. A nil filter runs
// everything.
func (r *Runner) RunSuite(testCases []cases.TestCase, filter Filter) Results {
	results := Results{Started: time.Now()}
	total := len(testCases)

	for i, c := range testCases {
		row := i + 1
		if filter != nil && !filter(c.Name) {
			r.Log.Infof("Skipping Test: %s (Row %d/%d) - excluded by filter parameters", c.Name, row, total)
			results.Outcomes = append(results.Outcomes, Outcome{
				Name:    c.Name,
				Row:     row,
				Status:  "Skipped",
				Skipped: true,
			})
			continue
		}

		r.Log.Infof("Running Test: %s (Row %d/%d)", c.Name, row, total)
		results.Outcomes = append(results.Outcomes, r.runCase(c, row))

		if r.Delay > 0 && i < total-1 {
			time.Sleep(r.Delay)
		}
	}

	results.Duration = time.Since(results.Started)
	return results
}

func (r *Runner) runCase(c cases.TestCase, row int) Outcome {
	body, err := json.Marshal(submitPayload{Title: c.Title, PDFURL: c.PDFURL, Email: c.Email})
	if err != nil {
		r.Log.Errorf("  FAIL: Could not encode payload for '%s': %s", c.Name, err)
		return Outcome{Name: c.Name, Row: row, Status: StatusRequestError}
	}

	if r.Verbose {
		r.Log.Infof("  Equivalent: %s", curlCommand(r.EndpointURL, c.APIKey, body))
	}

	req, err := http.NewRequest("POST", r.EndpointURL, bytes.NewReader(body))
	if err != nil {
		r.Log.Errorf("  FAIL: Request error for '%s': %s", c.Name, err)
		return Outcome{Name: c.Name, Row: row, Status: StatusRequestError}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	start := time.Now()
	resp, err := r.client().Do(req)
	elapsed := time.Since(start)

	if err != nil {
		if isTimeout(err) {
			r.Log.Errorf("  FAIL: Request timed out for '%s'", c.Name)
			return Outcome{Name: c.Name, Row: row, Status: StatusTimeout}
		}
		r.Log.Errorf("  FAIL: Request error for '%s': %s", c.Name, err)
		return Outcome{Name: c.Name, Row: row, Status: StatusRequestError}
	}

	respBody, readErr := ioutil.ReadAll(resp.Body)
	resp.Body.Close()

	passed := c.ExpectedStatus.IsDefined() && resp.StatusCode == c.ExpectedStatus.IntValue()
	if passed {
		r.Log.Successf("  PASS: Status code matches for '%s'", c.Name)
	} else {
		r.Log.Errorf("  FAIL: Status code MISMATCH for '%s' (expected %s, got %d)",
			c.Name, describeExpected(c), resp.StatusCode)
		if readErr == nil {
			r.logResponseBody(respBody)
		}
	}
	return responseOutcome(c.Name, row, resp.StatusCode, elapsed, passed)
}

func (r *Runner) logResponseBody(body []byte) {
	if len(body) == 0 {
		return
	}
	if json.Valid(body) {
		var pretty bytes.Buffer
		if json.Indent(&pretty, body, "    ", "  ") == nil {
			r.Log.Errorf("    Response Body: %s", pretty.String())
			return
		}
	}
	if len(body) > maxLoggedBody {
		body = body[:maxLoggedBody]
	}
	r.Log.Errorf("    Raw Response Body: %s", string(body))
}

func describeExpected(c cases.TestCase) string {
	if !c.ExpectedStatus.IsDefined() {
		return "none"
	}
	return fmt.Sprintf("%d", c.ExpectedStatus.IntValue())
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
