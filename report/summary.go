// Package report aggregates run results and renders the performance report.
package report

import (
	"sort"
	"time"

	"github.com/preprintwatch/kgx3-endpoint-tests/runner"
)

// StatusCount is one row of the status code histogram. Status is a string
// because failed requests are bucketed as "Timeout" or "Request Error"
// alongside numeric codes.
type StatusCount struct {
	Status string
	Count  int
}

// Summary holds the aggregate statistics for one run. Skipped cases are
// counted separately and do not contribute to totals, rates, or latencies.
type Summary struct {
	GeneratedAt       time.Time
	EndpointURL       string
	TotalRequests     int
	Passed            int
	Failed            int
	Skipped           int
	SuccessRate       float64 // percentage
	TotalDuration     time.Duration
	RequestsPerSecond float64
	MinResponseTime   time.Duration
	MaxResponseTime   time.Duration
	AvgResponseTime   time.Duration
	StatusCounts      []StatusCount
}

// Summarize computes the summary statistics for a completed run.
func Summarize(results runner.Results, endpointURL string) Summary {
	s := Summary{
		GeneratedAt:   time.Now(),
		EndpointURL:   endpointURL,
		TotalDuration: results.Duration,
	}

	counts := make(map[string]int)
	var totalLatency time.Duration
	responded := 0

	for _, o := range results.Outcomes {
		if o.Skipped {
			s.Skipped++
			continue
		}
		s.TotalRequests++
		if o.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		counts[o.Status]++
		if o.Responded {
			responded++
			totalLatency += o.Elapsed
			if o.Elapsed < s.MinResponseTime || responded == 1 {
				s.MinResponseTime = o.Elapsed
			}
			if o.Elapsed > s.MaxResponseTime {
				s.MaxResponseTime = o.Elapsed
			}
		}
	}

	if s.TotalRequests > 0 {
		s.SuccessRate = float64(s.Passed) / float64(s.TotalRequests) * 100
	}
	if s.TotalDuration > 0 {
		s.RequestsPerSecond = float64(s.TotalRequests) / s.TotalDuration.Seconds()
	}
	if responded > 0 {
		s.AvgResponseTime = totalLatency / time.Duration(responded)
	}

	for status, count := range counts {
		s.StatusCounts = append(s.StatusCounts, StatusCount{Status: status, Count: count})
	}
	sort.Slice(s.StatusCounts, func(i, j int) bool {
		if s.StatusCounts[i].Count != s.StatusCounts[j].Count {
			return s.StatusCounts[i].Count > s.StatusCounts[j].Count
		}
		return s.StatusCounts[i].Status < s.StatusCounts[j].Status
	})

	return s
}
