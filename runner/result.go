package runner

import (
	"strconv"
	"time"
)

// Status strings for cases that never produced an HTTP response. Cases that
// did get a response use the numeric status code as their status string, so
// these sort into the same histogram as real codes.
const (
	StatusTimeout      = "Timeout"
	StatusRequestError = "Request Error"
)

// Outcome is the recorded result of one test case.
type Outcome struct {
	Name      string
	Row       int // 1-based position in the input file
	Status    string
	Code      int // 0 unless an HTTP response was received
	Elapsed   time.Duration
	Responded bool // an HTTP response was received (Elapsed is meaningful)
	Passed    bool
	Skipped   bool
}

func responseOutcome(name string, row int, code int, elapsed time.Duration, passed bool) Outcome {
	return Outcome{
		Name:      name,
		Row:       row,
		Status:    strconv.Itoa(code),
		Code:      code,
		Elapsed:   elapsed,
		Responded: true,
		Passed:    passed,
	}
}

// Results holds the ordered outcomes of a full run.
type Results struct {
	Outcomes []Outcome
	Started  time.Time
	Duration time.Duration
}

// OK reports whether every executed (non-skipped) case passed.
func (r Results) OK() bool {
	for _, o := range r.Outcomes {
		if !o.Skipped && !o.Passed {
			return false
		}
	}
	return true
}
