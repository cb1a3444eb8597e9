package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/preprintwatch/kgx3-endpoint-tests/runner"
)

//go:embed report_template.html
var reportTemplate string

const (
	passColor = template.CSS("#d4edda")
	failColor = template.CSS("#f8d7da")
	skipColor = template.CSS("#fff3cd")

	reportTimestampFormat = "2006-01-02 15:04:05"
	reportFileNameFormat  = "2006-01-02_15-04-05"
)

type reportRow struct {
	Name         string
	Status       string
	ResponseTime string
	Result       string
	Color        template.CSS
}

type reportModel struct {
	GeneratedAt       string
	EndpointURL       string
	TotalRequests     int
	Passed            int
	Failed            int
	Skipped           int
	SuccessRate       string
	TotalDuration     string
	RequestsPerSecond string
	MinResponseTime   string
	MaxResponseTime   string
	AvgResponseTime   string
	StatusCounts      []StatusCount
	Rows              []reportRow
}

// DefaultPath returns the timestamped file name the report is written to
// when no explicit path is configured.
func DefaultPath(now time.Time) string {
	return fmt.Sprintf("API_Performance_Report_%s.html", now.Format(reportFileNameFormat))
}

// Render writes the HTML report for a completed run to dest.
func Render(dest io.Writer, s Summary, outcomes []runner.Outcome) error {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("report template is invalid: %w", err)
	}

	model := reportModel{
		GeneratedAt:       s.GeneratedAt.Format(reportTimestampFormat),
		EndpointURL:       s.EndpointURL,
		TotalRequests:     s.TotalRequests,
		Passed:            s.Passed,
		Failed:            s.Failed,
		Skipped:           s.Skipped,
		SuccessRate:       fmt.Sprintf("%.2f", s.SuccessRate),
		TotalDuration:     fmt.Sprintf("%.2f", s.TotalDuration.Seconds()),
		RequestsPerSecond: fmt.Sprintf("%.2f", s.RequestsPerSecond),
		MinResponseTime:   seconds4(s.MinResponseTime),
		MaxResponseTime:   seconds4(s.MaxResponseTime),
		AvgResponseTime:   seconds4(s.AvgResponseTime),
		StatusCounts:      s.StatusCounts,
	}

	for _, o := range outcomes {
		row := reportRow{Name: o.Name, Status: o.Status}
		switch {
		case o.Skipped:
			row.Result = "SKIP"
			row.ResponseTime = "N/A"
			row.Color = skipColor
		case o.Passed:
			row.Result = "PASS"
			row.Color = passColor
		default:
			row.Result = "FAIL"
			row.Color = failColor
		}
		if !o.Skipped {
			if o.Responded {
				row.ResponseTime = seconds4(o.Elapsed) + "s"
			} else {
				row.ResponseTime = "N/A"
			}
		}
		model.Rows = append(model.Rows, row)
	}

	return tmpl.Execute(dest, model)
}

// WriteFile renders the report to path, creating or truncating the file.
func WriteFile(path string, s Summary, outcomes []runner.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create report file %s: %w", path, err)
	}
	if err := Render(f, s, outcomes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func seconds4(d time.Duration) string {
	return fmt.Sprintf("%.4f", d.Seconds())
}
