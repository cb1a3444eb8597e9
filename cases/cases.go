// Package cases loads the tabular test-case definitions that drive a run.
package cases

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// TestCase is one row of the input file: the request fields to submit and
// the HTTP status the endpoint is expected to return.
type TestCase struct {
	Name           string
	APIKey         string
	Title          string
	PDFURL         string
	Email          string
	ExpectedStatus ldvalue.OptionalInt
}

var requiredColumns = []string{"api_key", "title", "pdf_url"}

// LoadFile reads test cases from a CSV file with a header row. Column order
// does not matter; unrecognized columns are ignored. Rows keep file order.
func LoadFile(path string) ([]TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open test case file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // short rows just leave fields blank
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}

	columns := make(map[string]int)
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%s is missing required column %q", path, name)
		}
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var cases []TestCase
	for n, row := range rows[1:] {
		c := TestCase{
			Name:   field(row, "test_case_name"),
			APIKey: field(row, "api_key"),
			Title:  field(row, "title"),
			PDFURL: field(row, "pdf_url"),
			Email:  field(row, "email"),
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("Test Case %d", n+1)
		}
		if s := field(row, "expected_status"); s != "" {
			status, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("row %d of %s: invalid expected_status %q", n+2, path, s)
			}
			c.ExpectedStatus = ldvalue.NewOptionalInt(status)
		}
		cases = append(cases, c)
	}
	return cases, nil
}
