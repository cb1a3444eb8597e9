package runner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFiltersDefaultRunsEverything(t *testing.T) {
	var filters RegexFilters
	assert.True(t, filters.AsFilter("anything at all"))
}

func TestRegexFiltersMustMatch(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("auth"))
	require.NoError(t, filters.MustMatch.Set("^Valid"))

	assert.True(t, filters.AsFilter("bad auth key"))
	assert.True(t, filters.AsFilter("Valid submission"))
	assert.False(t, filters.AsFilter("missing title"))
}

func TestRegexFiltersMustNotMatch(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("slow"))

	assert.True(t, filters.AsFilter("Valid submission"))
	assert.False(t, filters.AsFilter("slow endpoint"))
}

func TestRegexFiltersMustNotMatchWins(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("submission"))
	require.NoError(t, filters.MustNotMatch.Set("invalid"))

	assert.True(t, filters.AsFilter("valid submission"))
	assert.False(t, filters.AsFilter("invalid submission"))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var list RegexList
	require.Error(t, list.Set("("))
	assert.False(t, list.IsDefined())
}

func TestDescribeFilters(t *testing.T) {
	var buf bytes.Buffer
	DescribeFilters(&buf, RegexFilters{})
	assert.Equal(t, "", buf.String(), "no output expected when no filters are set")

	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("auth"))
	require.NoError(t, filters.MustNotMatch.Set("slow"))
	DescribeFilters(&buf, filters)
	assert.Contains(t, buf.String(), `skip any not matching "auth"`)
	assert.Contains(t, buf.String(), `skip any matching "slow"`)
}
