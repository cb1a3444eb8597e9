package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurlCommand(t *testing.T) {
	cmd := curlCommand("https://example.com/submit", "key-1", []byte(`{"title":"A B"}`))
	assert.Equal(t,
		`curl -s -X POST https://example.com/submit -H 'Content-Type: application/json' `+
			`-H 'X-API-Key: key-1' -d '{"title":"A B"}'`,
		cmd)
}

func TestCurlCommandWithoutAPIKey(t *testing.T) {
	cmd := curlCommand("https://example.com/submit", "", []byte(`{}`))
	assert.NotContains(t, cmd, "X-API-Key")
}
