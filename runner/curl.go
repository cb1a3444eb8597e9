package runner

import (
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand renders a copy-pasteable curl equivalent of a test case
// request, for reproducing a result by hand.
func curlCommand(url string, apiKey string, body []byte) string {
	var b commandBuilder
	b.add("curl", "-s", "-X", "POST", url)
	b.add("-H", "Content-Type: application/json")
	if apiKey != "" {
		b.add("-H", "X-API-Key: "+apiKey)
	}
	b.add("-d", string(body))
	return b.String()
}
