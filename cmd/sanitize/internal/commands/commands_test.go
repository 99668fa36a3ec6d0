package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const events = `{"id":"1","url":"https://api.example.com/orders","method":"GET","status":500}
{"id":"2","url":"https://cdn.example.com/app.js","method":"GET","status":200}
{"id":"3","url":"https://example.com/api/users","method":"GET","status":200}
{"id":"4","url":"https://www.google-analytics.com/collect","method":"POST","status":200}
{"id":"5","url":"https://example.com/report","method":"GET","status":200,"duration":3500}
`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Setenv("SANITIZER_PRESET", "")
	t.Setenv("SANITIZER_LOG_LEVEL", "")
	t.Setenv("SANITIZER_ORIGIN", "")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func ids(t *testing.T, out string) []string {
	var ids []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var v struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &v))
		ids = append(ids, v.ID)
	}
	return ids
}

func Test_Presets(t *testing.T) {
	out, _, err := run(t, "", "presets")
	require.NoError(t, err)
	require.Equal(t, "balanced\ndebug\nstrict\nverbose\n", out)
}

func Test_Classify(t *testing.T) {
	t.Run("Successfully classifies stdin with the balanced preset", func(t *testing.T) {
		out, stderr, err := run(t, events, "classify")
		require.NoError(t, err)
		require.Equal(t, []string{"1", "3", "5"}, ids(t, out))
		require.Contains(t, stderr, `"kept":3`)
		require.Contains(t, stderr, `"dropped":2`)
	})

	t.Run("Successfully forwards kept events unchanged", func(t *testing.T) {
		in := `{"url":"/api/users","method":"GET","status":200}
{"status":500,"url":"https://example.com/x","method":"GET","request":{"headers":{}},"extra":true}
{"url":"/static/app.css","method":"GET","status":200}
`
		out, _, err := run(t, in, "classify")
		require.NoError(t, err)

		lines := strings.Split(in, "\n")
		require.Equal(t, lines[0]+"\n"+lines[1]+"\n", out)
	})

	t.Run("Successfully explains every verdict", func(t *testing.T) {
		out, _, err := run(t, events, "classify", "--explain")
		require.NoError(t, err)

		var explained []explanation
		for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
			var e explanation
			require.NoError(t, json.Unmarshal([]byte(line), &e))
			explained = append(explained, e)
		}
		require.Len(t, explained, 5)

		var rules []string
		for _, e := range explained {
			rules = append(rules, e.Rule)
		}
		require.Equal(t, []string{"failure", "static_resource", "api_pattern", "third_party", "slow"}, rules)
		require.Equal(t, "example.com", explained[1].Domain)
		require.Equal(t, "cdn", explained[1].Subdomain)
		require.False(t, explained[1].Kept)
	})

	t.Run("Successfully uses a named preset", func(t *testing.T) {
		out, _, err := run(t, events, "classify", "--preset", "DEBUG")
		require.NoError(t, err)
		require.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(t, out))

		out, _, err = run(t, events, "classify", "--preset", "strict")
		require.NoError(t, err)
		require.Equal(t, []string{"1"}, ids(t, out))
	})

	t.Run("Successfully keeps first party pages of the origin", func(t *testing.T) {
		in := `{"id":"a","url":"https://app.example.com/dashboard","method":"GET","status":200}
`
		out, _, err := run(t, in, "classify")
		require.NoError(t, err)
		require.Empty(t, ids(t, out))

		out, _, err = run(t, in, "classify", "--origin", "app.example.com", "--explain")
		require.NoError(t, err)
		var e explanation
		require.NoError(t, json.Unmarshal([]byte(out), &e))
		require.Equal(t, "own_domain", e.Rule)

		out, _, err = run(t, in, "classify", "--preset", "strict", "--origin", "app.example.com")
		require.NoError(t, err)
		require.Equal(t, []string{"a"}, ids(t, out))
	})

	t.Run("Successfully loads a config file and an events file", func(t *testing.T) {
		dir := t.TempDir()
		config := filepath.Join(dir, "sanitizer.yaml")
		require.NoError(t, os.WriteFile(config, []byte(`
slowRequestThresholdMs: 5000
apiPatterns: []
ignoredExtensions: []
ownDomains: [cdn.example.com]
`), 0o600))
		input := filepath.Join(dir, "events.ndjson")
		require.NoError(t, os.WriteFile(input, []byte(events), 0o600))

		out, _, err := run(t, "", "classify", "--config", config, input)
		require.NoError(t, err)
		require.Equal(t, []string{"1", "2"}, ids(t, out))
	})

	t.Run("Successfully skips unreadable lines", func(t *testing.T) {
		out, stderr, err := run(t, "not json\n\n"+events, "classify")
		require.NoError(t, err)
		require.Equal(t, []string{"1", "3", "5"}, ids(t, out))
		require.Contains(t, stderr, "skipping unreadable event")
		require.Contains(t, stderr, `"skipped":1`)
	})

	t.Run("Fails with an unknown preset", func(t *testing.T) {
		_, _, err := run(t, events, "classify", "--preset", "loud")
		require.ErrorContains(t, err, `unknown preset "loud"`)
	})

	t.Run("Fails with both a preset and a config", func(t *testing.T) {
		_, _, err := run(t, events, "classify", "--preset", "strict", "--config", "x.yaml")
		require.Error(t, err)
	})

	t.Run("Fails with a missing events file", func(t *testing.T) {
		_, _, err := run(t, "", "classify", filepath.Join(t.TempDir(), "missing.ndjson"))
		require.ErrorContains(t, err, "sanitizer: opening events")
	})

	t.Run("Fails with an invalid log level", func(t *testing.T) {
		_, _, err := run(t, events, "--log-level", "loud", "classify")
		require.ErrorContains(t, err, "invalid log level")
	})
}
