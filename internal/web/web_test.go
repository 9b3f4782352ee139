package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"fetching.html", "sandbox.html", "sandbox_example.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestSandboxExampleEscapesInput(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "sandbox_example.html", map[string]any{
		"Example": "<script>",
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Hello Outlet: &lt;script&gt;")
	assert.NotContains(t, buf.String(), "<script>")
}
