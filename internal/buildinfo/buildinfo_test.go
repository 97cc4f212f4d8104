package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	var buf bytes.Buffer
	PrintBuildData(&buf)
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())

	buildVersion, buildCommit = "v0.3.0", "abc123"
	t.Cleanup(func() { buildVersion, buildCommit = "", "" })

	buf.Reset()
	PrintBuildData(&buf)
	assert.Contains(t, buf.String(), "Build version: v0.3.0")
	assert.Contains(t, buf.String(), "Build commit: abc123")
	assert.Contains(t, buf.String(), "Build date: N/A")
}
