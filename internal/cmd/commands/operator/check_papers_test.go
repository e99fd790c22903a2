package operator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readable-research/readable/internal/cmd/base"
)

func writePapers(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func newCheckPapersCommand() (*CheckPapersCommand, *cli.MockUi) {
	ui := cli.NewMockUi()
	return &CheckPapersCommand{
		Command: base.NewCommand(hclog.NewNullLogger(), ui),
	}, ui
}

func TestCheckPapersCommand(t *testing.T) {
	t.Run("AllValid", func(t *testing.T) {
		dir := writePapers(t, map[string]string{
			"paper1.json": `{"title": "A Study"}`,
			"paper2.json": `[1, 2]`,
		})
		c, ui := newCheckPapersCommand()

		code := c.Run([]string{"-papers-dir", dir, "-verbose"})

		assert.Equal(t, 0, code)
		assert.Contains(t, ui.OutputWriter.String(), "ok: paper1")
		assert.Contains(t, ui.OutputWriter.String(), "ok: paper2")
		assert.Contains(t, ui.OutputWriter.String(), "Checked 2 papers")
		assert.Empty(t, ui.ErrorWriter.String())
	})

	t.Run("ReportsEveryBrokenPaper", func(t *testing.T) {
		dir := writePapers(t, map[string]string{
			"good.json":    `{}`,
			"broken.json":  `{bad json`,
			"empty.json":   ``,
			"ignored.yaml": `not: checked`,
		})
		c, ui := newCheckPapersCommand()

		code := c.Run([]string{"-papers-dir", dir})

		assert.Equal(t, 1, code)
		errOut := ui.ErrorWriter.String()
		assert.Contains(t, errOut, `"broken"`)
		assert.Contains(t, errOut, `"empty"`)
		assert.NotContains(t, errOut, `"good"`)
		assert.Contains(t, errOut, "Checked 3 papers")
		assert.Contains(t, errOut, "2 failed")
	})

	t.Run("FromConfig", func(t *testing.T) {
		dir := writePapers(t, map[string]string{"paper1.json": `{}`})
		cfgPath := filepath.Join(dir, "config.hcl")
		require.NoError(t, os.WriteFile(cfgPath, []byte("papers {\n  dir = \".\"\n}\n"), 0o644))
		c, ui := newCheckPapersCommand()

		code := c.Run([]string{"-config", cfgPath})

		assert.Equal(t, 0, code)
		assert.Contains(t, ui.OutputWriter.String(), "Checked 1 papers")
	})

	t.Run("RequiresDirectory", func(t *testing.T) {
		c, ui := newCheckPapersCommand()

		code := c.Run(nil)

		assert.Equal(t, 1, code)
		assert.Contains(t, ui.ErrorWriter.String(), "one of the config or papers-dir flags is required")
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		c, ui := newCheckPapersCommand()

		code := c.Run([]string{"-papers-dir", filepath.Join(t.TempDir(), "absent")})

		assert.Equal(t, 1, code)
		assert.Contains(t, ui.ErrorWriter.String(), "error opening papers directory")
	})
}
