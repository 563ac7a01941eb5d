package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/dbradf/shrub-go/cmd/shrub/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProject = `
tasks:
  - name: compile
    commands:
      - command: shell.exec
        params:
          script: make
buildvariants:
  - name: ubuntu
    tasks:
      - name: compile
`

func writeProject(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := commands.New()
	var out bytes.Buffer
	cli.SetOutput(&out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestConvert_ToJSON(t *testing.T) {
	path := writeProject(t, "project.yml", sampleProject)

	out, err := runCLI(t, "convert", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"compile"`)
	assert.Contains(t, out, `"buildvariants"`)
}

func TestConvert_ToYAML(t *testing.T) {
	path := writeProject(t, "project.yml", sampleProject)

	out, err := runCLI(t, "convert", "--to", "yaml", path)
	require.NoError(t, err)
	assert.Contains(t, out, "name: compile")
}

func TestConvert_UnknownFormat(t *testing.T) {
	path := writeProject(t, "project.yml", sampleProject)

	_, err := runCLI(t, "convert", "--to", "toml", path)
	require.Error(t, err)
}

func TestConvert_MissingFile(t *testing.T) {
	_, err := runCLI(t, "convert", filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestLint(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeProject(t, "project.yml", sampleProject)

		out, err := runCLI(t, "lint", path)
		require.NoError(t, err)
		assert.Contains(t, out, "ok "+path)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := writeProject(t, "broken.yml", `tasks: "not-a-list"`)

		_, err := runCLI(t, "lint", path)
		require.Error(t, err)
	})
}

func TestFingerprint(t *testing.T) {
	path := writeProject(t, "project.yml", sampleProject)

	out, err := runCLI(t, "fingerprint", path)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}  `), out)
	assert.Contains(t, out, path)

	// The same content always yields the same fingerprint.
	again, err := runCLI(t, "fingerprint", path)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}
