package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// TestCLIArgumentParsing runs the command in-process against buffers
func TestCLIArgumentParsing(t *testing.T) {
	t.Run("help flag", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "-help")

		assert.Equal(t, 0, code)
		assert.Contains(t, stderr, "Usage: sigkit")
		assert.Contains(t, stderr, "-mode")
		assert.Contains(t, stderr, "-engine")
		assert.Contains(t, stderr, "-serve")
	})

	t.Run("unknown flag", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "-bogus")

		assert.Equal(t, 2, code)
		assert.Contains(t, stderr, "bogus")
	})

	t.Run("invalid format", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "-format", "xml")

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "invalid format xml")
		assert.Contains(t, stderr, "hint:")
	})

	t.Run("verbose and quiet together", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "-verbose", "-quiet")

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "mutually exclusive")
	})

	t.Run("missing config file", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "-config", filepath.Join(t.TempDir(), "none.yaml"))

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "none.yaml")
	})
}

func TestCLIParse(t *testing.T) {
	t.Run("stdin text", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "private void log(String value)\n")

		assert.Equal(t, 0, code, stderr)
		assert.Equal(t, "modifier=private return=void name=log args=[String value]\n", stdout)
	})

	t.Run("json from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sigs.txt")
		require.NoError(t, os.WriteFile(path, []byte("public DateTime getCurrentDateTime()\n"), 0644))

		code, stdout, _ := runCLI(t, "", "-format", "json", path)
		require.Equal(t, 0, code)

		var record struct {
			Source    string `json:"source"`
			Line      int    `json:"line"`
			Signature struct {
				AccessModifier string `json:"access_modifier"`
				Name           string `json:"name"`
			} `json:"signature"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &record))
		assert.Equal(t, path, record.Source)
		assert.Equal(t, 1, record.Line)
		assert.Equal(t, "public", record.Signature.AccessModifier)
		assert.Equal(t, "getCurrentDateTime", record.Signature.Name)
	})

	t.Run("grammar engine", func(t *testing.T) {
		code, stdout, _ := runCLI(t, "void move(int x,int y)\n", "-engine", "grammar")

		assert.Equal(t, 0, code)
		assert.Equal(t, "modifier=- return=void name=move args=[int x, int y]\n", stdout)
	})

	t.Run("failed lines exit non-zero", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "void ok()\nvoid log(String)\n")

		assert.Equal(t, 1, code)
		assert.Equal(t, "modifier=- return=void name=ok args=[]\n", stdout)
		assert.Contains(t, stderr, "[ERROR]")
		assert.Contains(t, stderr, "argument name")
		assert.Contains(t, stderr, "1 of 2 lines failed")
	})

	t.Run("quiet still reports errors", func(t *testing.T) {
		code, _, stderr := runCLI(t, "broken\n", "-quiet")

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "[ERROR]")
		assert.NotContains(t, stderr, "[WARN]")
	})
}

func TestCLISplit(t *testing.T) {
	code, stdout, _ := runCLI(t, "a,b;;c\n", "-mode", "split", "-delims", ",;")

	assert.Equal(t, 0, code)
	assert.Equal(t, "\"a\" \"b\" \"c\"\n", stdout)
}

func TestCLIConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sigkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: split\ndelimiters: [\"-\"]\nformat: text\n"), 0644))

	t.Run("file settings apply", func(t *testing.T) {
		code, stdout, _ := runCLI(t, "x-y--z\n", "-config", path)

		assert.Equal(t, 0, code)
		assert.Equal(t, "\"x\" \"y\" \"z\"\n", stdout)
	})

	t.Run("flags override file", func(t *testing.T) {
		code, stdout, _ := runCLI(t, "x-y z\n", "-config", path, "-delims", " ")

		assert.Equal(t, 0, code)
		assert.Equal(t, "\"x-y\" \"z\"\n", stdout)
	})
}

func TestCLIVerboseRun(t *testing.T) {
	code, stdout, stderr := runCLI(t, "void ok()\n", "-verbose")

	assert.Equal(t, 0, code)
	assert.Equal(t, "modifier=- return=void name=ok args=[]\n", stdout)
	assert.Contains(t, stderr, "sigkit parse (engine scanner, format text)\n")
	assert.Contains(t, stderr, "\nInputs:\n  - -\n")
	assert.Contains(t, stderr, "[SUCCESS] Processed 1 lines from 1 inputs")
	assert.Contains(t, stderr, "Inputs failed: 0")
}

func TestCLIFailureBreakdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sigs.txt")
	require.NoError(t, os.WriteFile(path, []byte("void ok()\nbroken\nvoid log(String)\n"), 0644))

	code, _, stderr := runCLI(t, "", filepath.Join(dir, "missing.txt"), path)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr,
		"[WARN] 2 of 3 lines failed, 1 inputs could not be read (FieldMissing: 2, FileSystemError: 1)")
	assert.NotContains(t, stderr, "[SUCCESS]")
}
