package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/digitalcave/moss/pkg/parsecommands"
	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDecls = `help: "usage: tool -n NAME [-v] [-c COUNT] [-r RATIO] [-k KEY]"
flags:
  - name: -n
    type: string
    required: true
  - name: -v
    type: boolean
  - name: -c
    type: integer
  - name: -r
    type: double
  - name: -k
    type: character
`

func writeDecls(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "flags.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDecls), 0644))
	return path
}

func TestRunJSON(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-decls", writeDecls(t), "--", "-v", "-n", "hello__world", "build", "-c", "x", "-r", "0.5", "-k", "kilo"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var view struct {
		Flags    map[string]interface{} `json:"flags"`
		Commands []string               `json:"commands"`
		Warnings []string               `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &view))

	assert.Equal(t, map[string]interface{}{
		"-v": true,
		"-n": "hello world",
		"-r": 0.5,
		"-k": "k",
	}, view.Flags)
	assert.Equal(t, []string{"build"}, view.Commands)
	require.Len(t, view.Warnings, 1)
	assert.Contains(t, view.Warnings[0], "-c")

	// the coercion failure is logged as well
	assert.Contains(t, stderr.String(), "problem parsing flag value")
	assert.Contains(t, stderr.String(), `"caller":"parse.go:`)
}

func TestRunYAML(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-decls", writeDecls(t), "-format", "yaml", "--", "a", "-n", "b", "a"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var view resultView
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &view))
	assert.Equal(t, map[string]interface{}{"-n": "b"}, view.Flags)
	assert.Equal(t, []string{"a", "a"}, view.Commands)
	assert.Empty(t, view.Warnings)
	assert.Contains(t, stdout.String(), "commands:")
}

func TestRunParseFailures(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	var tests = []struct {
		name           string
		tokens         []string
		expectedCode   int
		expectedStdout string
		expectedStderr string
	}{
		{
			name:           "help",
			tokens:         []string{"-n", "x", "-h"},
			expectedCode:   0,
			expectedStdout: "usage: tool -n NAME [-v] [-c COUNT] [-r RATIO] [-k KEY]\n",
		},
		{
			name:           "missing value",
			tokens:         []string{"-n"},
			expectedCode:   1,
			expectedStderr: "argument expected after flag",
		},
		{
			name:           "missing required",
			tokens:         []string{"-v"},
			expectedCode:   1,
			expectedStderr: "flag is required, but not present",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"-decls", writeDecls(t), "--"}, tt.tokens...)

			code := run(args, &stdout, &stderr)
			require.Equal(t, tt.expectedCode, code)
			assert.Contains(t, stderr.String(), tt.expectedStderr)

			if tt.expectedStdout != "" {
				assert.Equal(t, tt.expectedStdout, stdout.String())
			} else {
				assert.Empty(t, stdout.String())
				assert.Contains(t, stderr.String(), "usage: tool")
			}
		})
	}
}

func TestRunBadDeclarations(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-decls", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)
	require.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "loading declarations")
	assert.Empty(t, stdout.String())
}

func TestRenderUnknownFormat(t *testing.T) {
	t.Parallel()

	results, err := parsecommands.Parse([]string{"a"}, "", nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.Error(t, render(&out, results, "toml"))
	assert.Empty(t, out.String())
}

func TestRunHelpAndVersion(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	for _, args := range [][]string{{"-help"}, {"-version"}} {
		var stdout, stderr bytes.Buffer
		require.Equal(t, 0, run(args, &stdout, &stderr), args)
		assert.Empty(t, stdout.String(), args)
	}
}
