package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func getArgsAndResponse() (map[string]string, *options) {
	args := map[string]string{
		"-decls":     "/path/to/flags.yaml",
		"-format":    "yaml",
		"-log_level": "FINE",
		"-debug":     "",
	}

	opts := &options{
		declsPath: "/path/to/flags.yaml",
		format:    "yaml",
		logLevel:  "FINE",
		debug:     true,
		tokens:    []string{},
	}

	return args, opts
}

// TestOptionsFromFlags isn't parallel to ensure that we don't pollute the environment
func TestOptionsFromFlags(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	testArgs, expectedOpts := getArgsAndResponse()

	testFlags := []string{}
	for k, v := range testArgs {
		testFlags = append(testFlags, k)
		if v != "" {
			testFlags = append(testFlags, v)
		}
	}

	opts, err := parseOptions(testFlags, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, expectedOpts, opts)
}

func TestOptionsFromEnv(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	testArgs, expectedOpts := getArgsAndResponse()

	for k, val := range testArgs {
		if val == "" {
			val = "true"
		}
		name := fmt.Sprintf("MOSS_%s", strings.ToUpper(strings.TrimLeft(k, "-")))
		t.Setenv(name, val)
	}

	opts, err := parseOptions([]string{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, expectedOpts, opts)
}

func TestOptionsFromFile(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	testArgs, expectedOpts := getArgsAndResponse()

	flagFile, err := os.CreateTemp(t.TempDir(), "flag-file")
	require.NoError(t, err)
	expectedOpts.configFilePath = flagFile.Name()

	for k, val := range testArgs {
		_, err := flagFile.WriteString(strings.TrimLeft(k, "-"))
		require.NoError(t, err)

		if val != "" {
			_, err = flagFile.WriteString(fmt.Sprintf(" %s", val))
			require.NoError(t, err)
		}

		_, err = flagFile.WriteString("\n")
		require.NoError(t, err)
	}

	require.NoError(t, flagFile.Close())

	opts, err := parseOptions([]string{"-config", flagFile.Name()}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, expectedOpts, opts)
}

func TestOptionsTokensAfterSeparator(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	opts, err := parseOptions([]string{"-decls", "flags.json", "--", "-v", "-n", "hello__world", "--help"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "json", opts.format)
	require.Equal(t, []string{"-v", "-n", "hello__world", "--help"}, opts.tokens)
}

func TestOptionsErrors(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	var tests = []struct {
		name        string
		args        []string
		errContains string
	}{
		{name: "no declarations", args: []string{}, errContains: "declaration file is required"},
		{name: "bad format", args: []string{"-decls", "f.yaml", "-format", "xml"}, errContains: "unknown output format"},
		{name: "undefined flag", args: []string{"-decls", "f.yaml", "-n", "x"}, errContains: "parsing options"},
		{name: "missing config file", args: []string{"-config", filepath.Join(t.TempDir(), "nope")}, errContains: "parsing options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOptions(tt.args, &bytes.Buffer{})
			require.Error(t, err)
			require.False(t, errors.Is(err, flag.ErrHelp) || errors.Is(err, errVersion))
			require.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestOptionsHelpAndVersion(t *testing.T) { //nolint:paralleltest
	os.Clearenv()

	for _, args := range [][]string{{"-help"}, {"-h"}} {
		var output bytes.Buffer
		_, err := parseOptions(args, &output)
		require.ErrorIs(t, err, flag.ErrHelp, args)
		require.Contains(t, output.String(), "Usage:")
	}

	_, err := parseOptions([]string{"-version"}, &bytes.Buffer{})
	require.ErrorIs(t, err, errVersion)
}
