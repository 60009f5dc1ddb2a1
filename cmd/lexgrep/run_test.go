package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgrep/lexgrep/pkg/store"
)

const testSessionYAML = `language: rust
subject: |
  let x = "hi";
  println!("{x}");
rules:
  - patterns:
      - |-
        &_VAR = $_STR;
        ...
        println!($_FMT)
    name: hello_world
    transform:
      _FMT: ^\{(?<_VAR>[^}]+)}$
`

func writeSessionFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSessionYAML), 0644))
	return path
}

func resetRunFlags() {
	runToken = ""
	runFormat = "human"
	runOutputPath = ""
}

func TestRunDefaultSession(t *testing.T) {
	resetRunFlags()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runRun(cmd, nil))

	output := buf.String()
	assert.Contains(t, output, "hello_world")
	assert.Contains(t, output, "1 match(es)")
}

func TestRunSessionFile(t *testing.T) {
	resetRunFlags()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runRun(cmd, []string{writeSessionFile(t)}))
	assert.Contains(t, buf.String(), "hello_world")
}

func TestRunJSONFormat(t *testing.T) {
	resetRunFlags()
	runFormat = "json"
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runRun(cmd, nil))
	assert.Contains(t, buf.String(), `"name": "hello_world"`)
}

func TestRunJSONFormatNoMatches(t *testing.T) {
	resetRunFlags()
	runFormat = "json"
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: rust\nsubject: |\n  let x = 1;\nrules:\n  - patterns:\n      - goodbye\n    name: never\n"), 0644))

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runRun(cmd, []string{path}))
	// an empty run is an empty array, same as the serve surface
	assert.Equal(t, "[]\n", buf.String())
}

func TestRunUnknownFormat(t *testing.T) {
	resetRunFlags()
	runFormat = "xml"
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runRun(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestRunFileAndTokenConflict(t *testing.T) {
	resetRunFlags()
	runToken = "sometoken"
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runRun(cmd, []string{"session.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestRunRecordsOutput(t *testing.T) {
	resetRunFlags()
	runOutputPath = filepath.Join(t.TempDir(), "runs.db")
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	require.NoError(t, runRun(cmd, nil))

	s, err := store.New(store.Config{Path: runOutputPath})
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.GetRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "rust", runs[0].Language)

	matches, err := s.GetMatches(runs[0].ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "hello_world", matches[0].Name)
}

func TestLoadSessionFileMissing(t *testing.T) {
	_, err := loadSessionFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading session file")
}
