package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	harness "github.com/ethereum-optimism/infra/harness-report"
	"github.com/ethereum-optimism/infra/harness-report/exitcodes"
	"github.com/ethereum-optimism/infra/harness-report/types"
)

// captureExit replaces the process exiter for the duration of the test
func captureExit(t *testing.T) *int {
	t.Helper()
	code := -1
	prevExiter, prevWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(c int) { code = c }
	cli.ErrWriter = io.Discard
	t.Cleanup(func() {
		cli.OsExiter = prevExiter
		cli.ErrWriter = prevWriter
	})
	return &code
}

func TestHandleExitErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"test failure", fmt.Errorf("failed to start: %w", harness.NewTestFailureError("2 of 3 tests passed")), exitcodes.TestFailure},
		{"runtime error", harness.NewRuntimeError(errors.New("failed to create config")), exitcodes.RuntimeErr},
		{"input error", fmt.Errorf("failed to start: %w", harness.NewRuntimeError(&types.UnknownComponentError{Value: "typecheck"})), exitcodes.InvalidInput},
		{"exit coder", cli.Exit("explicit", 7), 7},
		{"unspecified", errors.New("boom"), exitcodes.RuntimeErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := captureExit(t)
			handleExitErr(nil, tt.err)
			assert.Equal(t, tt.expected, *code)
		})
	}
}

func TestHandleExitErr_NilDoesNotExit(t *testing.T) {
	code := captureExit(t)
	handleExitErr(nil, nil)
	assert.Equal(t, -1, *code)
}

func TestAppRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"harness-report"}},
		{"invalid input format", []string{"harness-report", "--input", "results.xml", "--input-format", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := captureExit(t)
			app := newApp()
			app.Writer = io.Discard
			app.ErrWriter = io.Discard

			err := app.Run(tt.args)
			assert.Error(t, err)
			// the exit handler is not reached for every flag error
			assert.Contains(t, []int{-1, exitcodes.RuntimeErr}, *code)
		})
	}
}

const exampleResults = `<report>
  <meta time="125000"/>
  <overview component="lexer" passed="1" total="2"/>
  <overview component="parser" passed="0" total="0"/>
  <overview component="sem" passed="0" total="0"/>
  <overview component="codegen" passed="0" total="0"/>
  <overview component="regalloc" passed="0" total="0"/>
  <test component="lexer" name="caseA" actual="0" expected="0"/>
  <test component="lexer" name="caseB" actual="1" expected="0"/>
</report>
`

// redirectStdout swaps os.Stdout for a pipe and returns a function that
// restores it and yields everything written in between.
func redirectStdout(t *testing.T) func() string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	prev := os.Stdout
	os.Stdout = w

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()

	return func() string {
		os.Stdout = prev
		require.NoError(t, w.Close())
		out := <-done
		require.NoError(t, r.Close())
		return out
	}
}

func TestAppWritesOnlyHTMLToStdout(t *testing.T) {
	input := filepath.Join(t.TempDir(), "results.xml")
	require.NoError(t, os.WriteFile(input, []byte(exampleResults), 0644))

	code := captureExit(t)
	restore := redirectStdout(t)

	var stderr bytes.Buffer
	app := newApp()
	app.ErrWriter = &stderr

	err := app.Run([]string{"harness-report", "--input", input, "--print-summary=false"})
	stdout := restore()
	require.NoError(t, err)
	assert.Equal(t, -1, *code)

	assert.True(t, strings.HasPrefix(stdout, "<!DOCTYPE html>"), "stdout starts with %q", firstLine(stdout))
	assert.NotContains(t, stdout, "lvl=")
	assert.NotContains(t, stdout, "Generating report")
	assert.Contains(t, stdout, "</html>")
	assert.Contains(t, stderr.String(), "Generating report")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
