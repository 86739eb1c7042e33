package harness

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ethereum-optimism/infra/harness-report/exitcodes"
	"github.com/ethereum-optimism/infra/harness-report/types"
)

func TestErrorPredicates(t *testing.T) {
	runtimeErr := NewRuntimeError(errors.New("disk full"))
	assert.True(t, IsRuntimeError(runtimeErr))
	assert.True(t, IsRuntimeError(fmt.Errorf("failed to start: %w", runtimeErr)))
	assert.False(t, IsRuntimeError(errors.New("plain")))
	assert.False(t, IsRuntimeError(nil))
	assert.Equal(t, "runtime error: disk full", runtimeErr.Error())

	testErr := NewTestFailureError("1 of 2 tests passed")
	assert.True(t, IsTestFailureError(testErr))
	assert.False(t, IsTestFailureError(runtimeErr))
	assert.Equal(t, "test failure: 1 of 2 tests passed", testErr.Error())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, exitcodes.Success},
		{"test failure", NewTestFailureError("x"), exitcodes.TestFailure},
		{"wrapped test failure", fmt.Errorf("failed to start: %w", NewTestFailureError("x")), exitcodes.TestFailure},
		{"runtime", NewRuntimeError(errors.New("boom")), exitcodes.RuntimeErr},
		{"io", NewRuntimeError(&types.IOError{Op: "read", Path: "r.xml", Err: errors.New("denied")}), exitcodes.RuntimeErr},
		{"unknown component", NewRuntimeError(&types.UnknownComponentError{Value: "typecheck"}), exitcodes.InvalidInput},
		{"incomplete", &types.IncompleteReportError{Component: types.ComponentRegalloc}, exitcodes.InvalidInput},
		{"malformed", &types.MalformedInputError{Reason: "invalid XML document"}, exitcodes.InvalidInput},
		{"unspecified", errors.New("flag input is required"), exitcodes.RuntimeErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}
