// Package exitcodes defines the exit codes used by harness-report.
package exitcodes

// Exit code constants used by harness-report
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): The report was written
// * TestFailure (1): The report was written but contains failing tests, only with --fail-on-test-failure
// * RuntimeErr (2): Configuration, I/O or other runtime failures
// * InvalidInput (3): The results file is malformed, names an unknown component or lacks an overview
const (
	Success      = 0 // Report written
	TestFailure  = 1 // Failing tests, opt-in
	RuntimeErr   = 2 // Runtime errors
	InvalidInput = 3 // Rejected input
)
