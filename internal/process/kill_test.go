package process

// Notes:
// - KillProcessGroup: we only test with an invalid PID to verify the function
//   doesn't panic. Real kill behavior is covered by the compiler timeout
//   integration test since we cannot safely test actual process termination
//   in unit tests.
// - Cannot test with PID 0 (kills current process group) or real PIDs.

import "testing"

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	// Verify function handles non-existent PID without panicking.
	KillProcessGroup(999999999)
}
