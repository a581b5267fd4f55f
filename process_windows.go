//go:build windows

package web2pdf

import "os/exec"

// setProcessGroup is a no-op on Windows; process.KillProcessGroup uses
// taskkill to terminate the child tree instead.
func setProcessGroup(cmd *exec.Cmd) {}
