package main

import (
	"os"
	"testing"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Now == nil {
		t.Error("Now is nil")
	}
	if env.Stdout != os.Stdout {
		t.Error("Stdout is not os.Stdout")
	}
	if env.Stderr != os.Stderr {
		t.Error("Stderr is not os.Stderr")
	}
	if env.Now().IsZero() {
		t.Error("Now() returned zero time")
	}
}
