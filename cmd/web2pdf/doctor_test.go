package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRunDoctorCmdJSON(t *testing.T) {
	env, stdout, _ := testEnv()
	runDoctorCmd([]string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("doctor --json produced invalid JSON: %v\n%s", err, stdout.String())
	}
	switch result.Status {
	case "ready", "warnings", "errors":
	default:
		t.Errorf("Status = %q, want ready/warnings/errors", result.Status)
	}
	if result.Env.OS == "" || result.Env.Arch == "" {
		t.Errorf("environment not populated: %+v", result.Env)
	}
}

func TestRunDoctorCmdHuman(t *testing.T) {
	env, stdout, _ := testEnv()
	runDoctorCmd(nil, env)

	out := stdout.String()
	for _, section := range []string{"web2pdf doctor", "XeLaTeX", "Pandoc", "Environment", "System", "Status:"} {
		if !strings.Contains(out, section) {
			t.Errorf("output missing section %q:\n%s", section, out)
		}
	}
}

func TestProbeToolMissing(t *testing.T) {
	t.Parallel()

	info := probeTool("no-such-binary-web2pdf")
	if info.Found {
		t.Errorf("probeTool(missing) = %+v, want not found", info)
	}
}

func TestIsContainerOverride(t *testing.T) {
	t.Setenv("WEB2PDF_CONTAINER", "1")
	got, hint := isContainer()
	if !got || hint != "WEB2PDF_CONTAINER=1" {
		t.Errorf("isContainer() = (%v, %q)", got, hint)
	}
}

func TestPrintDoctorResultErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printDoctorResult(&buf, &doctorResult{
		Status: "errors",
		Errors: []string{"xelatex not found"},
	})
	out := buf.String()
	if !strings.Contains(out, "[ERROR] xelatex not found") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Not ready") {
		t.Errorf("output = %q, want Not ready status", out)
	}
}
