package web2pdf

import "strings"

// markerRule pairs a log substring with the outcome it implies.
type markerRule struct {
	marker  string
	outcome Outcome
}

// defaultFatalMarkers recognize fatal diagnostics in XeLaTeX output.
// XeLaTeX can exit 0 in nonstop mode while still emitting a fatal error,
// so these are checked regardless of exit code. Matching is case-sensitive
// substring search; first match wins.
var defaultFatalMarkers = []markerRule{
	{"Fatal error occurred", OutcomeFailure},
	{"Emergency stop", OutcomeFailure},
	{"! LaTeX Error:", OutcomeFailure},
	{"! Undefined control sequence", OutcomeFailure},
	{"!pdfTeX error:", OutcomeFailure},
	{"No pages of output", OutcomeFailure},
}

// defaultWarningMarkers recognize non-fatal diagnostics that downgrade a
// clean exit to "success with warnings". Checked only after fatal markers,
// so a log containing both classifies as failure.
var defaultWarningMarkers = []markerRule{
	{"LaTeX Warning: Reference", OutcomeSuccessWithWarnings},
	{"LaTeX Warning: Citation", OutcomeSuccessWithWarnings},
	{"Rerun to get cross-references right", OutcomeSuccessWithWarnings},
	{"LaTeX Warning:", OutcomeSuccessWithWarnings},
	{"Overfull \\hbox", OutcomeSuccessWithWarnings},
	{"Underfull \\hbox", OutcomeSuccessWithWarnings},
	{"Overfull \\vbox", OutcomeSuccessWithWarnings},
	{"Underfull \\vbox", OutcomeSuccessWithWarnings},
	{"Missing character", OutcomeSuccessWithWarnings},
	{"Font shape", OutcomeSuccessWithWarnings},
}

// logClassifier maps (exit code, captured log) to an Outcome using ordered
// marker tables. The tables are data, not control flow: new compiler-log
// variants are added by appending rules.
type logClassifier struct {
	fatal   []markerRule
	warning []markerRule
}

// newLogClassifier returns a classifier with the default marker tables,
// extended by any extra fatal and warning substrings.
func newLogClassifier(extraFatal, extraWarning []string) *logClassifier {
	c := &logClassifier{
		fatal:   defaultFatalMarkers,
		warning: defaultWarningMarkers,
	}
	for _, m := range extraFatal {
		c.fatal = append(c.fatal, markerRule{m, OutcomeFailure})
	}
	for _, m := range extraWarning {
		c.warning = append(c.warning, markerRule{m, OutcomeSuccessWithWarnings})
	}
	return c
}

// Classify derives an outcome from a finished pass. Fatal markers take
// precedence over the exit code and over warning markers: silent partial
// failure is worse than an overly conservative failure report.
func (c *logClassifier) Classify(exitCode int, output string) Outcome {
	for _, rule := range c.fatal {
		if strings.Contains(output, rule.marker) {
			return rule.outcome
		}
	}
	if exitCode != 0 {
		return OutcomeFailure
	}
	for _, rule := range c.warning {
		if strings.Contains(output, rule.marker) {
			return rule.outcome
		}
	}
	return OutcomeSuccess
}

// excerpt returns the tail of a compiler log for concise diagnostics.
func excerpt(output string, maxLines int) string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n")
}
