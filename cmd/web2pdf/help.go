package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: web2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a web article URL to PDF")
	fmt.Fprintln(w, "  compile    Compile a LaTeX document to PDF")
	fmt.Fprintln(w, "  doctor     Check external tool availability")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'web2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: web2pdf convert <url> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a web article into a typeset PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  url    Article URL (http or https)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>     Output directory (default: current directory)")
	fmt.Fprintln(w, "  -e, --engine <s>       PDF engine: xelatex (default), chrome")
	fmt.Fprintln(w, "      --template <path>  Pandoc LaTeX template (default: webarticle.latex)")
	fmt.Fprintln(w, "  -t, --timeout <dur>    Pipeline timeout (e.g., 5m)")
	fmt.Fprintln(w, "      --single-pass      Run a single XeLaTeX pass")
	fmt.Fprintln(w, "      --no-cleanup       Keep auxiliary LaTeX files")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata overrides:")
	fmt.Fprintln(w, "      --title <s>        Article title")
	fmt.Fprintln(w, "      --author <s>       Article author")
	fmt.Fprintln(w, "      --editor <s>       Editor name (default: $USER)")
	fmt.Fprintln(w, "      --date <s>         Document date; \"auto\" or \"auto:FORMAT\" for today (default: today)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet            Only show errors")
	fmt.Fprintln(w, "  -v, --verbose          Show detailed progress")
}

// printCompileUsage prints usage for the compile command.
func printCompileUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: web2pdf compile <file.tex> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile a LaTeX document with the XeLaTeX orchestrator:")
	fmt.Fprintln(w, "two passes for cross-references, log classification, timeout")
	fmt.Fprintln(w, "enforcement, and auxiliary file cleanup.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --binary <s>       Compiler executable (default: xelatex)")
	fmt.Fprintln(w, "  -t, --timeout <dur>    Per-pass timeout (default: 2m)")
	fmt.Fprintln(w, "      --single-pass      Skip the second reference pass")
	fmt.Fprintln(w, "      --no-cleanup       Keep auxiliary files after success")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet            Only show errors")
	fmt.Fprintln(w, "  -v, --verbose          Show detailed progress")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 4 compilation failure/timeout/missing tool.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "compile":
		printCompileUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: web2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that xelatex, pandoc, and Chrome are installed and invocable.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: web2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: web2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
