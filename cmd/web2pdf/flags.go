package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	engine     string
	template   string
	timeout    string
	singlePass bool
	noCleanup  bool
	title      string
	author     string
	editor     string
	date       string
}

// compileFlags holds all flags for the compile command.
type compileFlags struct {
	common     commonFlags
	binary     string
	timeout    string
	singlePass bool
	noCleanup  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: current directory)")
	fs.StringVarP(&f.engine, "engine", "e", "", "PDF engine: xelatex, chrome")
	fs.StringVar(&f.template, "template", "", "Pandoc LaTeX template path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "pipeline timeout (e.g., 2m, 30s)")
	fs.BoolVar(&f.singlePass, "single-pass", false, "run a single XeLaTeX pass")
	fs.BoolVar(&f.noCleanup, "no-cleanup", false, "keep auxiliary LaTeX files")

	fs.StringVar(&f.title, "title", "", "override article title")
	fs.StringVar(&f.author, "author", "", "override article author")
	fs.StringVar(&f.editor, "editor", "", "override editor name")
	fs.StringVar(&f.date, "date", "", "override document date (YYYY-MM-DD)")

	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseCompileFlags parses compile command flags and returns positional args.
func parseCompileFlags(args []string) (*compileFlags, []string, error) {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	f := &compileFlags{}

	fs.StringVar(&f.binary, "binary", "", "compiler executable (default: xelatex)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-pass timeout (e.g., 2m)")
	fs.BoolVar(&f.singlePass, "single-pass", false, "skip the second reference pass")
	fs.BoolVar(&f.noCleanup, "no-cleanup", false, "keep auxiliary files after success")

	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printCompileUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
