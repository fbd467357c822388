// Package report aggregates lint findings, classifies them as warnings or
// errors, renders the console summary and decides the process exit code.
// The split mirrors how the findings are consumed: schema violations,
// parse failures, missing playbooks and semaphore self-conflicts block a
// pipeline, while duplicate jobs, dangling references and .yml extensions
// are hygiene warnings.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Severity tags a console headline.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeveritySuccess
)

// SchemaError is one schema violation in one file.
type SchemaError struct {
	File         string
	Message      string
	InstancePath string
	SchemaPath   string
}

// ParseError is a file that could not be read or parsed as YAML.
type ParseError struct {
	File    string
	Message string
}

// Results collects every finding of a lint run. List-valued fields are
// expected pre-sorted so rendering is deterministic.
type Results struct {
	// Errors.
	SchemaErrors         []SchemaError
	ParseErrors          []ParseError
	InvalidPlaybookPaths []string
	DuplicateSemaphores  []string

	// Warnings.
	SuspectFiles     []string
	DuplicateJobs    []string
	DanglingNodesets []string
	DanglingSecrets  []string
}

// ErrorCount returns the number of error-class findings.
func (r *Results) ErrorCount() int {
	return len(r.SchemaErrors) + len(r.ParseErrors) +
		len(r.InvalidPlaybookPaths) + len(r.DuplicateSemaphores)
}

// WarningCount returns the number of warning-class findings.
func (r *Results) WarningCount() int {
	return len(r.SuspectFiles) + len(r.DuplicateJobs) +
		len(r.DanglingNodesets) + len(r.DanglingSecrets)
}

// ExitCode returns the process exit code for the run: non-zero when any
// error-class finding exists, or when warnings are promoted and any
// warning exists.
func (r *Results) ExitCode(warningsAsErrors bool) int {
	total := r.ErrorCount()
	if warningsAsErrors {
		total += r.WarningCount()
	}
	if total > 0 {
		return 1
	}
	return 0
}

// Printer renders lint output with severity-tagged bold headlines.
type Printer struct {
	out io.Writer

	bold    *color.Color
	info    *color.Color
	warning *color.Color
	failure *color.Color
	success *color.Color
}

// NewPrinter creates a Printer writing to out. noColor strips ANSI
// sequences from the output.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		bold:    color.New(color.Bold),
		info:    color.New(color.Bold, color.FgBlue),
		warning: color.New(color.Bold, color.FgYellow),
		failure: color.New(color.Bold, color.FgRed),
		success: color.New(color.Bold, color.FgGreen),
	}
	if noColor {
		for _, c := range []*color.Color{p.bold, p.info, p.warning, p.failure, p.success} {
			c.DisableColor()
		}
	}
	return p
}

// Headline prints a bold, severity-colored line preceded by a blank line.
func (p *Printer) Headline(sev Severity, msg string) {
	c := p.bold
	switch sev {
	case SeverityInfo:
		c = p.info
	case SeverityWarning:
		c = p.warning
	case SeverityError:
		c = p.failure
	case SeveritySuccess:
		c = p.success
	}
	fmt.Fprintln(p.out)
	c.Fprintln(p.out, msg)
}

// Line prints a plain output line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// SchemaError prints one schema violation as it is found.
func (p *Printer) SchemaError(e SchemaError) {
	p.Headline(SeverityError, "Validation error:")
	p.Line("File: %s", e.File)
	p.Line("Message: %s", e.Message)
	p.Line("Path: %s", e.InstancePath)
	p.Line("Schema Path: %s", e.SchemaPath)
}

// Render prints the end-of-run summary: the warning sections (subject to
// the ignore/promote flags) followed by the Passed/Failed banner with
// error totals.
func (p *Printer) Render(r *Results, warningsAsErrors, ignoreWarnings bool) {
	// Promotion has higher precedence than suppression.
	if warningsAsErrors {
		p.renderWarnings(r, SeverityError)
	} else if !ignoreWarnings {
		p.renderWarnings(r, SeverityWarning)
	}

	if r.ExitCode(warningsAsErrors) == 0 {
		p.Headline(SeveritySuccess, "Passed")
		return
	}

	p.Headline(SeverityError, "Failed")
	total := r.ErrorCount()
	if warningsAsErrors {
		total += r.WarningCount()
	}
	msg := fmt.Sprintf("Total errors: %d", total)
	if n := len(r.DuplicateSemaphores); n > 0 {
		msg += fmt.Sprintf("\nDuplicated semaphores: %d", n)
	}
	if n := len(r.InvalidPlaybookPaths); n > 0 {
		msg += fmt.Sprintf("\nPlaybook path errors: %d", n)
	}
	if n := len(r.SchemaErrors) + len(r.ParseErrors); n > 0 {
		msg += fmt.Sprintf("\nYAML validation errors: %d", n)
	}
	if warningsAsErrors {
		if n := len(r.SuspectFiles); n > 0 {
			msg += fmt.Sprintf("\nFile extension errors: %d", n)
		}
		if n := len(r.DuplicateJobs); n > 0 {
			msg += fmt.Sprintf("\nDuplicated jobs errors: %d", n)
		}
		if n := len(r.DanglingNodesets); n > 0 {
			msg += fmt.Sprintf("\nInexistent nodesets errors: %d", n)
		}
		if n := len(r.DanglingSecrets); n > 0 {
			msg += fmt.Sprintf("\nInexistent secrets errors: %d", n)
		}
	}
	p.failure.Fprintln(p.out, msg)
}

func (p *Printer) renderWarnings(r *Results, sev Severity) {
	if r.WarningCount() == 0 {
		return
	}

	label := "warning"
	if sev == SeverityError {
		label = "error"
	} else {
		p.Headline(SeverityWarning, "Warnings")
		p.Line("Total warnings: %d", r.WarningCount())
	}

	p.section(sev, fmt.Sprintf("File extension %ss:", label),
		fmt.Sprintf("Found %d files with 'yml' extension", len(r.SuspectFiles)),
		r.SuspectFiles)
	p.section(sev, fmt.Sprintf("Duplicate job %ss:", label),
		fmt.Sprintf("Found %d duplicate jobs", len(r.DuplicateJobs)),
		r.DuplicateJobs)
	p.section(sev, fmt.Sprintf("Inexistent nodeset %ss:", label),
		fmt.Sprintf("Found %d inexistent nodesets", len(r.DanglingNodesets)),
		r.DanglingNodesets)
	p.section(sev, fmt.Sprintf("Inexistent secret %ss:", label),
		fmt.Sprintf("Found %d inexistent secrets", len(r.DanglingSecrets)),
		r.DanglingSecrets)
}

func (p *Printer) section(sev Severity, headline, count string, items []string) {
	if len(items) == 0 {
		return
	}
	p.Headline(sev, headline)
	p.bold.Fprintln(p.out, count)
	for _, item := range items {
		p.Line("%s", item)
	}
}
