package commands

import (
	"github.com/spf13/cobra"

	"zuulint/cmd/zuulint/internal/clierr"
	"zuulint/internal/checker"
	"zuulint/internal/config"
	"zuulint/internal/loader"
	"zuulint/internal/report"
	"zuulint/internal/schema"
)

type lintOptions struct {
	schema             string
	checkPlaybookPaths bool
	ignoreWarnings     bool
	warningsAsErrors   bool
	exclude            []string
	noColor            bool
	configFile         string
}

// resolve merges the config file into the options. Flags set on the
// command line win over the file; the file wins over defaults.
func (o *lintOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configFile, ".")
	if err != nil {
		return clierr.Wrap(clierr.CodeUsage, "config", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("schema") {
		o.schema = cfg.Schema
	}
	if !flags.Changed("check-playbook-paths") {
		o.checkPlaybookPaths = cfg.CheckPlaybookPaths
	}
	if !flags.Changed("ignore-warnings") {
		o.ignoreWarnings = cfg.IgnoreWarnings
	}
	if !flags.Changed("warnings-as-errors") {
		o.warningsAsErrors = cfg.WarningsAsErrors
	}
	o.exclude = append(o.exclude, cfg.Exclude...)
	return nil
}

func runLint(cmd *cobra.Command, args []string, opts *lintOptions) error {
	if err := opts.resolve(cmd); err != nil {
		return err
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), opts.noColor)

	validator, err := schema.Load(opts.schema)
	if err != nil {
		return clierr.Wrap(clierr.CodeUsage, "schema", err)
	}

	files, err := loader.Discover(args, loader.FilterOptions{
		ExcludeDirs:     loader.DefaultExcludeDirs(),
		ExcludePatterns: opts.exclude,
	})
	if err != nil {
		return clierr.Wrap(clierr.CodeUsage, "discover", err)
	}

	results := &report.Results{SuspectFiles: files.Suspect}

	// Schema validation, file by file.
	collection := &loader.Collection{}
	for _, path := range files.Canonical {
		printer.Line("%s", path)

		f, err := loader.ParseFile(path)
		if err != nil {
			results.ParseErrors = append(results.ParseErrors, report.ParseError{
				File:    path,
				Message: err.Error(),
			})
			printer.Line("YAML Parse Error: %v", err)
			continue
		}
		for _, finding := range validator.Validate(f.Raw) {
			e := report.SchemaError{
				File:         path,
				Message:      finding.Message,
				InstancePath: finding.InstancePath,
				SchemaPath:   finding.SchemaPath,
			}
			printer.SchemaError(e)
			results.SchemaErrors = append(results.SchemaErrors, e)
		}
		collection.Add(f)
	}

	jobs := collection.Jobs()

	if opts.checkPlaybookPaths {
		printer.Headline(report.SeverityInfo, "Checking playbook paths")
		for _, job := range jobs {
			results.InvalidPlaybookPaths = append(
				results.InvalidPlaybookPaths,
				checker.CheckPlaybookPaths(job, "")...,
			)
		}
		if len(results.InvalidPlaybookPaths) > 0 {
			printer.Headline(report.SeverityError, "Invalid playbook paths:")
			for _, path := range results.InvalidPlaybookPaths {
				printer.Line("%s", path)
			}
		} else {
			printer.Line("No invalid playbook paths")
		}
	}

	printer.Headline(report.SeverityInfo, "Checking for duplicate jobs")
	results.DuplicateJobs = listFindings(printer,
		checker.CheckDuplicateJobs(collection.JobsByFile()),
		"No duplicate jobs found")

	printer.Headline(report.SeverityInfo, "Checking for inexistent nodesets")
	results.DanglingNodesets = listFindings(printer,
		checker.CheckDanglingNodesets(collection.Nodesets(), jobs),
		"No inexistent nodesets found")

	printer.Headline(report.SeverityInfo, "Checking for inexistent secrets")
	results.DanglingSecrets = listFindings(printer,
		checker.CheckDanglingSecrets(collection.Secrets(), jobs),
		"No inexistent secrets found")

	printer.Headline(report.SeverityInfo, "Checking for duplicate semaphore")
	results.DuplicateSemaphores = listFindings(printer,
		checker.CheckDuplicateSemaphores(jobs),
		"No duplicate semaphore found")

	printer.Render(results, opts.warningsAsErrors, opts.ignoreWarnings)

	if code := results.ExitCode(opts.warningsAsErrors); code != 0 {
		return clierr.New(code, "lint failed")
	}
	return nil
}

// listFindings prints a finding set (or the all-clear line) and returns
// the findings sorted.
func listFindings(printer *report.Printer, found checker.Set, emptyMsg string) []string {
	if len(found) == 0 {
		printer.Line("%s", emptyMsg)
		return nil
	}
	sorted := found.Sorted()
	for _, name := range sorted {
		printer.Line("%s", name)
	}
	return sorted
}
