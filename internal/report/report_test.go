package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounts(t *testing.T) {
	r := &Results{
		SchemaErrors:         []SchemaError{{File: "a.yaml", Message: "bad"}},
		ParseErrors:          []ParseError{{File: "b.yaml", Message: "syntax"}},
		InvalidPlaybookPaths: []string{"playbooks/x.yaml"},
		DuplicateSemaphores:  []string{"s1"},
		SuspectFiles:         []string{"c.yml"},
		DuplicateJobs:        []string{"job1"},
		DanglingNodesets:     []string{"ns1"},
		DanglingSecrets:      []string{"sec1"},
	}

	assert.Equal(t, 4, r.ErrorCount())
	assert.Equal(t, 4, r.WarningCount())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name             string
		results          Results
		warningsAsErrors bool
		expected         int
	}{
		{"clean", Results{}, false, 0},
		{"clean promoted", Results{}, true, 0},
		{"errors", Results{DuplicateSemaphores: []string{"s1"}}, false, 1},
		{"warnings only", Results{DuplicateJobs: []string{"job1"}}, false, 0},
		{"warnings promoted", Results{DuplicateJobs: []string{"job1"}}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.results.ExitCode(tt.warningsAsErrors))
		})
	}
}

func TestRenderPassed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)
	p.Render(&Results{}, false, false)

	assert.Contains(t, buf.String(), "Passed")
	assert.NotContains(t, buf.String(), "Warnings")
}

func TestRenderWarnings(t *testing.T) {
	r := &Results{
		SuspectFiles:     []string{"old.yml"},
		DuplicateJobs:    []string{"job1"},
		DanglingNodesets: []string{"ns1"},
		DanglingSecrets:  []string{"sec1"},
	}

	var buf bytes.Buffer
	NewPrinter(&buf, true).Render(r, false, false)
	out := buf.String()

	assert.Contains(t, out, "Warnings")
	assert.Contains(t, out, "Total warnings: 4")
	assert.Contains(t, out, "Found 1 files with 'yml' extension")
	assert.Contains(t, out, "old.yml")
	assert.Contains(t, out, "Found 1 duplicate jobs")
	assert.Contains(t, out, "job1")
	assert.Contains(t, out, "Found 1 inexistent nodesets")
	assert.Contains(t, out, "ns1")
	assert.Contains(t, out, "Found 1 inexistent secrets")
	assert.Contains(t, out, "sec1")
	// Warnings alone still pass.
	assert.Contains(t, out, "Passed")
}

func TestRenderIgnoreWarnings(t *testing.T) {
	r := &Results{DuplicateJobs: []string{"job1"}}

	var buf bytes.Buffer
	NewPrinter(&buf, true).Render(r, false, true)
	out := buf.String()

	assert.NotContains(t, out, "job1")
	assert.Contains(t, out, "Passed")
}

func TestRenderWarningsAsErrors(t *testing.T) {
	r := &Results{DuplicateJobs: []string{"job1"}}

	var buf bytes.Buffer
	// Promotion beats suppression.
	NewPrinter(&buf, true).Render(r, true, true)
	out := buf.String()

	assert.Contains(t, out, "Duplicate job errors:")
	assert.Contains(t, out, "Failed")
	assert.Contains(t, out, "Total errors: 1")
	assert.Contains(t, out, "Duplicated jobs errors: 1")
	assert.NotContains(t, out, "Passed")
}

func TestRenderFailedTotals(t *testing.T) {
	r := &Results{
		SchemaErrors:         []SchemaError{{File: "a.yaml", Message: "bad"}},
		InvalidPlaybookPaths: []string{"playbooks/x.yaml"},
		DuplicateSemaphores:  []string{"s1"},
	}

	var buf bytes.Buffer
	NewPrinter(&buf, true).Render(r, false, false)
	out := buf.String()

	assert.Contains(t, out, "Failed")
	assert.Contains(t, out, "Total errors: 3")
	assert.Contains(t, out, "Duplicated semaphores: 1")
	assert.Contains(t, out, "Playbook path errors: 1")
	assert.Contains(t, out, "YAML validation errors: 1")
}

func TestSchemaErrorOutput(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true).SchemaError(SchemaError{
		File:         "zuul.d/jobs.yaml",
		Message:      "missing properties: 'name'",
		InstancePath: "/0/job",
		SchemaPath:   "/items/properties/job/required",
	})
	out := buf.String()

	assert.Contains(t, out, "Validation error:")
	assert.Contains(t, out, "File: zuul.d/jobs.yaml")
	assert.Contains(t, out, "Message: missing properties: 'name'")
	assert.Contains(t, out, "Path: /0/job")
	assert.Contains(t, out, "Schema Path: /items/properties/job/required")
}

func TestNoColorOutputIsPlain(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true).Headline(SeverityError, "Failed")
	assert.False(t, strings.Contains(buf.String(), "\x1b["))
}
