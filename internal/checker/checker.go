// Package checker implements the cross-file consistency checks that run
// after every configuration file has been parsed: playbook path existence,
// duplicate job names across files, dangling node-set and secret
// references, and semaphores declared at both job and run-phase level.
//
// Every check is a pure function over already-materialized documents. A
// malformed shape (a job without a name, a reference without a usable
// name) is skipped at that granularity, never an error: checks always
// return a possibly-empty result.
package checker

import (
	"os"
	"path/filepath"
	"sort"

	"zuulint/internal/model"
)

// Set is a set of finding names keyed by string identity.
type Set map[string]struct{}

// Add inserts name into the set.
func (s Set) Add(name string) { s[name] = struct{}{} }

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the set's members in lexical order for deterministic
// rendering.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CheckPlaybookPaths returns every playbook path referenced by the job's
// pre-run, run, post-run and cleanup-run fields that does not exist on
// disk, in phase-then-source order. Paths are resolved relative to root;
// an empty root means the process working directory. The same missing
// path referenced twice is reported twice.
func CheckPlaybookPaths(job *model.Job, root string) []string {
	if job == nil {
		return nil
	}

	invalid := []string{}
	for _, phase := range job.Phases() {
		for _, entry := range phase {
			if entry.Name == "" {
				continue
			}
			if !pathExists(root, entry.Name) {
				invalid = append(invalid, entry.Name)
			}
		}
	}
	return invalid
}

// pathExists reports whether path exists under root. A stat failure of any
// kind counts as missing: findings are best-effort positives, never a
// reason to abort the check.
func pathExists(root, path string) bool {
	if root != "" {
		path = filepath.Join(root, path)
	}
	_, err := os.Stat(path)
	return err == nil
}

// CheckDuplicateJobs returns the job names declared in more than one file.
// A name repeated within a single file counts once for that file; jobs
// without a name are skipped.
func CheckDuplicateJobs(jobsByFile map[string][]*model.Job) Set {
	seen := Set{}
	duplicated := Set{}

	for _, jobs := range jobsByFile {
		perFile := Set{}
		for _, job := range jobs {
			if job == nil || job.Name == "" {
				continue
			}
			perFile.Add(job.Name)
		}
		for name := range perFile {
			if seen.Has(name) {
				duplicated.Add(name)
			}
			seen.Add(name)
		}
	}
	return duplicated
}

// CheckDanglingNodesets returns every node-set name referenced by a job
// that is neither a declared nodeset's own name nor the name of any node
// nested inside a declared nodeset (list-valued node names flatten one
// level).
func CheckDanglingNodesets(nodesets []*model.Nodeset, jobs []*model.Job) Set {
	known := Set{}
	for _, ns := range nodesets {
		if ns == nil {
			continue
		}
		if ns.Name != "" {
			known.Add(ns.Name)
		}
		for _, node := range ns.Nodes {
			for _, name := range node.Name {
				known.Add(name)
			}
		}
	}

	dangling := Set{}
	for _, job := range jobs {
		if job == nil {
			continue
		}
		for _, name := range job.Nodeset.Names() {
			if !known.Has(name) {
				dangling.Add(name)
			}
		}
	}
	return dangling
}

// CheckDuplicateSemaphores returns every semaphore name a job declares at
// the job level and again on at least one of its own run phases. The
// comparison is strictly per job: a semaphore shared between different
// jobs is normal and never flagged.
func CheckDuplicateSemaphores(jobs []*model.Job) Set {
	duplicated := Set{}
	for _, job := range jobs {
		if job == nil || job.Name == "" {
			continue
		}

		jobSems := Set{}
		for _, name := range job.Semaphores {
			jobSems.Add(name)
		}
		if len(jobSems) == 0 {
			continue
		}

		// Bare path strings in run contribute nothing; only the object
		// form can carry per-phase semaphores.
		for _, entry := range job.Run {
			for _, name := range entry.Semaphores {
				if jobSems.Has(name) {
					duplicated.Add(name)
				}
			}
		}
	}
	return duplicated
}

// CheckDanglingSecrets returns every secret name referenced by a job's
// secrets attribute that no secret document declares.
func CheckDanglingSecrets(secrets []*model.Secret, jobs []*model.Job) Set {
	known := Set{}
	for _, s := range secrets {
		if s == nil || s.Name == "" {
			continue
		}
		known.Add(s.Name)
	}

	dangling := Set{}
	for _, job := range jobs {
		if job == nil {
			continue
		}
		for _, ref := range job.Secrets {
			name := ref.SecretName()
			if name == "" {
				continue
			}
			if !known.Has(name) {
				dangling.Add(name)
			}
		}
	}
	return dangling
}
