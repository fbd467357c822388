// Package loader discovers Zuul configuration files on disk and parses
// them into discriminated documents for the checkers and the schema
// validator.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"zuulint/internal/model"
)

// encryptedTag marks secret values encrypted with the project key. The
// linter treats the ciphertext as its underlying scalar or sequence.
const encryptedTag = "!encrypted/pkcs1-oaep"

// FileSet is the result of file discovery. Canonical files carry the
// .yaml extension and are linted; Suspect files carry .yml and are only
// reported. Both lists are sorted.
type FileSet struct {
	Canonical []string
	Suspect   []string
}

// Discover walks the given files or directories and classifies every
// YAML file found by extension. A path that does not exist is an error;
// anything that is neither .yaml nor .yml is skipped silently.
func Discover(paths []string, opts FilterOptions) (*FileSet, error) {
	set := &FileSet{}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", p, err)
		}
		if !info.IsDir() {
			set.classify(p)
			continue
		}
		if err := set.walkDir(p, opts); err != nil {
			return nil, err
		}
	}
	sort.Strings(set.Canonical)
	sort.Strings(set.Suspect)
	return set, nil
}

func (s *FileSet) walkDir(root string, opts FilterOptions) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if path != root && excludedDir(d.Name(), opts.ExcludeDirs) {
				return filepath.SkipDir
			}
			return nil
		}
		if excludedPath(rel, opts.ExcludePatterns) {
			return nil
		}
		s.classify(path)
		return nil
	})
}

func (s *FileSet) classify(path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml":
		s.Canonical = append(s.Canonical, path)
	case ".yml":
		s.Suspect = append(s.Suspect, path)
	}
}

// File is one parsed configuration file: its discriminated documents plus
// the raw decoded value tree the schema validator consumes.
type File struct {
	Path      string
	Documents []model.Document
	Raw       []any
}

// ParseFile reads and decodes a single configuration file. The returned
// error covers unreadable files and YAML syntax errors; an empty file
// yields an empty document list.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return &File{Path: path}, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("invalid YAML in %s: top level must be a sequence", path)
	}

	f := &File{Path: path}
	for _, item := range top.Content {
		var doc model.Document
		if err := item.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
		f.Documents = append(f.Documents, doc)
		f.Raw = append(f.Raw, decodeValue(item))
	}
	return f, nil
}

// decodeValue converts a YAML node into plain Go values, resolving the
// encrypted-secret tag to its underlying scalar or sequence the way
// Zuul's own loader does.
func decodeValue(n *yaml.Node) any {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return decodeValue(n.Alias)
	}

	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				continue
			}
			m[key.Value] = decodeValue(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			out = append(out, decodeValue(item))
		}
		return out
	case yaml.ScalarNode:
		if n.Tag == encryptedTag {
			return n.Value
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		return v
	}
	return nil
}

// Collection aggregates parsed files and groups their documents the way
// the checkers consume them.
type Collection struct {
	Files []*File
}

// Add appends a parsed file to the collection.
func (c *Collection) Add(f *File) {
	c.Files = append(c.Files, f)
}

// JobsByFile returns the job documents of every file keyed by file path,
// including files that declare no jobs.
func (c *Collection) JobsByFile() map[string][]*model.Job {
	byFile := make(map[string][]*model.Job, len(c.Files))
	for _, f := range c.Files {
		jobs := []*model.Job{}
		for _, doc := range f.Documents {
			if doc.Kind == model.KindJob && doc.Job != nil {
				jobs = append(jobs, doc.Job)
			}
		}
		byFile[f.Path] = jobs
	}
	return byFile
}

// Jobs returns every job document across the collection.
func (c *Collection) Jobs() []*model.Job {
	var jobs []*model.Job
	for _, f := range c.Files {
		for _, doc := range f.Documents {
			if doc.Kind == model.KindJob && doc.Job != nil {
				jobs = append(jobs, doc.Job)
			}
		}
	}
	return jobs
}

// Nodesets returns every nodeset document across the collection.
func (c *Collection) Nodesets() []*model.Nodeset {
	var nodesets []*model.Nodeset
	for _, f := range c.Files {
		for _, doc := range f.Documents {
			if doc.Kind == model.KindNodeset && doc.Nodeset != nil {
				nodesets = append(nodesets, doc.Nodeset)
			}
		}
	}
	return nodesets
}

// Secrets returns every secret document across the collection.
func (c *Collection) Secrets() []*model.Secret {
	var secrets []*model.Secret
	for _, f := range c.Files {
		for _, doc := range f.Documents {
			if doc.Kind == model.KindSecret && doc.Secret != nil {
				secrets = append(secrets, doc.Secret)
			}
		}
	}
	return secrets
}
