// Package model defines the decoded shape of Zuul configuration documents.
//
// A Zuul configuration file is a YAML sequence of single-key mappings; the
// key names the kind of object being declared ("job", "nodeset", ...). Many
// job attributes accept several shapes for the same meaning (a bare string,
// a mapping, or a list mixing both), so the types here normalize those
// variants at decode time instead of branching on runtime types later.
package model

import (
	"gopkg.in/yaml.v3"
)

// Kind is the discriminator key of a top-level Zuul document.
type Kind string

const (
	KindJob             Kind = "job"
	KindNodeset         Kind = "nodeset"
	KindPipeline        Kind = "pipeline"
	KindPragma          Kind = "pragma"
	KindProject         Kind = "project"
	KindProjectTemplate Kind = "project-template"
	KindQueue           Kind = "queue"
	KindSecret          Kind = "secret"
	KindSemaphore       Kind = "semaphore"
)

// Kinds lists every discriminator the linter recognizes.
var Kinds = []Kind{
	KindJob,
	KindNodeset,
	KindPipeline,
	KindPragma,
	KindProject,
	KindProjectTemplate,
	KindQueue,
	KindSecret,
	KindSemaphore,
}

// Document is one top-level entry of a configuration file. Exactly one of
// the typed fields is populated, selected by Kind; kinds the checkers do
// not inspect (pipeline, project, ...) carry only the Kind.
type Document struct {
	Kind Kind

	Job       *Job
	Nodeset   *Nodeset
	Secret    *Secret
	Semaphore *Semaphore
}

// UnmarshalYAML decodes a single-key mapping into a discriminated Document.
// A mapping whose key is not a known discriminator, or a non-mapping node,
// decodes to a zero Document rather than failing: structural complaints are
// the schema validator's job, not the decoder's.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) < 2 {
		return nil
	}
	key := value.Content[0]
	body := value.Content[1]
	if key.Kind != yaml.ScalarNode {
		return nil
	}

	d.Kind = Kind(key.Value)
	switch d.Kind {
	case KindJob:
		d.Job = new(Job)
		return body.Decode(d.Job)
	case KindNodeset:
		d.Nodeset = new(Nodeset)
		return body.Decode(d.Nodeset)
	case KindSecret:
		d.Secret = new(Secret)
		return body.Decode(d.Secret)
	case KindSemaphore:
		d.Semaphore = new(Semaphore)
		return body.Decode(d.Semaphore)
	}
	return nil
}

// Job is a Zuul job declaration. Only the attributes the consistency
// checks read are modeled; everything else is validated by schema only.
type Job struct {
	Name       string      `yaml:"name"`
	Parent     string      `yaml:"parent"`
	PreRun     PhaseList   `yaml:"pre-run"`
	Run        PhaseList   `yaml:"run"`
	PostRun    PhaseList   `yaml:"post-run"`
	CleanupRun PhaseList   `yaml:"cleanup-run"`
	Semaphores StringList  `yaml:"semaphores"`
	Nodeset    *NodesetRef `yaml:"nodeset"`
	Secrets    SecretRefs  `yaml:"secrets"`
}

// Phases returns the job's phase lists in canonical order: pre-run, run,
// post-run, cleanup-run.
func (j *Job) Phases() []PhaseList {
	return []PhaseList{j.PreRun, j.Run, j.PostRun, j.CleanupRun}
}

// Nodeset is a top-level node-set declaration.
type Nodeset struct {
	Name  string `yaml:"name"`
	Nodes []Node `yaml:"nodes"`
}

// Node is one entry of a nodeset's nodes list. Its name may itself be a
// list of alternative names; every element counts as a declared name.
type Node struct {
	Name  StringList `yaml:"name"`
	Label string     `yaml:"label"`
}

// Secret is a top-level secret declaration. The checkers only use its name
// as a membership anchor.
type Secret struct {
	Name string `yaml:"name"`
}

// Semaphore is a top-level semaphore declaration.
type Semaphore struct {
	Name string `yaml:"name"`
	Max  int    `yaml:"max"`
}

// StringList decodes either a single scalar or a sequence of scalars into
// a flat list. Non-scalar elements are dropped.
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return nil
		}
		*l = StringList{s}
	case yaml.SequenceNode:
		out := make(StringList, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				continue
			}
			var s string
			if err := item.Decode(&s); err != nil {
				continue
			}
			out = append(out, s)
		}
		*l = out
	}
	return nil
}

// PhaseEntry is one entry of a pre-run/run/post-run/cleanup-run field:
// either a bare playbook path, or a mapping whose "name" key is the path
// and which may declare per-phase semaphores. An unrecognized shape leaves
// Name empty and is skipped by consumers.
type PhaseEntry struct {
	Name       string
	Semaphores StringList
}

func (e *PhaseEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return nil
		}
		e.Name = s
	case yaml.MappingNode:
		var aux struct {
			Name       string     `yaml:"name"`
			Semaphores StringList `yaml:"semaphores"`
		}
		if err := value.Decode(&aux); err != nil {
			return nil
		}
		e.Name = aux.Name
		e.Semaphores = aux.Semaphores
	}
	return nil
}

// PhaseList normalizes a phase field to a list: a non-sequence value
// becomes a single-entry list.
type PhaseList []PhaseEntry

func (l *PhaseList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		out := make(PhaseList, 0, len(value.Content))
		for _, item := range value.Content {
			var e PhaseEntry
			if err := item.Decode(&e); err != nil {
				continue
			}
			out = append(out, e)
		}
		*l = out
		return nil
	}
	var e PhaseEntry
	if err := value.Decode(&e); err != nil {
		return nil
	}
	*l = PhaseList{e}
	return nil
}

// NodesetRef is a job's nodeset attribute: either the name of a declared
// nodeset, or an inline nodeset carrying its own nodes list.
type NodesetRef struct {
	Name  string
	Nodes []Node
}

func (r *NodesetRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return nil
		}
		r.Name = s
	case yaml.MappingNode:
		var aux struct {
			Name  string `yaml:"name"`
			Nodes []Node `yaml:"nodes"`
		}
		if err := value.Decode(&aux); err != nil {
			return nil
		}
		r.Name = aux.Name
		r.Nodes = aux.Nodes
	}
	return nil
}

// Names returns every node-set name the reference resolves against. A
// plain-string reference yields that one name; an inline form yields the
// flattened names of its nodes. Malformed entries yield nothing.
func (r *NodesetRef) Names() []string {
	if r == nil {
		return nil
	}
	if len(r.Nodes) == 0 {
		if r.Name == "" {
			return nil
		}
		return []string{r.Name}
	}
	var names []string
	for _, n := range r.Nodes {
		names = append(names, n.Name...)
	}
	return names
}

// SecretRef is one entry of a job's secrets attribute: either a bare
// secret name, or a mapping of a local alias ("name") onto a declared
// secret ("secret").
type SecretRef struct {
	Name   string
	Secret string
}

// SecretName returns the declared-secret name the reference points at.
func (r SecretRef) SecretName() string {
	if r.Secret != "" {
		return r.Secret
	}
	return r.Name
}

func (r *SecretRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return nil
		}
		r.Secret = s
	case yaml.MappingNode:
		var aux struct {
			Name   string `yaml:"name"`
			Secret string `yaml:"secret"`
		}
		if err := value.Decode(&aux); err != nil {
			return nil
		}
		r.Name = aux.Name
		r.Secret = aux.Secret
	}
	return nil
}

// SecretRefs normalizes a secrets attribute to a list of references.
type SecretRefs []SecretRef

func (l *SecretRefs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		out := make(SecretRefs, 0, len(value.Content))
		for _, item := range value.Content {
			var r SecretRef
			if err := item.Decode(&r); err != nil {
				continue
			}
			out = append(out, r)
		}
		*l = out
		return nil
	}
	var r SecretRef
	if err := value.Decode(&r); err != nil {
		return nil
	}
	*l = SecretRefs{r}
	return nil
}
