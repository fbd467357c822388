package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStringListShapes(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected StringList
	}{
		{"single scalar", `s1`, StringList{"s1"}},
		{"list", `[s1, s2]`, StringList{"s1", "s2"}},
		{"list drops non-scalars", "- s1\n- [nested]\n- s2", StringList{"s1", "s2"}},
		{"mapping ignored", `{k: v}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, yaml.Unmarshal([]byte(tt.src), &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPhaseListShapes(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected PhaseList
	}{
		{
			"bare string",
			`playbooks/run.yaml`,
			PhaseList{{Name: "playbooks/run.yaml"}},
		},
		{
			"single object",
			`{name: playbooks/run.yaml, semaphores: s1}`,
			PhaseList{{Name: "playbooks/run.yaml", Semaphores: StringList{"s1"}}},
		},
		{
			"mixed list",
			"- playbooks/a.yaml\n- name: playbooks/b.yaml\n  semaphores: [s1, s2]",
			PhaseList{
				{Name: "playbooks/a.yaml"},
				{Name: "playbooks/b.yaml", Semaphores: StringList{"s1", "s2"}},
			},
		},
		{
			"object without name keeps entry with empty name",
			`- {semaphores: s1}`,
			PhaseList{{Semaphores: StringList{"s1"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got PhaseList
			require.NoError(t, yaml.Unmarshal([]byte(tt.src), &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNodesetRefNames(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{"plain string", `fedora-pod`, []string{"fedora-pod"}},
		{
			"inline nodes",
			"nodes:\n- name: n1\n  label: pod\n- name: [n2, n3]\n  label: pod",
			[]string{"n1", "n2", "n3"},
		},
		{"inline without usable names", "nodes:\n- label: pod", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref NodesetRef
			require.NoError(t, yaml.Unmarshal([]byte(tt.src), &ref))
			assert.Equal(t, tt.expected, ref.Names())
		})
	}

	var nilRef *NodesetRef
	assert.Nil(t, nilRef.Names())
}

func TestSecretRefs(t *testing.T) {
	var refs SecretRefs
	require.NoError(t, yaml.Unmarshal([]byte(`site_logs`), &refs))
	require.Len(t, refs, 1)
	assert.Equal(t, "site_logs", refs[0].SecretName())

	refs = nil
	require.NoError(t, yaml.Unmarshal([]byte("- name: logs\n  secret: site_logs\n- other_secret"), &refs))
	require.Len(t, refs, 2)
	assert.Equal(t, "site_logs", refs[0].SecretName())
	assert.Equal(t, "other_secret", refs[1].SecretName())

	// Alias-only form falls back to the local name.
	ref := SecretRef{Name: "only_name"}
	assert.Equal(t, "only_name", ref.SecretName())
}

func TestDocumentDiscriminators(t *testing.T) {
	src := `
- job:
    name: base
    pre-run: playbooks/pre.yaml
    nodeset: fedora-pod
- nodeset:
    name: fedora-pod
    nodes:
      - name: container
        label: pod-fedora
- secret:
    name: site_logs
- semaphore:
    name: semaphore-foo
    max: 2
- pipeline:
    name: check
    manager: independent
`
	var docs []Document
	require.NoError(t, yaml.Unmarshal([]byte(src), &docs))
	require.Len(t, docs, 5)

	assert.Equal(t, KindJob, docs[0].Kind)
	require.NotNil(t, docs[0].Job)
	assert.Equal(t, "base", docs[0].Job.Name)
	assert.Equal(t, PhaseList{{Name: "playbooks/pre.yaml"}}, docs[0].Job.PreRun)
	assert.Equal(t, []string{"fedora-pod"}, docs[0].Job.Nodeset.Names())

	assert.Equal(t, KindNodeset, docs[1].Kind)
	require.NotNil(t, docs[1].Nodeset)
	assert.Equal(t, "fedora-pod", docs[1].Nodeset.Name)
	require.Len(t, docs[1].Nodeset.Nodes, 1)
	assert.Equal(t, StringList{"container"}, docs[1].Nodeset.Nodes[0].Name)

	assert.Equal(t, KindSecret, docs[2].Kind)
	assert.Equal(t, "site_logs", docs[2].Secret.Name)

	assert.Equal(t, KindSemaphore, docs[3].Kind)
	assert.Equal(t, "semaphore-foo", docs[3].Semaphore.Name)
	assert.Equal(t, 2, docs[3].Semaphore.Max)

	// Kinds without checker-relevant structure keep only the tag.
	assert.Equal(t, KindPipeline, docs[4].Kind)
	assert.Nil(t, docs[4].Job)
}

func TestDocumentToleratesUnknownShapes(t *testing.T) {
	var docs []Document
	require.NoError(t, yaml.Unmarshal([]byte("- frob:\n    name: x\n- plain-string"), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, Kind("frob"), docs[0].Kind)
	assert.Equal(t, Kind(""), docs[1].Kind)
}

func TestJobPhasesOrder(t *testing.T) {
	var job Job
	require.NoError(t, yaml.Unmarshal([]byte(`
name: test
pre-run: a.yaml
run: b.yaml
post-run: c.yaml
cleanup-run: d.yaml
`), &job))

	var order []string
	for _, phase := range job.Phases() {
		for _, entry := range phase {
			order = append(order, entry.Name)
		}
	}
	assert.Equal(t, []string{"a.yaml", "b.yaml", "c.yaml", "d.yaml"}, order)
}
