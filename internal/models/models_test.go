package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionReport_Lookups(t *testing.T) {
	report := &PermissionReport{
		Verdicts: []Verdict{
			{Permission: "repo", Category: CategoryCritical, Granted: true},
			{Permission: "gist", Category: CategoryStandard, Granted: false, Detail: "limited"},
		},
	}

	assert.True(t, report.Granted("repo"))
	assert.False(t, report.Granted("gist"))
	assert.False(t, report.Granted("never-probed"))

	verdict := report.Verdict("gist")
	require.NotNil(t, verdict)
	assert.Equal(t, "limited", verdict.Detail)
	assert.Nil(t, report.Verdict("never-probed"))
}

func TestNode_ItemCount(t *testing.T) {
	node := &Node{
		Kind:    KindRepositories,
		Repos:   []Repository{{Name: "api"}, {Name: "web"}},
		Runners: []Runner{{Name: "r1"}},
	}
	assert.Equal(t, 3, node.ItemCount())
	assert.Zero(t, (&Node{}).ItemCount())
}

func TestCompanySnapshot_Nodes(t *testing.T) {
	snap := &CompanySnapshot{
		Members: &Node{Kind: KindMembers},
		Repos:   &Node{Kind: KindRepositories},
		RepoWorkflows: map[string]*Node{
			"acme/api": {Kind: KindRepoWorkflows, Repo: "acme/api"},
		},
		EnterpriseRunners: &Node{Kind: KindEnterpriseRunners},
	}

	nodes := snap.Nodes()
	require.Len(t, nodes, 4)
	assert.Equal(t, KindMembers, nodes[0].Kind, "org-level nodes come first")
	assert.Equal(t, KindEnterpriseRunners, nodes[len(nodes)-1].Kind, "enterprise runners come last")
}
