package models

import "time"

// NodeStatus is the terminal state of one enumerated resource collection.
// Every node in a finished snapshot carries one of these; InProgress and
// NotAttempted never escape the pipeline.
type NodeStatus string

const (
	StatusSucceeded       NodeStatus = "succeeded"
	StatusPartiallyFailed NodeStatus = "partially_failed"
	StatusFailed          NodeStatus = "failed"
	StatusSkipped         NodeStatus = "skipped"
	StatusTimedOut        NodeStatus = "timed_out"
)

// Skip reasons recorded on StatusSkipped nodes.
const (
	SkipPermissionNotGranted = "permission not granted"
	SkipPrerequisiteFailed   = "prerequisite failed"
)

// NodeKind identifies which resource collection a node holds.
type NodeKind string

const (
	KindOrgProfile        NodeKind = "org_profile"
	KindMembers           NodeKind = "members"
	KindTeams             NodeKind = "teams"
	KindRepositories      NodeKind = "repositories"
	KindOrgWebhooks       NodeKind = "org_webhooks"
	KindOrgSecrets        NodeKind = "org_secrets"
	KindOrgRunners        NodeKind = "org_runners"
	KindRepoWebhooks      NodeKind = "repo_webhooks"
	KindRepoSecrets       NodeKind = "repo_secrets"
	KindRepoWorkflows     NodeKind = "repo_workflows"
	KindRepoRunners       NodeKind = "repo_runners"
	KindEnterpriseRunners NodeKind = "enterprise_runners"
)

// Member is an organization member record.
type Member struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	SiteAdmin bool   `json:"site_admin"`
}

// Team is an organization team record.
type Team struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Privacy     string `json:"privacy,omitempty"`
	Permission  string `json:"permission,omitempty"`
}

// Repository is an organization repository record.
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	Fork          bool   `json:"fork"`
	Archived      bool   `json:"archived"`
	Disabled      bool   `json:"disabled"`
	DefaultBranch string `json:"default_branch,omitempty"`
	Language      string `json:"language,omitempty"`
	OpenIssues    int    `json:"open_issues_count"`
	Stargazers    int    `json:"stargazers_count"`
	Forks         int    `json:"forks_count"`
	PushedAt      string `json:"pushed_at,omitempty"`
}

// Webhook is an org- or repo-level webhook record. Only the delivery URL
// and content type from the config block are retained.
type Webhook struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Active      bool     `json:"active"`
	Events      []string `json:"events,omitempty"`
	URL         string   `json:"url,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
}

// Secret is an Actions secret record. Values are never exposed by the
// API; only names and timestamps are enumerable.
type Secret struct {
	Name       string `json:"name"`
	Visibility string `json:"visibility,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// Workflow is an Actions workflow record.
type Workflow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	State string `json:"state"`
}

// Runner is a self-hosted Actions runner record at repo, org or
// enterprise scope.
type Runner struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	OS     string   `json:"os"`
	Status string   `json:"status"`
	Busy   bool     `json:"busy"`
	Labels []string `json:"labels,omitempty"`
}

// OrgProfile is the organization's own record.
type OrgProfile struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Email       string `json:"email,omitempty"`
	Location    string `json:"location,omitempty"`
	Type        string `json:"type,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	CreatedAt   string `json:"created_at,omitempty"`
	Plan        string `json:"plan,omitempty"`
}

// Node is one enumerated resource collection: its terminal status, the
// items fetched before any failure, and the page-level errors recorded
// along the way.
type Node struct {
	Kind       NodeKind `json:"kind"`
	Org        string   `json:"org,omitempty"`
	Repo       string   `json:"repo,omitempty"`
	Enterprise string   `json:"enterprise,omitempty"`

	Status     NodeStatus `json:"status"`
	SkipReason string     `json:"skipReason,omitempty"`
	Errors     []string   `json:"errors,omitempty"`

	Members   []Member     `json:"members,omitempty"`
	Teams     []Team       `json:"teams,omitempty"`
	Repos     []Repository `json:"repositories,omitempty"`
	Webhooks  []Webhook    `json:"webhooks,omitempty"`
	Secrets   []Secret     `json:"secrets,omitempty"`
	Workflows []Workflow   `json:"workflows,omitempty"`
	Runners   []Runner     `json:"runners,omitempty"`
}

// ItemCount returns how many entity records the node holds, regardless
// of kind.
func (n *Node) ItemCount() int {
	return len(n.Members) + len(n.Teams) + len(n.Repos) +
		len(n.Webhooks) + len(n.Secrets) + len(n.Workflows) + len(n.Runners)
}

// LabelCount is the online/total pair for one runner label.
type LabelCount struct {
	Online int `json:"online"`
	Total  int `json:"total"`
}

// ActionsOverview holds the summary counts derived once over the final
// snapshot, never stored redundantly per node.
type ActionsOverview struct {
	RepositoryCount      int                   `json:"repositoryCount"`
	WorkflowRepositories int                   `json:"workflowRepositories"`
	WorkflowTotal        int                   `json:"workflowTotal"`
	SecretRepositories   int                   `json:"secretRepositories"`
	RunnerRepositories   int                   `json:"runnerRepositories"`
	OrgSecrets           int                   `json:"orgSecrets"`
	RunnersOnline        int                   `json:"runnersOnline"`
	RunnersOffline       int                   `json:"runnersOffline"`
	RunnersByLabel       map[string]LabelCount `json:"runnersByLabel,omitempty"`
}

// CompanySnapshot is the root aggregate handed to formatters. Per-repo
// nodes are keyed by repository full name.
type CompanySnapshot struct {
	Company    string      `json:"company"`
	Enterprise string      `json:"enterprise,omitempty"`
	Profile    *OrgProfile `json:"profile,omitempty"`

	Members     *Node `json:"members,omitempty"`
	Teams       *Node `json:"teams,omitempty"`
	Repos       *Node `json:"repositories,omitempty"`
	OrgWebhooks *Node `json:"orgWebhooks,omitempty"`
	OrgSecrets  *Node `json:"orgSecrets,omitempty"`
	OrgRunners  *Node `json:"orgRunners,omitempty"`

	RepoWebhooks  map[string]*Node `json:"repoWebhooks,omitempty"`
	RepoSecrets   map[string]*Node `json:"repoSecrets,omitempty"`
	RepoWorkflows map[string]*Node `json:"repoWorkflows,omitempty"`
	RepoRunners   map[string]*Node `json:"repoRunners,omitempty"`

	EnterpriseRunners *Node `json:"enterpriseRunners,omitempty"`

	Overview  ActionsOverview `json:"overview"`
	Errors    []string        `json:"errors,omitempty"`
	StartedAt time.Time       `json:"startedAt"`
}

// Nodes returns every node present in the snapshot, org-level collections
// first, then per-repo nodes, then enterprise runners.
func (s *CompanySnapshot) Nodes() []*Node {
	var nodes []*Node
	for _, n := range []*Node{s.Members, s.Teams, s.Repos, s.OrgWebhooks, s.OrgSecrets, s.OrgRunners} {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	for _, m := range []map[string]*Node{s.RepoWebhooks, s.RepoSecrets, s.RepoWorkflows, s.RepoRunners} {
		for _, n := range m {
			nodes = append(nodes, n)
		}
	}
	if s.EnterpriseRunners != nil {
		nodes = append(nodes, s.EnterpriseRunners)
	}
	return nodes
}
