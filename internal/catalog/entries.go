package catalog

import "github.com/credprobe/credprobe/internal/models"

// The probe catalog. Adding a permission is a data change here, not a
// code change; classifier behavior lives in classifiers.go.
//
// 404 handling is per-probe: every probe targets a resource that exists
// for a sufficiently privileged credential, so classifiers treat 404 as
// forbidden rather than not-found unless noted on the entry.

var critical = []Spec{
	{
		ID:          "repo",
		Category:    models.CategoryCritical,
		Description: "Full control of private repositories",
		Probe:       Probe{Method: "GET", Path: "/user/repos?per_page=100"},
		Classifier:  "list",
	},
	{
		ID:          "repo_write",
		Category:    models.CategoryCritical,
		Description: "Write access to repositories (inferred from private repository visibility)",
		Probe:       Probe{Method: "GET", Path: "/user/repos?per_page=100"},
		Classifier:  "private_repos",
	},
	{
		ID:          "repo_delete",
		Category:    models.CategoryCritical,
		Description: "Delete repositories (inferred from admin permission flags)",
		Probe:       Probe{Method: "GET", Path: "/user/repos?per_page=100"},
		Classifier:  "admin_flag",
	},
	{
		ID:          "admin:org",
		Category:    models.CategoryCritical,
		Description: "Full control of orgs and teams, read and write org projects",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/hooks"},
		Classifier:  "list",
	},
	{
		ID:          "read:org",
		Category:    models.CategoryCritical,
		Description: "Read org and team membership, read org projects",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}"},
	},
	{
		ID:          "write:org",
		Category:    models.CategoryCritical,
		Description: "Read and write org and team membership",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/teams"},
		Classifier:  "list",
	},
	{
		ID:          "admin:repo_hook",
		Category:    models.CategoryCritical,
		Description: "Full control of repository hooks",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/hooks"},
		Classifier:  "list",
	},
	{
		ID:          "write:repo_hook",
		Category:    models.CategoryCritical,
		Description: "Write repository hooks",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/hooks"},
		Classifier:  "list",
	},
	{
		ID:          "read:repo_hook",
		Category:    models.CategoryCritical,
		Description: "Read repository hooks",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/hooks"},
		Classifier:  "list",
	},
	{
		ID:          "admin:org_hook",
		Category:    models.CategoryCritical,
		Description: "Full control of organization hooks",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/hooks"},
		Classifier:  "list",
	},
	{
		ID:          "read:org_hook",
		Category:    models.CategoryCritical,
		Description: "Read organization hooks",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/hooks"},
		Classifier:  "list",
	},
	{
		ID:          "workflow",
		Category:    models.CategoryCritical,
		Description: "Update GitHub Action workflows",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/actions/workflows"},
		Classifier:  "list",
		ItemsKey:    "workflows",
	},
	{
		ID:          "repo_secrets",
		Category:    models.CategoryCritical,
		Description: "Access repository Actions secrets",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/actions/secrets"},
		Classifier:  "list",
		ItemsKey:    "secrets",
	},
	{
		ID:          "org_secrets",
		Category:    models.CategoryCritical,
		Description: "Access organization Actions secrets",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/actions/secrets"},
		Classifier:  "list",
		ItemsKey:    "secrets",
	},
	{
		ID:          "write:packages",
		Category:    models.CategoryCritical,
		Description: "Upload packages to GitHub Package Registry",
		Probe:       Probe{Method: "GET", Path: "/user/packages?package_type=container"},
		Classifier:  "list",
	},
	{
		ID:          "delete:packages",
		Category:    models.CategoryCritical,
		Description: "Delete packages from GitHub Package Registry",
		Probe:       Probe{Method: "GET", Path: "/user/packages?package_type=container"},
		Classifier:  "list",
	},
	{
		ID:          "admin:gpg_key",
		Category:    models.CategoryCritical,
		Description: "Full control of public user GPG keys",
		Probe:       Probe{Method: "GET", Path: "/user/gpg_keys"},
		Classifier:  "list",
	},
	{
		ID:          "write:gpg_key",
		Category:    models.CategoryCritical,
		Description: "Write public user GPG keys",
		Probe:       Probe{Method: "GET", Path: "/user/gpg_keys"},
		Classifier:  "list",
	},
	{
		ID:          "admin:public_key",
		Category:    models.CategoryCritical,
		Description: "Full control of user public SSH keys",
		Probe:       Probe{Method: "GET", Path: "/user/keys"},
		Classifier:  "list",
	},
	{
		ID:          "write:public_key",
		Category:    models.CategoryCritical,
		Description: "Write user public SSH keys",
		Probe:       Probe{Method: "GET", Path: "/user/keys"},
		Classifier:  "list",
	},
	{
		ID:          "admin:enterprise",
		Category:    models.CategoryCritical,
		Description: "Full control of enterprise accounts",
		Probe:       Probe{Method: "GET", Path: "/enterprise/settings"},
	},
	{
		ID:          "manage_billing:enterprise",
		Category:    models.CategoryCritical,
		Description: "Read and write enterprise billing data",
		Probe:       Probe{Method: "GET", Path: "/enterprise/billing"},
	},
	{
		ID:          "enterprise_admin",
		Category:    models.CategoryCritical,
		Description: "Enterprise site administration",
		Probe:       Probe{Method: "GET", Path: "/enterprise/settings"},
	},
	{
		ID:          "manage_runners:enterprise",
		Category:    models.CategoryCritical,
		Description: "Manage enterprise self-hosted runners",
		Probe:       Probe{Method: "GET", Path: "/enterprises/{enterprise}/actions/runners"},
		Classifier:  "list",
		ItemsKey:    "runners",
	},
	{
		ID:          "read:runners:enterprise",
		Category:    models.CategoryCritical,
		Description: "Read enterprise self-hosted runner metadata",
		Probe:       Probe{Method: "GET", Path: "/enterprises/{enterprise}/actions/runners"},
		Classifier:  "list",
		ItemsKey:    "runners",
	},
	{
		ID:          "read:audit_log",
		Category:    models.CategoryCritical,
		Description: "Read organization audit log",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/audit-log"},
		Classifier:  "list",
	},
	{
		ID:          "write:audit_log",
		Category:    models.CategoryCritical,
		Description: "Write organization audit log streaming configuration",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/audit-log"},
		Classifier:  "list",
	},
}

var standard = []Spec{
	{
		ID:          "read:user",
		Category:    models.CategoryStandard,
		Description: "Read user profile data",
		Probe:       Probe{Method: "GET", Path: "/user"},
	},
	{
		ID:          "user",
		Category:    models.CategoryStandard,
		Description: "Full user profile access including email addresses",
		Probe:       Probe{Method: "GET", Path: "/user/emails"},
		Classifier:  "list",
	},
	{
		ID:          "gist",
		Category:    models.CategoryStandard,
		Description: "Create gists (verified with a throwaway gist, deleted immediately)",
		Probe: Probe{
			Method: "POST",
			Path:   "/gists",
			Body:   `{"description":"probe {uuid}","public":false,"files":{"probe-{uuid}.txt":{"content":"probe"}}}`,
		},
		Reversal:   &Reversal{Method: "DELETE", Path: "/gists/{id}", IDFrom: "id"},
		Classifier: "create",
	},
	{
		ID:          "read:packages",
		Category:    models.CategoryStandard,
		Description: "Download packages from GitHub Package Registry",
		Probe:       Probe{Method: "GET", Path: "/user/packages?package_type=container"},
		Classifier:  "list",
	},
	{
		ID:          "notifications",
		Category:    models.CategoryStandard,
		Description: "Access notifications",
		Probe:       Probe{Method: "GET", Path: "/notifications"},
		Classifier:  "list",
	},
	{
		ID:          "user:email",
		Category:    models.CategoryStandard,
		Description: "Read user email addresses",
		Probe:       Probe{Method: "GET", Path: "/user/emails"},
		Classifier:  "list",
	},
	{
		ID:          "user:follow",
		Category:    models.CategoryStandard,
		Description: "Follow and unfollow users (verified with a reversible follow)",
		Probe:       Probe{Method: "PUT", Path: "/user/following/{user}"},
		Reversal:    &Reversal{Method: "DELETE", Path: "/user/following/{user}"},
		Classifier:  "create",
	},
	{
		ID:          "read:discussion",
		Category:    models.CategoryStandard,
		Description: "Read team discussions",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/discussions"},
		Classifier:  "list",
	},
	{
		ID:          "write:discussion",
		Category:    models.CategoryStandard,
		Description: "Read and write team discussions",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/discussions"},
		Classifier:  "list",
	},
	{
		ID:          "read:gpg_key",
		Category:    models.CategoryStandard,
		Description: "Read user GPG keys",
		Probe:       Probe{Method: "GET", Path: "/user/gpg_keys"},
		Classifier:  "list",
	},
	{
		ID:          "read:public_key",
		Category:    models.CategoryStandard,
		Description: "Read user public SSH keys",
		Probe:       Probe{Method: "GET", Path: "/user/keys"},
		Classifier:  "list",
	},
	{
		ID:          "read:enterprise",
		Category:    models.CategoryStandard,
		Description: "Read enterprise account data",
		Probe:       Probe{Method: "GET", Path: "/enterprise/settings"},
	},
	{
		ID:          "repo:status",
		Category:    models.CategoryStandard,
		Description: "Access commit statuses",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/commits/HEAD/statuses"},
		Classifier:  "list",
	},
	{
		ID:          "repo_deployment",
		Category:    models.CategoryStandard,
		Description: "Access deployment statuses",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/deployments"},
		Classifier:  "list",
	},
	{
		ID:          "public_repo",
		Category:    models.CategoryStandard,
		Description: "Access public repositories",
		Probe:       Probe{Method: "GET", Path: "/user/repos?visibility=public"},
		Classifier:  "list",
	},
	{
		ID:          "repo:invite",
		Category:    models.CategoryStandard,
		Description: "Access repository invitations",
		Probe:       Probe{Method: "GET", Path: "/user/repository_invitations"},
		Classifier:  "list",
	},
	{
		ID:          "issues",
		Category:    models.CategoryStandard,
		Description: "Access issues assigned to the user",
		Probe:       Probe{Method: "GET", Path: "/issues"},
		Classifier:  "list",
	},
	{
		ID:          "team_management",
		Category:    models.CategoryStandard,
		Description: "Read organization teams",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/teams"},
		Classifier:  "list",
	},
	{
		ID:          "branch_protection",
		Category:    models.CategoryStandard,
		Description: "Read branch protection rules",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/branches?protected=true"},
		Classifier:  "list",
	},
	{
		ID:          "code_scanning",
		Category:    models.CategoryStandard,
		Description: "Read code scanning alerts",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/code-scanning/alerts"},
		Classifier:  "list",
	},
	{
		ID:          "dependabot_alerts",
		Category:    models.CategoryStandard,
		Description: "Read Dependabot alerts",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/dependabot/alerts"},
		Classifier:  "list",
	},
	{
		ID:          "security_advisories",
		Category:    models.CategoryStandard,
		Description: "Read repository security advisories",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/security-advisories"},
		Classifier:  "list",
	},
	{
		ID:          "secret_scanning_alerts",
		Category:    models.CategoryStandard,
		Description: "Read secret scanning alerts",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/secret-scanning/alerts"},
		Classifier:  "list",
	},
	{
		ID:          "security_events",
		Category:    models.CategoryStandard,
		Description: "Read and write security events",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/code-scanning/alerts"},
		Classifier:  "list",
	},
	{
		ID:          "projects",
		Category:    models.CategoryStandard,
		Description: "Read organization projects",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/projects"},
		Classifier:  "list",
	},
	{
		ID:          "runners_repo",
		Category:    models.CategoryStandard,
		Description: "Read repository self-hosted runners",
		Probe:       Probe{Method: "GET", Path: "/repos/{repo}/actions/runners"},
		Classifier:  "list",
		ItemsKey:    "runners",
	},
	{
		ID:          "runners_org",
		Category:    models.CategoryStandard,
		Description: "Read organization self-hosted runners",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/actions/runners"},
		Classifier:  "list",
		ItemsKey:    "runners",
	},
	{
		ID:          "repo_access_count",
		Category:    models.CategoryStandard,
		Description: "Count of repositories the credential can reach",
		Probe:       Probe{Method: "GET", Path: "/user/repos?per_page=100"},
		Classifier:  "count",
	},
	{
		ID:          "secrets_comprehensive",
		Category:    models.CategoryStandard,
		Description: "Combined visibility into organization Actions secrets",
		Probe:       Probe{Method: "GET", Path: "/orgs/{org}/actions/secrets"},
		Classifier:  "list",
		ItemsKey:    "secrets",
	},
	{
		ID:          "codespace",
		Category:    models.CategoryStandard,
		Description: "Create and manage codespaces",
		Probe:       Probe{Method: "GET", Path: "/user/codespaces"},
		Classifier:  "list",
		ItemsKey:    "codespaces",
	},
	{
		ID:          "codespaces_metadata",
		Category:    models.CategoryStandard,
		Description: "Read codespace metadata",
		Probe:       Probe{Method: "GET", Path: "/user/codespaces?per_page=1"},
	},
	{
		ID:          "codespaces_user",
		Category:    models.CategoryStandard,
		Description: "Read user codespace secrets",
		Probe:       Probe{Method: "GET", Path: "/user/codespaces/secrets"},
		Classifier:  "list",
		ItemsKey:    "secrets",
	},
	{
		ID:          "codespaces_lifecycle_admin",
		Category:    models.CategoryStandard,
		Description: "Administer codespace lifecycle",
		Probe:       Probe{Method: "GET", Path: "/user/codespaces"},
		Classifier:  "nonempty",
		ItemsKey:    "codespaces",
	},
}
