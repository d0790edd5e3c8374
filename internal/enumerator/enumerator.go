package enumerator

import (
	"context"
	"fmt"
	"sync"
	"time"

	apierrors "github.com/credprobe/credprobe/internal/errors"
	"github.com/credprobe/credprobe/internal/metrics"
	"github.com/credprobe/credprobe/internal/models"
	"github.com/credprobe/credprobe/pkg/github"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// nodeGates maps each node kind to the permissions that allow
// attempting it. Any one granted permission opens the gate.
var nodeGates = map[models.NodeKind][]string{
	models.KindOrgProfile:        {"read:org", "admin:org"},
	models.KindMembers:           {"read:org", "admin:org"},
	models.KindTeams:             {"read:org", "write:org", "admin:org"},
	models.KindRepositories:      {"repo"},
	models.KindOrgWebhooks:       {"admin:org_hook", "read:org_hook", "admin:org"},
	models.KindOrgSecrets:        {"org_secrets", "admin:org"},
	models.KindOrgRunners:        {"runners_org", "admin:org"},
	models.KindRepoWebhooks:      {"admin:repo_hook", "write:repo_hook", "read:repo_hook"},
	models.KindRepoSecrets:       {"repo_secrets"},
	models.KindRepoWorkflows:     {"workflow", "repo"},
	models.KindRepoRunners:       {"runners_repo"},
	models.KindEnterpriseRunners: {"manage_runners:enterprise", "read:runners:enterprise"},
}

// Enumerator walks every resource collection the discovered grants
// allow and merges the results into one company snapshot.
type Enumerator struct {
	client      *github.Client
	org         string
	enterprise  string
	concurrency int

	nowFn func() time.Time
}

// New creates an Enumerator sharing the run's client and rate-limit
// state.
func New(client *github.Client, org, enterprise string, concurrency int) *Enumerator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Enumerator{
		client:      client,
		org:         org,
		enterprise:  enterprise,
		concurrency: concurrency,
		nowFn:       time.Now,
	}
}

// EnumerateCompany populates a snapshot by walking organization-level
// collections, fanning out per repository once the repository list is
// known, and finishing with enterprise runners when a slug was
// supplied. Every node carries a terminal status by the time the
// snapshot is returned; no error from one node stops the others.
func (e *Enumerator) EnumerateCompany(ctx context.Context, report *models.PermissionReport) (*models.CompanySnapshot, error) {
	snap := &models.CompanySnapshot{
		Company:       e.org,
		Enterprise:    e.enterprise,
		RepoWebhooks:  map[string]*models.Node{},
		RepoSecrets:   map[string]*models.Node{},
		RepoWorkflows: map[string]*models.Node{},
		RepoRunners:   map[string]*models.Node{},
		StartedAt:     e.nowFn(),
	}

	e.fetchProfile(ctx, report, snap)

	// Org-level collections have no data dependencies on each other;
	// pages within each one stay strictly sequential.
	snap.Members = e.newNode(models.KindMembers, "", report)
	snap.Teams = e.newNode(models.KindTeams, "", report)
	snap.Repos = e.newNode(models.KindRepositories, "", report)
	snap.OrgWebhooks = e.newNode(models.KindOrgWebhooks, "", report)
	snap.OrgSecrets = e.newNode(models.KindOrgSecrets, "", report)
	snap.OrgRunners = e.newNode(models.KindOrgRunners, "", report)

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	base := "/orgs/" + e.org
	g.Go(func() error {
		e.fill(ctx, snap.Members, base+"/members", "", decodeMembers)
		return nil
	})
	g.Go(func() error {
		e.fill(ctx, snap.Teams, base+"/teams", "", decodeTeams)
		return nil
	})
	g.Go(func() error {
		e.fill(ctx, snap.Repos, base+"/repos", "", decodeRepos)
		return nil
	})
	g.Go(func() error {
		e.fill(ctx, snap.OrgWebhooks, base+"/hooks", "", decodeWebhooks)
		return nil
	})
	g.Go(func() error {
		e.fill(ctx, snap.OrgSecrets, base+"/actions/secrets", "secrets", decodeSecrets)
		return nil
	})
	g.Go(func() error {
		e.fill(ctx, snap.OrgRunners, base+"/actions/runners", "runners", decodeRunners)
		return nil
	})
	_ = g.Wait()

	e.fanOutRepos(ctx, report, snap)

	if e.enterprise != "" {
		snap.EnterpriseRunners = e.newNode(models.KindEnterpriseRunners, "", report)
		e.fill(ctx, snap.EnterpriseRunners,
			"/enterprises/"+e.enterprise+"/actions/runners", "runners", decodeRunners)
	}

	snap.Overview = deriveOverview(snap)
	return snap, nil
}

// fanOutRepos creates and fills the per-repository nodes. It runs only
// after the repository list is terminal: fan-out for repos we never
// discovered is impossible, so a failed or skipped repository list
// leaves a single skip marker per repo-level kind instead.
func (e *Enumerator) fanOutRepos(ctx context.Context, report *models.PermissionReport, snap *models.CompanySnapshot) {
	repoKinds := []models.NodeKind{
		models.KindRepoWebhooks, models.KindRepoSecrets,
		models.KindRepoWorkflows, models.KindRepoRunners,
	}

	if snap.Repos.Status != models.StatusSucceeded && snap.Repos.Status != models.StatusPartiallyFailed {
		for _, kind := range repoKinds {
			marker := &models.Node{
				Kind:       kind,
				Org:        e.org,
				Repo:       "*",
				Status:     models.StatusSkipped,
				SkipReason: models.SkipPrerequisiteFailed,
			}
			metrics.NodesTotal.WithLabelValues(string(kind), string(marker.Status)).Inc()
			e.store(snap, marker)
		}
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.concurrency)

	for _, repo := range snap.Repos.Repos {
		fullName := repo.FullName
		for _, kind := range repoKinds {
			node := e.newNode(kind, fullName, report)
			e.store(snap, node)

			if node.Status == models.StatusSkipped {
				metrics.NodesTotal.WithLabelValues(string(kind), string(node.Status)).Inc()
				continue
			}

			wg.Add(1)
			go func(node *models.Node) {
				defer wg.Done()

				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					node.Status = models.StatusTimedOut
					metrics.NodesTotal.WithLabelValues(string(node.Kind), string(node.Status)).Inc()
					return
				}
				defer func() { <-sem }()

				path, itemsKey, decode := repoEndpoint(node.Kind, node.Repo)
				e.fill(ctx, node, path, itemsKey, decode)
			}(node)
		}
	}
	wg.Wait()
}

func repoEndpoint(kind models.NodeKind, fullName string) (path, itemsKey string, decode decodeFunc) {
	base := "/repos/" + fullName
	switch kind {
	case models.KindRepoWebhooks:
		return base + "/hooks", "", decodeWebhooks
	case models.KindRepoSecrets:
		return base + "/actions/secrets", "secrets", decodeSecrets
	case models.KindRepoWorkflows:
		return base + "/actions/workflows", "workflows", decodeWorkflows
	default:
		return base + "/actions/runners", "runners", decodeRunners
	}
}

// newNode creates a node in its initial state: skipped when the gating
// permission is absent, otherwise ready to fetch.
func (e *Enumerator) newNode(kind models.NodeKind, repo string, report *models.PermissionReport) *models.Node {
	node := &models.Node{Kind: kind, Org: e.org, Repo: repo}
	if kind == models.KindEnterpriseRunners {
		node.Org = ""
		node.Enterprise = e.enterprise
	}
	if !gateOpen(report, kind) {
		node.Status = models.StatusSkipped
		node.SkipReason = models.SkipPermissionNotGranted
	}
	return node
}

func (e *Enumerator) store(snap *models.CompanySnapshot, node *models.Node) {
	switch node.Kind {
	case models.KindRepoWebhooks:
		snap.RepoWebhooks[node.Repo] = node
	case models.KindRepoSecrets:
		snap.RepoSecrets[node.Repo] = node
	case models.KindRepoWorkflows:
		snap.RepoWorkflows[node.Repo] = node
	case models.KindRepoRunners:
		snap.RepoRunners[node.Repo] = node
	}
}

// gateOpen reports whether any gating permission for the kind was
// granted. Kinds without a gate default to attempted.
func gateOpen(report *models.PermissionReport, kind models.NodeKind) bool {
	gates, ok := nodeGates[kind]
	if !ok {
		return true
	}
	for _, perm := range gates {
		if report.Granted(perm) {
			return true
		}
	}
	return false
}

type decodeFunc func(node *models.Node, items []gjson.Result)

// fill fetches every page of one collection into the node and assigns
// its terminal status. A skipped node is left untouched.
func (e *Enumerator) fill(ctx context.Context, node *models.Node, path, itemsKey string, decode decodeFunc) {
	if node.Status == models.StatusSkipped {
		metrics.NodesTotal.WithLabelValues(string(node.Kind), string(node.Status)).Inc()
		return
	}
	if ctx.Err() != nil {
		node.Status = models.StatusTimedOut
		metrics.NodesTotal.WithLabelValues(string(node.Kind), string(node.Status)).Inc()
		return
	}

	items, pageErr := e.client.FetchPages(ctx, path, itemsKey)
	decode(node, items)

	switch {
	case pageErr == nil:
		node.Status = models.StatusSucceeded
	case ctx.Err() != nil:
		node.Status = models.StatusTimedOut
		node.Errors = append(node.Errors, pageErr.Error())
	case pageErr.Page <= 1:
		node.Status = models.StatusFailed
		node.Errors = append(node.Errors, pageErr.Error())
	default:
		node.Status = models.StatusPartiallyFailed
		node.Errors = append(node.Errors, pageErr.Error())
	}

	if pageErr != nil {
		log.Debug().
			Str("kind", string(node.Kind)).
			Str("path", path).
			Int("page", pageErr.Page).
			Err(pageErr.Err).
			Msg("Collection fetch incomplete")
	}
	metrics.NodesTotal.WithLabelValues(string(node.Kind), string(node.Status)).Inc()
}

// fetchProfile loads the organization's own record, gated like any
// other node but stored flat on the snapshot.
func (e *Enumerator) fetchProfile(ctx context.Context, report *models.PermissionReport, snap *models.CompanySnapshot) {
	if !gateOpen(report, models.KindOrgProfile) {
		snap.Errors = append(snap.Errors, fmt.Sprintf("organization profile skipped: %s", models.SkipPermissionNotGranted))
		return
	}

	outcome, err := e.client.Get(ctx, "/orgs/"+e.org)
	if err != nil {
		snap.Errors = append(snap.Errors, fmt.Sprintf("failed to get org profile: %v", err))
		return
	}
	if !outcome.OK() {
		err := apierrors.NewTransportError("get_profile", "/orgs/"+e.org,
			fmt.Errorf("unexpected status %d", outcome.StatusCode)).WithStatusCode(outcome.StatusCode)
		snap.Errors = append(snap.Errors, err.Error())
		return
	}

	body := outcome.JSON()
	snap.Profile = &models.OrgProfile{
		Login:       body.Get("login").String(),
		Name:        body.Get("name").String(),
		Description: body.Get("description").String(),
		Email:       body.Get("email").String(),
		Location:    body.Get("location").String(),
		Type:        body.Get("type").String(),
		PublicRepos: int(body.Get("public_repos").Int()),
		Followers:   int(body.Get("followers").Int()),
		CreatedAt:   body.Get("created_at").String(),
		Plan:        body.Get("plan.name").String(),
	}
}

// CollectErrors rolls every node error in the snapshot into one
// multierror, for callers that want a single failure view of the run.
func CollectErrors(snap *models.CompanySnapshot) error {
	var result *multierror.Error
	for _, msg := range snap.Errors {
		result = multierror.Append(result, fmt.Errorf("%s", msg))
	}
	for _, node := range snap.Nodes() {
		for _, msg := range node.Errors {
			result = multierror.Append(result, fmt.Errorf("%s/%s: %s", node.Kind, node.Repo, msg))
		}
	}
	return result.ErrorOrNil()
}
