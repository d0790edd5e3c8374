package validator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/credprobe/credprobe/internal/catalog"
	"github.com/credprobe/credprobe/internal/metrics"
	"github.com/credprobe/credprobe/internal/models"
	"github.com/credprobe/credprobe/pkg/github"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// followTarget is the account the reversible follow probe targets. It is
// GitHub's own mascot account, safe to follow and unfollow.
const followTarget = "octocat"

// Validator executes every catalog probe and classifies the outcomes
// into a permission report.
type Validator struct {
	client      *github.Client
	org         string
	enterprise  string
	concurrency int

	nowFn func() time.Time
}

// New creates a Validator sharing the given client (and therefore its
// rate-limit state) with the rest of the run.
func New(client *github.Client, org, enterprise string, concurrency int) *Validator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Validator{
		client:      client,
		org:         org,
		enterprise:  enterprise,
		concurrency: concurrency,
		nowFn:       time.Now,
	}
}

// ValidatePermissions probes every catalog entry and returns one verdict
// per entry, in catalog declaration order regardless of completion
// order. Individual probe failures never abort the run.
func (v *Validator) ValidatePermissions(ctx context.Context) (*models.PermissionReport, error) {
	started := v.nowFn()

	user, scopes, err := v.client.TestAuthentication(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Could not resolve authenticated user")
	}

	probeRepo := v.resolveProbeRepo(ctx)

	specs := catalog.All()
	verdicts := make(map[string]models.Verdict, len(specs))
	var mu sync.Mutex

	var wg sync.WaitGroup
	sem := make(chan struct{}, v.concurrency)

	for i := range specs {
		spec := &specs[i]
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				mu.Lock()
				verdicts[spec.ID] = timedOutVerdict(spec)
				mu.Unlock()
				return
			}
			defer func() { <-sem }()

			verdict := v.probe(ctx, spec, probeRepo)

			mu.Lock()
			verdicts[spec.ID] = verdict
			mu.Unlock()
		}()
	}
	wg.Wait()

	report := &models.PermissionReport{
		Verdicts:  make([]models.Verdict, 0, len(specs)),
		User:      user,
		Scopes:    scopes,
		StartedAt: started,
	}
	for i := range specs {
		verdict := verdicts[specs[i].ID]
		report.Verdicts = append(report.Verdicts, verdict)
		report.Summary.Tested++
		if verdict.Granted {
			report.Summary.Granted++
		} else {
			report.Summary.Denied++
		}
		if strings.HasPrefix(verdict.Detail, "probe failed") || verdict.Detail == "ambiguous response" {
			report.Summary.Errors++
		}
	}
	return report, nil
}

// probe runs one catalog entry end to end: placeholder resolution,
// request, classification, and the compensating reversal for mutating
// probes.
func (v *Validator) probe(ctx context.Context, spec *catalog.Spec, probeRepo string) models.Verdict {
	verdict := models.Verdict{Permission: spec.ID, Category: spec.Category}

	if err := ctx.Err(); err != nil {
		return timedOutVerdict(spec)
	}
	if spec.NeedsEnterprise() && v.enterprise == "" {
		verdict.Detail = "enterprise slug not configured"
		metrics.ProbesTotal.WithLabelValues("denied").Inc()
		return verdict
	}
	if spec.NeedsRepo() && probeRepo == "" {
		verdict.Detail = "no accessible repository to probe"
		metrics.ProbesTotal.WithLabelValues("denied").Inc()
		return verdict
	}

	probeID := uuid.NewString()
	path := v.expand(spec.Probe.Path, probeRepo, probeID)

	var body any
	if spec.Probe.Body != "" {
		body = rawJSON(v.expand(spec.Probe.Body, probeRepo, probeID))
	}

	outcome, err := v.client.Execute(ctx, spec.Probe.Method, path, body)
	if err != nil {
		if ctx.Err() != nil {
			return timedOutVerdict(spec)
		}
		verdict.Detail = fmt.Sprintf("probe failed: %v", err)
		metrics.ProbesTotal.WithLabelValues("failed").Inc()
		log.Debug().Err(err).Str("permission", spec.ID).Msg("Probe transport failure")
		return verdict
	}

	c := catalog.Classify(spec, outcome)
	verdict.Granted = c.Granted
	verdict.Detail = c.Detail
	switch {
	case c.Ambiguous:
		verdict.Detail = "ambiguous response"
		metrics.ProbesTotal.WithLabelValues("ambiguous").Inc()
	case c.Granted:
		metrics.ProbesTotal.WithLabelValues("granted").Inc()
	default:
		metrics.ProbesTotal.WithLabelValues("denied").Inc()
	}

	if spec.Mutating() && verdict.Granted && spec.Reversal != nil {
		if detail := v.reverse(ctx, spec, outcome, probeRepo, probeID); detail != "" {
			if verdict.Detail != "" {
				verdict.Detail += "; "
			}
			verdict.Detail += detail
		}
	}
	return verdict
}

// reverse issues the compensating call after a successful mutating
// probe. Its failure is surfaced in the verdict detail but never
// changes the verdict itself.
func (v *Validator) reverse(ctx context.Context, spec *catalog.Spec, created *github.Outcome, probeRepo, probeID string) string {
	path := v.expand(spec.Reversal.Path, probeRepo, probeID)
	if spec.Reversal.IDFrom != "" {
		id := created.JSON().Get(spec.Reversal.IDFrom).String()
		if id == "" {
			log.Warn().Str("permission", spec.ID).Msg("Created object id missing, cannot reverse probe")
			return "cleanup skipped: created object id missing"
		}
		path = strings.ReplaceAll(path, "{id}", id)
	}

	outcome, err := v.client.Execute(ctx, spec.Reversal.Method, path, nil)
	if err != nil {
		log.Warn().Err(err).Str("permission", spec.ID).Str("path", path).Msg("Compensating delete failed")
		return fmt.Sprintf("cleanup delete failed: %v", err)
	}
	if outcome.StatusCode >= 300 {
		log.Warn().Int("status", outcome.StatusCode).Str("permission", spec.ID).Str("path", path).Msg("Compensating delete rejected")
		return fmt.Sprintf("cleanup delete failed: status %d", outcome.StatusCode)
	}
	return ""
}

// resolveProbeRepo finds one repository the credential can see, used to
// fill {repo} probe templates. Returns "" when none is reachable.
func (v *Validator) resolveProbeRepo(ctx context.Context) string {
	outcome, err := v.client.Get(ctx, "/user/repos?per_page=1")
	if err != nil || !outcome.OK() {
		return ""
	}
	repos := outcome.JSON()
	if !repos.IsArray() || len(repos.Array()) == 0 {
		return ""
	}
	return repos.Array()[0].Get("full_name").String()
}

func (v *Validator) expand(template, probeRepo, probeID string) string {
	r := strings.NewReplacer(
		"{org}", v.org,
		"{enterprise}", v.enterprise,
		"{repo}", probeRepo,
		"{user}", followTarget,
		"{uuid}", probeID,
	)
	return r.Replace(template)
}

func timedOutVerdict(spec *catalog.Spec) models.Verdict {
	return models.Verdict{
		Permission: spec.ID,
		Category:   spec.Category,
		Detail:     "timed out",
	}
}

// rawJSON wraps an already-encoded JSON payload so the transport sends
// it byte for byte.
type rawJSON string

func (r rawJSON) MarshalJSON() ([]byte, error) {
	return []byte(r), nil
}
