package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/credprobe/credprobe/internal/config"
	"github.com/credprobe/credprobe/internal/enumerator"
	"github.com/credprobe/credprobe/internal/models"
	"github.com/credprobe/credprobe/internal/validator"
	"github.com/credprobe/credprobe/pkg/github"
	"github.com/rs/zerolog/log"
)

// Auditor runs the two engines over one shared transport, so the
// rate-limit state observed by the probes carries into enumeration.
type Auditor struct {
	cfg    *config.Config
	client *github.Client
}

// New validates the configuration and builds the shared client.
// Configuration errors surface here, before any network call.
func New(cfg *config.Config) (*Auditor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := github.NewClient(github.ClientConfig{
		Token:   cfg.Token,
		BaseURL: cfg.BaseURL,
		Proxy:   cfg.Proxy,
	})
	if err != nil {
		return nil, fmt.Errorf("building API client: %w", err)
	}
	return &Auditor{cfg: cfg, client: client}, nil
}

// Client exposes the shared transport, mainly for callers that want
// live rate-limit numbers after a run.
func (a *Auditor) Client() *github.Client {
	return a.client
}

// ValidatePermissions runs only the permission inference engine.
func (a *Auditor) ValidatePermissions(ctx context.Context) (*models.PermissionReport, error) {
	v := validator.New(a.client, a.cfg.Company, a.cfg.Enterprise, a.cfg.Concurrency)
	return v.ValidatePermissions(ctx)
}

// EnumerateCompany runs only the enumeration pipeline, gated by a
// previously produced report.
func (a *Auditor) EnumerateCompany(ctx context.Context, report *models.PermissionReport) (*models.CompanySnapshot, error) {
	e := enumerator.New(a.client, a.cfg.Company, a.cfg.Enterprise, a.cfg.Concurrency)
	return e.EnumerateCompany(ctx, report)
}

// ValidateAndEnumerate runs both engines under the configured overall
// deadline. In-flight requests finish or fail naturally on expiry;
// everything not yet attempted comes back in a terminal timed-out or
// skipped state rather than pending.
func (a *Auditor) ValidateAndEnumerate(ctx context.Context) (*models.PermissionReport, *models.CompanySnapshot, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	started := time.Now()
	log.Info().
		Str("company", a.cfg.Company).
		Str("enterprise", a.cfg.Enterprise).
		Int("concurrency", a.cfg.Concurrency).
		Msg("Starting credential audit")

	report, err := a.ValidatePermissions(ctx)
	if err != nil {
		return nil, nil, err
	}
	log.Info().
		Int("granted", report.Summary.Granted).
		Int("denied", report.Summary.Denied).
		Int("errors", report.Summary.Errors).
		Msg("Permission validation finished")

	snapshot, err := a.EnumerateCompany(ctx, report)
	if err != nil {
		return report, nil, err
	}

	remaining, reset := a.client.RateLimit()
	log.Info().
		Dur("elapsed", time.Since(started)).
		Int("rateRemaining", remaining).
		Time("rateReset", reset).
		Msg("Enumeration finished")

	return report, snapshot, nil
}
