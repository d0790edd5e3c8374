package models

import "time"

// PermissionCategory splits the catalog into the permissions worth
// highlighting and the rest.
type PermissionCategory string

const (
	CategoryCritical PermissionCategory = "critical"
	CategoryStandard PermissionCategory = "standard"
)

// Verdict is the classification result for a single permission probe.
type Verdict struct {
	Permission string             `json:"permission"`
	Category   PermissionCategory `json:"category"`
	Granted    bool               `json:"granted"`
	Detail     string             `json:"detail,omitempty"`
}

// ReportSummary aggregates verdict counts for one validation run.
type ReportSummary struct {
	Tested  int `json:"tested"`
	Granted int `json:"granted"`
	Denied  int `json:"denied"`
	Errors  int `json:"errors"`
}

// AuthenticatedUser describes the identity behind the token, as reported
// by the user endpoint.
type AuthenticatedUser struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	SiteAdmin bool   `json:"site_admin"`
}

// PermissionReport holds one verdict per catalog entry, in catalog
// declaration order (critical block first, then standard).
type PermissionReport struct {
	Verdicts  []Verdict          `json:"verdicts"`
	Summary   ReportSummary      `json:"summary"`
	User      *AuthenticatedUser `json:"user,omitempty"`
	Scopes    []string           `json:"scopes,omitempty"`
	StartedAt time.Time          `json:"startedAt"`
}

// Granted reports whether the named permission was recorded as granted.
// Unknown permission ids count as not granted.
func (r *PermissionReport) Granted(permission string) bool {
	for i := range r.Verdicts {
		if r.Verdicts[i].Permission == permission {
			return r.Verdicts[i].Granted
		}
	}
	return false
}

// Verdict returns the verdict for the named permission, or nil.
func (r *PermissionReport) Verdict(permission string) *Verdict {
	for i := range r.Verdicts {
		if r.Verdicts[i].Permission == permission {
			return &r.Verdicts[i]
		}
	}
	return nil
}
