package github

import (
	"context"
	"net/http"

	"github.com/credprobe/credprobe/internal/models"
)

// TestAuthentication checks the credential against the user endpoint and
// returns the identity behind it plus the token scopes GitHub reports on
// the response headers. A nil user with a nil error means the credential
// was rejected outright.
func (c *Client) TestAuthentication(ctx context.Context) (*models.AuthenticatedUser, []string, error) {
	outcome, err := c.Get(ctx, "/user")
	if err != nil {
		return nil, nil, err
	}
	if outcome.StatusCode == http.StatusUnauthorized {
		return nil, nil, nil
	}
	if !outcome.OK() {
		return nil, outcome.OAuthScopes(), nil
	}

	body := outcome.JSON()
	user := &models.AuthenticatedUser{
		Login:     body.Get("login").String(),
		ID:        body.Get("id").Int(),
		Type:      body.Get("type").String(),
		Name:      body.Get("name").String(),
		Email:     body.Get("email").String(),
		SiteAdmin: body.Get("site_admin").Bool(),
	}
	return user, outcome.OAuthScopes(), nil
}

// RateLimitInfo holds the core rate bucket from the rate_limit endpoint.
type RateLimitInfo struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
	Used      int   `json:"used"`
}

// FetchRateLimit queries the live rate-limit status. This endpoint does
// not itself consume quota.
func (c *Client) FetchRateLimit(ctx context.Context) (*RateLimitInfo, error) {
	outcome, err := c.Get(ctx, "/rate_limit")
	if err != nil {
		return nil, err
	}
	if !outcome.OK() {
		return nil, nil
	}
	core := outcome.JSON().Get("resources.core")
	return &RateLimitInfo{
		Limit:     int(core.Get("limit").Int()),
		Remaining: int(core.Get("remaining").Int()),
		Reset:     core.Get("reset").Int(),
		Used:      int(core.Get("used").Int()),
	}, nil
}
