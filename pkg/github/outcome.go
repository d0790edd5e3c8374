package github

import (
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Outcome is the uniform result of one executed request. Ordinary
// 4xx/5xx statuses arrive here as data; only network-level failures are
// returned as errors by the client.
type Outcome struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	parsed    gjson.Result
	parsedSet bool
}

// OK reports whether the response status is 2xx.
func (o *Outcome) OK() bool {
	return o.StatusCode >= 200 && o.StatusCode < 300
}

// Forbidden reports whether the status indicates the credential cannot
// reach the resource. GitHub frequently answers 404 for resources the
// token is not allowed to see, so both codes count.
func (o *Outcome) Forbidden() bool {
	return o.StatusCode == http.StatusForbidden || o.StatusCode == http.StatusNotFound
}

// JSON lazily parses the response body. An empty or invalid body yields
// a result whose Exists() is false.
func (o *Outcome) JSON() gjson.Result {
	if !o.parsedSet {
		o.parsed = gjson.ParseBytes(o.Body)
		o.parsedSet = true
	}
	return o.parsed
}

// OAuthScopes returns the token scopes advertised on the response, if
// any. Classic tokens report them on every authenticated call.
func (o *Outcome) OAuthScopes() []string {
	raw := o.Header.Get("X-OAuth-Scopes")
	if raw == "" {
		return nil
	}
	var scopes []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}
