package catalog

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credprobe/credprobe/internal/models"
	"github.com/credprobe/credprobe/pkg/github"
)

func TestAll_EntriesAreUniqueAndComplete(t *testing.T) {
	all := All()
	require.Len(t, all, 60)

	seen := make(map[string]bool, len(all))
	for _, spec := range all {
		assert.False(t, seen[spec.ID], "duplicate catalog id %q", spec.ID)
		seen[spec.ID] = true

		assert.NotEmpty(t, spec.Category, "%s: missing category", spec.ID)
		assert.NotEmpty(t, spec.Description, "%s: missing description", spec.ID)
		assert.NotEmpty(t, spec.Probe.Method, "%s: missing probe method", spec.ID)
		assert.NotEmpty(t, spec.Probe.Path, "%s: missing probe path", spec.ID)
		if _, ok := classifiers[spec.Classifier]; spec.Classifier != "" {
			assert.True(t, ok, "%s: unknown classifier %q", spec.ID, spec.Classifier)
		}
	}
}

func TestAll_CriticalEntriesComeFirst(t *testing.T) {
	all := All()
	inStandard := false
	for _, spec := range all {
		if spec.Category == models.CategoryStandard {
			inStandard = true
			continue
		}
		assert.False(t, inStandard, "%s: critical entry appears after a standard one", spec.ID)
	}
}

func TestAll_ReturnsFreshSlice(t *testing.T) {
	first := All()
	first[0] = Spec{ID: "clobbered"}
	assert.NotEqual(t, "clobbered", All()[0].ID)
}

func TestLookup(t *testing.T) {
	spec := Lookup("repo")
	require.NotNil(t, spec)
	assert.Equal(t, "repo", spec.ID)

	assert.Nil(t, Lookup("no-such-permission"))
}

func TestSpec_Predicates(t *testing.T) {
	tests := []struct {
		name         string
		spec         Spec
		needsRepo    bool
		needsEnterpr bool
		mutating     bool
	}{
		{
			name: "org listing",
			spec: Spec{Probe: Probe{Method: http.MethodGet, Path: "/orgs/{org}/hooks"}},
		},
		{
			name:      "repo hook listing",
			spec:      Spec{Probe: Probe{Method: http.MethodGet, Path: "/repos/{repo}/hooks"}},
			needsRepo: true,
		},
		{
			name:         "enterprise runners",
			spec:         Spec{Probe: Probe{Method: http.MethodGet, Path: "/enterprises/{enterprise}/actions/runners"}},
			needsEnterpr: true,
		},
		{
			name:     "gist create",
			spec:     Spec{Probe: Probe{Method: http.MethodPost, Path: "/gists"}},
			mutating: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.needsRepo, tc.spec.NeedsRepo())
			assert.Equal(t, tc.needsEnterpr, tc.spec.NeedsEnterprise())
			assert.Equal(t, tc.mutating, tc.spec.Mutating())
		})
	}
}

func TestMutatingEntriesAreReversible(t *testing.T) {
	for _, spec := range All() {
		if !spec.Mutating() {
			continue
		}
		require.NotNil(t, spec.Reversal, "%s: mutating probe without a compensating request", spec.ID)
		assert.NotEmpty(t, spec.Reversal.Method, "%s: reversal missing method", spec.ID)
		assert.NotEmpty(t, spec.Reversal.Path, "%s: reversal missing path", spec.ID)
	}
}

func outcomeOf(status int, body string) *github.Outcome {
	return &github.Outcome{StatusCode: status, Header: http.Header{}, Body: []byte(body)}
}

func TestClassifyObject(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		granted   bool
		ambiguous bool
	}{
		{"ok grants", http.StatusOK, true, false},
		{"created grants", http.StatusCreated, true, false},
		{"forbidden denies", http.StatusForbidden, false, false},
		{"not found denies", http.StatusNotFound, false, false},
		{"unauthorized denies", http.StatusUnauthorized, false, false},
		{"server error is ambiguous", http.StatusInternalServerError, false, true},
		{"redirect is ambiguous", http.StatusMovedPermanently, false, true},
	}

	spec := &Spec{ID: "repo"}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify(spec, outcomeOf(tc.status, `{}`))
			assert.Equal(t, tc.granted, c.Granted)
			assert.Equal(t, tc.ambiguous, c.Ambiguous)
		})
	}
}

func TestClassifyList(t *testing.T) {
	spec := &Spec{ID: "read:org", Classifier: "list"}

	t.Run("empty array grants with limited detail", func(t *testing.T) {
		c := Classify(spec, outcomeOf(http.StatusOK, `[]`))
		assert.True(t, c.Granted)
		assert.Equal(t, "limited", c.Detail)
	})

	t.Run("populated array reports count", func(t *testing.T) {
		c := Classify(spec, outcomeOf(http.StatusOK, `[{"id":1},{"id":2}]`))
		assert.True(t, c.Granted)
		assert.Equal(t, "2 items visible", c.Detail)
	})

	t.Run("envelope via items key", func(t *testing.T) {
		env := &Spec{ID: "org_secrets", Classifier: "list", ItemsKey: "secrets"}
		c := Classify(env, outcomeOf(http.StatusOK, `{"total_count":1,"secrets":[{"name":"DEPLOY"}]}`))
		assert.True(t, c.Granted)
		assert.Equal(t, "1 items visible", c.Detail)
	})

	t.Run("object body is ambiguous", func(t *testing.T) {
		c := Classify(spec, outcomeOf(http.StatusOK, `{"message":"ok"}`))
		assert.True(t, c.Ambiguous)
	})

	t.Run("forbidden denies", func(t *testing.T) {
		c := Classify(spec, outcomeOf(http.StatusForbidden, `{}`))
		assert.False(t, c.Granted)
		assert.False(t, c.Ambiguous)
	})
}

func TestClassifyNonEmpty(t *testing.T) {
	spec := &Spec{ID: "read:public_key", Classifier: "nonempty"}

	c := Classify(spec, outcomeOf(http.StatusOK, `[]`))
	assert.False(t, c.Granted)
	assert.Equal(t, "no items visible", c.Detail)

	c = Classify(spec, outcomeOf(http.StatusOK, `[{"id":1}]`))
	assert.True(t, c.Granted)
}

func TestClassifyPrivateRepos(t *testing.T) {
	spec := &Spec{ID: "repo_write", Classifier: "private_repos"}

	c := Classify(spec, outcomeOf(http.StatusOK, `[{"private":true},{"private":false},{"private":true}]`))
	assert.True(t, c.Granted)
	assert.Equal(t, "2 private repositories visible", c.Detail)

	c = Classify(spec, outcomeOf(http.StatusOK, `[{"private":false}]`))
	assert.False(t, c.Granted)
	assert.Equal(t, "no private repository access", c.Detail)
}

func TestClassifyAdminFlag(t *testing.T) {
	spec := &Spec{ID: "repo_delete", Classifier: "admin_flag"}

	c := Classify(spec, outcomeOf(http.StatusOK,
		`[{"full_name":"acme/api","permissions":{"admin":false}},{"full_name":"acme/web","permissions":{"admin":true}}]`))
	assert.True(t, c.Granted)
	assert.Equal(t, "admin access to acme/web", c.Detail)

	c = Classify(spec, outcomeOf(http.StatusOK, `[{"full_name":"acme/api","permissions":{"admin":false}}]`))
	assert.False(t, c.Granted)
}

func TestClassifyCount(t *testing.T) {
	spec := &Spec{ID: "repo_access_count", Classifier: "count"}

	c := Classify(spec, outcomeOf(http.StatusOK, `[{"id":1},{"id":2},{"id":3}]`))
	assert.True(t, c.Granted)
	assert.Equal(t, "3 repositories accessible", c.Detail)

	c = Classify(spec, outcomeOf(http.StatusOK, `[]`))
	assert.True(t, c.Granted)
	assert.Equal(t, "0 repositories accessible", c.Detail)
}

func TestClassifyCreate(t *testing.T) {
	spec := &Spec{ID: "gist", Classifier: "create"}

	tests := []struct {
		name      string
		status    int
		granted   bool
		ambiguous bool
	}{
		{"created grants", http.StatusCreated, true, false},
		{"no content grants", http.StatusNoContent, true, false},
		{"unprocessable denies", http.StatusUnprocessableEntity, false, false},
		{"forbidden denies", http.StatusForbidden, false, false},
		{"server error is ambiguous", http.StatusBadGateway, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify(spec, outcomeOf(tc.status, ``))
			assert.Equal(t, tc.granted, c.Granted)
			assert.Equal(t, tc.ambiguous, c.Ambiguous)
		})
	}
}

func TestClassify_UnknownClassifierFallsBack(t *testing.T) {
	spec := &Spec{ID: "x", Classifier: "no-such-policy"}
	c := Classify(spec, outcomeOf(http.StatusOK, `{}`))
	assert.True(t, c.Granted)
}
