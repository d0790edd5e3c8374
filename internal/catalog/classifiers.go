package catalog

import (
	"fmt"
	"net/http"

	"github.com/credprobe/credprobe/pkg/github"
)

// Classification is a classifier's judgment of one probe outcome.
// Ambiguous marks responses that matched no expected shape; the engine
// records those as denied without aborting.
type Classification struct {
	Granted   bool
	Detail    string
	Ambiguous bool
}

// Classifier maps one probe outcome to a classification. Classifiers
// are pure; all network work happens before they run.
type Classifier func(spec *Spec, outcome *github.Outcome) Classification

// Classify dispatches to the entry's classifier. Unknown classifier ids
// fall back to the object classifier.
func Classify(spec *Spec, outcome *github.Outcome) Classification {
	if fn, ok := classifiers[spec.Classifier]; ok {
		return fn(spec, outcome)
	}
	return classifyObject(spec, outcome)
}

var classifiers = map[string]Classifier{
	"":              classifyObject,
	"list":          classifyList,
	"nonempty":      classifyNonEmpty,
	"private_repos": classifyPrivateRepos,
	"admin_flag":    classifyAdminFlag,
	"count":         classifyCount,
	"create":        classifyCreate,
}

// classifyObject is the general policy: 2xx grants, 403/404 denies
// (probes target resources that exist for a privileged credential, so
// 404 means forbidden), anything else is ambiguous.
func classifyObject(_ *Spec, o *github.Outcome) Classification {
	switch {
	case o.OK():
		return Classification{Granted: true}
	case o.Forbidden(), o.StatusCode == http.StatusUnauthorized:
		return Classification{}
	default:
		return Classification{Ambiguous: true}
	}
}

// classifyList expects an array body (bare or under the entry's
// ItemsKey). An empty array on 2xx is still evidence of access, but of
// a possibly degraded view, so it grants with a "limited" detail.
func classifyList(spec *Spec, o *github.Outcome) Classification {
	switch {
	case o.OK():
		items := o.JSON()
		if spec.ItemsKey != "" {
			items = items.Get(spec.ItemsKey)
		}
		if !items.IsArray() {
			return Classification{Ambiguous: true}
		}
		if len(items.Array()) == 0 {
			return Classification{Granted: true, Detail: "limited"}
		}
		return Classification{Granted: true, Detail: fmt.Sprintf("%d items visible", len(items.Array()))}
	case o.Forbidden(), o.StatusCode == http.StatusUnauthorized:
		return Classification{}
	default:
		return Classification{Ambiguous: true}
	}
}

// classifyNonEmpty grants only when the listing actually contains
// items; an empty result means the capability is absent, not limited.
func classifyNonEmpty(spec *Spec, o *github.Outcome) Classification {
	c := classifyList(spec, o)
	if c.Granted && c.Detail == "limited" {
		return Classification{Detail: "no items visible"}
	}
	return c
}

// classifyPrivateRepos infers write-level access from visibility of
// private repositories in the listing.
func classifyPrivateRepos(_ *Spec, o *github.Outcome) Classification {
	if !o.OK() {
		if o.Forbidden() || o.StatusCode == http.StatusUnauthorized {
			return Classification{}
		}
		return Classification{Ambiguous: true}
	}
	items := o.JSON()
	if !items.IsArray() {
		return Classification{Ambiguous: true}
	}
	private := 0
	for _, repo := range items.Array() {
		if repo.Get("private").Bool() {
			private++
		}
	}
	if private > 0 {
		return Classification{Granted: true, Detail: fmt.Sprintf("%d private repositories visible", private)}
	}
	return Classification{Detail: "no private repository access"}
}

// classifyAdminFlag infers delete-level access from the admin
// permission flag on any visible repository.
func classifyAdminFlag(_ *Spec, o *github.Outcome) Classification {
	if !o.OK() {
		if o.Forbidden() || o.StatusCode == http.StatusUnauthorized {
			return Classification{}
		}
		return Classification{Ambiguous: true}
	}
	items := o.JSON()
	if !items.IsArray() {
		return Classification{Ambiguous: true}
	}
	for _, repo := range items.Array() {
		if repo.Get("permissions.admin").Bool() {
			return Classification{Granted: true, Detail: "admin access to " + repo.Get("full_name").String()}
		}
	}
	return Classification{Detail: "no admin access detected"}
}

// classifyCount always reports the reachable item count; access to the
// listing at all is the grant.
func classifyCount(_ *Spec, o *github.Outcome) Classification {
	if !o.OK() {
		if o.Forbidden() || o.StatusCode == http.StatusUnauthorized {
			return Classification{}
		}
		return Classification{Ambiguous: true}
	}
	items := o.JSON()
	if !items.IsArray() {
		return Classification{Ambiguous: true}
	}
	return Classification{Granted: true, Detail: fmt.Sprintf("%d repositories accessible", len(items.Array()))}
}

// classifyCreate judges a mutating probe. Any 2xx (including the 204 a
// follow returns) proves the write; the compensating delete's outcome
// is appended to the detail by the engine, never flipping the verdict.
func classifyCreate(_ *Spec, o *github.Outcome) Classification {
	switch {
	case o.OK():
		return Classification{Granted: true}
	case o.Forbidden(), o.StatusCode == http.StatusUnauthorized, o.StatusCode == http.StatusUnprocessableEntity:
		return Classification{}
	default:
		return Classification{Ambiguous: true}
	}
}
