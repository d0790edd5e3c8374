package catalog

import (
	"strings"

	"github.com/credprobe/credprobe/internal/models"
)

// Probe is the single diagnostic request used to infer one permission.
// Path templates may contain {org}, {enterprise}, {repo}, {user} and
// {uuid} placeholders; Body is a JSON template with the same
// placeholders.
type Probe struct {
	Method string
	Path   string
	Body   string
}

// Reversal is the compensating call issued after a mutating probe
// succeeds. IDFrom names the field of the create response whose value
// replaces {id} in the path; an empty IDFrom means the path is fixed.
type Reversal struct {
	Method string
	Path   string
	IDFrom string
}

// Spec is one immutable catalog entry. The catalog is loaded once at
// startup and never mutated.
type Spec struct {
	ID          string
	Category    models.PermissionCategory
	Description string
	Probe       Probe
	Reversal    *Reversal
	Classifier  string // key into the classifier table; "" means classifyObject
	ItemsKey    string // array field inside envelope responses, "" for bare arrays
}

// NeedsRepo reports whether the probe path requires an accessible
// repository to substitute into {repo}.
func (s *Spec) NeedsRepo() bool {
	return strings.Contains(s.Probe.Path, "{repo}")
}

// NeedsEnterprise reports whether the probe path requires an enterprise
// slug.
func (s *Spec) NeedsEnterprise() bool {
	return strings.Contains(s.Probe.Path, "{enterprise}")
}

// Mutating reports whether the probe changes remote state and therefore
// carries a compensating reversal.
func (s *Spec) Mutating() bool {
	return s.Probe.Method != "GET"
}

// All returns the full catalog in declaration order: the critical block
// first, then the standard block. Reporting order follows this slice.
func All() []Spec {
	out := make([]Spec, 0, len(critical)+len(standard))
	out = append(out, critical...)
	out = append(out, standard...)
	return out
}

// Lookup returns the catalog entry for a permission id, or nil.
func Lookup(id string) *Spec {
	for i := range critical {
		if critical[i].ID == id {
			return &critical[i]
		}
	}
	for i := range standard {
		if standard[i].ID == id {
			return &standard[i]
		}
	}
	return nil
}
