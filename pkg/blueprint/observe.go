package blueprint

import (
	"github.com/agnivade/levenshtein"
	"github.com/weft-dev/weft/pkg/weft"
)

// Observation binds output-facing signals bidirectionally to the built
// instance: author signal writes flow into the platform node, and
// platform-side changes (input observation, exposed component signals)
// flow back into the author's signals. Attaching one marks the
// blueprint single-use; the builder refuses to build it twice, which
// would silently duplicate the wiring.
type Observation struct {
	// Bindings maps prop names to the author's signals.
	Bindings map[string]weft.Reactive

	built bool
}

// Observe attaches bindings to the blueprint and returns it. Defaults
// for each bound prop are inferred from the element's observable-prop
// defaults or the component's PropTypes.
func (b *Blueprint) Observe(bindings map[string]weft.Reactive) *Blueprint {
	b.Obs = &Observation{Bindings: bindings}
	return b
}

// MarkBuilt records the observation's one physical build. Reports false
// when the observation was already built.
func (o *Observation) MarkBuilt() bool {
	if o.built {
		return false
	}
	o.built = true
	return true
}

// Built reports whether the observation has been physically built.
func (o *Observation) Built() bool {
	return o.built
}

func (o *Observation) clone() *Observation {
	return &Observation{Bindings: o.Bindings}
}

// elementObservables are the element props supporting bidirectional
// observation, with their inferred default values.
var elementObservables = map[string]any{
	"value":   "",
	"checked": false,
	"open":    false,
	"width":   0,
	"height":  0,
}

// ElementObservableDefault returns the inferred default for an
// observable element prop, and whether the prop is observable at all.
func ElementObservableDefault(name string) (any, bool) {
	v, ok := elementObservables[name]
	return v, ok
}

// ElementObservableNames lists the observable element props.
func ElementObservableNames() []string {
	names := make([]string, 0, len(elementObservables))
	for name := range elementObservables {
		names = append(names, name)
	}
	return names
}

// maxSuggestDistance bounds how far a misspelling may be from a declared
// prop to still earn a suggestion.
const maxSuggestDistance = 3

// SuggestProp returns the declared prop closest to name, or "" when
// nothing is close enough to be a plausible misspelling.
func SuggestProp(name string, declared []string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, candidate := range declared {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best
}
