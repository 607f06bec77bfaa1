package inspect

import (
	"fmt"

	"github.com/funvibe/funscope/internal/rt"
)

// InvalidationKey identifies one edge-set owner in the invalidation graph:
// either a compiled variant, or the callable's dispatch table keyed by the
// triggering type (a structural change involving that type trips the edges).
type InvalidationKey struct {
	Variant *rt.CompiledVariant // set for per-variant edges
	Trigger *rt.Type            // set for dispatch-table edges
}

func (k InvalidationKey) String() string {
	if k.Variant != nil {
		return k.Variant.Signature()
	}
	if k.Trigger != nil {
		return "table/" + k.Trigger.Name
	}
	return "?"
}

// MalformedStateError reports an internal representation the collector does
// not account for. It is a defect signal and is never swallowed.
type MalformedStateError struct {
	Callable string
	Detail   string
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("malformed runtime state in %s: %s", e.Callable, e.Detail)
}

// Backedges builds the invalidation graph for a callable: every known
// compiled variant appears as a key (with an empty dependent list when its
// edges are unreadable), plus one synthetic key per triggering type found in
// the dispatch table's flat storage.
//
// Absence of a key means no edges could be determined, not that none exist.
func Backedges(c *rt.Callable) (map[InvalidationKey][]rt.Dependent, error) {
	out := make(map[InvalidationKey][]rt.Dependent)

	for v := range Specializations(c) {
		deps, err := v.Backedges()
		if err != nil {
			deps = nil // unreadable edges: the variant still gets its key
		}
		out[InvalidationKey{Variant: v}] = deps
	}

	raw, err := c.Dispatch().RawBackedges()
	if err != nil {
		return out, nil // table storage unavailable: variant edges still stand
	}
	if len(raw)%2 != 0 {
		return nil, &MalformedStateError{
			Callable: c.QualifiedName(),
			Detail:   fmt.Sprintf("odd-length dispatch backedge storage (%d entries)", len(raw)),
		}
	}
	for i := 0; i < len(raw); i += 2 {
		trigger, ok := raw[i].(*rt.Type)
		if !ok {
			return nil, &MalformedStateError{
				Callable: c.QualifiedName(),
				Detail:   fmt.Sprintf("entry %d: expected triggering type, got %T", i, raw[i]),
			}
		}
		dep, ok := raw[i+1].(rt.Dependent)
		if !ok {
			return nil, &MalformedStateError{
				Callable: c.QualifiedName(),
				Detail:   fmt.Sprintf("entry %d: expected dependent, got %T", i+1, raw[i+1]),
			}
		}
		key := InvalidationKey{Trigger: trigger}
		out[key] = append(out[key], dep)
	}
	return out, nil
}
