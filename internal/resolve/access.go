package resolve

import (
	"github.com/cmmoran/accessorgen/internal/model"
)

// Access selects declaration members by their accessibility markers,
// as a bit-field.
type Access uint8

const (
	AccessPrivate Access = 1 << iota
	AccessProtected
	AccessInternal
	AccessPublic

	AccessAll = AccessPrivate | AccessProtected | AccessInternal | AccessPublic
)

// Has all of the given access bits set.
func (a Access) Has(access Access) bool {
	return a&access == access
}

// accessMarkers pairs each access bit with the modifier marker a member must
// carry to match it. The set is closed; there are no other bits.
var accessMarkers = []struct {
	bit    Access
	marker string
}{
	{AccessPrivate, "private"},
	{AccessProtected, "protected"},
	{AccessInternal, "internal"},
	{AccessPublic, "public"},
}

func init() {
	RegisterFlags(map[string]Access{
		"Private":   AccessPrivate,
		"Protected": AccessProtected,
		"Internal":  AccessInternal,
		"Public":    AccessPublic,
		"All":       AccessAll,
	})
}

// predicate reports whether a member participates in generation.
type predicate func(*model.Declaration) bool

// accessPredicate composes one predicate that is the OR, over every bit set
// in access, of "member carries that bit's marker". The composition is pure:
// the same mask always yields an equivalent predicate.
func accessPredicate(access Access) predicate {
	preds := make([]predicate, 0, len(accessMarkers))
	for _, am := range accessMarkers {
		if !access.Has(am.bit) {
			continue
		}
		marker := am.marker
		preds = append(preds, func(d *model.Declaration) bool {
			return d.HasModifier(marker)
		})
	}
	return func(d *model.Declaration) bool {
		for _, p := range preds {
			if p(d) {
				return true
			}
		}
		return false
	}
}

// Filter returns the members matching the access mask, preserving input
// order. Non-matching members are dropped; nothing is reordered or
// deduplicated.
func Filter(members []*model.Declaration, access Access) []*model.Declaration {
	pred := accessPredicate(access)
	out := make([]*model.Declaration, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}
