package types

import (
	"fmt"

	"github.com/affe-lang/affe/internal/names"
)

// Qualifier is a point on the three-element usage chain Un < Aff < Lin
// (spec.md §3). It is distinct from a higher-order type kind — in
// Affe, "kind" always means this usage qualifier crossed with a
// Region.
type Qualifier int

const (
	Un Qualifier = iota
	Aff
	Lin
)

func (q Qualifier) String() string {
	switch q {
	case Un:
		return "Un"
	case Aff:
		return "Aff"
	case Lin:
		return "Lin"
	default:
		return fmt.Sprintf("Qualifier(%d)", int(q))
	}
}

// Kind is a usage qualifier: either a lattice constant (Un/Aff/Lin at
// some Region) or a mutable/generic variable cell.
type Kind interface {
	kind()
	String() string
}

// KindConst is one lattice point `q r`.
type KindConst struct {
	Qualifier Qualifier
	Region    names.Region
}

func (KindConst) kind() {}
func (k KindConst) String() string {
	return fmt.Sprintf("%s %s", k.Qualifier, k.Region)
}

// Equal reports whether two constants denote the same lattice point.
func (k KindConst) Equal(other KindConst) bool {
	return k.Qualifier == other.Qualifier && k.Region.Equals(other.Region)
}

// kindIDs hands out process-unique debug ids for fresh kind variables.
var kindIDs int

func nextKindID() int {
	kindIDs++
	return kindIDs
}

// KindVar is a mutable unification cell: Unbound(id, level) until it
// is linked, at which point it forwards transparently forever
// (spec.md §3/§9 — "rewritten at most once to Link(τ)").
type KindVar struct {
	id    int
	level int
	link  Kind // nil while unbound
}

func (*KindVar) kind() {}

func (k *KindVar) String() string {
	if k.link != nil {
		return k.link.String()
	}
	return fmt.Sprintf("k%d", k.id)
}

// NewKindVar mints a fresh unbound kind variable at the given level.
func NewKindVar(level int) *KindVar {
	return &KindVar{id: nextKindID(), level: level}
}

// IsUnbound reports whether the cell has not yet been linked.
func (k *KindVar) IsUnbound() bool { return k.link == nil }

// ID returns the variable's debug id, stable for its lifetime. Used to
// put an otherwise-unordered set of variables into a deterministic
// order (map iteration over *KindVar isn't one).
func (k *KindVar) ID() int { return k.id }

// Level returns the cell's current level. Meaningless once linked.
func (k *KindVar) Level() int { return k.level }

// SetLevel lowers the cell's level to the minimum of its current level
// and lvl, per the level-adjustment rule used throughout unification.
func (k *KindVar) SetLevel(lvl int) {
	if lvl < k.level {
		k.level = lvl
	}
}

// setLink forwards the cell to target permanently.
func (k *KindVar) setLink(target Kind) { k.link = target }

// KindGeneric is a quantified kind variable: non-mutable, and only
// ever found inside a scheme body (spec.md §3 invariant).
type KindGeneric struct{ ID int }

func (KindGeneric) kind() {}
func (k KindGeneric) String() string { return fmt.Sprintf("'k%d", k.ID) }

// ShortenKind dereferences Link chains to the representative Kind,
// compressing the chain in place so repeated lookups are O(1).
func ShortenKind(k Kind) Kind {
	v, ok := k.(*KindVar)
	if !ok || v.link == nil {
		return k
	}
	final := ShortenKind(v.link)
	v.link = final // path compression
	return final
}

// Common lattice constants at the region extremes, handy in tests and
// in the builtin environment.
var (
	UnGlobal  = KindConst{Qualifier: Un, Region: names.Global}
	LinNever  = KindConst{Qualifier: Lin, Region: names.Never}
	AffNever  = KindConst{Qualifier: Aff, Region: names.Never}
	UnNever   = KindConst{Qualifier: Un, Region: names.Never}
)

// constLeq is the product order spec.md §4.1 describes: "a 3-element
// chain crossed with the region poset". Both components must agree —
// a.Qualifier <= b.Qualifier on the Un<Aff<Lin chain AND a.Region <=
// b.Region in the region lattice — so cross-dimension pairs like
// Aff Global and Un Never are genuinely incomparable, not ordered by
// whichever dimension happens to differ. See DESIGN.md for why this
// replaced an earlier lexicographic version.
func constLeq(a, b KindConst) bool {
	return a.Qualifier <= b.Qualifier && names.Leq(a.Region, b.Region)
}

// constMax and constMin are the product lattice's join and meet,
// computed componentwise: each dimension (chain, region) is totally
// ordered on its own, so the componentwise max/min always exists even
// though constLeq itself is only a partial order.
func constMax(a, b KindConst) KindConst {
	q := a.Qualifier
	if b.Qualifier > q {
		q = b.Qualifier
	}
	return KindConst{Qualifier: q, Region: names.Max(a.Region, b.Region)}
}

func constMin(a, b KindConst) KindConst {
	q := a.Qualifier
	if b.Qualifier < q {
		q = b.Qualifier
	}
	return KindConst{Qualifier: q, Region: names.Min(a.Region, b.Region)}
}

// FirstClass is the kind constant an escaping value must be bounded
// above by at a region boundary (spec.md §4.7's Region rule): Lin at
// that region, so the checker can still tell whether the escaping
// value was ever tied to region-local state.
func FirstClass(region names.Region) KindConst {
	return KindConst{Qualifier: Lin, Region: region}
}
