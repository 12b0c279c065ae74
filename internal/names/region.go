package names

import "github.com/google/uuid"

// Region is a value drawn from a totally ordered lattice with named
// extremes Global (least, spec.md §3) and Never (greatest), plus
// opaque intermediate markers minted at nested lexical scopes. Order
// follows nesting depth: a Region minted inside another's lexical
// scope is strictly greater (more restrictive) than its parent.
type Region struct {
	depth int
	tag   uuid.UUID
	label string
}

// Global is the unique minimum of the region lattice: a value with
// this region may be used anywhere, including stored past the
// enclosing function's return.
var Global = Region{depth: 0, label: "Global"}

// Never is the unique maximum: nothing may escape it. Any borrow
// whose region is forced to Never cannot be returned or stored.
var Never = Region{depth: maxDepth, label: "Never"}

const maxDepth = int(^uint(0) >> 1) // math.MaxInt without importing math for one constant

// Fresh mints an opaque region marker nested one level inside parent,
// as happens on entry to a lexical scope or a Region(vars, e) construct
// (spec.md §4.7).
func Fresh(parent Region) Region {
	d := parent.depth + 1
	if d > maxDepth-1 {
		d = maxDepth - 1 // never collide with Never
	}
	return Region{depth: d, tag: uuid.New(), label: "r"}
}

func (r Region) String() string {
	if r.label != "" && r.tag == uuid.Nil {
		return r.label
	}
	return r.label + "@" + r.tag.String()[:8]
}

// Equals reports identity, not merely equal position in the order:
// two distinct markers minted at the same depth are Equal in Compare
// terms (0) but not Equals.
func (r Region) Equals(other Region) bool {
	if r.depth != other.depth {
		return false
	}
	if r.tag == uuid.Nil && other.tag == uuid.Nil {
		return r.label == other.label
	}
	return r.tag == other.tag
}

// Compare returns -1, 0, or 1 as r is less than, equal to (in lattice
// position, not identity), or greater than other.
func Compare(r, other Region) int {
	switch {
	case r.depth < other.depth:
		return -1
	case r.depth > other.depth:
		return 1
	default:
		return 0
	}
}

// Leq reports whether r <= other in the region lattice.
func Leq(r, other Region) bool { return Compare(r, other) <= 0 }

// Min returns the lesser (less restrictive) of two regions.
func Min(a, b Region) Region {
	if Compare(a, b) <= 0 {
		return a
	}
	return b
}

// Max returns the greater (more restrictive) of two regions.
func Max(a, b Region) Region {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}
