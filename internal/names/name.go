// Package names provides stable, interned identifiers and the region
// lattice used to parameterise borrow kinds. Both are immutable once
// created: a Name's tag never changes, and a Region marker's depth never
// changes after it is minted.
package names

import (
	"golang.org/x/text/unicode/norm"

	"github.com/google/uuid"
)

// Name is an interned identifier: a printable label plus a globally
// unique tag. Equality is tag-based, not label-based, so two bindings
// that happen to print the same label never compare equal.
type Name struct {
	Label string
	Tag   uuid.UUID
}

func (n Name) String() string { return n.Label }

// Equals compares names by tag, per the data-model invariant in
// spec.md §3 ("equality is tag-based").
func (n Name) Equals(other Name) bool { return n.Tag == other.Tag }

// Interner mints fresh Names from printable labels. A single Interner
// is normally shared by a parser/renamer (an external collaborator);
// the checker itself never mints Names, it only consumes them.
type Interner struct{}

// NewInterner returns a ready-to-use Interner.
func NewInterner() *Interner { return &Interner{} }

// Fresh mints a new Name with the given label. The label is
// NFC-normalised first so that two Unicode encodings of the same
// identifier text get the same label (each call still mints a new tag,
// so the two Names are not Equals), mirroring the teacher's
// lexer-boundary normalisation (internal/lexer/normalize.go) rather
// than leaving it to downstream comparisons.
func (in *Interner) Fresh(label string) Name {
	return Name{Label: normalizeLabel(label), Tag: uuid.New()}
}

func normalizeLabel(label string) string {
	b := []byte(label)
	if norm.NFC.IsNormal(b) {
		return label
	}
	return string(norm.NFC.Bytes(b))
}
