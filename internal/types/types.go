package types

import (
	"fmt"
	"strings"
)

// Type is one of the forms in spec.md §3: a quantified variable, a
// mutable unification cell, a type-constructor application, a tuple,
// an arrow, or a borrow.
type Type interface {
	typ()
	String() string
}

// typeIDs hands out process-unique debug ids for fresh type variables.
var typeIDs int

func nextTypeID() int {
	typeIDs++
	return typeIDs
}

// GenericVar is a quantified type variable. It only ever appears
// inside a TypeScheme body (spec.md §3 invariant) — the generaliser is
// the only thing that produces one.
type GenericVar struct {
	ID   int
	Kind Kind // the variable's (possibly generic) kind
}

func (*GenericVar) typ()            {}
func (v *GenericVar) String() string { return fmt.Sprintf("'a%d", v.ID) }

// TypeVar is a mutable unification cell, Unbound(id, level) until
// linked, after which it forwards transparently forever. Kind is the
// fresh kind variable minted alongside it — every type variable is
// classified by some kind from the moment it's created (spec.md §4.3).
type TypeVar struct {
	id    int
	level int
	link  Type // nil while unbound
	Kind  Kind
}

func (*TypeVar) typ() {}
func (v *TypeVar) String() string {
	if v.link != nil {
		return v.link.String()
	}
	return fmt.Sprintf("t%d", v.id)
}

// NewTypeVar mints a fresh unbound type variable at the given level,
// together with the fresh kind variable that classifies it.
func NewTypeVar(level int) *TypeVar {
	return &TypeVar{id: nextTypeID(), level: level, Kind: NewKindVar(level)}
}

// NewTypeVarLike mints a fresh unbound type variable classified by an
// already-known kind, rather than a freshly minted one — used when
// instantiating a scheme, where the variable's kind comes from
// substituting the scheme's own quantified kind variables.
func NewTypeVarLike(level int, kind Kind) *TypeVar {
	return &TypeVar{id: nextTypeID(), level: level, Kind: kind}
}

func (v *TypeVar) IsUnbound() bool { return v.link == nil }
func (v *TypeVar) Level() int      { return v.level }

// ID returns the variable's debug id, stable for its lifetime. Used
// to put an otherwise-unordered set of variables into a deterministic
// order (map iteration over *TypeVar isn't one).
func (v *TypeVar) ID() int { return v.id }
func (v *TypeVar) SetLevel(lvl int) {
	if lvl < v.level {
		v.level = lvl
	}
}
func (v *TypeVar) setLink(t Type) { v.link = t }

// App is a named type constructor applied to zero or more arguments,
// e.g. List(Int) or Map(K, V).
type App struct {
	Con  string
	Args []Type
}

func (*App) typ() {}
func (a *App) String() string {
	if len(a.Args) == 0 {
		return a.Con
	}
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", a.Con, strings.Join(parts, ", "))
}

// Tuple is a fixed-width product type.
type Tuple struct {
	Elems []Type
}

func (*Tuple) typ() {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Arrow is a function type. Kind is the arrow's own residual-use
// kind — arrows are first-class values and are tracked by the same
// multiplicity machinery as everything else (spec.md §4.3).
type Arrow struct {
	Param  Type
	Kind   Kind
	Result Type
}

func (*Arrow) typ() {}
func (a *Arrow) String() string {
	return fmt.Sprintf("%s -{%s}-> %s", a.Param, a.Kind, a.Result)
}

// BorrowMode distinguishes a shared (Read) from an exclusive (Write)
// borrow.
type BorrowMode int

const (
	Read BorrowMode = iota
	Write
)

func (m BorrowMode) String() string {
	if m == Write {
		return "write"
	}
	return "read"
}

// Borrow is a non-owning reference to a value of type Payload.
type Borrow struct {
	Mode    BorrowMode
	Kind    Kind
	Payload Type
}

func (*Borrow) typ() {}
func (b *Borrow) String() string {
	prefix := "&"
	if b.Mode == Write {
		prefix = "&!"
	}
	return fmt.Sprintf("%s%s", prefix, b.Payload)
}

// Shorten dereferences Link chains to the representative Type,
// compressing the chain in place.
func Shorten(t Type) Type {
	v, ok := t.(*TypeVar)
	if !ok || v.link == nil {
		return t
	}
	final := Shorten(v.link)
	v.link = final
	return final
}
