package types

import (
	"fmt"
	"strings"
)

// ErrorKind distinguishes diagnostics for pretty-printing purposes only;
// there is no per-kind recovery.
type ErrorKind string

const (
	TypeMismatchError      ErrorKind = "type_mismatch"
	KindMismatchError      ErrorKind = "kind_mismatch"
	KindInfeasibleError    ErrorKind = "kind_infeasible"
	IllegalEdgeError       ErrorKind = "illegal_edge"
	UseMismatchError       ErrorKind = "use_mismatch"
	RecursiveTypeError     ErrorKind = "recursive_type"
	UnknownNameError       ErrorKind = "unknown_name"
	UnknownTypeError       ErrorKind = "unknown_type"
	IllegalRecLHSError     ErrorKind = "illegal_rec_lhs"
	AlreadyGeneralisedErr  ErrorKind = "already_generalised"
	ArityMismatchError     ErrorKind = "arity_mismatch"
)

// CheckError is the single error type raised anywhere in the package.
// The first one raised aborts the current declaration; there is no
// local recovery and no rollback of mutated cells.
type CheckError struct {
	Kind    ErrorKind
	Message string

	// populated selectively depending on Kind
	TypeA, TypeB Type
	KindA, KindB Kind
	Name         string
	Lower, Upper Kind
	Witness      Kind
	Expected, Actual int
}

func (e *CheckError) Error() string {
	var parts []string
	parts = append(parts, e.Message)
	if e.TypeA != nil && e.TypeB != nil {
		parts = append(parts, fmt.Sprintf("  left:  %s\n  right: %s", e.TypeA, e.TypeB))
	}
	if e.KindA != nil && e.KindB != nil {
		parts = append(parts, fmt.Sprintf("  left:  %s\n  right: %s", e.KindA, e.KindB))
	}
	return strings.Join(parts, "\n")
}

// NewTypeMismatchError reports unify_type failing on two incompatible types.
func NewTypeMismatchError(a, b Type) *CheckError {
	return &CheckError{
		Kind:    TypeMismatchError,
		Message: fmt.Sprintf("type mismatch: %s vs %s", a, b),
		TypeA:   a,
		TypeB:   b,
	}
}

// NewKindMismatchError reports unify_kind finding two distinct constants.
func NewKindMismatchError(a, b Kind) *CheckError {
	return &CheckError{
		Kind:    KindMismatchError,
		Message: fmt.Sprintf("kind mismatch: %s vs %s", a, b),
		KindA:   a,
		KindB:   b,
	}
}

// NewKindInfeasibleError reports the solver finding lub(lowers) > glb(uppers)
// for some variable: (lower, var, upper) witness per spec.
func NewKindInfeasibleError(lower Kind, v Kind, upper Kind) *CheckError {
	return &CheckError{
		Kind:    KindInfeasibleError,
		Message: fmt.Sprintf("infeasible kind bounds for %s: %s <= %s <= %s is unsatisfiable", v, lower, v, upper),
		Lower:   lower,
		Witness: v,
		Upper:   upper,
	}
}

// NewIllegalEdgeError reports a constant->constant edge that violates the
// lattice order.
func NewIllegalEdgeError(lower, upper Kind) *CheckError {
	return &CheckError{
		Kind:    IllegalEdgeError,
		Message: fmt.Sprintf("illegal constraint edge: %s <= %s does not hold", lower, upper),
		Lower:   lower,
		Upper:   upper,
	}
}

// NewUseMismatchError reports two incompatible uses of the same binder
// meeting at a sequential or parallel merge point.
func NewUseMismatchError(name, use1, use2 string) *CheckError {
	return &CheckError{
		Kind:    UseMismatchError,
		Message: fmt.Sprintf("incompatible uses of %s: %s then %s", name, use1, use2),
		Name:    name,
	}
}

// NewRecursiveTypeError reports an occurs-check failure during unify_type.
func NewRecursiveTypeError(v Type, t Type) *CheckError {
	return &CheckError{
		Kind:    RecursiveTypeError,
		Message: fmt.Sprintf("recursive type: %s occurs in %s", v, t),
		TypeA:   v,
		TypeB:   t,
	}
}

// NewUnknownNameError reports a value-environment lookup miss.
func NewUnknownNameError(name string) *CheckError {
	return &CheckError{
		Kind:    UnknownNameError,
		Message: fmt.Sprintf("unknown name: %s", name),
		Name:    name,
	}
}

// NewUnknownTypeError reports a type-environment lookup miss.
func NewUnknownTypeError(name string) *CheckError {
	return &CheckError{
		Kind:    UnknownTypeError,
		Message: fmt.Sprintf("unknown type: %s", name),
		Name:    name,
	}
}

// NewIllegalRecLHSError reports `let rec` binding a non-variable pattern.
func NewIllegalRecLHSError(pat string) *CheckError {
	return &CheckError{
		Kind:    IllegalRecLHSError,
		Message: fmt.Sprintf("illegal left-hand side for let rec: %s", pat),
	}
}

// NewAlreadyGeneralisedError reports a scheme being fed back into the
// generaliser a second time.
func NewAlreadyGeneralisedError(scheme string) *CheckError {
	return &CheckError{
		Kind:    AlreadyGeneralisedErr,
		Message: fmt.Sprintf("scheme already generalised: %s", scheme),
	}
}

// NewArityMismatchError reports a kind-scheme instantiated with the
// wrong number of arguments.
func NewArityMismatchError(expected, actual int) *CheckError {
	return &CheckError{
		Kind:     ArityMismatchError,
		Message:  fmt.Sprintf("arity mismatch: expected %d argument(s), got %d", expected, actual),
		Expected: expected,
		Actual:   actual,
	}
}

// ErrorList collects every CheckError raised while processing a batch
// (used by the harness when it wants to report more than the first
// failure across independent top-level declarations).
type ErrorList []*CheckError

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n\n")
}
