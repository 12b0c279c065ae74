package types

import "github.com/affe-lang/affe/internal/names"

// Env is the environment threaded through inference: two parallel
// namespaces (values, type constructors) linked in a parent chain so
// that entering a scope is "extend" and leaving one is restoring the
// parent pointer (spec.md §6's Env module). Data-constructor schemes
// are not a separate namespace here: make_type_decl (spec.md §6) only
// ever computes a type constructor's own kind scheme, never a
// value-level scheme for its data constructors, so there is no
// operation in this checker that would ever populate one.
type Env struct {
	parent *Env
	values map[names.Name]*TypeScheme
	tycons map[string]*KindScheme
}

// NewEnv returns an empty root environment.
func NewEnv() *Env {
	return &Env{
		values: map[names.Name]*TypeScheme{},
		tycons: map[string]*KindScheme{},
	}
}

// Extend returns a child environment with one additional value binding.
func (e *Env) Extend(n names.Name, s *TypeScheme) *Env {
	child := NewEnv()
	child.parent = e
	child.values[n] = s
	return child
}

// ExtendTycon returns a child environment with one additional type
// constructor binding.
func (e *Env) ExtendTycon(name string, s *KindScheme) *Env {
	child := NewEnv()
	child.parent = e
	child.tycons[name] = s
	return child
}

// Lookup finds a value's scheme, walking outward through parents.
func (e *Env) Lookup(n names.Name) (*TypeScheme, error) {
	for env := e; env != nil; env = env.parent {
		if s, ok := env.values[n]; ok {
			return s, nil
		}
	}
	return nil, NewUnknownNameError(n.String())
}

// LookupTycon finds a type constructor's kind scheme.
func (e *Env) LookupTycon(name string) (*KindScheme, error) {
	for env := e; env != nil; env = env.parent {
		if s, ok := env.tycons[name]; ok {
			return s, nil
		}
	}
	return nil, NewUnknownTypeError(name)
}

// Filter returns a fresh root environment containing only the value
// bindings (across this chain) for which keep returns true, plus every
// type constructor binding. InferTop does not call it; the environment
// InferTop returns is not trimmed.
func (e *Env) Filter(keep func(names.Name, *TypeScheme) bool) *Env {
	out := NewEnv()
	for env := e; env != nil; env = env.parent {
		for n, s := range env.values {
			if _, already := out.values[n]; already {
				continue
			}
			if keep(n, s) {
				out.values[n] = s
			}
		}
		for name, s := range env.tycons {
			if _, already := out.tycons[name]; !already {
				out.tycons[name] = s
			}
		}
	}
	return out
}

// FreeTypeVars collects every unbound type-unification variable with
// level > level reachable from every scheme bound in the chain. This
// is what a let-binding's generalisation step must NOT quantify over,
// since it's still free in the enclosing environment.
func (e *Env) FreeTypeVars(level int) map[*TypeVar]bool {
	out := map[*TypeVar]bool{}
	for env := e; env != nil; env = env.parent {
		for _, s := range env.values {
			collectFreeTypeVars(s.Body, level, out)
		}
	}
	return out
}

// FreeKindVars collects every unbound kind-unification variable with
// level > level reachable from every scheme (value and tycon) bound in
// the chain, plus the kind attached to every free type variable. This
// is the keep-set normalize must protect from
// elimination: anything still reachable from the ambient environment.
func (e *Env) FreeKindVars(level int) map[*KindVar]bool {
	out := map[*KindVar]bool{}
	note := func(k Kind) {
		if v, ok := ShortenKind(k).(*KindVar); ok && v.IsUnbound() && v.Level() > level {
			out[v] = true
		}
	}
	var walkType func(Type)
	walkType = func(t Type) {
		switch t := Shorten(t).(type) {
		case *TypeVar:
			note(t.Kind)
		case *App:
			for _, a := range t.Args {
				walkType(a)
			}
		case *Tuple:
			for _, el := range t.Elems {
				walkType(el)
			}
		case *Arrow:
			note(t.Kind)
			walkType(t.Param)
			walkType(t.Result)
		case *Borrow:
			note(t.Kind)
			walkType(t.Payload)
		}
	}
	for env := e; env != nil; env = env.parent {
		for _, s := range env.values {
			walkType(s.Body)
		}
		for _, s := range env.tycons {
			for _, a := range s.Args {
				note(a)
			}
			note(s.Result)
		}
	}
	return out
}

// Frame is a mark-and-release checkpoint into the value namespace of a
// single Env node, used to implement the scoped push/pop discipline
// spec.md §5 requires around pattern-binder introduction: Stash
// records the bindings about to be shadowed so Unstash can restore
// them on every exit path, including failure.
type Frame struct {
	env      *Env
	replaced map[names.Name]*TypeScheme
	added    []names.Name
}

// Stash begins a frame on e's own binding map (not a parent's) in
// which the named bindings may be overwritten; call Unstash(frame) on
// every exit path to restore exactly what was there before.
func (e *Env) Stash(ns ...names.Name) *Frame {
	f := &Frame{env: e, replaced: map[names.Name]*TypeScheme{}}
	for _, n := range ns {
		if s, ok := e.values[n]; ok {
			f.replaced[n] = s
		} else {
			f.added = append(f.added, n)
		}
	}
	return f
}

// Bind installs a scheme for n directly on the frame's environment,
// to be reverted by Unstash.
func (f *Frame) Bind(n names.Name, s *TypeScheme) {
	f.env.values[n] = s
}

// Unstash restores the environment to its pre-Stash state.
func (f *Frame) Unstash() {
	for _, n := range f.added {
		delete(f.env.values, n)
	}
	for n, s := range f.replaced {
		f.env.values[n] = s
	}
}
