package horn

import (
	"fmt"
	"strings"
)

// VarID identifies a variable within the lifetime of one allocator.
type VarID uint64

// Term is a term handled by the engine: either an atom or a variable.
type Term interface {
	fmt.Stringer
	// Equal compares two terms structurally.
	Equal(Term) bool

	occurs(VarID) bool
}

// Atom is a named term with an ordered argument list.
// Atoms without arguments act as constants.
type Atom struct {
	Name string
	Args []Term
}

// NewAtom creates a new atom.
func NewAtom(name string, args ...Term) *Atom {
	return &Atom{Name: name, Args: args}
}

func (a *Atom) String() string {
	var sb strings.Builder
	sb.WriteString(a.Name)
	if len(a.Args) > 0 {
		sb.WriteRune('(')
		for i, arg := range a.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteRune(')')
	}
	return sb.String()
}

// Signature returns the signature of the atom when used as a predicate.
func (a *Atom) Signature() Signature {
	return Signature{Name: a.Name, Arity: len(a.Args)}
}

// IsGround returns whether the atom contains no variables.
func (a *Atom) IsGround() bool {
	for _, arg := range a.Args {
		switch x := arg.(type) {
		case *Var:
			return false
		case *Atom:
			if !x.IsGround() {
				return false
			}
		}
	}
	return true
}

// Equal compares the atom with another term.
func (a *Atom) Equal(t Term) bool {
	b, ok := t.(*Atom)
	if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}
	for i, arg := range a.Args {
		if !arg.Equal(b.Args[i]) {
			return false
		}
	}
	return true
}

func (a *Atom) occurs(id VarID) bool {
	for _, arg := range a.Args {
		if arg.occurs(id) {
			return true
		}
	}
	return false
}

// Var is a variable. A variable read from source has no identifier
// until an allocator assigns one.
type Var struct {
	Name  string
	ID    VarID
	HasID bool
}

// NewVar creates a new variable without an identifier.
func NewVar(name string) *Var { return &Var{Name: name} }

func (v *Var) String() string { return "$" + v.Name }

// Equal compares the variable with another term. Assigned variables are
// equal when their identifiers are, unassigned ones when their names are.
func (v *Var) Equal(t Term) bool {
	w, ok := t.(*Var)
	if !ok || v.HasID != w.HasID {
		return false
	}
	if v.HasID {
		return v.ID == w.ID
	}
	return v.Name == w.Name
}

func (v *Var) occurs(id VarID) bool { return v.HasID && v.ID == id }

func (v *Var) mustID() VarID {
	if !v.HasID {
		panic("variable without identifier: " + v.String())
	}
	return v.ID
}

// Signature is the name and arity of a predicate.
type Signature struct {
	Name  string
	Arity int
}

func (s Signature) String() string { return fmt.Sprintf("%s/%d", s.Name, s.Arity) }

func cloneAtoms(atoms []*Atom) []*Atom {
	r := make([]*Atom, len(atoms))
	copy(r, atoms)
	return r
}
