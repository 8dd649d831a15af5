package horn

import (
	"fmt"
	"slices"
	"strings"
)

// Substitution maps variable identifiers to terms.
// No binding refers back to its own key once resolved through the whole mapping.
type Substitution map[VarID]Term

// Apply returns the term with every bound variable replaced, recursively.
func (s Substitution) Apply(t Term) Term {
	if len(s) == 0 {
		return t
	}
	switch x := t.(type) {
	case *Var:
		if !x.HasID {
			return x
		}
		if b, ok := s[x.ID]; ok {
			return s.Apply(b)
		}
		return x
	case *Atom:
		if len(x.Args) == 0 {
			return x
		}
		args := make([]Term, len(x.Args))
		for i, arg := range x.Args {
			args[i] = s.Apply(arg)
		}
		return &Atom{Name: x.Name, Args: args}
	default:
		panic(fmt.Sprintf("unknown term type: %T", t))
	}
}

// ApplyAtom is like Apply for an atom.
func (s Substitution) ApplyAtom(a *Atom) *Atom {
	return s.Apply(a).(*Atom)
}

// Merge composes the substitution with a later one. The bindings of s are
// applied to the right-hand sides of later, then entries of later whose key
// s does not bind are added. Neither operand is modified.
func (s Substitution) Merge(later Substitution) Substitution {
	r := make(Substitution, len(s)+len(later))
	for k, v := range s {
		r[k] = v
	}
	for k, v := range later {
		if _, ok := s[k]; !ok {
			r[k] = s.Apply(v)
		}
	}
	return r
}

// Resolve returns the term bound to the identifier with all bindings applied.
func (s Substitution) Resolve(id VarID) (Term, bool) {
	b, ok := s[id]
	if !ok {
		return nil, false
	}
	return s.Apply(b), true
}

func (s Substitution) String() string {
	keys := make([]VarID, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var sb strings.Builder
	sb.WriteRune('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d -> %s", k, s[k])
	}
	sb.WriteRune('}')
	return sb.String()
}
