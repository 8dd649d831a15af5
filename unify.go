package horn

import "fmt"

// Equation is a pair of terms still to be reconciled.
type Equation struct {
	Left, Right Term
}

func (e Equation) String() string { return e.Left.String() + " = " + e.Right.String() }

type binding struct {
	id   VarID
	term Term
}

// Unify computes the most general substitution solving all the equations.
// The second return value is false when no such substitution exists.
//
// Equations are processed front to back. Arguments of two matching atoms are
// pushed to the front, so nested structure is resolved before the remaining
// equations. Each new binding is applied to the pending equations at once and
// later bindings are composed under earlier ones.
func Unify(eqs []Equation) (Substitution, bool) {
	work := make([]Equation, len(eqs))
	copy(work, eqs)

	var bs []binding
	for len(work) > 0 {
		eq := work[0]
		work = work[1:]

		if _, ok := eq.Left.(*Atom); ok {
			if _, ok := eq.Right.(*Var); ok {
				eq.Left, eq.Right = eq.Right, eq.Left
			}
		}

		switch l := eq.Left.(type) {
		case *Atom:
			r := eq.Right.(*Atom)
			if l.Name != r.Name || len(l.Args) != len(r.Args) {
				return nil, false
			}
			front := make([]Equation, len(l.Args), len(l.Args)+len(work))
			for i, arg := range l.Args {
				front[i] = Equation{Left: arg, Right: r.Args[i]}
			}
			work = append(front, work...)
		case *Var:
			id := l.mustID()
			switch r := eq.Right.(type) {
			case *Var:
				if r.mustID() == id {
					continue
				}
			case *Atom:
				if r.occurs(id) {
					return nil, false
				}
			default:
				panic(fmt.Sprintf("unknown term type: %T", eq.Right))
			}
			b := Substitution{id: eq.Right}
			for i, eq := range work {
				work[i] = Equation{Left: b.Apply(eq.Left), Right: b.Apply(eq.Right)}
			}
			bs = append(bs, binding{id: id, term: eq.Right})
		default:
			panic(fmt.Sprintf("unknown term type: %T", eq.Left))
		}
	}

	s := make(Substitution)
	for i := len(bs) - 1; i >= 0; i-- {
		s = Substitution{bs[i].id: bs[i].term}.Merge(s)
	}
	return s, true
}

// UnifyArgs unifies two argument lists position by position as one worklist.
func UnifyArgs(a, b []Term) (Substitution, bool) {
	if len(a) != len(b) {
		return nil, false
	}
	eqs := make([]Equation, len(a))
	for i := range a {
		eqs[i] = Equation{Left: a[i], Right: b[i]}
	}
	return Unify(eqs)
}
