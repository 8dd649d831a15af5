package horn

import "fmt"

// Scope maps source variable names to identifiers within one renaming scope
// (a statement, a query or a single rule instantiation).
type Scope map[string]VarID

// NewScope returns an empty renaming scope.
func NewScope() Scope { return make(Scope) }

// VarAllocator issues unique, monotonically increasing variable identifiers.
// The zero value is ready to use and starts at 0.
type VarAllocator struct {
	next VarID
}

// NewVarAllocator returns a new allocator.
func NewVarAllocator() *VarAllocator { return new(VarAllocator) }

// Fresh returns a new identifier.
func (va *VarAllocator) Fresh() VarID {
	id := va.next
	va.next++
	return id
}

// Issued returns the number of identifiers issued so far.
func (va *VarAllocator) Issued() int { return int(va.next) }

// AssignIDs returns a copy of the terms in which every variable carries an identifier.
// Variables with the same name share the identifier recorded in the scope.
// A variable that already has an identifier makes the call fail.
func (va *VarAllocator) AssignIDs(terms []Term, scope Scope) ([]Term, error) {
	r := make([]Term, len(terms))
	for i, t := range terms {
		t, err := va.assign(t, scope)
		if err != nil {
			return nil, err
		}
		r[i] = t
	}
	return r, nil
}

// AssignAtomIDs is like AssignIDs for a list of atoms.
func (va *VarAllocator) AssignAtomIDs(atoms []*Atom, scope Scope) ([]*Atom, error) {
	r := make([]*Atom, len(atoms))
	for i, a := range atoms {
		args, err := va.AssignIDs(a.Args, scope)
		if err != nil {
			return nil, err
		}
		r[i] = &Atom{Name: a.Name, Args: args}
	}
	return r, nil
}

func (va *VarAllocator) assign(t Term, scope Scope) (Term, error) {
	switch x := t.(type) {
	case *Var:
		if x.HasID {
			return nil, fmt.Errorf("%w: '%s'", ErrVarAlreadyAssigned, x)
		}
		id, ok := scope[x.Name]
		if !ok {
			id = va.Fresh()
			scope[x.Name] = id
		}
		return &Var{Name: x.Name, ID: id, HasID: true}, nil
	case *Atom:
		args, err := va.AssignIDs(x.Args, scope)
		if err != nil {
			return nil, err
		}
		return &Atom{Name: x.Name, Args: args}, nil
	default:
		panic(fmt.Sprintf("unknown term type: %T", t))
	}
}
