package horn

import (
	"cmp"
	"slices"
	"strings"
)

// Rule is a Horn clause. A rule without premises is a fact.
type Rule struct {
	Conclusion *Atom
	Premises   []*Atom
}

// NewFact creates a rule without premises.
func NewFact(name string, args ...Term) *Rule {
	return &Rule{Conclusion: NewAtom(name, args...)}
}

func (r *Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.Conclusion.String())
	if len(r.Premises) > 0 {
		sb.WriteString(" <-")
		for i, p := range r.Premises {
			if i > 0 {
				sb.WriteRune(',')
			}
			sb.WriteRune(' ')
			sb.WriteString(p.String())
		}
	}
	return sb.String()
}

// Signature returns the signature of the rule's conclusion.
func (r *Rule) Signature() Signature { return r.Conclusion.Signature() }

type predicate struct {
	arity int
	rules []*Rule
}

// KnowledgeBase stores, per predicate name, a fixed arity and the ordered list of rules.
type KnowledgeBase struct {
	predicates map[string]*predicate
	count      int
}

// NewKnowledgeBase returns an empty knowledge base.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{predicates: make(map[string]*predicate)}
}

// Validate registers the atom's predicate when it is unseen,
// otherwise checks that its arity matches the registered one.
func (kb *KnowledgeBase) Validate(a *Atom) error {
	if kb.predicates == nil {
		kb.predicates = make(map[string]*predicate)
	}
	p, ok := kb.predicates[a.Name]
	if !ok {
		kb.predicates[a.Name] = &predicate{arity: len(a.Args)}
		return nil
	}
	if p.arity != len(a.Args) {
		return &ArityMismatchError{Predicate: a.Name, Expected: p.arity, Actual: len(a.Args)}
	}
	return nil
}

// Update adds a rule. Premises are validated first, registering predicates seen
// for the first time, then the conclusion. Registrations made for premises are kept
// even when the conclusion fails validation.
func (kb *KnowledgeBase) Update(r *Rule) error {
	for _, p := range r.Premises {
		if err := kb.Validate(p); err != nil {
			return err
		}
	}

	// Rules are stored as templates and renamed on every use;
	// assigning here only checks that no variable carries an identifier yet.
	var (
		alloc = NewVarAllocator()
		scope = NewScope()
	)
	if _, err := alloc.AssignIDs(r.Conclusion.Args, scope); err != nil {
		return err
	}
	if _, err := alloc.AssignAtomIDs(r.Premises, scope); err != nil {
		return err
	}

	if err := kb.Validate(r.Conclusion); err != nil {
		return err
	}
	p := kb.predicates[r.Conclusion.Name]
	p.rules = append(p.rules, &Rule{Conclusion: r.Conclusion, Premises: cloneAtoms(r.Premises)})
	kb.count++
	return nil
}

// RulesFor returns the rules of a predicate in definition order.
// The result is nil for an undefined predicate and must not be modified.
func (kb *KnowledgeBase) RulesFor(name string) []*Rule {
	if p, ok := kb.predicates[name]; ok {
		return p.rules
	}
	return nil
}

// Arity returns the registered arity of a predicate.
func (kb *KnowledgeBase) Arity(name string) (int, bool) {
	p, ok := kb.predicates[name]
	if !ok {
		return 0, false
	}
	return p.arity, true
}

// Signatures returns the signatures of all registered predicates sorted by name.
func (kb *KnowledgeBase) Signatures() []Signature {
	r := make([]Signature, 0, len(kb.predicates))
	for name, p := range kb.predicates {
		r = append(r, Signature{Name: name, Arity: p.arity})
	}
	slices.SortFunc(r, func(a, b Signature) int { return cmp.Compare(a.Name, b.Name) })
	return r
}

// Len returns the total number of stored rules.
func (kb *KnowledgeBase) Len() int { return kb.count }
