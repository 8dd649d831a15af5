// Package horn provides a minimal logic-programming engine.
// Facts and rules over predicates of fixed arity are stored in a knowledge base
// and queries are answered by searching for every provable instantiation.
//
// # Terms
//
// A term is either an atom or a variable. An atom has a name and an ordered
// list of arguments; an atom without arguments acts as a constant. Variables are
// written with a leading '$':
//
//	num(s($x))
//
// # Variables
//
// Variables are identified by a number issued by a [VarAllocator], not by their names.
// Every statement, query and rule instantiation is renamed in a fresh scope,
// so two uses of '$x' in different instantiations of a recursive rule never alias.
//
// # Unification
//
// The process of unification compares the structures of two terms and finds the most general
// substitution that makes them equal, in case one exists. Binding a variable to a term
// containing the same variable is rejected (occurs-check):
//
//	f($x, b), f(a, $y)    $x = a, $y = b
//	$x, s($x)             no unifier
//
// # Rules
//
// A rule consists of a conclusion and a list of premises. The conclusion holds
// if all the premises can be proven. A fact is a rule without premises:
//
//	num(z)
//	num(s($x)) <- num($x)
//
// # Inference
//
// The algorithm used for inference is based on [SLD-resolution]. Pending goals are kept
// in frames queued on a frontier; solutions are pulled one at a time with [Solver.Next].
// Rules are tried in definition order and goals left to right. A query over a recursive
// predicate with infinitely many answers never reports exhaustion, so callers bound the
// enumeration themselves.
//
// [SLD-resolution]: https://en.wikipedia.org/wiki/SLD_resolution
package horn

import (
	"io"

	"github.com/sirupsen/logrus"
)

type frame struct {
	goals []*Atom
	subst Substitution
}

// QueryVar is a variable of a query together with its identifier.
type QueryVar struct {
	Name string
	ID   VarID
}

// Solver enumerates the solutions of one query.
// It is not safe for concurrent use.
type Solver struct {
	kb       *KnowledgeBase
	alloc    *VarAllocator
	goal     *Atom
	vars     []QueryVar
	frontier []*frame
	log      logrus.FieldLogger
}

// SolverOption configures a solver.
type SolverOption func(*Solver)

// WithLogger sets the logger used to trace the search.
func WithLogger(log logrus.FieldLogger) SolverOption {
	return func(s *Solver) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSolver creates a solver for the goal. The goal's variables must not carry identifiers.
func NewSolver(kb *KnowledgeBase, goal *Atom, opts ...SolverOption) (*Solver, error) {
	s := &Solver{
		kb:    kb,
		alloc: NewVarAllocator(),
		log:   discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	scope := NewScope()
	args, err := s.alloc.AssignIDs(goal.Args, scope)
	if err != nil {
		return nil, err
	}
	s.goal = &Atom{Name: goal.Name, Args: args}
	s.vars = collectVars(args, nil, make(map[VarID]bool))
	s.frontier = []*frame{{goals: []*Atom{s.goal}, subst: make(Substitution)}}
	return s, nil
}

func collectVars(terms []Term, vars []QueryVar, seen map[VarID]bool) []QueryVar {
	for _, t := range terms {
		switch x := t.(type) {
		case *Var:
			if !seen[x.ID] {
				seen[x.ID] = true
				vars = append(vars, QueryVar{Name: x.Name, ID: x.ID})
			}
		case *Atom:
			vars = collectVars(x.Args, vars, seen)
		}
	}
	return vars
}

// Goal returns the renamed query goal.
func (s *Solver) Goal() *Atom { return s.goal }

// Vars returns the query's variables in order of first occurrence.
func (s *Solver) Vars() []QueryVar { return s.vars }

// Pending returns the number of frames waiting on the frontier.
func (s *Solver) Pending() int { return len(s.frontier) }

// Next returns the next solution. The second return value is false
// once the search space is exhausted.
func (s *Solver) Next() (Substitution, bool, error) {
	for len(s.frontier) > 0 {
		f := s.frontier[0]
		s.frontier[0] = nil
		s.frontier = s.frontier[1:]

		if len(f.goals) == 0 {
			return f.subst, true, nil
		}
		if err := s.expand(f); err != nil {
			return nil, false, err
		}
	}
	return nil, false, nil
}

func (s *Solver) expand(f *frame) error {
	goal, rest := f.subst.ApplyAtom(f.goals[0]), f.goals[1:]
	rules := s.kb.RulesFor(goal.Name)
	s.log.WithFields(logrus.Fields{
		"goal":       goal.String(),
		"candidates": len(rules),
		"frontier":   len(s.frontier),
	}).Trace("expanding goal")

	for _, r := range rules {
		scope := NewScope()
		args, err := s.alloc.AssignIDs(r.Conclusion.Args, scope)
		if err != nil {
			return err
		}
		if len(goal.Args) != len(args) {
			continue
		}
		premises, err := s.alloc.AssignAtomIDs(r.Premises, scope)
		if err != nil {
			return err
		}
		mgu, ok := UnifyArgs(goal.Args, args)
		if !ok {
			continue
		}
		goals := make([]*Atom, 0, len(premises)+len(rest))
		for _, p := range premises {
			goals = append(goals, mgu.ApplyAtom(p))
		}
		for _, g := range rest {
			goals = append(goals, mgu.ApplyAtom(g))
		}
		s.frontier = append(s.frontier, &frame{goals: goals, subst: f.subst.Merge(mgu)})
	}
	return nil
}

// Solutions returns a range function over the remaining solutions.
// The iteration stops after the first error.
func (s *Solver) Solutions() func(func(Substitution, error) bool) {
	return func(yield func(Substitution, error) bool) {
		for {
			sol, ok, err := s.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok || !yield(sol, nil) {
				return
			}
		}
	}
}

// Take pulls at most n solutions; n <= 0 means no bound.
func (s *Solver) Take(n int) ([]Substitution, error) {
	var r []Substitution
	for sol, err := range s.Solutions() {
		if err != nil {
			return r, err
		}
		r = append(r, sol)
		if n > 0 && len(r) == n {
			break
		}
	}
	return r, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
