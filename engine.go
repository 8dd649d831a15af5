package horn

import (
	"github.com/sirupsen/logrus"
)

// Engine is an inference engine with a knowledge base.
type Engine struct {
	kb  *KnowledgeBase
	log logrus.FieldLogger
}

// Option configures an engine.
type Option func(*Engine)

// WithEngineLogger sets the logger of the engine and of the solvers it creates.
func WithEngineLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine creates an engine with an empty knowledge base.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		kb:  NewKnowledgeBase(),
		log: discardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KnowledgeBase returns the engine's knowledge base.
func (e *Engine) KnowledgeBase() *KnowledgeBase { return e.kb }

// Define adds a rule to the knowledge base.
func (e *Engine) Define(r *Rule) error {
	if err := e.kb.Update(r); err != nil {
		e.log.WithError(err).WithField("rule", r.String()).Debug("rule rejected")
		return err
	}
	e.log.WithFields(logrus.Fields{
		"predicate": r.Signature().String(),
		"premises":  len(r.Premises),
		"rules":     len(e.kb.RulesFor(r.Conclusion.Name)),
	}).Debug("rule defined")
	return nil
}

// Query validates the goal against the knowledge base and returns a solver for it.
// A predicate seen for the first time in a query is registered with the goal's arity.
func (e *Engine) Query(goal *Atom) (*Solver, error) {
	if err := e.kb.Validate(goal); err != nil {
		return nil, err
	}
	s, err := NewSolver(e.kb, goal, WithLogger(e.log.WithField("query", goal.String())))
	if err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"query": goal.String(),
		"vars":  len(s.Vars()),
	}).Debug("query submitted")
	return s, nil
}

// QueryHandler is called for every query of an executed program.
type QueryHandler func(q *Query, s *Solver) error

// ExecStatements executes the statements in order. Definitions are added to
// the knowledge base and queries are passed to the handler. Execution stops at
// the first error; statements executed before it stay in effect.
func (e *Engine) ExecStatements(stmts []Statement, handler QueryHandler) error {
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *Definition:
			if err := e.Define(stmt.Rule); err != nil {
				return err
			}
		case *Query:
			s, err := e.Query(stmt.Goal)
			if err != nil {
				return err
			}
			if handler != nil {
				if err := handler(stmt, s); err != nil {
					return err
				}
			}
		default:
			panic("unexpected type of statement")
		}
	}
	return nil
}

// Exec parses and executes program text.
func (e *Engine) Exec(code string, handler QueryHandler) error {
	stmts, err := ParseProgram(code)
	if err != nil {
		return err
	}
	return e.ExecStatements(stmts, handler)
}

// MustLoad executes program text without queries and panics on failure.
func (e *Engine) MustLoad(code string) *Engine {
	if err := e.Exec(code, nil); err != nil {
		panic(err)
	}
	return e
}
