package horn

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mailstepcz/sexpr"
)

func identIsVar(s string) bool {
	if strings.HasPrefix(s, "$") {
		return len(s) > 1
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// ParseSymbolicExpression parses a program written as a symbolic expression.
// Each statement is a list whose first element is the conclusion and the rest premises,
// a list headed by '?' is a query and a list headed by '#' is a comment.
// A list headed by any other identifier is ill-formed:
//
//	(
//		((num z))
//		((num (s X)) (num X))
//		(? (num $y))
//	)
//
// Identifiers starting with '$' or an upper-case letter are variables.
func ParseSymbolicExpression(code string) ([]Statement, error) {
	expr, err := sexpr.Parse(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllFormed, err)
	}
	var stmts []Statement
	for _, x := range expr {
		stmt, ok := x.([]interface{})
		if !ok || len(stmt) == 0 {
			return nil, fmt.Errorf("%w: statement must be a non-empty list: %v", ErrIllFormed, x)
		}
		if id, ok := stmt[0].(sexpr.Identifier); ok {
			switch id {
			case "#":
				continue
			case "?":
				if len(stmt) != 2 {
					return nil, fmt.Errorf("%w: query must have exactly one goal: %v", ErrIllFormed, stmt)
				}
				goal, err := exprToAtom(stmt[1])
				if err != nil {
					return nil, err
				}
				stmts = append(stmts, &Query{Goal: goal})
				continue
			}
			return nil, fmt.Errorf("%w: statement headed by identifier '%s' (missing brackets?): %v", ErrIllFormed, id, stmt)
		}
		head, err := exprToAtom(stmt[0])
		if err != nil {
			return nil, err
		}
		tail := make([]*Atom, 0, len(stmt)-1)
		for _, ex := range stmt[1:] {
			a, err := exprToAtom(ex)
			if err != nil {
				return nil, err
			}
			tail = append(tail, a)
		}
		stmts = append(stmts, &Definition{Rule: &Rule{Conclusion: head, Premises: tail}})
	}
	return stmts, nil
}

func exprToAtom(expr interface{}) (*Atom, error) {
	switch x := expr.(type) {
	case sexpr.Identifier:
		if identIsVar(string(x)) {
			return nil, fmt.Errorf("%w: variable '%s' used as a predicate", ErrIllFormed, x)
		}
		return &Atom{Name: string(x)}, nil
	case []interface{}:
		if len(x) == 0 {
			return nil, fmt.Errorf("%w: empty term", ErrIllFormed)
		}
		functor, ok := x[0].(sexpr.Identifier)
		if !ok || identIsVar(string(functor)) {
			return nil, fmt.Errorf("%w: term must be headed by a functor: %v", ErrIllFormed, x)
		}
		args := make([]Term, 0, len(x)-1)
		for _, arg := range x[1:] {
			t, err := exprToTerm(arg)
			if err != nil {
				return nil, err
			}
			args = append(args, t)
		}
		return &Atom{Name: string(functor), Args: args}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected expression: %v", ErrIllFormed, expr)
	}
}

func exprToTerm(expr interface{}) (Term, error) {
	switch x := expr.(type) {
	case sexpr.Identifier:
		if identIsVar(string(x)) {
			return NewVar(strings.TrimPrefix(string(x), "$")), nil
		}
		return &Atom{Name: string(x)}, nil
	case sexpr.QuotedString:
		return &Atom{Name: string(x)}, nil
	default:
		return exprToAtom(expr)
	}
}

// ExecSymbolicExpression parses and executes a program written as a symbolic expression.
func (e *Engine) ExecSymbolicExpression(code string, handler QueryHandler) error {
	stmts, err := ParseSymbolicExpression(code)
	if err != nil {
		return err
	}
	return e.ExecStatements(stmts, handler)
}
