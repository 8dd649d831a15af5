package horn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phomola/lrparser"
	"github.com/phomola/textkit"
)

var (
	grammar = lrparser.NewGrammar(lrparser.MustBuildRules([]*lrparser.SynSem{
		{Syn: `Init -> Stmts`, Sem: func(args []any) any { return args[0] }},
		{Syn: `Stmts -> Stmts Stmt`, Sem: func(args []any) any { return append(args[0].([]AST), args[1].(AST)) }},
		{Syn: `Stmts -> Stmt`, Sem: func(args []any) any { return []AST{args[0].(AST)} }},
		{Syn: `Stmt -> Clause`, Sem: func(args []any) any { return args[0] }},
		{Syn: `Stmt -> Clause "."`, Sem: func(args []any) any { return args[0] }},
		{Syn: `Clause -> "?" Term`, Sem: func(args []any) any { return &ASTQuery{Goal: args[1].(*ASTTerm)} }},
		{Syn: `Clause -> Term`, Sem: func(args []any) any { return &ASTRule{Head: args[0].(*ASTTerm)} }},
		{Syn: `Clause -> Term "<-" Terms`, Sem: func(args []any) any {
			return &ASTRule{Head: args[0].(*ASTTerm), Tail: args[2].([]*ASTTerm)}
		}},
		{Syn: `Terms -> Terms "," Term`, Sem: func(args []any) any {
			return append(args[0].([]*ASTTerm), args[2].(*ASTTerm))
		}},
		{Syn: `Terms -> Term`, Sem: func(args []any) any { return []*ASTTerm{args[0].(*ASTTerm)} }},
		{Syn: `Term -> ident`, Sem: func(args []any) any { return &ASTTerm{Functor: args[0].(string)} }},
		{Syn: `Term -> ident "(" Args ")"`, Sem: func(args []any) any {
			return &ASTTerm{Functor: args[0].(string), Args: args[2].([]ASTExpr)}
		}},
		{Syn: `Args -> Args "," Expr`, Sem: func(args []any) any { return append(args[0].([]ASTExpr), args[2].(ASTExpr)) }},
		{Syn: `Args -> Expr`, Sem: func(args []any) any { return []ASTExpr{args[0].(ASTExpr)} }},
		{Syn: `Expr -> Term`, Sem: func(args []any) any { return args[0] }},
		{Syn: `Expr -> integer`, Sem: func(args []any) any { return &ASTInteger{Value: args[0].(int)} }},
	}))
)

// AST is an abstract syntax tree.
type AST interface {
	fmt.Stringer
}

// ASTExpr is an expression node.
type ASTExpr interface {
	AST
}

// ASTTerm is a term node. A term without arguments whose functor
// starts with '$' denotes a variable.
type ASTTerm struct {
	Functor string
	Args    []ASTExpr
	Loc     textkit.Location
}

func (t *ASTTerm) String() string {
	var sb strings.Builder
	sb.WriteString(t.Functor)
	if len(t.Args) > 0 {
		sb.WriteRune('(')
		for i, arg := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteRune(')')
	}
	return sb.String()
}

func (t *ASTTerm) isVar() bool { return strings.HasPrefix(t.Functor, "$") }

// Atom returns the atom represented by the node.
func (t *ASTTerm) Atom() (*Atom, error) {
	if t.isVar() {
		return nil, fmt.Errorf("%w: variable '%s' used as a predicate", ErrIllFormed, t.Functor)
	}
	args := make([]Term, len(t.Args))
	for i, arg := range t.Args {
		x, err := astToTerm(arg)
		if err != nil {
			return nil, err
		}
		args[i] = x
	}
	return &Atom{Name: t.Functor, Args: args}, nil
}

func astToTerm(e ASTExpr) (Term, error) {
	switch x := e.(type) {
	case *ASTInteger:
		return &Atom{Name: strconv.Itoa(x.Value)}, nil
	case *ASTTerm:
		if x.isVar() {
			if len(x.Args) > 0 || len(x.Functor) == 1 {
				return nil, fmt.Errorf("%w: malformed variable '%s'", ErrIllFormed, x)
			}
			return NewVar(x.Functor[1:]), nil
		}
		return x.Atom()
	default:
		panic(fmt.Sprintf("unhandled type when converting to term: %T", e))
	}
}

// ASTInteger is an integer node.
type ASTInteger struct {
	Value int
	Loc   textkit.Location
}

func (i *ASTInteger) String() string { return strconv.Itoa(i.Value) }

// ASTRule is a rule node.
type ASTRule struct {
	Head *ASTTerm
	Tail []*ASTTerm
	Loc  textkit.Location
}

func (r *ASTRule) String() string {
	var sb strings.Builder
	sb.WriteString(r.Head.String())
	for i, t := range r.Tail {
		if i == 0 {
			sb.WriteString(" <- ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

// Rule returns the rule for the node.
func (r *ASTRule) Rule() (*Rule, error) {
	head, err := r.Head.Atom()
	if err != nil {
		return nil, err
	}
	tail := make([]*Atom, len(r.Tail))
	for i, t := range r.Tail {
		a, err := t.Atom()
		if err != nil {
			return nil, err
		}
		tail[i] = a
	}
	return &Rule{Conclusion: head, Premises: tail}, nil
}

// ASTQuery is a query node.
type ASTQuery struct {
	Goal *ASTTerm
	Loc  textkit.Location
}

func (q *ASTQuery) String() string { return "?" + q.Goal.String() }

func parseCode(code string) (interface{}, error) {
	tok := textkit.Tokeniser{
		CommentPrefix: "#",
		StringRune:    '"',
		IdentChars:    "$_",
	}
	tokens := tok.Tokenise(code, "")
	tokens = lrparser.CoalesceSymbols(tokens, []string{"<-"})
	return grammar.Parse(tokens)
}

func isBlank(code string) bool {
	for _, line := range strings.Split(code, "\n") {
		line, _, _ = strings.Cut(line, "#")
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// ParseProgram parses program text into statements.
// Variables in the statements carry no identifiers.
func ParseProgram(code string) ([]Statement, error) {
	if isBlank(code) {
		return nil, nil
	}
	r, err := parseCode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllFormed, err)
	}
	nodes, ok := r.([]AST)
	if !ok {
		panic("unexpected type of parser output")
	}
	stmts := make([]Statement, 0, len(nodes))
	for _, node := range nodes {
		switch node := node.(type) {
		case *ASTRule:
			rule, err := node.Rule()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, &Definition{Rule: rule})
		case *ASTQuery:
			goal, err := node.Goal.Atom()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, &Query{Goal: goal})
		default:
			panic("unexpected type of AST")
		}
	}
	return stmts, nil
}

// MustParseAtom parses a single atom and panics on failure.
// It is meant for tests and program literals.
func MustParseAtom(code string) *Atom {
	stmts, err := ParseProgram(code)
	if err != nil {
		panic(err)
	}
	if len(stmts) != 1 {
		panic("expected a single atom: " + code)
	}
	d, ok := stmts[0].(*Definition)
	if !ok || len(d.Rule.Premises) > 0 {
		panic("expected a single atom: " + code)
	}
	return d.Rule.Conclusion
}
