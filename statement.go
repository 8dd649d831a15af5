package horn

// Statement is a statement of a program: a *Definition or a *Query.
type Statement interface {
	statement()
	String() string
}

// Definition is a statement adding a rule to the knowledge base.
type Definition struct {
	Rule *Rule
}

func (*Definition) statement() {}

func (d *Definition) String() string { return d.Rule.String() }

// Query is a statement asking for the solutions of a goal.
type Query struct {
	Goal *Atom
}

func (*Query) statement() {}

func (q *Query) String() string { return "?" + q.Goal.String() }
