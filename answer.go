package horn

import (
	"strings"
)

// Binding is the value of a query variable in a solution.
// Value is nil when the solution does not bind the variable.
type Binding struct {
	Name  string
	Value Term
}

func (b Binding) String() string {
	if b.Value == nil {
		return "$" + b.Name + " = [missing]"
	}
	return "$" + b.Name + " = " + b.Value.String()
}

// Answer resolves a solution against the query's variables.
func Answer(vars []QueryVar, sol Substitution) []Binding {
	r := make([]Binding, len(vars))
	for i, v := range vars {
		r[i].Name = v.Name
		if t, ok := sol.Resolve(v.ID); ok {
			r[i].Value = t
		}
	}
	return r
}

// FormatAnswer formats the bindings as a bracketed list.
func FormatAnswer(bs []Binding) string {
	var sb strings.Builder
	sb.WriteRune('[')
	for i, b := range bs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.String())
	}
	sb.WriteRune(']')
	return sb.String()
}
