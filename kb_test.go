package horn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	req := require.New(t)

	kb := NewKnowledgeBase()
	req.NoError(kb.Validate(NewAtom("num", NewAtom("z"))))
	req.NoError(kb.Validate(NewAtom("num", NewVar("x"))))

	err := kb.Validate(NewAtom("num", NewAtom("a"), NewAtom("b")))
	var ame *ArityMismatchError
	req.True(errors.As(err, &ame))
	req.Equal(&ArityMismatchError{Predicate: "num", Expected: 1, Actual: 2}, ame)
	req.Equal("arity of predicate 'num' is expected to be 1, but is 2", err.Error())

	arity, ok := kb.Arity("num")
	req.True(ok)
	req.Equal(1, arity)
	req.Empty(kb.RulesFor("num"))
}

func TestUpdate(t *testing.T) {
	t.Run("arity mismatch", func(t *testing.T) {
		req := require.New(t)

		kb := NewKnowledgeBase()
		req.NoError(kb.Update(NewFact("num", NewAtom("z"))))

		err := kb.Update(NewFact("num", NewAtom("a"), NewAtom("b")))
		var ame *ArityMismatchError
		req.ErrorAs(err, &ame)
		req.Equal(1, ame.Expected)
		req.Equal(2, ame.Actual)
		req.Len(kb.RulesFor("num"), 1)
	})

	t.Run("definition order", func(t *testing.T) {
		req := require.New(t)

		kb := NewKnowledgeBase()
		req.NoError(kb.Update(NewFact("p", NewAtom("a"))))
		req.NoError(kb.Update(NewFact("p", NewAtom("b"))))
		req.NoError(kb.Update(NewFact("p", NewAtom("c"))))

		var r []string
		for _, rule := range kb.RulesFor("p") {
			r = append(r, rule.String())
		}
		req.Equal([]string{"p(a)", "p(b)", "p(c)"}, r)
		req.Equal(3, kb.Len())
	})

	t.Run("premises are registered", func(t *testing.T) {
		req := require.New(t)

		kb := NewKnowledgeBase()
		req.NoError(kb.Update(&Rule{
			Conclusion: NewAtom("num", NewAtom("s", NewVar("x"))),
			Premises:   []*Atom{NewAtom("num", NewVar("x")), NewAtom("nat", NewVar("x"))},
		}))
		req.Equal([]Signature{{Name: "nat", Arity: 1}, {Name: "num", Arity: 1}}, kb.Signatures())
		req.Empty(kb.RulesFor("nat"))
		req.Len(kb.RulesFor("num"), 1)
	})

	t.Run("premise arity mismatch", func(t *testing.T) {
		req := require.New(t)

		kb := NewKnowledgeBase()
		req.NoError(kb.Update(NewFact("num", NewAtom("z"))))
		err := kb.Update(&Rule{
			Conclusion: NewAtom("even", NewVar("x")),
			Premises:   []*Atom{NewAtom("num", NewVar("x"), NewVar("y"))},
		})
		var ame *ArityMismatchError
		req.ErrorAs(err, &ame)
		req.Equal("num", ame.Predicate)
		_, ok := kb.Arity("even")
		req.False(ok)
	})

	t.Run("premise registrations are not rolled back", func(t *testing.T) {
		req := require.New(t)

		kb := NewKnowledgeBase()
		req.NoError(kb.Update(NewFact("num", NewAtom("z"))))
		err := kb.Update(&Rule{
			Conclusion: NewAtom("num", NewVar("x"), NewVar("y")),
			Premises:   []*Atom{NewAtom("fresh", NewVar("x"))},
		})
		req.ErrorAs(err, new(*ArityMismatchError))

		arity, ok := kb.Arity("fresh")
		req.True(ok)
		req.Equal(1, arity)
		req.Len(kb.RulesFor("num"), 1)
		req.Equal(1, kb.Len())

		err = kb.Update(NewFact("fresh", NewAtom("a"), NewAtom("b")))
		req.ErrorAs(err, new(*ArityMismatchError))
	})

	t.Run("assigned variable", func(t *testing.T) {
		req := require.New(t)

		kb := NewKnowledgeBase()
		err := kb.Update(NewFact("p", idVar("x", 3)))
		req.ErrorIs(err, ErrVarAlreadyAssigned)
		req.Empty(kb.RulesFor("p"))
	})

	t.Run("stored rules keep unassigned variables", func(t *testing.T) {
		req := require.New(t)

		kb := NewKnowledgeBase()
		req.NoError(kb.Update(NewFact("p", NewVar("x"))))
		v := kb.RulesFor("p")[0].Conclusion.Args[0].(*Var)
		req.False(v.HasID)
	})
}

func TestRulesForUndefined(t *testing.T) {
	req := require.New(t)

	var kb KnowledgeBase
	req.Nil(kb.RulesFor("missing"))
	req.NoError(kb.Validate(NewAtom("missing")))
	req.Nil(kb.RulesFor("missing"))
}
