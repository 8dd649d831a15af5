package horn

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestEngineExec(t *testing.T) {
	req := require.New(t)

	e := NewEngine()
	var r []string
	err := e.Exec(`
		p(a) p(b)
		?p($x)
		q(c)
		?q($y)
	`, func(q *Query, s *Solver) error {
		sols, err := s.Take(0)
		if err != nil {
			return err
		}
		for _, sol := range sols {
			r = append(r, q.String()+" "+FormatAnswer(Answer(s.Vars(), sol)))
		}
		return nil
	})
	req.NoError(err)
	req.Equal([]string{"?p($x) [$x = a]", "?p($x) [$x = b]", "?q($y) [$y = c]"}, r)
}

func TestEngineExecStopsAtError(t *testing.T) {
	req := require.New(t)

	e := NewEngine()
	var queries int
	err := e.Exec(`
		num(z)
		num(a, b)
		num(s(z))
		?num($x)
	`, func(q *Query, s *Solver) error {
		queries++
		return nil
	})
	var ame *ArityMismatchError
	req.ErrorAs(err, &ame)
	req.Equal("num", ame.Predicate)
	req.Equal(1, ame.Expected)
	req.Equal(2, ame.Actual)
	req.Equal(0, queries)
	req.Len(e.KnowledgeBase().RulesFor("num"), 1)
}

func TestEngineHandlerError(t *testing.T) {
	req := require.New(t)

	stop := errors.New("stop")
	e := NewEngine()
	err := e.Exec(`p(a) ?p($x) p(b)`, func(q *Query, s *Solver) error { return stop })
	req.ErrorIs(err, stop)
	req.Len(e.KnowledgeBase().RulesFor("p"), 1)
}

func TestEngineLogging(t *testing.T) {
	req := require.New(t)

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.TraceLevel)

	e := NewEngine(WithEngineLogger(log))
	req.NoError(e.Exec(`p(a)`, nil))
	entry := hook.LastEntry()
	req.NotNil(entry)
	req.Equal("rule defined", entry.Message)
	req.Equal("p/1", entry.Data["predicate"])

	s, err := e.Query(MustParseAtom(`p($x)`))
	req.NoError(err)
	req.Equal("query submitted", hook.LastEntry().Message)

	_, ok, err := s.Next()
	req.NoError(err)
	req.True(ok)
	entry = hook.LastEntry()
	req.Equal("expanding goal", entry.Message)
	req.Equal(logrus.TraceLevel, entry.Level)
	req.Equal("p($x)", entry.Data["goal"])
	req.Equal("p($x)", entry.Data["query"])

	hook.Reset()
	req.Error(e.Define(NewFact("p", NewAtom("a"), NewAtom("b"))))
	req.Equal("rule rejected", hook.LastEntry().Message)
}
