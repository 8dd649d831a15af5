package horn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAnswer(t *testing.T) {
	req := require.New(t)

	vars := []QueryVar{{Name: "x", ID: 0}, {Name: "y", ID: 1}, {Name: "z", ID: 2}}
	sol := Substitution{
		0: NewAtom("a"),
		1: NewAtom("f", idVar("x", 0)),
	}
	bs := Answer(vars, sol)
	req.Equal("[$x = a, $y = f(a), $z = [missing]]", FormatAnswer(bs))
	req.Nil(bs[2].Value)
	req.Equal("[]", FormatAnswer(nil))
}
