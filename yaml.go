package horn

import (
	"io"

	"gopkg.in/yaml.v3"
)

type source struct {
	Predicates []predicateSource `yaml:"predicates"`
	Program    string            `yaml:"program"`
}

type predicateSource struct {
	Functor string   `yaml:"functor"`
	Args    []string `yaml:"args"`
}

// LoadYAML loads facts and an optional program from a YAML reader:
//
//	predicates:
//	- functor: edge
//	  args: [a, b]
//	program: |
//	  path($x, $y) <- edge($x, $y)
//
// Facts are defined in order before the program is executed.
func (e *Engine) LoadYAML(r io.Reader, handler QueryHandler) error {
	var source source
	if err := yaml.NewDecoder(r).Decode(&source); err != nil {
		return err
	}
	for _, pred := range source.Predicates {
		args := make([]Term, len(pred.Args))
		for i, arg := range pred.Args {
			args[i] = &Atom{Name: arg}
		}
		if err := e.Define(NewFact(pred.Functor, args...)); err != nil {
			return err
		}
	}
	if source.Program != "" {
		return e.Exec(source.Program, handler)
	}
	return nil
}
