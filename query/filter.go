package query

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/svcdb/services"
)

// env is the expression environment of a single entry.
type env struct {
	Name     string   `expr:"name"`
	Port     uint     `expr:"port"`
	Protocol string   `expr:"protocol"`
	Aliases  []string `expr:"aliases"`
}

func makeEnv(e services.Entry) env {
	return env{
		Name:     e.Name,
		Port:     e.Port,
		Protocol: e.Protocol,
		Aliases:  e.Aliases,
	}
}

// Predicate is a compiled filter expression.
// A Predicate is safe for concurrent use.
type Predicate struct {
	source  string
	program *vm.Program // nil matches everything
}

// Compile compiles source into a Predicate. An empty (or blank) source
// matches every entry.
func Compile(source string) (*Predicate, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return &Predicate{}, nil
	}

	program, err := expr.Compile(source,
		append([]expr.Option{expr.Env(env{}), expr.AsBool()}, portOptions()...)...,
	)
	if err != nil {
		return nil, ErrFilterCompile.Wrap(err).
			With(slog.String("source", source))
	}

	return &Predicate{source: source, program: program}, nil
}

// String returns the source of the predicate.
func (p *Predicate) String() string { return p.source }

// Match reports whether e satisfies the predicate.
func (p *Predicate) Match(e services.Entry) (bool, error) {
	if p.program == nil {
		return true, nil
	}

	out, err := expr.Run(p.program, makeEnv(e))
	if err != nil {
		return false, ErrFilterEval.Wrap(err).
			With(slog.String("source", p.source), slog.String("name", e.Name))
	}

	ok, isBool := out.(bool)
	if !isBool {
		return false, ErrFilterEval.
			Wrap(fmt.Errorf("expected bool, got %T", out)).
			With(slog.String("source", p.source))
	}

	return ok, nil
}

// Filter returns the entries that satisfy p, in their original order.
func (p *Predicate) Filter(entries []services.Entry) ([]services.Entry, error) {
	kept := make([]services.Entry, 0, len(entries))

	for _, e := range entries {
		ok, err := p.Match(e)
		if err != nil {
			return nil, err
		}

		if ok {
			kept = append(kept, e)
		}
	}

	return kept, nil
}

// Filter compiles source once and returns the entries that satisfy it.
// See [Compile].
func Filter(entries []services.Entry, source string) ([]services.Entry, error) {
	p, err := Compile(source)
	if err != nil {
		return nil, err
	}

	return p.Filter(entries)
}
