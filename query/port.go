package query

import (
	"cmp"

	"github.com/expr-lang/expr"
)

// The expr runtime compares unsigned and signed integers after converting
// both to int, which wraps ports above math.MaxInt. Comparisons between port
// and an integer are therefore routed through these overloads.
var portOperators = []struct {
	op, fn string
	test   func(c int) bool
}{
	{"==", "portEqual", func(c int) bool { return c == 0 }},
	{"!=", "portNotEqual", func(c int) bool { return c != 0 }},
	{"<", "portLess", func(c int) bool { return c < 0 }},
	{"<=", "portLessOrEqual", func(c int) bool { return c <= 0 }},
	{">", "portGreater", func(c int) bool { return c > 0 }},
	{">=", "portGreaterOrEqual", func(c int) bool { return c >= 0 }},
}

// portOptions returns the compiler options overloading the comparison
// operators for (uint, int) and (int, uint) operands.
func portOptions() []expr.Option {
	opts := make([]expr.Option, 0, 2*len(portOperators))

	for _, o := range portOperators {
		test := o.test

		opts = append(opts,
			expr.Function(o.fn,
				func(params ...any) (any, error) {
					return test(comparePort(params[0], params[1])), nil
				},
				new(func(uint, int) bool),
				new(func(int, uint) bool),
			),
			expr.Operator(o.op, o.fn),
		)
	}

	return opts
}

// comparePort compares a and b, one of which is a uint and the other an int.
func comparePort(a, b any) int {
	if u, ok := a.(uint); ok {
		return compareUint(u, b.(int))
	}

	return -compareUint(b.(uint), a.(int))
}

func compareUint(u uint, i int) int {
	if i < 0 {
		return 1
	}

	return cmp.Compare(u, uint(i))
}
