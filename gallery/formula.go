package gallery

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gonum.org/v1/gonum/floats"
)

// mathEnv holds the functions and constants formulas may call. Names that
// expr already provides as builtins (abs, ceil, floor, round, max, min,
// int) are not redefined.
func mathEnv() map[string]any {
	return map[string]any{
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
		"exp":   math.Exp,
		"log":   math.Log,
		"log10": math.Log10,
		"sqrt":  math.Sqrt,
		"pow":   math.Pow,
		"hypot": math.Hypot,
		"sign":  sign,
		"mod":   floorMod,
		"pi":    math.Pi,
		"e":     math.E,
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// floorMod takes the sign of the divisor, so mod(-1, 3) is 2.
func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// Expression is a compiled formula over a fixed set of variables.
type Expression struct {
	src     string
	vars    []string
	program *vm.Program
	env     map[string]any
}

// Compile compiles src for evaluation with the named float variables.
func Compile(src string, vars ...string) (*Expression, error) {
	env := mathEnv()
	for _, v := range vars {
		env[v] = 0.0
	}
	program, err := expr.Compile(src, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &Expression{src: src, vars: vars, program: program, env: env}, nil
}

// String returns the source text.
func (e *Expression) String() string { return e.src }

// Eval evaluates the expression with values bound to the variables in the
// order they were given to Compile.
func (e *Expression) Eval(values ...float64) (float64, error) {
	if len(values) != len(e.vars) {
		return 0, fmt.Errorf("eval %q: want %d values, got %d", e.src, len(e.vars), len(values))
	}
	for i, v := range e.vars {
		e.env[v] = values[i]
	}
	out, err := expr.Run(e.program, e.env)
	if err != nil {
		return 0, fmt.Errorf("eval %q: %w", e.src, err)
	}
	f, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("eval %q: result %T is not a number", e.src, out)
	}
	return f, nil
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := floats.Span(make([]float64, n), lo, hi)
	out[n-1] = hi
	return out
}

// EvalCurve evaluates a formula in the variable v over xs. Points where
// the result is not finite are dropped; the surviving abscissae are
// returned alongside.
func EvalCurve(src, v string, xs []float64) (keptX, ys []float64, err error) {
	e, err := Compile(src, v)
	if err != nil {
		return nil, nil, err
	}
	for _, x := range xs {
		y, err := e.Eval(x)
		if err != nil {
			return nil, nil, err
		}
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		keptX = append(keptX, x)
		ys = append(ys, y)
	}
	if len(ys) == 0 {
		return nil, nil, fmt.Errorf("%q has no finite values over the domain", src)
	}
	return keptX, ys, nil
}

// EvalGrid evaluates a formula in X and Y over the mesh of xs and ys. Row r
// holds Y = ys[r]. Every cell must be finite.
func EvalGrid(src string, xs, ys []float64) ([][]float64, error) {
	e, err := Compile(src, "X", "Y")
	if err != nil {
		return nil, err
	}
	grid := make([][]float64, len(ys))
	for r, y := range ys {
		row := make([]float64, len(xs))
		for c, x := range xs {
			z, err := e.Eval(x, y)
			if err != nil {
				return nil, err
			}
			if math.IsNaN(z) || math.IsInf(z, 0) {
				return nil, fmt.Errorf("%q is not finite at X=%g, Y=%g", src, x, y)
			}
			row[c] = z
		}
		grid[r] = row
	}
	return grid, nil
}
