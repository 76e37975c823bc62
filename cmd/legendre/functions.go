package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/tuneinsight/legendre/quadrature"
	"github.com/tuneinsight/legendre/utils"
)

var functions = map[string]quadrature.Function{
	"sin": math.Sin,
	"cos": math.Cos,
	"exp": math.Exp,

	// exp(sqrt(|x/7|)), projected by the default run.
	"expsqrt": func(x float64) float64 { return math.Exp(math.Sqrt(math.Abs(x / 7))) },
	"x2":      func(x float64) float64 { return x * x },
	"x3":      func(x float64) float64 { return x * x * x },
	"runge":   func(x float64) float64 { return 1 / (1 + 25*x*x) },
	"abs":     math.Abs,
	"sign": func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	},
}

func getFunction(name string) (quadrature.Function, error) {
	f, ok := functions[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown function %q, available functions are %s", name, strings.Join(utils.GetSortedKeys(functions), ", "))
	}
	return f, nil
}
