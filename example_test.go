package symcalc_test

import (
	"fmt"

	"github.com/zephyrtronium/symcalc"
)

func ExampleSolver_Solve() {
	s := symcalc.NewSolver()
	sol, err := s.Solve(symcalc.Request{
		Expression: "diff(a x^3, x) + integrate(2x, x)",
		Terms:      map[string]string{"a": "b/3", "b": "6"},
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(sol.Exact)

	// Output:
	// 7*x^2 + C₀
}

func ExampleResolveTerms() {
	terms, err := symcalc.ResolveTerms(map[string]string{"a": "b", "b": "5", "c": ""})
	if err != nil {
		panic(err)
	}
	fmt.Println(terms["a"], terms["b"], terms["c"])

	// Output:
	// 5 5 c
}

func ExampleInsertImplicitMultiplication() {
	fmt.Println(symcalc.InsertImplicitMultiplication("2x(y+1)(y-1)"))

	// Output:
	// 2*x*(y+1)*(y-1)
}
