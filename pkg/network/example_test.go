package network_test

import (
	"fmt"

	"github.com/matzehuels/cutrewrite/pkg/network"
)

func ExampleNetwork_CreateAnd() {
	ntk := network.New()
	a, b := ntk.CreatePI(), ntk.CreatePI()

	// Structural hashing returns the existing gate.
	x := ntk.CreateAnd(a, b)
	y := ntk.CreateAnd(a, b)
	fmt.Println("Same gate:", x == y)
	fmt.Println("Gates:", ntk.NumGates())

	ntk.CreatePO(x.Not())
	fmt.Println("Output:", ntk.SimulateOutputs()[0].Hex())
	// Output:
	// Same gate: true
	// Gates: 1
	// Output: 7
}
