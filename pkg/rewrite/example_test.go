package rewrite_test

import (
	"fmt"

	"github.com/matzehuels/cutrewrite/pkg/cleanup"
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/resyn"
	"github.com/matzehuels/cutrewrite/pkg/rewrite"
)

func ExampleRun() {
	// maj(a, maj(a, b, c), c) simplifies to maj(a, b, c).
	ntk := network.New()
	a, b, c := ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI()
	ntk.CreatePO(ntk.CreateMaj(a, ntk.CreateMaj(a, b, c), c))
	fmt.Println("Gates before:", ntk.NumGates())

	st := rewrite.Run(ntk, resyn.Majority{}, rewrite.DefaultParams())
	ntk = cleanup.Dangling(ntk)
	fmt.Println("Substituted:", st.Substituted)
	fmt.Println("Gates after:", ntk.NumGates())
	// Output:
	// Gates before: 2
	// Substituted: 1
	// Gates after: 1
}

func ExampleRun_lut() {
	// Two differently bracketed copies of a & b & c, ORed together.
	ntk := network.New()
	a, b, c := ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI()
	y := ntk.CreateAnd(ntk.CreateAnd(a, b), c)
	z := ntk.CreateAnd(a, ntk.CreateAnd(b, c))
	ntk.CreatePO(ntk.CreateOr(y, z))

	st := rewrite.Run(ntk, resyn.LUT{}, rewrite.DefaultParams())
	ntk = cleanup.Dangling(ntk)
	fmt.Println("Gain:", st.CommittedGain)
	fmt.Println("Gates after:", ntk.NumGates())
	// Output:
	// Gain: 4
	// Gates after: 1
}
