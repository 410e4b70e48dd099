// Package aig converts networks into and-inverter graphs and checks them
// for combinational equivalence.
//
// A [Circuit] wraps gini's logic.C, which already hashes AND nodes
// structurally and folds constants. It implements the destination contract
// of [resyn.Run], so any k-LUT network can be decomposed into two-input ANDs
// with the [Shannon] oracle:
//
//	c := resyn.Run(ntk, aig.New(), aig.Shannon{})
//
// [Equivalent] builds a miter of two networks over shared inputs and asks
// gini's SAT solver for an assignment that makes some pair of outputs
// differ. Registers are treated as cut points: register outputs become
// inputs and register inputs become outputs.
package aig
