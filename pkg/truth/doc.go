// Package truth provides dynamic truth tables for small Boolean functions.
//
// A [Table] stores the complete value vector of an n-input function as a
// little-endian bit string: bit i is the function value under the input
// assignment whose j-th bit is the value of variable j. Tables are the
// currency exchanged between networks, cut enumerators and resynthesis
// oracles, so they are kept deliberately simple and allocation-light.
//
// # Construction
//
//	a := truth.Nth(3, 0)          // projection x0 over 3 variables
//	maj := truth.FromBits(3, 0xe8) // majority of three
//	f, err := truth.FromHex(2, "8") // two-input AND
//
// # Operations
//
// Bitwise operators ([Table.Not], [Table.And], [Table.Or], [Table.Xor])
// require operands of equal arity. Variable manipulation helpers
// ([Table.Cofactor0], [Table.Expand], [Table.Shrink]) move functions between
// variable spaces, and [Compose] evaluates a gate over child functions.
//
// Tables with more than [MaxVars] variables are rejected with a panic.
package truth
