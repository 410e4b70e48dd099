// Package io loads and saves designs in the formats the command line
// understands.
//
// # Formats
//
// The format is chosen from the file extension:
//
//   - .bench: BENCH netlists, see [bench]
//   - .json: the JSON graph format described below
//   - .dot: Graphviz source, save only
//   - .svg: a rendered Graphviz diagram, save only
//
// # JSON Format
//
// The JSON format lists inputs, registers, gates and outputs by node id.
// Id 0 is the constant false node. Gates appear in topological order and
// reference their fan-ins by id, with an optional complement flag:
//
//	{
//	  "inputs": [{"name": "a", "id": 1}, {"name": "b", "id": 2}],
//	  "nodes": [
//	    {"id": 3, "function": "8", "fanins": [{"from": 1}, {"from": 2, "complemented": true}]}
//	  ],
//	  "outputs": [{"name": "y", "from": 3, "complemented": true}]
//	}
//
// Functions are truth tables in hexadecimal, most significant digit first,
// with fan-in i as variable i. Registers carry the id of their output and
// the edge that drives their input.
//
// Use [ReadJSON] and [WriteJSON] for streams, or [Load] and [Save] for
// files of any supported format.
//
// [bench]: github.com/matzehuels/cutrewrite/pkg/io/bench
package io
