// Package cleanup rebuilds networks without their dangling nodes.
package cleanup

import (
	"fmt"

	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/nodemap"
)

// Into copies the part of src reachable from its outputs into dst. cis are
// the dst signals standing for src's combinational inputs, in order. The
// returned signals are src's combinational outputs mapped into dst, primary
// outputs first; Into does not register them as outputs of dst.
//
// It panics if len(cis) differs from src.NumCIs().
func Into(src, dst *network.Network, cis []network.Signal) []network.Signal {
	if len(cis) != src.NumCIs() {
		panic(fmt.Sprintf("cleanup: %d input signals for %d inputs", len(cis), src.NumCIs()))
	}

	mapped := nodemap.NewDense[network.Signal](src)
	mapped.Set(0, dst.Constant(false))
	for i, ci := range src.CIs() {
		mapped.Set(ci, cis[i])
	}

	resolve := func(f network.Signal) network.Signal {
		return mapped.AtSignal(f).NotIf(f.IsComplemented())
	}

	var children []network.Signal
	for _, n := range src.Topo() {
		if !src.IsGate(n) {
			continue
		}
		children = children[:0]
		for _, f := range src.Fanins(n) {
			children = append(children, resolve(f))
		}
		mapped.Set(n, dst.Clone(src, n, children))
	}

	outs := make([]network.Signal, 0, src.NumCOs())
	for _, co := range src.COs() {
		outs = append(outs, resolve(co))
	}
	return outs
}

// Dangling returns a copy of src holding only the nodes its outputs depend
// on. Inputs, registers and outputs keep their order and polarity.
func Dangling(src *network.Network) *network.Network {
	dst := network.New()
	cis := make([]network.Signal, 0, src.NumCIs())
	for range src.NumPIs() {
		cis = append(cis, dst.CreatePI())
	}
	for range src.NumROs() {
		cis = append(cis, dst.CreateRO())
	}

	outs := Into(src, dst, cis)
	for i, s := range outs {
		if i < src.NumPOs() {
			dst.CreatePO(s)
		} else {
			dst.CreateRI(s)
		}
	}
	return dst
}
