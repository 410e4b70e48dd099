package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/cutrewrite/pkg/io/bench"
	"github.com/matzehuels/cutrewrite/pkg/network"
)

type graph struct {
	Inputs    []port     `json:"inputs"`
	Registers []register `json:"registers,omitempty"`
	Nodes     []node     `json:"nodes"`
	Outputs   []output   `json:"outputs"`
}

type port struct {
	Name string `json:"name"`
	ID   uint32 `json:"id"`
}

type edge struct {
	From         uint32 `json:"from"`
	Complemented bool   `json:"complemented,omitempty"`
}

type node struct {
	ID       uint32 `json:"id"`
	Function string `json:"function"`
	Fanins   []edge `json:"fanins"`
}

type output struct {
	Name string `json:"name"`
	edge
}

type register struct {
	Name string `json:"name"`
	ID   uint32 `json:"id"`
	Next edge   `json:"next"`
}

func toEdge(s network.Signal) edge {
	return edge{From: uint32(s.Node()), Complemented: s.IsComplemented()}
}

// WriteJSON encodes the live part of a design as JSON and writes it to w.
// The output can be read back with [ReadJSON].
func WriteJSON(d *bench.Design, w io.Writer) error {
	ntk := d.Network
	out := graph{
		Inputs:  make([]port, 0, ntk.NumPIs()),
		Nodes:   []node{},
		Outputs: make([]output, 0, ntk.NumPOs()),
	}
	for i, n := range ntk.PIs() {
		out.Inputs = append(out.Inputs, port{Name: d.Inputs[i], ID: uint32(n)})
	}
	ris := ntk.RIs()
	for i, n := range ntk.ROs() {
		out.Registers = append(out.Registers, register{Name: d.Registers[i], ID: uint32(n), Next: toEdge(ris[i])})
	}
	for _, n := range ntk.Topo() {
		if !ntk.IsGate(n) {
			continue
		}
		nd := node{ID: uint32(n), Function: ntk.Function(n).Hex()}
		for _, f := range ntk.Fanins(n) {
			nd.Fanins = append(nd.Fanins, toEdge(f))
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for i, po := range ntk.POs() {
		out.Outputs = append(out.Outputs, output{Name: d.Outputs[i], edge: toEdge(po)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a design to a JSON file at path.
func ExportJSON(d *bench.Design, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
