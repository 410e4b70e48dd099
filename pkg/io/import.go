package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
	"github.com/matzehuels/cutrewrite/pkg/io/bench"
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// ReadJSON decodes a JSON design from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - An id is used twice, or is 0 for anything but the constant
//   - An edge references an id that is not defined earlier
//   - A function does not match the number of fan-ins
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*bench.Design, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "decode")
	}

	ntk := network.New()
	d := &bench.Design{Network: ntk}
	sigs := map[uint32]network.Signal{0: ntk.Constant(false)}
	define := func(id uint32, s network.Signal) error {
		if _, dup := sigs[id]; dup {
			return cerrors.New(cerrors.ErrCodeInvalidFormat, "id %d defined twice", id)
		}
		sigs[id] = s
		return nil
	}
	lookup := func(e edge) (network.Signal, error) {
		s, ok := sigs[e.From]
		if !ok {
			return 0, cerrors.New(cerrors.ErrCodeInvalidFormat, "reference to undefined id %d", e.From)
		}
		return s.NotIf(e.Complemented), nil
	}

	for _, p := range data.Inputs {
		if err := define(p.ID, ntk.CreatePI()); err != nil {
			return nil, fmt.Errorf("input %s: %w", p.Name, err)
		}
		d.Inputs = append(d.Inputs, p.Name)
	}
	for _, reg := range data.Registers {
		if err := define(reg.ID, ntk.CreateRO()); err != nil {
			return nil, fmt.Errorf("register %s: %w", reg.Name, err)
		}
		d.Registers = append(d.Registers, reg.Name)
	}

	var children []network.Signal
	for _, n := range data.Nodes {
		children = children[:0]
		for _, e := range n.Fanins {
			s, err := lookup(e)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", n.ID, err)
			}
			children = append(children, s)
		}
		if len(children) == 0 {
			return nil, cerrors.New(cerrors.ErrCodeInvalidFormat, "node %d has no fanins", n.ID)
		}
		fn, err := truth.FromHex(len(children), n.Function)
		if err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "node %d", n.ID)
		}
		if err := define(n.ID, ntk.CreateNode(children, fn)); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}

	for _, o := range data.Outputs {
		s, err := lookup(o.edge)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", o.Name, err)
		}
		ntk.CreatePO(s)
		d.Outputs = append(d.Outputs, o.Name)
	}
	for _, reg := range data.Registers {
		s, err := lookup(reg.Next)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", reg.Name, err)
		}
		ntk.CreateRI(s)
	}
	return d, nil
}

// ImportJSON reads a JSON file at path and returns the decoded design.
func ImportJSON(path string) (*bench.Design, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
