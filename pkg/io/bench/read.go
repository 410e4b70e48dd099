package bench

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// Design is a network together with the names of its inputs, outputs and
// registers.
type Design struct {
	Network *network.Network
	// Inputs names the primary inputs in order.
	Inputs []string
	// Outputs names the primary outputs in order.
	Outputs []string
	// Registers names the flip-flops in order. Register i drives register
	// output i and is driven by register input i.
	Registers []string
}

// NewDesign wraps ntk with generated names.
func NewDesign(ntk *network.Network) *Design {
	d := &Design{Network: ntk}
	for i := range ntk.NumPIs() {
		d.Inputs = append(d.Inputs, fmt.Sprintf("pi%d", i))
	}
	for i := range ntk.NumPOs() {
		d.Outputs = append(d.Outputs, fmt.Sprintf("po%d", i))
	}
	for i := range ntk.NumROs() {
		d.Registers = append(d.Registers, fmt.Sprintf("ff%d", i))
	}
	return d
}

// WithNetwork returns a design with the names of d and another network of
// the same interface, such as the result of an optimization.
func (d *Design) WithNetwork(ntk *network.Network) *Design {
	if ntk.NumPIs() != len(d.Inputs) || ntk.NumPOs() != len(d.Outputs) || ntk.NumROs() != len(d.Registers) {
		panic("bench: network interface does not match design")
	}
	return &Design{Network: ntk, Inputs: d.Inputs, Outputs: d.Outputs, Registers: d.Registers}
}

// ReadFile reads a BENCH file.
func ReadFile(path string) (*Design, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return read(path, f)
}

// Read parses a BENCH netlist from r.
func Read(r io.Reader) (*Design, error) {
	return read("", r)
}

// ReadString parses a BENCH netlist held in s.
func ReadString(s string) (*Design, error) {
	return read("", strings.NewReader(s))
}

func read(name string, r io.Reader) (*Design, error) {
	ast, err := parser.Parse(name, r)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "parse bench")
	}
	b := &builder{
		ntk:   network.New(),
		defs:  make(map[string]*gate),
		sigs:  make(map[string]network.Signal),
		state: make(map[string]uint8),
	}
	return b.build(ast)
}

const (
	visiting uint8 = 1
	done     uint8 = 2
)

type builder struct {
	ntk   *network.Network
	defs  map[string]*gate
	sigs  map[string]network.Signal
	state map[string]uint8
}

func errorf(pos lexer.Position, format string, args ...any) error {
	return cerrors.New(cerrors.ErrCodeInvalidFormat, "%d:%d: %s", pos.Line, pos.Column, fmt.Sprintf(format, args...))
}

func (b *builder) build(ast *file) (*Design, error) {
	d := &Design{Network: b.ntk}
	var (
		dffs   []*gate
		outPos []lexer.Position
	)
	inputs := make(map[string]bool)

	for _, s := range ast.Stmts {
		switch {
		case s.Input != nil:
			if inputs[*s.Input] {
				return nil, errorf(s.Pos, "input %q declared twice", *s.Input)
			}
			inputs[*s.Input] = true
			d.Inputs = append(d.Inputs, *s.Input)
		case s.Output != nil:
			d.Outputs = append(d.Outputs, *s.Output)
			outPos = append(outPos, s.Pos)
		case s.Gate != nil:
			g := s.Gate
			if _, dup := b.defs[g.Name]; dup {
				return nil, errorf(g.Pos, "signal %q defined twice", g.Name)
			}
			b.defs[g.Name] = g
			if strings.EqualFold(g.Kind, "DFF") {
				if len(g.Args) != 1 {
					return nil, errorf(g.Pos, "DFF %q needs one input, got %d", g.Name, len(g.Args))
				}
				dffs = append(dffs, g)
			}
		}
	}
	for _, name := range d.Inputs {
		if _, clash := b.defs[name]; clash {
			return nil, errorf(b.defs[name].Pos, "input %q is also defined as a gate", name)
		}
	}

	// Inputs come first, then register outputs, so every combinational
	// input exists before any gate is built.
	for _, name := range d.Inputs {
		b.sigs[name] = b.ntk.CreatePI()
		b.state[name] = done
	}
	for _, g := range dffs {
		b.sigs[g.Name] = b.ntk.CreateRO()
		b.state[g.Name] = done
		d.Registers = append(d.Registers, g.Name)
	}

	outs := make([]network.Signal, len(d.Outputs))
	for i, name := range d.Outputs {
		s, err := b.resolve(name, outPos[i])
		if err != nil {
			return nil, err
		}
		outs[i] = s
	}
	next := make([]network.Signal, len(dffs))
	for i, g := range dffs {
		s, err := b.resolve(g.Args[0], g.Pos)
		if err != nil {
			return nil, err
		}
		next[i] = s
	}
	for _, s := range outs {
		b.ntk.CreatePO(s)
	}
	for _, s := range next {
		b.ntk.CreateRI(s)
	}
	return d, nil
}

// resolve returns the signal called name, building its fan-in cone first.
func (b *builder) resolve(name string, at lexer.Position) (network.Signal, error) {
	switch b.state[name] {
	case done:
		return b.sigs[name], nil
	case visiting:
		return 0, errorf(at, "combinational cycle through %q", name)
	}
	g, ok := b.defs[name]
	if !ok {
		switch strings.ToLower(name) {
		case "gnd":
			return b.ntk.Constant(false), nil
		case "vdd":
			return b.ntk.Constant(true), nil
		}
		return 0, errorf(at, "undefined signal %q", name)
	}

	b.state[name] = visiting
	args := make([]network.Signal, len(g.Args))
	for i, a := range g.Args {
		s, err := b.resolve(a, g.Pos)
		if err != nil {
			return 0, err
		}
		args[i] = s
	}
	s, err := b.gate(g, args)
	if err != nil {
		return 0, err
	}
	b.sigs[name] = s
	b.state[name] = done
	return s, nil
}

func (b *builder) gate(g *gate, args []network.Signal) (network.Signal, error) {
	ntk := b.ntk
	if g.Table != "" {
		fn, err := truth.FromHex(len(args), g.Table)
		if err != nil {
			return 0, errorf(g.Pos, "LUT %q: %v", g.Name, err)
		}
		if len(args) == 0 {
			return ntk.Constant(fn.Bit(0)), nil
		}
		return ntk.CreateNode(args, fn), nil
	}

	unary := func(f func(network.Signal) network.Signal) (network.Signal, error) {
		if len(args) != 1 {
			return 0, errorf(g.Pos, "%s %q needs one input, got %d", g.Kind, g.Name, len(args))
		}
		return f(args[0]), nil
	}
	nary := func(op func(a, b network.Signal) network.Signal, invert bool) (network.Signal, error) {
		if len(args) == 0 {
			return 0, errorf(g.Pos, "%s %q has no inputs", g.Kind, g.Name)
		}
		return ntk.CreateNary(args, op, 0).NotIf(invert), nil
	}

	switch strings.ToUpper(g.Kind) {
	case "AND":
		return nary(ntk.CreateAnd, false)
	case "NAND":
		return nary(ntk.CreateAnd, true)
	case "OR":
		return nary(ntk.CreateOr, false)
	case "NOR":
		return nary(ntk.CreateOr, true)
	case "XOR":
		return nary(ntk.CreateXor, false)
	case "XNOR":
		return nary(ntk.CreateXor, true)
	case "NOT", "INV":
		return unary(ntk.CreateNot)
	case "BUF", "BUFF":
		return unary(ntk.CreateBuf)
	}
	if g.Args == nil {
		// x = y
		return b.resolve(g.Kind, g.Pos)
	}
	return 0, errorf(g.Pos, "unknown gate type %q", g.Kind)
}
