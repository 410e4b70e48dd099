package bench

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/nodemap"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// Write encodes d in BENCH format. Dangling gates are not written.
//
// Every gate becomes a LUT whose table absorbs complemented fan-ins; output
// inversions and register inversions are written as NOT gates.
func Write(w io.Writer, d *Design) error {
	ntk := d.Network
	if ntk.NumPIs() != len(d.Inputs) || ntk.NumPOs() != len(d.Outputs) || ntk.NumROs() != len(d.Registers) {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "design names %d/%d/%d signals, network has %d/%d/%d",
			len(d.Inputs), len(d.Outputs), len(d.Registers), ntk.NumPIs(), ntk.NumPOs(), ntk.NumROs())
	}

	nw := newNamer()
	names := nodemap.NewDense[string](ntk)
	names.Set(0, "gnd")
	for i, pi := range ntk.PIs() {
		names.Set(pi, nw.reserve(d.Inputs[i]))
		nw.input[d.Inputs[i]] = true
	}
	for i, ro := range ntk.ROs() {
		names.Set(ro, nw.reserve(d.Registers[i]))
		nw.input[d.Registers[i]] = true
	}
	for _, o := range d.Outputs {
		nw.used[o] = true
	}

	bw := bufio.NewWriter(w)
	order := ntk.Topo()
	gates := 0
	for _, n := range order {
		if ntk.IsGate(n) {
			gates++
		}
	}
	fmt.Fprintf(bw, "# %d inputs, %d outputs, %d registers, %d gates\n",
		ntk.NumPIs(), ntk.NumPOs(), ntk.NumROs(), gates)
	for _, name := range d.Inputs {
		fmt.Fprintf(bw, "INPUT(%s)\n", name)
	}
	for _, name := range d.Outputs {
		fmt.Fprintf(bw, "OUTPUT(%s)\n", name)
	}

	args := make([]string, 0, 8)
	for _, n := range order {
		if !ntk.IsGate(n) {
			continue
		}
		names.Set(n, nw.fresh(fmt.Sprintf("n%d", n)))
		fanins := ntk.Fanins(n)
		args = args[:0]
		vars := make([]truth.Table, len(fanins))
		for i, f := range fanins {
			args = append(args, names.At(f.Node()))
			vars[i] = truth.Nth(len(fanins), i).NotIf(f.IsComplemented())
		}
		fn := truth.Compose(ntk.Function(n), vars)
		fmt.Fprintf(bw, "%s = LUT 0x%s (%s)\n", names.At(n), fn.Hex(), strings.Join(args, ", "))
	}

	written := make(map[string]network.Signal)
	for i, po := range ntk.POs() {
		name := d.Outputs[i]
		if prev, ok := written[name]; ok {
			if prev != po {
				return cerrors.New(cerrors.ErrCodeInvalidInput, "output %q is driven by two different signals", name)
			}
			continue
		}
		written[name] = po
		driver := names.At(po.Node())
		if driver == name && !po.IsComplemented() {
			continue
		}
		if nw.input[name] {
			return cerrors.New(cerrors.ErrCodeInvalidInput, "output %q shares its name with an input but not its signal", name)
		}
		fmt.Fprintf(bw, "%s\n", assign(name, driver, po))
	}

	for i, ri := range ntk.RIs() {
		src := names.At(ri.Node())
		if ri.IsComplemented() {
			inv := nw.fresh(d.Registers[i] + "_d")
			fmt.Fprintf(bw, "%s\n", assign(inv, src, ri))
			src = inv
		}
		fmt.Fprintf(bw, "%s = DFF(%s)\n", d.Registers[i], src)
	}
	return bw.Flush()
}

// assign defines name as s, whose node is called driver.
func assign(name, driver string, s network.Signal) string {
	switch {
	case s.Node() == 0 && s.IsComplemented():
		return name + " = vdd"
	case s.IsComplemented():
		return fmt.Sprintf("%s = NOT(%s)", name, driver)
	}
	return fmt.Sprintf("%s = %s", name, driver)
}

// WriteFile writes d to a BENCH file at path.
func WriteFile(path string, d *Design) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// namer hands out signal names that do not collide.
type namer struct {
	used  map[string]bool
	input map[string]bool
}

func newNamer() *namer {
	return &namer{
		used:  map[string]bool{"gnd": true, "vdd": true},
		input: make(map[string]bool),
	}
}

func (nw *namer) reserve(name string) string {
	nw.used[name] = true
	return name
}

func (nw *namer) fresh(base string) string {
	name := base
	for i := 1; nw.used[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	nw.used[name] = true
	return name
}
