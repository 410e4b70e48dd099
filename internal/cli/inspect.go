package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cutrewrite/pkg/cleanup"
	"github.com/matzehuels/cutrewrite/pkg/cut"
	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
	"github.com/matzehuels/cutrewrite/pkg/io/bench"
	"github.com/matzehuels/cutrewrite/pkg/io/dot"
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/pipeline"
)

func (c *CLI) cleanupCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:         "cleanup <netlist>",
		Short:       "Remove logic that drives no output",
		Args:        cobra.ExactArgs(1),
		Annotations: netlistAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDesign(args[0])
			if err != nil {
				return err
			}
			before := d.Network.NumGates()
			clean := d.WithNetwork(cleanup.Dangling(d.Network))
			if err := writeOutput(cmd, output, clean); err != nil {
				return err
			}
			c.Logger.Info("removed dangling gates", "removed", before-clean.Network.NumGates(), "gates", clean.Network.NumGates())
			if output != "" {
				printer{cmd.OutOrStdout()}.file(output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: BENCH on stdout)")
	return cmd
}

func (c *CLI) statsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "stats <netlist>...",
		Short:       "Print size and depth of netlists",
		Args:        cobra.MinimumNArgs(1),
		Annotations: netlistAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := make(map[string]pipeline.NetworkStats, len(args))
			p := printer{cmd.OutOrStdout()}
			for _, path := range args {
				d, err := loadDesign(path)
				if err != nil {
					return err
				}
				st := pipeline.Measure(d.Network)
				if asJSON {
					all[path] = st
					continue
				}
				p.networkStats(path, st)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(all)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) dotCommand() *cobra.Command {
	var (
		output   string
		detailed bool
	)
	cmd := &cobra.Command{
		Use:   "dot <netlist>",
		Short: "Draw a netlist with Graphviz",
		Long: `Write the netlist as Graphviz DOT source, or as SVG when --output ends in .svg.
Only logic reachable from an output is drawn.`,
		Args:        cobra.ExactArgs(1),
		Annotations: netlistAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDesign(args[0])
			if err != nil {
				return err
			}
			src := dot.ToDOT(d.Network, dot.Options{Detailed: detailed, Inputs: d.Inputs, Outputs: d.Outputs})
			return writeDrawing(cmd, output, src)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot or .svg, default: DOT on stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label gates with their truth tables")
	return cmd
}

// writeDrawing writes DOT source to path, rendering it first for .svg paths.
func writeDrawing(cmd *cobra.Command, path, src string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), src)
		return err
	}
	data := []byte(src)
	if ext(path) == ".svg" {
		svg, err := dot.RenderSVG(src)
		if err != nil {
			return err
		}
		data = svg
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printer{cmd.OutOrStdout()}.file(path)
	return nil
}

func (c *CLI) cutCommand() *cobra.Command {
	var (
		node    int
		outName string
		size    int
		drawing string
	)
	cmd := &cobra.Command{
		Use:   "cut <netlist>",
		Short: "Show the reconvergence-driven cut of a node",
		Long: `Compute the reconvergence-driven cut of a gate and print its leaves, the
gates of its cone and the function of the root over the leaves.

The gate is given by node number (as in "dot --detailed" and BENCH output
names n<number>) or by the output it drives.`,
		Example: `  cutrewrite cut adder.bench --output cout --size 6
  cutrewrite cut adder.bench --node 7 --dot cone.svg`,
		Args:        cobra.ExactArgs(1),
		Annotations: netlistAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDesign(args[0])
			if err != nil {
				return err
			}
			root, err := resolveNode(d, node, outName)
			if err != nil {
				return err
			}
			if size < 1 {
				return cerrors.New(cerrors.ErrCodeInvalidConfig, "cut size must be positive, got %d", size)
			}

			leaves := cut.Reconv(d.Network, []network.Node{root}, size)
			slices.Sort(leaves)
			view := cut.NewView(d.Network, leaves, root)

			p := printer{cmd.OutOrStdout()}
			p.keyValue("root", StyleNumber.Render(fmt.Sprint(root)))
			p.keyValue("leaves", fmt.Sprint(leaves))
			p.keyValue("gates", fmt.Sprint(view.Gates()))
			if view.Open() {
				p.warning("cone reaches inputs outside the cut")
			} else {
				p.keyValue("function", view.Function().String())
			}

			if drawing != "" {
				src := dot.ToDOT(d.Network, dot.Options{
					Detailed:  true,
					Inputs:    d.Inputs,
					Outputs:   d.Outputs,
					Highlight: view.Gates(),
					Leaves:    leaves,
				})
				return writeDrawing(cmd, drawing, src)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&node, "node", -1, "root node number")
	fl.StringVar(&outName, "output", "", "use the gate driving this output as root")
	fl.IntVarP(&size, "size", "k", cut.DefaultReconvSize, "maximum number of leaves")
	fl.StringVar(&drawing, "dot", "", "draw the network with the cut highlighted (.dot or .svg)")
	cmd.MarkFlagsMutuallyExclusive("node", "output")
	return cmd
}

// resolveNode returns the gate selected by number or by output name.
func resolveNode(d *bench.Design, node int, output string) (network.Node, error) {
	ntk := d.Network
	if output != "" {
		i := slices.Index(d.Outputs, output)
		if i < 0 {
			return 0, cerrors.New(cerrors.ErrCodeNotFound, "no output named %q", output)
		}
		node = int(ntk.PO(i).Node())
	}
	if node < 0 {
		return 0, cerrors.New(cerrors.ErrCodeInvalidInput, "one of --node or --output is required")
	}
	if node >= ntk.Size() || !ntk.IsGate(network.Node(node)) {
		return 0, cerrors.New(cerrors.ErrCodeInvalidNode, "node %d is not a gate", node)
	}
	return network.Node(node), nil
}
