package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	nio "github.com/matzehuels/cutrewrite/pkg/io"
	"github.com/matzehuels/cutrewrite/pkg/io/bench"
	"github.com/matzehuels/cutrewrite/pkg/pipeline"
)

// optimizeFlags mirrors the configuration keys. Flags override the config
// file only when given explicitly.
type optimizeFlags struct {
	passes        int
	cutSize       int
	cutLimit      int
	allowZeroGain bool
	useDontCares  bool
	strategy      string
	oracle        string
	verify        bool
	refresh       bool
	veryVerbose   bool
	output        string
	svg           string
}

func (c *CLI) optimizeCommand() *cobra.Command {
	var f optimizeFlags
	cmd := &cobra.Command{
		Use:   "optimize <netlist>",
		Short: "Optimise a netlist by cut rewriting",
		Long: `Optimise a BENCH or JSON netlist with repeated cut-rewriting passes.

The optimised netlist is written to --output, whose extension selects the
format (.bench, .json, .dot, .svg), or to standard output as BENCH.`,
		Example: `  cutrewrite optimize c432.bench -o c432.opt.bench --passes 3 --verify
  cutrewrite optimize adder.bench --oracle majority --dont-cares`,
		Args:        cobra.ExactArgs(1),
		Annotations: netlistAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOptimize(cmd, args[0], f)
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.passes, "passes", "p", pipeline.DefaultPasses, "maximum number of rewriting passes")
	fl.IntVarP(&f.cutSize, "cut-size", "k", 0, "maximum cut size (default 4)")
	fl.IntVar(&f.cutLimit, "cut-limit", 0, "maximum cuts per node (default 12)")
	fl.BoolVar(&f.allowZeroGain, "zero-gain", false, "accept rewrites that do not reduce the size")
	fl.BoolVar(&f.useDontCares, "dont-cares", false, "use satisfiability don't-cares")
	fl.StringVar(&f.strategy, "strategy", "", "rewrite selection: minimize_weight or greedy")
	fl.StringVar(&f.oracle, "oracle", "", "resynthesis oracle: lut, majority, shannon or chain")
	fl.BoolVar(&f.verify, "verify", false, "prove the result equivalent with a SAT solver")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	fl.BoolVar(&f.veryVerbose, "trace", false, "log every substitution")
	fl.StringVarP(&f.output, "output", "o", "", "output file")
	fl.StringVar(&f.svg, "svg", "", "also render the optimised network as SVG")
	return cmd
}

// options merges the configuration file with explicitly set flags.
func (f optimizeFlags) options(cmd *cobra.Command, cfg pipeline.Config) pipeline.Options {
	opts := cfg.Options()
	changed := cmd.Flags().Changed
	if changed("passes") || opts.Passes == 0 {
		opts.Passes = f.passes
	}
	if changed("cut-size") {
		opts.CutSize = f.cutSize
	}
	if changed("cut-limit") {
		opts.CutLimit = f.cutLimit
	}
	if changed("zero-gain") {
		opts.AllowZeroGain = f.allowZeroGain
	}
	if changed("dont-cares") {
		opts.UseDontCares = f.useDontCares
	}
	if changed("strategy") {
		opts.Strategy = f.strategy
	}
	if changed("oracle") {
		opts.Oracle = f.oracle
	}
	if changed("verify") {
		opts.Verify = f.verify
	}
	opts.Refresh = f.refresh
	opts.VeryVerbose = f.veryVerbose
	return opts
}

func (c *CLI) runOptimize(cmd *cobra.Command, path string, f optimizeFlags) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts := f.options(cmd, cfg)
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	d, err := loadDesign(path)
	if err != nil {
		return err
	}
	prog.done("read netlist", "file", path, "gates", d.Network.NumGates())

	runner, err := c.newRunner(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Optimize(ctx, d, opts)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, f.output, res.Design); err != nil {
		return err
	}

	// BENCH text on stdout must stay parseable.
	out := printer{cmd.OutOrStdout()}
	if f.output == "" {
		out = printer{cmd.ErrOrStderr()}
	}

	out.success("Optimised %s in %s", path, res.Duration.Round(time.Millisecond))
	out.summary(res)
	if res.Verified {
		out.detail("equivalence proven")
	}
	if f.output != "" {
		out.file(f.output)
	}
	if f.svg != "" {
		if err := nio.Save(f.svg, res.Design); err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		out.file(f.svg)
	}
	c.Logger.Debug("run finished", "run", res.RunID, "input_hash", res.InputHash[:12])
	return nil
}

// writeOutput saves d to path, or writes BENCH text to stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, d *bench.Design) error {
	if path == "" {
		return bench.Write(cmd.OutOrStdout(), d)
	}
	return nio.Save(path, d)
}
