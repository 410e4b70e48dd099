// Package pipeline runs complete optimisation jobs.
//
// A job reads a design, applies a number of cut-rewriting passes with a
// dangling cleanup after each, optionally proves the result equivalent to
// the input, and caches the optimised design. The CLI and batch tooling use
// the same [Runner] so that every entry point shares defaults and caching.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Optimize(ctx, design, pipeline.Options{Passes: 3, Verify: true})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Before.Gates, "->", res.After.Gates)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cutrewrite/pkg/cache"
	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/resyn"
	"github.com/matzehuels/cutrewrite/pkg/rewrite"
)

// Default values shared by the CLI and configuration files.
const (
	DefaultPasses   = 1
	DefaultOracle   = OracleChain
	DefaultStrategy = "minimize_weight"
	DefaultTTL      = 7 * 24 * time.Hour

	// MaxPasses bounds Options.Passes.
	MaxPasses = 100
)

// Oracle names.
const (
	OracleLUT      = "lut"
	OracleMajority = "majority"
	OracleShannon  = "shannon"
	OracleChain    = "chain"
)

// ValidOracles lists the accepted oracle names.
var ValidOracles = []string{OracleLUT, OracleMajority, OracleShannon, OracleChain}

// ParseOracle returns the resynthesis oracle with the given name. The chain
// oracle offers the candidates of the majority, Shannon and LUT oracles.
func ParseOracle(name string) (rewrite.Oracle, error) {
	switch name {
	case OracleLUT:
		return resyn.LUT{}, nil
	case OracleMajority:
		return resyn.Majority{}, nil
	case OracleShannon:
		return resyn.Shannon{}, nil
	case OracleChain, "":
		return resyn.Chain{resyn.Majority{}, resyn.Shannon{}, resyn.LUT{}}, nil
	}
	return nil, cerrors.New(cerrors.ErrCodeInvalidConfig, "invalid oracle %q (must be one of: lut, majority, shannon, chain)", name)
}

// Options configures an optimisation job.
type Options struct {
	Passes        int    `json:"passes"`
	CutSize       int    `json:"cut_size"`
	CutLimit      int    `json:"cut_limit"`
	AllowZeroGain bool   `json:"allow_zero_gain,omitempty"`
	UseDontCares  bool   `json:"use_dont_cares,omitempty"`
	Strategy      string `json:"strategy"`
	Oracle        string `json:"oracle"`

	// Verify proves the result equivalent to the input with a SAT solver.
	Verify bool `json:"verify,omitempty"`
	// Refresh ignores cached results. The new result is still stored.
	Refresh bool `json:"-"`
	// TTL is the lifetime of cached results. Zero uses DefaultTTL.
	TTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`
	// VeryVerbose logs every substitution.
	VeryVerbose bool `json:"-"`

	oracle   rewrite.Oracle
	strategy rewrite.Strategy

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Passes == 0 {
		o.Passes = DefaultPasses
	}
	if o.Passes < 0 || o.Passes > MaxPasses {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "passes must be between 1 and %d, got %d", MaxPasses, o.Passes)
	}
	if o.CutSize == 0 {
		o.CutSize = rewrite.DefaultCutSize
	}
	if err := cerrors.ValidateCutSize(o.CutSize); err != nil {
		return err
	}
	if o.CutLimit == 0 {
		o.CutLimit = rewrite.DefaultCutLimit
	}
	if err := cerrors.ValidateCutLimit(o.CutLimit); err != nil {
		return err
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	strategy, err := rewrite.ParseStrategy(o.Strategy)
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "invalid strategy %q", o.Strategy)
	}
	if o.Oracle == "" {
		o.Oracle = DefaultOracle
	}
	oracle, err := ParseOracle(o.Oracle)
	if err != nil {
		return err
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.oracle, o.strategy = oracle, strategy
	o.validated = true
	return nil
}

// RewriteParams returns the parameters of one rewriting pass. The options
// must have been validated.
func (o *Options) RewriteParams() rewrite.Params {
	return rewrite.Params{
		CutSize:       o.CutSize,
		CutLimit:      o.CutLimit,
		AllowZeroGain: o.AllowZeroGain,
		UseDontCares:  o.UseDontCares,
		Strategy:      o.strategy,
		Logger:        o.Logger,
		Verbose:       o.VeryVerbose,
		VeryVerbose:   o.VeryVerbose,
	}
}

// KeyOpts returns the options that address a cached result.
func (o *Options) KeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Passes:        o.Passes,
		CutSize:       o.CutSize,
		CutLimit:      o.CutLimit,
		AllowZeroGain: o.AllowZeroGain,
		UseDontCares:  o.UseDontCares,
		Strategy:      o.Strategy,
		Oracle:        o.Oracle,
	}
}

// NetworkStats summarises a network.
type NetworkStats struct {
	PIs       int `json:"pis"`
	POs       int `json:"pos"`
	Registers int `json:"registers"`
	Gates     int `json:"gates"`
	Depth     int `json:"depth"`
	Functions int `json:"functions"`
}

// Measure returns the statistics of ntk. Depth counts live gates on the
// longest path from a combinational input to a combinational output.
func Measure(ntk *network.Network) NetworkStats {
	st := NetworkStats{
		PIs:       ntk.NumPIs(),
		POs:       ntk.NumPOs(),
		Registers: ntk.NumROs(),
		Functions: ntk.NumFunctions(),
	}
	level := make([]int, ntk.Size())
	for _, n := range ntk.Topo() {
		if !ntk.IsGate(n) {
			continue
		}
		st.Gates++
		for _, f := range ntk.Fanins(n) {
			level[n] = max(level[n], level[f.Node()])
		}
		level[n]++
	}
	for _, co := range ntk.COs() {
		st.Depth = max(st.Depth, level[co.Node()])
	}
	return st
}

// String formats s on one line.
func (s NetworkStats) String() string {
	return fmt.Sprintf("i/o = %d/%d  regs = %d  gates = %d  depth = %d", s.PIs, s.POs, s.Registers, s.Gates, s.Depth)
}

// PassStats reports one rewriting pass.
type PassStats struct {
	Pass        int           `json:"pass"`
	GatesBefore int           `json:"gates_before"`
	GatesAfter  int           `json:"gates_after"`
	Rewrite     rewrite.Stats `json:"rewrite"`
	Duration    time.Duration `json:"duration"`
}
