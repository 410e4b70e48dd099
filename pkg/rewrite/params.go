package rewrite

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cutrewrite/pkg/cut"
	"github.com/matzehuels/cutrewrite/pkg/mffc"
)

// Strategy selects how non-conflicting rewrites are chosen.
type Strategy int

const (
	// MinimizeWeight picks an approximate maximum-weight independent set
	// with the GWMIN heuristic.
	MinimizeWeight Strategy = iota
	// Greedy picks a maximal independent set in node order.
	Greedy
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case MinimizeWeight:
		return "minimize_weight"
	case Greedy:
		return "greedy"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy parses the names returned by [Strategy.String].
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "minimize_weight", "gwmin", "":
		return MinimizeWeight, nil
	case "greedy", "maximal":
		return Greedy, nil
	}
	return 0, fmt.Errorf("unknown strategy %q (valid: minimize_weight, greedy)", name)
}

// Params configures a rewriting pass.
type Params struct {
	// CutSize bounds cut leaves. Default 4.
	CutSize int
	// CutLimit bounds cuts per node. Default 12.
	CutLimit int
	// MinimizeTruthTable reduces each cut to the support of its function.
	MinimizeTruthTable bool

	// AllowZeroGain accepts rewrites that keep the cost unchanged.
	AllowZeroGain bool
	// UseDontCares passes satisfiability don't-cares to oracles that
	// accept them.
	UseDontCares bool
	// Strategy chooses the independent-set selector.
	Strategy Strategy

	// Enumerator computes cuts. Defaults to [cut.KFeasible] built from
	// CutSize, CutLimit and MinimizeTruthTable.
	Enumerator cut.Enumerator
	// Cost weighs nodes in cone computations. Defaults to [mffc.UnitCost].
	Cost mffc.CostFunc

	// Logger receives progress messages. Defaults to a discarding logger.
	Logger *log.Logger
	// Verbose logs a summary when the pass ends.
	Verbose bool
	// VeryVerbose logs the conflict graph and every substitution.
	VeryVerbose bool
}

// Default parameter values.
const (
	DefaultCutSize  = 4
	DefaultCutLimit = 12
)

// DefaultParams returns the defaults.
func DefaultParams() Params {
	return Params{CutSize: DefaultCutSize, CutLimit: DefaultCutLimit}
}

// SetDefaults fills zero fields. It is idempotent.
func (p *Params) SetDefaults() {
	if p.CutSize == 0 {
		p.CutSize = DefaultCutSize
	}
	if p.CutLimit == 0 {
		p.CutLimit = DefaultCutLimit
	}
	if p.Enumerator == nil {
		p.Enumerator = cut.NewKFeasible(cut.Params{
			CutSize:            p.CutSize,
			CutLimit:           p.CutLimit,
			MinimizeTruthTable: p.MinimizeTruthTable,
		})
	}
	if p.Cost == nil {
		p.Cost = mffc.UnitCost
	}
	if p.Logger == nil {
		p.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (p *Params) gainThreshold() int {
	if p.AllowZeroGain {
		return 0
	}
	return 1
}

// Stats reports what a pass did.
type Stats struct {
	TimeTotal     time.Duration
	TimeCuts      time.Duration
	TimeRewriting time.Duration
	TimeMIS       time.Duration

	// Cuts is the number of enumerated cuts.
	Cuts int
	// Candidates is the number of oracle candidates evaluated.
	Candidates int
	// Vertices and Edges describe the conflict graph.
	Vertices int
	Edges    int
	// Selected is the size of the independent set.
	Selected int
	// Substituted counts the committed rewrites.
	Substituted int
	// TotalGain sums the best gain of every cut with a positive gain.
	TotalGain int
	// CommittedGain sums the gains of the committed rewrites.
	CommittedGain int
}

// Report logs s at info level.
func (s Stats) Report(logger *log.Logger) {
	logger.Info("cut rewriting",
		"total", s.TimeTotal.Round(time.Microsecond),
		"cuts", s.TimeCuts.Round(time.Microsecond),
		"rewriting", s.TimeRewriting.Round(time.Microsecond),
		"mis", s.TimeMIS.Round(time.Microsecond))
	logger.Info("cut rewriting result",
		"candidates", s.Candidates,
		"vertices", s.Vertices,
		"edges", s.Edges,
		"selected", s.Selected,
		"substituted", s.Substituted,
		"gain", s.CommittedGain)
}
