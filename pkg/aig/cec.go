package aig

import (
	"context"
	"errors"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
	"github.com/matzehuels/cutrewrite/pkg/network"
)

// ErrInterfaceMismatch is returned when two networks do not have the same
// numbers of inputs, outputs and registers.
var ErrInterfaceMismatch = errors.New("aig: networks have different interfaces")

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// pollInterval is how often a running solve is checked for cancellation.
const pollInterval = 20 * time.Millisecond

// Equivalent reports whether a and b compute the same combinational
// functions. It returns nil when they do, a *errors.NotEquivalentError
// carrying a distinguishing input when they do not, and the context error if
// ctx ends before the solver finishes.
func Equivalent(ctx context.Context, a, b *network.Network) error {
	if a.NumPIs() != b.NumPIs() || a.NumROs() != b.NumROs() ||
		a.NumPOs() != b.NumPOs() || a.NumRIs() != b.NumRIs() {
		return ErrInterfaceMismatch
	}

	c := New()
	cis := make([]z.Lit, a.NumCIs())
	for i := range cis {
		cis[i] = c.CreatePI()
	}
	outA := c.Import(a, cis)
	outB := c.Import(b, cis)
	diffs := make([]z.Lit, len(outA))
	for i := range outA {
		diffs[i] = c.c.Xor(outA[i], outB[i])
	}

	g := gini.New()
	c.c.ToCnf(g)
	// The constant variable is unconstrained in the CNF.
	g.Add(c.c.T)
	g.Add(0)

	for i, d := range diffs {
		if d == c.c.F {
			continue
		}
		g.Assume(d)
		switch res := solve(ctx, g.GoSolve()); res {
		case unsatisfiable:
			continue
		case satisfiable:
			inputs := make([]bool, len(cis))
			for j, m := range cis {
				// Inputs read by neither network never reach the solver.
				inputs[j] = m.Var() <= g.MaxVar() && g.Value(m)
			}
			return &cerrors.NotEquivalentError{Output: i, Inputs: inputs}
		default:
			if err := ctx.Err(); err != nil {
				return err
			}
			return cerrors.New(cerrors.ErrCodeInternal, "solver gave no answer for output %d", i)
		}
	}
	return nil
}

func solve(ctx context.Context, s inter.Solve) int {
	t := time.NewTicker(pollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.Stop()
		case <-t.C:
			if result, ok := s.Test(); ok {
				return result
			}
		}
	}
}
