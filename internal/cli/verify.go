package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
)

func (c *CLI) verifyCommand() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "verify <netlist> <netlist>",
		Short: "Prove two netlists equivalent",
		Long: `Prove with a SAT solver that two netlists compute the same outputs.
Registers are cut: register outputs are treated as free inputs and register
inputs as additional outputs, so both netlists must have the same interface.

On a difference, an input assignment that distinguishes them is printed and
the command fails. With --timeout, a proof still running when the time is up
fails with a TIMEOUT error.`,
		Args:        cobra.ExactArgs(2),
		Annotations: netlistAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			a, err := loadDesign(args[0])
			if err != nil {
				return err
			}
			b, err := loadDesign(args[1])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cacheDisabled)
			if err != nil {
				return err
			}
			defer runner.Close()

			spin := newSpinner(ctx, cmd.ErrOrStderr(), "proving equivalence")
			spin.Start()
			err = runner.Verify(ctx, a, b)
			if err == nil {
				spin.StopWithSuccess(fmt.Sprintf("%s and %s are equivalent", args[0], args[1]))
				return nil
			}
			spin.Stop()

			var ne *cerrors.NotEquivalentError
			if errors.As(err, &ne) {
				p := printer{cmd.OutOrStdout()}
				p.failure("%s", cerrors.UserMessage(err))
				p.detail("counterexample: %s", counterexample(a.Inputs, ne.Inputs))
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 waits forever)")
	return cmd
}

// counterexample formats input values as "a=1 b=0". Values beyond the
// primary inputs belong to register outputs and are numbered.
func counterexample(names []string, values []bool) string {
	parts := make([]string, len(values))
	for i, v := range values {
		name := fmt.Sprintf("ro%d", i-len(names))
		if i < len(names) {
			name = names[i]
		}
		bit := "0"
		if v {
			bit = "1"
		}
		parts[i] = name + "=" + bit
	}
	return strings.Join(parts, " ")
}
