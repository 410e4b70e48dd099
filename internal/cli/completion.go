package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cutrewrite/pkg/pipeline"
	"github.com/matzehuels/cutrewrite/pkg/rewrite"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cutrewrite.

Netlist arguments complete to .bench and .json files, --config to .toml
files, and --oracle and --strategy to their accepted values.

  $ source <(cutrewrite completion bash)
  $ cutrewrite completion zsh > "${fpath[1]}/_cutrewrite"
  $ cutrewrite completion fish | source
  PS> cutrewrite completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
}

// completeNetlists completes positional arguments to netlist files.
func completeNetlists(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"bench", "json"}, cobra.ShellCompDirectiveFilterFileExt
}

func completeValues(values ...string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerCompletions wires argument and flag completion into the command tree.
// Commands whose first positional argument is a netlist are marked with the
// "netlist" annotation.
func registerCompletions(root *cobra.Command) {
	_ = root.RegisterFlagCompletionFunc("config", func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
	})
	for _, cmd := range root.Commands() {
		if _, ok := cmd.Annotations[annotationNetlist]; ok {
			cmd.ValidArgsFunction = completeNetlists
		}
		if cmd.Flags().Lookup("oracle") != nil {
			_ = cmd.RegisterFlagCompletionFunc("oracle", completeValues(pipeline.ValidOracles...))
		}
		if cmd.Flags().Lookup("strategy") != nil {
			_ = cmd.RegisterFlagCompletionFunc("strategy", completeValues(rewrite.MinimizeWeight.String(), rewrite.Greedy.String()))
		}
	}
}

const annotationNetlist = "netlist"

var netlistAnnotation = map[string]string{annotationNetlist: "true"}
