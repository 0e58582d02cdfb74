package cli

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionWriters generates the completion script for each supported shell.
var completionWriters = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// familyExtensions are the file types the family loader accepts.
var familyExtensions = []string{"json", "yaml", "yml", "toml"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionWriters))
	for shell := range completionWriters {
		shells = append(shells, shell)
	}
	slices.Sort(shells)

	return &cobra.Command{
		Use:   "completion [" + strings.Join(shells, "|") + "]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for famlayout.

Bash:
  $ source <(famlayout completion bash)

Zsh (with compinit enabled):
  $ famlayout completion zsh > "${fpath[1]}/_famlayout"

Fish:
  $ famlayout completion fish > ~/.config/fish/completions/famlayout.fish

PowerShell:
  PS> famlayout completion powershell | Out-String | Invoke-Expression

Family file arguments complete to .json, .yaml, .yml and .toml files.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionWriters[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeFamilyFile limits completion of the first argument to family files.
func completeFamilyFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return familyExtensions, cobra.ShellCompDirectiveFilterFileExt
}
