package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a completion script for your shell.

Job IDs and preset names complete against the running renamarrd
(see --server).

  $ source <(renamarr completion bash)
  $ renamarr completion zsh > "${fpath[1]}/_renamarr"
  $ renamarr completion fish > ~/.config/fish/completions/renamarr.fish
  PS> renamarr completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	for _, c := range []*cobra.Command{jobsShowCmd, jobsCancelCmd, jobsDeleteCmd} {
		c.ValidArgsFunction = completeJobIDs
	}
	presetsRmCmd.ValidArgsFunction = completeUserPresets
	presetsMvCmd.ValidArgsFunction = completeUserPresets
}

// completeJobIDs offers the server's job IDs with their status.
func completeJobIDs(_ *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	list, err := NewClient(serverURL).Jobs()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []cobra.Completion
	for _, j := range list {
		if strings.HasPrefix(j.ID, toComplete) {
			out = append(out, cobra.CompletionWithDesc(j.ID, string(j.Status)))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeUserPresets offers presets that can be removed. Built-ins are
// skipped.
func completeUserPresets(_ *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	list, err := NewClient(serverURL).Presets()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []cobra.Completion
	for _, p := range list {
		if !p.BuiltIn && strings.HasPrefix(p.Name, toComplete) {
			out = append(out, cobra.CompletionWithDesc(p.Name, p.Scheme))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeSchemes offers preset:<name> for --scheme. Free-form schemes are
// still accepted.
func completeSchemes(_ *cobra.Command, _ []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	list, err := NewClient(serverURL).Presets()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []cobra.Completion
	for _, p := range list {
		ref := "preset:" + p.Name
		if strings.HasPrefix(ref, toComplete) {
			out = append(out, cobra.CompletionWithDesc(ref, p.Scheme))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
