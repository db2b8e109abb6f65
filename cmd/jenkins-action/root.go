// Package main provides the jenkins-action CLI application.
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/version"
)

// newRootCmd returns the base command. Without a subcommand it runs the
// build, which is how the action's container invokes it.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jenkins-action",
		Short: "Trigger a Jenkins job from a GitHub workflow",
		Long: `jenkins-action triggers a Jenkins job, waits for it to finish and
reports its test results to the workflow step summary and as a commit
comment.

Inputs are read from INPUT_* environment variables, as set by GitHub
Actions, or from the flags of the run command.`,
		Version:       version.FullString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := newRunCmd()
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
	rootCmd.RunE = runCmd.RunE

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command with ctx, which is cancelled on SIGINT and
// SIGTERM.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
