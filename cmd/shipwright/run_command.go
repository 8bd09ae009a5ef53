package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shipwright/internal/deps"
	"shipwright/internal/journal"
	"shipwright/internal/logging"
	"shipwright/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var manual bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one release run",
		Long: "Run the release pipeline once: initialize the repository if it lacks\n" +
			"module metadata, otherwise reconcile versions, commit changes, package\n" +
			"the tree, and publish a release.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := deps.Verify(deps.ForConfig(cfg)); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			manager, err := workflow.NewManager(cfg, store, logger)
			if err != nil {
				return err
			}

			result, err := manager.Run(cmd.Context(), workflow.Request{
				Manual: manual,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s finished: %s\n", result.RunID, result.Outcome)
			if result.Version != "" {
				fmt.Fprintf(out, "Version: %s (code %d)\n", result.Version, result.VersionCode)
			}
			if result.ReleaseURL != "" {
				fmt.Fprintf(out, "Release: %s\n", result.ReleaseURL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&manual, "manual", false, "Record the run as manually triggered and publish as prerelease")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute decisions without writing files, committing, or publishing")
	return cmd
}
