package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shipwright/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of required external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			requirements := deps.ForConfig(cfg)
			anyMissing := false
			for _, status := range deps.CheckBinaries(requirements) {
				kind := statusOK
				message := status.Command
				if !status.Available {
					kind = statusError
					message = status.Detail
					if !status.Optional {
						anyMissing = true
					}
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
			}
			if anyMissing {
				return fmt.Errorf("missing required binaries")
			}
			return nil
		},
	}
}
