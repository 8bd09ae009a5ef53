package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"shipwright/internal/journal"
)

type runView struct {
	ID        string `json:"id"`
	Trigger   string `json:"trigger"`
	DryRun    bool   `json:"dryRun"`
	Status    string `json:"status"`
	Outcome   string `json:"outcome,omitempty"`
	Version   string `json:"version,omitempty"`
	Code      int64  `json:"versionCode,omitempty"`
	Release   string `json:"releaseUrl,omitempty"`
	Error     string `json:"error,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var limit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recent release runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			views := make([]runView, 0, len(runs))
			for _, run := range runs {
				views = append(views, viewFromRun(run))
			}

			if jsonOut {
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			colorize := shouldColorize(out)
			latest := runs[0]
			fmt.Fprintln(out, renderStatusLine("Latest run", kindForRun(latest), summarizeRun(latest), colorize))
			fmt.Fprintln(out)

			rows := make([][]string, 0, len(views))
			for _, view := range views {
				rows = append(rows, []string{
					shortID(view.ID),
					view.Trigger,
					yesNo(view.DryRun),
					view.Status,
					view.Outcome,
					view.Version,
					formatCode(view.Code),
					view.CreatedAt,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Trigger", "Dry", "Status", "Outcome", "Version", "Code", "Started"},
				rows,
				7,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit runs as JSON")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}

func viewFromRun(run *journal.Run) runView {
	return runView{
		ID:        run.ID,
		Trigger:   run.Trigger,
		DryRun:    run.DryRun,
		Status:    string(run.Status),
		Outcome:   string(run.Outcome),
		Version:   run.Version,
		Code:      run.VersionCode,
		Release:   run.ReleaseURL,
		Error:     run.ErrorMessage,
		CreatedAt: run.CreatedAt.Local().Format(time.RFC3339),
	}
}

func kindForRun(run *journal.Run) statusKind {
	switch run.Status {
	case journal.StatusFailed:
		return statusError
	case journal.StatusCompleted:
		return statusOK
	default:
		return statusInfo
	}
}

func summarizeRun(run *journal.Run) string {
	switch {
	case run.Status == journal.StatusFailed:
		return run.ErrorMessage
	case run.Outcome == journal.OutcomePublished:
		return fmt.Sprintf("published %s", run.Version)
	case run.Outcome != journal.OutcomeNone:
		return string(run.Outcome)
	default:
		return string(run.Status)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatCode(code int64) string {
	if code == 0 {
		return ""
	}
	return strconv.FormatInt(code, 10)
}
