package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"beatmark/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past analyses",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var source string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded analyses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.StateDir)
			if err != nil {
				return err
			}
			defer store.Close()

			var records []history.Record
			if source != "" {
				resolved, absErr := filepath.Abs(source)
				if absErr != nil {
					return absErr
				}
				records, err = store.BySource(cmd.Context(), resolved)
			} else {
				records, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, records)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No analyses recorded")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					record.CreatedAt.Local().Format(time.DateTime),
					record.SourcePath,
					strconv.Itoa(record.BeatCount),
					fmt.Sprintf("%.1f", record.Tempo),
					record.OutputPath,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Source", "Beats", "Tempo", "Output"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show (0 for all)")
	cmd.Flags().StringVar(&source, "source", "", "Show only analyses of this media file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit records as JSON")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.StateDir)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d records\n", removed)
			return nil
		},
	}
}
