package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"beatmark/internal/batch"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var jobs int
	var outputDir string
	var frameRate int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Analyze every recognized media file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if jobs > 0 {
				cfg.Batch.Jobs = jobs
			}
			if outputDir != "" {
				cfg.Paths.OutputDir = outputDir
			}
			if frameRate > 0 {
				cfg.Project.FrameRate = frameRate
			}

			pipeline, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			runner := batch.New(cfg, pipeline, ctx.ensureLogger())

			summary, err := runner.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for i := range summary.Results {
				recordResult(cmd.Context(), ctx, &summary.Results[i])
			}

			if jsonOutput {
				return writeJSON(cmd, batchReport(summary))
			}

			out := cmd.OutOrStdout()
			if len(summary.Results) == 0 && len(summary.Failures) == 0 {
				fmt.Fprintln(out, "No media files found")
				return nil
			}

			rows := make([][]string, 0, len(summary.Results))
			for _, result := range summary.Results {
				rows = append(rows, []string{
					result.SourcePath,
					strconv.Itoa(result.BeatCount),
					fmt.Sprintf("%.1f", result.Tempo),
					result.OutputPath,
				})
			}
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Source", "Beats", "Tempo", "Output"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
				))
			}
			for _, failure := range summary.Failures {
				fmt.Fprintf(out, "FAILED %s: %v\n", failure.Path, failure.Err)
			}

			if len(summary.Results) == 0 {
				return fmt.Errorf("all %d files failed", len(summary.Failures))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Parallel analyses (defaults to the configured value)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the exported documents")
	cmd.Flags().IntVar(&frameRate, "fps", 0, "Timeline frame rate (defaults to the configured value)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the summary as JSON")
	return cmd
}

type batchFailureReport struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func batchReport(summary *batch.Summary) map[string]any {
	failures := make([]batchFailureReport, 0, len(summary.Failures))
	for _, failure := range summary.Failures {
		failures = append(failures, batchFailureReport{Path: failure.Path, Error: failure.Err.Error()})
	}
	return map[string]any{
		"results":  summary.Results,
		"failures": failures,
	}
}
