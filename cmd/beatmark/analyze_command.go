package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"beatmark/internal/export"
	"beatmark/internal/history"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var frameRate int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "analyze <audio-file>",
		Short: "Detect beats in an audio file and write an FCPXML marker document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			result, err := pipeline.Run(cmd.Context(), export.Request{
				AudioPath:  args[0],
				OutputPath: outputPath,
				FrameRate:  frameRate,
			})
			if err != nil {
				return err
			}

			recordResult(cmd.Context(), ctx, result)

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value"},
				[][]string{
					{"Source", result.SourcePath},
					{"Output", result.OutputPath},
					{"Beats", strconv.Itoa(result.BeatCount)},
					{"Tempo", fmt.Sprintf("%.1f BPM", result.Tempo)},
					{"Duration", fmt.Sprintf("%.2fs", result.DurationSeconds)},
					{"Sample rate", fmt.Sprintf("%d Hz", result.SampleRate)},
					{"Frame rate", fmt.Sprintf("%d fps", result.FrameRate)},
				},
				nil,
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the FCPXML document")
	cmd.Flags().IntVar(&frameRate, "fps", 0, "Timeline frame rate (defaults to the configured value)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	return cmd
}

// recordResult appends the analysis to the history database. History is
// advisory; a storage failure is logged but never fails the command.
func recordResult(runCtx context.Context, ctx *commandContext, result *export.Result) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return
	}
	store, err := history.Open(cfg.Paths.StateDir)
	if err != nil {
		ctx.ensureLogger().Warn("open history store", "error", err)
		return
	}
	defer store.Close()

	_, err = store.Add(runCtx, history.Record{
		SourcePath:      result.SourcePath,
		OutputPath:      result.OutputPath,
		BeatCount:       result.BeatCount,
		Tempo:           result.Tempo,
		SampleRate:      result.SampleRate,
		DurationSeconds: result.DurationSeconds,
		FrameRate:       result.FrameRate,
	})
	if err != nil {
		ctx.ensureLogger().Warn("record analysis history", "error", err)
	}
}
