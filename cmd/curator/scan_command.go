package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/spf13/cobra"

	"curator/internal/config"
	"curator/internal/dedupe"
	"curator/internal/logging"
	"curator/internal/services"
)

func newScanCommand(cctx *commandContext) *cobra.Command {
	var modeFlag string
	var dirFlag string
	var similarFlag bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find duplicate audio files without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			mode, ok := dedupe.ParseMode(modeFlag)
			if !ok {
				return fmt.Errorf("unknown mode %q (use title or hash)", modeFlag)
			}
			dir := dirFlag
			if dir == "" {
				dir = cfg.Paths.MusicDir
			}

			result, err := runScan(cmd, cctx, cfg, dir, mode)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result.Missing {
				fmt.Fprintf(out, "Directory %s does not exist.\n", dir)
				return nil
			}

			printScanResult(cmd, result)

			if similarFlag {
				pairs := dedupe.FindSimilarTitles(result.Files, cfg.Scan.SimilarityThreshold)
				printSimilarPairs(cmd, pairs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "title", "Detection mode: title or hash")
	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory to scan (defaults to paths.music_dir)")
	cmd.Flags().BoolVar(&similarFlag, "similar", false, "Also report near-matching titles (advisory only)")
	return cmd
}

// runScan performs a scan with a progress bar when hashing on a terminal.
func runScan(cmd *cobra.Command, cctx *commandContext, cfg *config.Config, dir string, mode dedupe.Mode) (*dedupe.ScanResult, error) {
	logger := cctx.ensureLogger()
	ctx := services.WithMode(cmd.Context(), string(mode))

	opts := []dedupe.ScannerOption{
		dedupe.WithWorkers(cfg.Scan.HashWorkers),
		dedupe.WithLogger(logging.NewComponentLogger(logger, "scan")),
	}

	var pw progress.Writer
	var tracker *progress.Tracker
	if mode == dedupe.ByHash && stdoutIsTerminal() {
		pw = progress.NewWriter()
		pw.SetOutputWriter(cmd.OutOrStdout())
		pw.SetUpdateFrequency(100 * time.Millisecond)
		tracker = &progress.Tracker{Message: "Hashing files"}
		pw.AppendTracker(tracker)
		go pw.Render()
		opts = append(opts, dedupe.WithProgress(func(done, total int) {
			tracker.UpdateTotal(int64(total))
			tracker.SetValue(int64(done))
		}))
	}

	scanner := dedupe.NewScanner(cfg.Scan.Extension, opts...)
	result, err := scanner.Scan(ctx, dir, mode)
	if pw != nil {
		if tracker != nil {
			tracker.MarkAsDone()
		}
		pw.Stop()
	}
	return result, err
}

func printScanResult(cmd *cobra.Command, result *dedupe.ScanResult) {
	out := cmd.OutOrStdout()

	if len(result.Groups) == 0 {
		fmt.Fprintf(out, "No duplicates found among %d matching files.\n", len(result.Files))
	} else {
		fmt.Fprintf(out, "Found %d duplicate groups across %d matching files.\n", len(result.Groups), len(result.Files))
		rows := make([][]string, 0, len(result.Files))
		for _, group := range result.Groups {
			keep := dedupe.ChooseKeep(group.Files)
			for _, file := range group.Files {
				marker := ""
				if file.Path == keep.Path {
					marker = "keep"
				}
				rows = append(rows, []string{displayKey(result.Mode, group.Key), file.Name(), humanSize(file.Size), marker})
			}
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Group", "File", "Size", ""},
			rows, 2))
	}

	for _, scanErr := range result.Errors {
		fmt.Fprintf(out, "Skipped unreadable file %s: %v\n", scanErr.Path, scanErr.Err)
	}
}

func printSimilarPairs(cmd *cobra.Command, pairs []dedupe.SimilarPair) {
	out := cmd.OutOrStdout()
	if len(pairs) == 0 {
		fmt.Fprintln(out, "No near-matching titles.")
		return
	}
	fmt.Fprintf(out, "%d near-matching title pairs (not grouped, review manually):\n", len(pairs))
	rows := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		rows = append(rows, []string{pair.A.Name(), pair.B.Name(), fmt.Sprintf("%.2f", pair.Score)})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File A", "File B", "Score"},
		rows, 2))
}

// displayKey shortens hash keys the way humans actually read them.
func displayKey(mode dedupe.Mode, key string) string {
	if mode == dedupe.ByHash && len(key) > 8 {
		return key[:8] + "…"
	}
	return key
}
