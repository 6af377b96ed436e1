package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/dedupe"
	"curator/internal/logging"
	"curator/internal/runlock"
	"curator/internal/services"
)

func newResolveCommand(cctx *commandContext) *cobra.Command {
	var modeFlag string
	var dirFlag string
	var applyFlag bool
	var yesFlag bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve duplicate groups, keeping the best file per group",
		Long: `Resolve finds duplicate groups and removes every file except the chosen
representative (largest file, name as tie-break). Without --apply this is a
dry run that only reports what would be removed.`,
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
			out := cmd.OutOrStdout()

			result, err := runScan(cmd, cctx, cfg, dir, mode)
			if err != nil {
				return err
			}
			if result.Missing {
				fmt.Fprintf(out, "Directory %s does not exist.\n", dir)
				return nil
			}
			for _, scanErr := range result.Errors {
				fmt.Fprintf(out, "Skipped unreadable file %s: %v\n", scanErr.Path, scanErr.Err)
			}
			if len(result.Groups) == 0 {
				fmt.Fprintf(out, "No duplicates found among %d matching files.\n", len(result.Files))
				return nil
			}

			if applyFlag {
				confirmed, err := confirmDestruction(cmd, yesFlag,
					fmt.Sprintf("Remove duplicates from %d groups in %s?", len(result.Groups), dir))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, "Operation cancelled.")
					return nil
				}

				lock := runlock.New(dir)
				if err := lock.Acquire(); err != nil {
					return err
				}
				defer lock.Release()
			}

			logger := cctx.ensureLogger()
			report := dedupe.Resolve(result.Groups, dedupe.ResolveOptions{
				DryRun: !applyFlag,
				Logger: logging.NewComponentLogger(logger, "resolve"),
			})
			printReport(cmd, report)
			if len(report.Failures) > 0 {
				return services.Wrap(services.ErrTransient, "resolve", "remove",
					fmt.Sprintf("%d files could not be removed", len(report.Failures)), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "title", "Detection mode: title or hash")
	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory to resolve (defaults to paths.music_dir)")
	cmd.Flags().BoolVar(&applyFlag, "apply", false, "Actually remove files instead of reporting")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func printReport(cmd *cobra.Command, report *dedupe.Report) {
	out := cmd.OutOrStdout()

	failed := make(map[string]error, len(report.Failures))
	for _, failure := range report.Failures {
		failed[failure.Path] = failure.Err
	}

	for _, decision := range report.Decisions {
		fmt.Fprintf(out, "\nGroup: %s\n", decision.Key)
		fmt.Fprintf(out, "  Keeping: %s (%s)\n", decision.Keep.Name(), humanSize(decision.Keep.Size))
		for _, file := range decision.Remove {
			switch {
			case report.DryRun:
				fmt.Fprintf(out, "  Would remove: %s (%s)\n", file.Name(), humanSize(file.Size))
			case failed[file.Path] != nil:
				fmt.Fprintf(out, "  Failed to remove: %s: %v\n", file.Name(), failed[file.Path])
			default:
				fmt.Fprintf(out, "  Removed: %s (%s)\n", file.Name(), humanSize(file.Size))
			}
		}
	}

	if report.DryRun {
		fmt.Fprintf(out, "\nDry run complete: %d groups, would remove %d files. Re-run with --apply to remove them.\n",
			report.Groups, report.Removed)
	} else {
		fmt.Fprintf(out, "\nRemoved %d duplicate files across %d groups (%d kept, %d failed).\n",
			report.Removed, report.Groups, report.Kept, len(report.Failures))
	}
}
