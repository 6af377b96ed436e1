package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/relocate"
	"curator/internal/runlock"
	"curator/internal/services"
	"curator/internal/services/mpd"
)

func newRelocateCommand(cctx *commandContext) *cobra.Command {
	var createFlag bool
	var updateMPDFlag bool

	cmd := &cobra.Command{
		Use:   "relocate [destination]",
		Short: "Move all managed audio files into a library directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			dest := cfg.Relocate.TargetDir
			if len(args) == 1 {
				dest = args[0]
			}
			if dest == "" {
				return fmt.Errorf("no destination: pass one as an argument or set relocate.target_dir")
			}

			lock := runlock.New(cfg.Paths.MusicDir)
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer lock.Release()

			logger := cctx.ensureLogger()
			r := relocate.New(cfg.Scan.Extension, logger)
			result, err := r.Relocate(cmd.Context(), cfg.Paths.MusicDir, dest, createFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Moved) == 0 && len(result.Failures) == 0 {
				fmt.Fprintf(out, "No %s files found in %s.\n", cfg.Scan.Extension, cfg.Paths.MusicDir)
				return nil
			}
			fmt.Fprintf(out, "Moved %d files to %s.\n", len(result.Moved), dest)
			for _, failure := range result.Failures {
				fmt.Fprintf(out, "  Error: %v\n", failure.Err)
			}

			if updateMPDFlag && cfg.MPD.Enabled && len(result.Moved) > 0 {
				client := mpd.New(cfg.MPD.Binary, logger)
				ran, err := client.Update(cmd.Context())
				switch {
				case err != nil:
					fmt.Fprintf(out, "MPD update failed: %v\n", err)
				case ran:
					fmt.Fprintln(out, "MPD database update triggered.")
				default:
					fmt.Fprintln(out, "MPD (mpc) not found, skipping database update.")
				}
			}

			if len(result.Failures) > 0 {
				return services.Wrap(services.ErrTransient, "relocate", "move",
					fmt.Sprintf("%d files could not be moved", len(result.Failures)), nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&createFlag, "create", false, "Create the destination directory if missing")
	cmd.Flags().BoolVar(&updateMPDFlag, "update-mpd", true, "Trigger an MPD database update after moving")
	return cmd
}
