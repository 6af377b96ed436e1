package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/logging"
	"curator/internal/services/ytdlp"
)

func newFetchCommand(cctx *commandContext) *cobra.Command {
	var listFlag string
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download playlists from a URL list into the music directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := dirFlag
			if dir == "" {
				dir = cfg.Paths.MusicDir
			}
			listPath := listFlag
			if listPath == "" {
				listPath = cfg.Fetch.ListFile
			}
			// A bare file name is resolved against the music directory.
			if !strings.ContainsRune(listPath, filepath.Separator) {
				listPath = filepath.Join(dir, listPath)
			}

			urls, err := ytdlp.ReadList(listPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(urls) == 0 {
				fmt.Fprintf(out, "No URLs in %s.\n", listPath)
				return nil
			}

			logger := cctx.ensureLogger()
			client := ytdlp.NewCLI(cfg.Fetch, ytdlp.WithLogger(logging.NewComponentLogger(logger, "fetch")))

			var failed int
			for _, url := range urls {
				fmt.Fprintf(out, "Downloading: %s\n", url)
				if err := client.Download(cmd.Context(), url, dir); err != nil {
					failed++
					fmt.Fprintf(out, "  Failed: %v\n", err)
				}
			}
			fmt.Fprintf(out, "Fetched %d of %d playlists into %s.\n", len(urls)-failed, len(urls), dir)
			if failed > 0 {
				return fmt.Errorf("%d of %d playlists failed", failed, len(urls))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&listFlag, "list", "l", "", "Playlist URL list file (defaults to fetch.list_file)")
	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Download directory (defaults to paths.music_dir)")
	return cmd
}
