package ytdlp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/services"
)

var commandContext = exec.CommandContext

// outputTemplate produces the "NN - Title.ext" names the title normalizer is
// built to parse.
const outputTemplate = "%(playlist_index)02d - %(title)s.%(ext)s"

// Client defines playlist download behaviour.
type Client interface {
	Download(ctx context.Context, url, destDir string) error
}

// CLI wraps the yt-dlp command-line downloader.
type CLI struct {
	binary        string
	audioFormat   string
	audioQuality  string
	embedMetadata bool
	logger        *slog.Logger
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithLogger attaches a logger for streamed tool output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCLI constructs a client from the fetch configuration.
func NewCLI(cfg config.Fetch, opts ...Option) *CLI {
	cli := &CLI{
		binary:        cfg.Binary,
		audioFormat:   cfg.AudioFormat,
		audioQuality:  cfg.AudioQuality,
		embedMetadata: cfg.EmbedMetadata,
		logger:        logging.NewNop(),
	}
	if cli.binary == "" {
		cli.binary = "yt-dlp"
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Download fetches one playlist URL into destDir, extracting audio in the
// configured format. Tool output is streamed to the logger line by line.
func (c *CLI) Download(ctx context.Context, url, destDir string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("url required")
	}
	if strings.TrimSpace(destDir) == "" {
		return errors.New("destination directory required")
	}

	args := []string{"-x", "--audio-format", c.audioFormat, "--audio-quality", c.audioQuality}
	if c.embedMetadata {
		args = append(args, "--embed-thumbnail", "--embed-metadata", "--add-metadata")
	}
	args = append(args, "-o", outputTemplate, url)

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	cmd.Dir = destDir
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "fetch", "start yt-dlp", url, err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		c.logger.Debug("yt-dlp", logging.String("line", scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read yt-dlp output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return services.Wrap(services.ErrExternalTool, "fetch", "yt-dlp", url, err)
	}
	return nil
}

var _ Client = (*CLI)(nil)

// ReadList parses a newline-delimited playlist URL file, skipping blank
// lines and `#` comments.
func ReadList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url list: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url list: %w", err)
	}
	return urls, nil
}
