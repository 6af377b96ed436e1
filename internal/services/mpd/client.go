// Package mpd triggers an MPD music database refresh through the mpc
// command-line client after files move into the library.
package mpd

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"curator/internal/logging"
	"curator/internal/services"
)

var (
	commandContext = exec.CommandContext
	lookPath       = exec.LookPath
)

// Client wraps the mpc command-line tool.
type Client struct {
	binary string
	logger *slog.Logger
}

// New constructs a client. An empty binary falls back to "mpc".
func New(binary string, logger *slog.Logger) *Client {
	if strings.TrimSpace(binary) == "" {
		binary = "mpc"
	}
	return &Client{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "mpd"),
	}
}

// Update refreshes the MPD database. A missing mpc binary is tolerated:
// Update reports ran=false and no error so callers can skip without failing
// the relocation that preceded it.
func (c *Client) Update(ctx context.Context) (ran bool, err error) {
	if _, err := lookPath(c.binary); err != nil {
		c.logger.Warn("mpc not found, skipping database update",
			logging.String("binary", c.binary))
		return false, nil
	}

	cmd := commandContext(ctx, c.binary, "update") //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		return false, services.Wrap(services.ErrExternalTool, "mpd", "update", detail, err)
	}
	c.logger.Info("MPD database update triggered")
	return true, nil
}
