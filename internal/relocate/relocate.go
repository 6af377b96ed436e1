package relocate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"curator/internal/fileutil"
	"curator/internal/logging"
	"curator/internal/services"
)

// Failure records a file that could not be moved.
type Failure struct {
	Path string
	Err  error
}

// Result reports a relocation pass.
type Result struct {
	Moved    []string
	Failures []Failure
}

// Relocator moves matching audio files from the music directory into a
// destination directory, one explicit path at a time. No shell globbing is
// involved anywhere.
type Relocator struct {
	extension string
	logger    *slog.Logger
}

// New constructs a relocator for files carrying the given extension.
func New(extension string, logger *slog.Logger) *Relocator {
	return &Relocator{
		extension: strings.ToLower(extension),
		logger:    logging.NewComponentLogger(logger, "relocate"),
	}
}

// Relocate moves every matching file from srcDir into destDir. The
// destination is created only when createMissing is set (the caller's
// confirmation); otherwise a missing destination is an error. Per-file move
// failures are isolated and reported so one stuck file does not strand the
// rest.
func (r *Relocator) Relocate(ctx context.Context, srcDir, destDir string, createMissing bool) (*Result, error) {
	logger := logging.WithContext(ctx, r.logger)

	destDir = strings.TrimSpace(destDir)
	if destDir == "" {
		return nil, services.Wrap(services.ErrValidation, "relocate", "validate inputs", "destination directory required", nil)
	}

	if err := r.ensureDestination(destDir, createMissing); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "relocate", "read source", fmt.Sprintf("directory %s does not exist", srcDir), nil)
		}
		return nil, fmt.Errorf("read source directory %s: %w", srcDir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), r.extension) {
			continue
		}
		src := filepath.Join(srcDir, name)
		dst := filepath.Join(destDir, name)
		if err := fileutil.MoveFile(src, dst); err != nil {
			result.Failures = append(result.Failures, Failure{
				Path: src,
				Err:  fmt.Errorf("move %s: %w", src, err),
			})
			logger.Warn("failed to move file",
				logging.String(logging.FieldPath, src), logging.Error(err))
			continue
		}
		result.Moved = append(result.Moved, dst)
		logger.Debug("moved file",
			logging.String("from", src), logging.String("to", dst))
	}

	logger.Info("relocation finished",
		logging.String("destination", destDir),
		logging.Int("moved", len(result.Moved)),
		logging.Int("failed", len(result.Failures)))
	return result, nil
}

func (r *Relocator) ensureDestination(destDir string, createMissing bool) error {
	info, err := os.Stat(destDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if !createMissing {
			return services.Wrap(services.ErrNotFound, "relocate", "check destination",
				fmt.Sprintf("directory %s does not exist (pass --create to make it)", destDir), nil)
		}
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return fmt.Errorf("create destination %s: %w", destDir, err)
		}
	case err != nil:
		return fmt.Errorf("stat destination %s: %w", destDir, err)
	case !info.IsDir():
		return services.Wrap(services.ErrValidation, "relocate", "check destination",
			fmt.Sprintf("%s is not a directory", destDir), nil)
	}

	if err := unix.Access(destDir, unix.W_OK|unix.X_OK); err != nil {
		return services.Wrap(services.ErrValidation, "relocate", "check destination",
			fmt.Sprintf("directory %s is not writable", destDir), err)
	}
	return nil
}
