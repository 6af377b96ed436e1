package dedupe

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"curator/internal/logging"
)

// Decision is a group resolved into one keep and the remainder to remove.
type Decision struct {
	Key    string
	Keep   File
	Remove []File
}

// Failure records a remove candidate that could not be deleted.
type Failure struct {
	Path string
	Err  error
}

// Report aggregates the outcome of one resolution run.
type Report struct {
	RunID     string
	DryRun    bool
	Groups    int
	Kept      int
	Removed   int
	Decisions []Decision
	Failures  []Failure
}

// ResolveOptions configures a resolution run.
type ResolveOptions struct {
	// DryRun records would-remove outcomes without touching the filesystem.
	DryRun bool
	// Policy selects the representative per group. Nil uses KeepLargest.
	Policy Policy
	Logger *slog.Logger
}

// removeFile is swapped in tests that exercise deletion failures.
var removeFile = os.Remove

// Resolve applies the keep policy to every group and removes (or, in dry-run
// mode, merely reports) the rest. A single file's deletion failure is
// recorded and does not abort the remaining files or groups. There is no
// rollback: interrupting a destructive run leaves earlier groups resolved
// and later ones untouched.
func Resolve(groups []Group, opts ResolveOptions) *Report {
	policy := opts.Policy
	if policy == nil {
		policy = KeepLargest
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	report := &Report{
		RunID:  uuid.NewString(),
		DryRun: opts.DryRun,
	}

	for _, group := range groups {
		keep := policy(group.Files)
		decision := Decision{Key: group.Key, Keep: keep}
		for _, file := range group.Files {
			if file.Path == keep.Path {
				continue
			}
			decision.Remove = append(decision.Remove, file)
		}

		report.Groups++
		report.Kept++
		logger.Info("resolved duplicate group",
			logging.String("key", group.Key),
			logging.String("keep", keep.Name()),
			logging.Int("remove", len(decision.Remove)),
			logging.Bool("dry_run", opts.DryRun))

		for _, file := range decision.Remove {
			if opts.DryRun {
				report.Removed++
				continue
			}
			if err := removeFile(file.Path); err != nil {
				failure := Failure{
					Path: file.Path,
					Err:  fmt.Errorf("remove %s: %w", file.Path, err),
				}
				report.Failures = append(report.Failures, failure)
				logger.Warn("failed to remove duplicate",
					logging.String(logging.FieldPath, file.Path), logging.Error(err))
				continue
			}
			report.Removed++
		}
		report.Decisions = append(report.Decisions, decision)
	}

	return report
}
