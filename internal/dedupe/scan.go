package dedupe

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"curator/internal/logging"
)

// ScanError records a file that could not participate in grouping.
type ScanError struct {
	Path string
	Err  error
}

// ScanResult is the outcome of one directory scan.
type ScanResult struct {
	Dir  string
	Mode Mode
	// Missing is set when the directory does not exist. The scan yields an
	// empty result; callers report the condition instead of failing.
	Missing bool
	// Files holds every matching file in enumeration order, grouped or not.
	Files []File
	// Groups holds the duplicate groups, each with two or more members, in
	// first-seen key order.
	Groups []Group
	// Errors holds files excluded from grouping because they could not be
	// read. Unrelated duplicate groups are still detected.
	Errors []ScanError
}

// Scanner enumerates a directory and partitions matching files into
// duplicate groups.
type Scanner struct {
	extension string
	workers   int
	logger    *slog.Logger
	progress  func(done, total int)
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithWorkers bounds concurrent hashing in ByHash mode. Zero or negative
// selects a CPU-based default.
func WithWorkers(n int) ScannerOption {
	return func(s *Scanner) { s.workers = n }
}

// WithLogger attaches a logger for per-file diagnostics.
func WithLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProgress installs a callback invoked after each file is hashed in
// ByHash mode.
func WithProgress(fn func(done, total int)) ScannerOption {
	return func(s *Scanner) { s.progress = fn }
}

// NewScanner constructs a scanner for files carrying the given extension
// (leading dot included).
func NewScanner(extension string, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		extension: strings.ToLower(extension),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan enumerates dir non-recursively and buckets matching files under a key
// derived from the given mode. Buckets with fewer than two members are
// pruned. A missing directory is reported via ScanResult.Missing rather than
// an error. In ByHash mode an unreadable file is excluded from grouping and
// recorded in ScanResult.Errors; the scan continues so one bad file cannot
// suppress detection of unrelated groups.
func (s *Scanner) Scan(ctx context.Context, dir string, mode Mode) (*ScanResult, error) {
	result := &ScanResult{Dir: dir, Mode: mode}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Missing = true
			return result, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), s.extension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, ScanError{
				Path: filepath.Join(dir, name),
				Err:  err,
			})
			continue
		}
		result.Files = append(result.Files, File{
			Path: filepath.Join(dir, name),
			Size: info.Size(),
		})
	}

	var keys []string
	var skip []bool
	switch mode {
	case ByTitle:
		keys = make([]string, len(result.Files))
		for i, file := range result.Files {
			keys[i] = Normalize(file.Name())
		}
	case ByHash:
		keys, skip, err = s.hashAll(ctx, result)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unknown detection mode")
	}

	result.Groups = bucket(result.Files, keys, skip)
	return result, nil
}

// hashAll digests every file in result.Files across a bounded worker pool.
// The returned keys and skip flags align with result.Files; skip marks files
// excluded by a read failure.
func (s *Scanner) hashAll(ctx context.Context, result *ScanResult) ([]string, []bool, error) {
	total := len(result.Files)
	keys := make([]string, total)
	skip := make([]bool, total)
	hashErrs := make([]error, total)

	workers := s.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8
		}
	}
	if workers > total {
		workers = total
	}
	if workers == 0 {
		return keys, skip, nil
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	var done int
	var progressMu sync.Mutex

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				keys[i], hashErrs[i] = HashFile(result.Files[i].Path)
				if s.progress != nil {
					progressMu.Lock()
					done++
					s.progress(done, total)
					progressMu.Unlock()
				}
			}
		}()
	}

	var canceled error
feed:
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			canceled = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if canceled != nil {
		return nil, nil, canceled
	}

	for i, err := range hashErrs {
		if err == nil {
			continue
		}
		s.logger.Warn("excluding unreadable file from grouping",
			logging.String(logging.FieldPath, result.Files[i].Path), logging.Error(err))
		result.Errors = append(result.Errors, ScanError{Path: result.Files[i].Path, Err: err})
		skip[i] = true
	}
	return keys, skip, nil
}

// bucket groups files by key in first-seen key order, preserving the input
// order within each bucket, and prunes buckets with fewer than two members.
// Files flagged in skip (excluded by a read failure) do not participate. An
// empty key is still a real key: title mode maps names like "01 - .flac" to
// "", and those files group together.
func bucket(files []File, keys []string, skip []bool) []Group {
	byKey := make(map[string]int, len(files))
	var groups []Group
	for i, file := range files {
		if skip != nil && skip[i] {
			continue
		}
		key := keys[i]
		idx, ok := byKey[key]
		if !ok {
			idx = len(groups)
			byKey[key] = idx
			groups = append(groups, Group{Key: key})
		}
		groups[idx].Files = append(groups[idx].Files, file)
	}

	kept := groups[:0]
	for _, group := range groups {
		if len(group.Files) >= 2 {
			kept = append(kept, group)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
