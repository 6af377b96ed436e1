package dedupe

import "path/filepath"

// Mode selects the predicate under which two files count as duplicates.
type Mode string

const (
	// ByTitle groups files whose normalized song titles match.
	ByTitle Mode = "title"
	// ByHash groups files whose byte content is identical.
	ByHash Mode = "hash"
)

// ParseMode maps a user-supplied mode name to a Mode.
func ParseMode(value string) (Mode, bool) {
	switch Mode(value) {
	case ByTitle, ByHash:
		return Mode(value), true
	default:
		return "", false
	}
}

// File is a scanned directory entry. Identity is the path; size is observed
// once at scan time and used only for representative selection.
type File struct {
	Path string
	Size int64
}

// Name returns the file's base name.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Group is a set of files sharing one group key. Scans only surface groups
// with at least two members.
type Group struct {
	Key   string
	Files []File
}
