package dedupe

import "slices"

// Policy picks the single file to keep out of a duplicate group. The input is
// never empty; implementations must be deterministic for a given multiset of
// (size, name) pairs.
type Policy func(files []File) File

// KeepLargest is the default policy: largest file first (a heuristic proxy
// for audio quality), name ascending as the tie-break so selection is
// reproducible across runs.
func KeepLargest(files []File) File {
	if len(files) == 0 {
		panic("dedupe: choose keep called with empty group")
	}
	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(l, r File) int {
		if l.Size != r.Size {
			if l.Size > r.Size {
				return -1
			}
			return 1
		}
		if l.Name() < r.Name() {
			return -1
		}
		if l.Name() > r.Name() {
			return 1
		}
		return 0
	})
	return sorted[0]
}

// ChooseKeep applies the default policy.
func ChooseKeep(files []File) File {
	return KeepLargest(files)
}
