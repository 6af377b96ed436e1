package dedupe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestScanByTitleGroupsAndPrunes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01 - Song.flac", make([]byte, 10))
	writeFile(t, dir, "02 - Song.flac", make([]byte, 8))
	writeFile(t, dir, "03 - Unique.flac", make([]byte, 5))
	writeFile(t, dir, "notes.txt", []byte("ignored"))
	if err := os.Mkdir(filepath.Join(dir, "sub.flac"), 0o755); err != nil {
		t.Fatal(err)
	}

	scanner := NewScanner(".flac")
	result, err := scanner.Scan(context.Background(), dir, ByTitle)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Missing {
		t.Fatal("directory exists, Missing should be false")
	}
	if len(result.Files) != 3 {
		t.Fatalf("expected 3 matching files, got %d", len(result.Files))
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result.Groups))
	}
	group := result.Groups[0]
	if group.Key != "Song" {
		t.Errorf("group key = %q, want Song", group.Key)
	}
	if len(group.Files) != 2 {
		t.Errorf("group size = %d, want 2", len(group.Files))
	}
}

func TestScanByTitleGroupsEmptyTitles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01 - .flac", make([]byte, 10))
	writeFile(t, dir, "02 - .flac", make([]byte, 8))

	scanner := NewScanner(".flac")
	result, err := scanner.Scan(context.Background(), dir, ByTitle)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected 1 group for files normalizing to an empty title, got %d", len(result.Groups))
	}
	group := result.Groups[0]
	if group.Key != "" {
		t.Errorf("group key = %q, want empty", group.Key)
	}
	if len(group.Files) != 2 {
		t.Errorf("group size = %d, want 2", len(group.Files))
	}
}

func TestScanNeverYieldsSingletonGroups(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01 - A.flac", []byte("a"))
	writeFile(t, dir, "01 - B.flac", []byte("b"))
	writeFile(t, dir, "01 - C.flac", []byte("c"))

	scanner := NewScanner(".flac")
	for _, mode := range []Mode{ByTitle, ByHash} {
		result, err := scanner.Scan(context.Background(), dir, mode)
		if err != nil {
			t.Fatalf("Scan %s: %v", mode, err)
		}
		for _, group := range result.Groups {
			if len(group.Files) < 2 {
				t.Errorf("mode %s yielded group of size %d", mode, len(group.Files))
			}
		}
	}
}

func TestScanByHashGroupsUnrelatedNames(t *testing.T) {
	dir := t.TempDir()
	content := []byte("identical payload")
	writeFile(t, dir, "first.flac", content)
	writeFile(t, dir, "second take.flac", content)
	writeFile(t, dir, "third.flac", []byte("different payload"))

	scanner := NewScanner(".flac")

	hashResult, err := scanner.Scan(context.Background(), dir, ByHash)
	if err != nil {
		t.Fatalf("Scan hash: %v", err)
	}
	if len(hashResult.Groups) != 1 {
		t.Fatalf("hash mode: expected 1 group, got %d", len(hashResult.Groups))
	}
	if len(hashResult.Groups[0].Files) != 2 {
		t.Errorf("hash group size = %d, want 2", len(hashResult.Groups[0].Files))
	}

	titleResult, err := scanner.Scan(context.Background(), dir, ByTitle)
	if err != nil {
		t.Fatalf("Scan title: %v", err)
	}
	if len(titleResult.Groups) != 0 {
		t.Errorf("title mode: expected no groups for unrelated names, got %d", len(titleResult.Groups))
	}
}

func TestScanMissingDirectory(t *testing.T) {
	scanner := NewScanner(".flac")
	result, err := scanner.Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), ByTitle)
	if err != nil {
		t.Fatalf("missing directory should not error: %v", err)
	}
	if !result.Missing {
		t.Error("expected Missing=true")
	}
	if len(result.Groups) != 0 || len(result.Files) != 0 {
		t.Error("missing directory must yield an empty result")
	}
}

func TestScanByHashIsolatesUnreadableFiles(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits do not bind for root")
	}
	dir := t.TempDir()
	content := []byte("shared content")
	writeFile(t, dir, "a.flac", content)
	writeFile(t, dir, "b.flac", content)
	locked := writeFile(t, dir, "locked.flac", []byte("other"))
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

	scanner := NewScanner(".flac")
	result, err := scanner.Scan(context.Background(), dir, ByHash)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 scan error, got %d", len(result.Errors))
	}
	if result.Errors[0].Path != locked {
		t.Errorf("scan error path = %q, want %q", result.Errors[0].Path, locked)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("unreadable file must not suppress other groups, got %d groups", len(result.Groups))
	}
}

func TestScanHashWorkerPoolMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("same bytes everywhere")
	for _, name := range []string{"a.flac", "b.flac", "c.flac", "d.flac", "e.flac"} {
		writeFile(t, dir, name, payload)
	}

	sequential := NewScanner(".flac", WithWorkers(1))
	parallel := NewScanner(".flac", WithWorkers(4))

	seqResult, err := sequential.Scan(context.Background(), dir, ByHash)
	if err != nil {
		t.Fatal(err)
	}
	parResult, err := parallel.Scan(context.Background(), dir, ByHash)
	if err != nil {
		t.Fatal(err)
	}

	if len(seqResult.Groups) != 1 || len(parResult.Groups) != 1 {
		t.Fatalf("expected one group from both scans, got %d and %d", len(seqResult.Groups), len(parResult.Groups))
	}
	seqGroup := seqResult.Groups[0]
	parGroup := parResult.Groups[0]
	if seqGroup.Key != parGroup.Key {
		t.Errorf("keys differ: %s vs %s", seqGroup.Key, parGroup.Key)
	}
	if len(seqGroup.Files) != len(parGroup.Files) {
		t.Fatalf("group sizes differ: %d vs %d", len(seqGroup.Files), len(parGroup.Files))
	}
	for i := range seqGroup.Files {
		if seqGroup.Files[i].Path != parGroup.Files[i].Path {
			t.Errorf("file order differs at %d: %s vs %s", i, seqGroup.Files[i].Path, parGroup.Files[i].Path)
		}
	}
}

func TestScanProgressCallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.flac", []byte("x"))
	writeFile(t, dir, "b.flac", []byte("y"))

	var calls int
	scanner := NewScanner(".flac", WithWorkers(1), WithProgress(func(done, total int) {
		calls++
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
	}))
	if _, err := scanner.Scan(context.Background(), dir, ByHash); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("progress called %d times, want 2", calls)
	}
}

func TestScanEveryFileInAtMostOneGroup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01 - Song.flac", make([]byte, 4))
	writeFile(t, dir, "02 - Song.flac", make([]byte, 4))
	writeFile(t, dir, "01 - Other.flac", make([]byte, 4))
	writeFile(t, dir, "02 - Other.flac", make([]byte, 4))

	scanner := NewScanner(".flac")
	result, err := scanner.Scan(context.Background(), dir, ByTitle)
	if err != nil {
		t.Fatal(err)
	}

	matching := make(map[string]bool, len(result.Files))
	for _, file := range result.Files {
		matching[file.Path] = true
	}
	seen := make(map[string]bool)
	for _, group := range result.Groups {
		for _, file := range group.Files {
			if !matching[file.Path] {
				t.Errorf("grouped file %s was not in the scanned set", file.Path)
			}
			if seen[file.Path] {
				t.Errorf("file %s appears in more than one group", file.Path)
			}
			seen[file.Path] = true
		}
	}
}
