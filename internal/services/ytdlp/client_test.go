package ytdlp

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"

	"curator/internal/config"
)

func TestNewCLIDefaultsBinary(t *testing.T) {
	cli := NewCLI(config.Fetch{})
	if cli.binary != "yt-dlp" {
		t.Fatalf("expected default binary, got %q", cli.binary)
	}
}

func TestDownloadRequiresURL(t *testing.T) {
	cli := NewCLI(config.Fetch{Binary: "yt-dlp"})
	if err := cli.Download(context.Background(), "  ", t.TempDir()); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestDownloadRequiresDestination(t *testing.T) {
	cli := NewCLI(config.Fetch{Binary: "yt-dlp"})
	if err := cli.Download(context.Background(), "https://example.com/playlist", ""); err == nil {
		t.Fatal("expected error for empty destination")
	}
}

func TestDownloadBuildsExpectedArgs(t *testing.T) {
	var capturedName string
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedName = name
		capturedArgs = append([]string(nil), args...)
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { commandContext = original })

	cli := NewCLI(config.Fetch{
		Binary:        "yt-dlp",
		AudioFormat:   "flac",
		AudioQuality:  "0",
		EmbedMetadata: true,
	})
	if err := cli.Download(context.Background(), "https://example.com/playlist", t.TempDir()); err != nil {
		t.Fatalf("Download: %v", err)
	}

	if capturedName != "yt-dlp" {
		t.Errorf("binary = %q", capturedName)
	}
	for _, want := range []string{"-x", "--audio-format", "flac", "--audio-quality", "0", "--embed-metadata", "-o", outputTemplate} {
		if !slices.Contains(capturedArgs, want) {
			t.Errorf("args missing %q: %v", want, capturedArgs)
		}
	}
	if capturedArgs[len(capturedArgs)-1] != "https://example.com/playlist" {
		t.Errorf("url must be the final argument: %v", capturedArgs)
	}
}

func TestDownloadSkipsMetadataFlagsWhenDisabled(t *testing.T) {
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedArgs = append([]string(nil), args...)
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { commandContext = original })

	cli := NewCLI(config.Fetch{Binary: "yt-dlp", AudioFormat: "flac", AudioQuality: "0"})
	if err := cli.Download(context.Background(), "https://example.com/p", t.TempDir()); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if slices.Contains(capturedArgs, "--embed-thumbnail") {
		t.Errorf("unexpected metadata flags: %v", capturedArgs)
	}
}

func TestReadList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	content := "https://example.com/a\n\n# comment\nhttps://example.com/b  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadList(path)
	if err != nil {
		t.Fatalf("ReadList: %v", err)
	}
	want := []string{"https://example.com/a", "https://example.com/b"}
	if !slices.Equal(urls, want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
}

func TestReadListMissingFile(t *testing.T) {
	if _, err := ReadList(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing list file")
	}
}
