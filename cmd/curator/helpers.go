package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func humanSize(n int64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)
	switch {
	case n >= gib:
		return fmt.Sprintf("%.1fGB", float64(n)/gib)
	case n >= mib:
		return fmt.Sprintf("%.1fMB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.1fKB", float64(n)/kib)
	default:
		return fmt.Sprintf("%dB", n)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirmDestruction asks for an explicit "yes" before any deletion begins.
// Non-interactive callers must pass --yes instead.
func confirmDestruction(cmd *cobra.Command, assumeYes bool, prompt string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !stdoutIsTerminal() {
		return false, fmt.Errorf("refusing to remove files without confirmation; re-run with --yes")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (yes/no): ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.TrimSpace(strings.ToLower(answer)) == "yes", nil
}
