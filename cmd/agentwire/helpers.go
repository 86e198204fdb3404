package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/halden/agentwire/internal/tool"
)

// readAPIKey obtains the API key for a load: the --key flag when given, a
// hidden terminal prompt when stdin is a TTY, a line from stdin otherwise
// (so keys can be piped in without hitting shell history).
func readAPIKey(flagValue string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "API key: ")
		key, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		return string(key), nil
	}

	reader := bufio.NewReader(os.Stdin)
	key, err := reader.ReadString('\n')
	if err != nil && key == "" {
		return "", fmt.Errorf("read key from stdin: %w", err)
	}
	return strings.TrimSpace(key), nil
}

// snapshotTool backs up every file a manager writes before the first
// mutation. Backup failures are warnings, not blockers.
func snapshotTool(m tool.Manager) {
	for _, path := range m.Paths() {
		if _, err := backups.Snapshot(m.Name(), path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: backup of %s failed: %v\n", path, err)
		}
	}
}
