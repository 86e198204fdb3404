// Package main provides the agentwire CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halden/agentwire/internal/audit"
	"github.com/halden/agentwire/internal/backup"
	"github.com/halden/agentwire/internal/config"
	"github.com/halden/agentwire/internal/registry"
	"github.com/halden/agentwire/internal/render"
	"github.com/halden/agentwire/internal/tool"
)

var version = "0.1.0"

// providerID is the managed provider identity. The registry table can hold
// more identities; the CLI currently drives this one.
const providerID = "kimi"

var (
	plain    bool
	homeFlag string

	paths       config.Paths
	reg         *registry.Registry
	managers    []tool.Manager
	backups     *backup.Manager
	renderer    *render.Renderer
	auditLogger *audit.Logger
	history     *audit.Store
	auditFile   *os.File
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agentwire",
		Short: "Point AI coding agents at your provider account",
		Long: `agentwire configures third-party AI coding agents (pi, Claude Code,
Codex CLI) to use your provider account, editing each tool's own config
format without disturbing the rest of the file.

Use 'agentwire status' to see what is currently configured.
Use 'agentwire use <tool>' to configure a tool.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Plain output, no color")
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "Application home directory (default ~/.agentwire)")

	rootCmd.AddCommand(
		useCmd(),
		unloadCmd(),
		statusCmd(),
		plansCmd(),
		toolsCmd(),
		mcpCmd(),
		historyCmd(),
		backupsCmd(),
		doctorCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initApp() error {
	paths = config.DefaultPaths()
	if homeFlag != "" {
		paths = paths.WithHome(homeFlag)
	}

	var err error
	if paths.RegistryTable != "" {
		reg, err = registry.LoadFile(paths.RegistryTable)
	} else {
		reg, err = registry.Load()
	}
	if err != nil {
		return fmt.Errorf("load provider registry: %w", err)
	}

	managers = tool.All(reg, providerID, tool.Paths{
		Pi:             paths.Pi,
		ClaudeSettings: paths.ClaudeSettings,
		ClaudeJSON:     paths.ClaudeJSON,
		CodexConfig:    paths.CodexConfig,
		CodexAuth:      paths.CodexAuth,
	})
	backups = backup.NewManager(paths.Backups)
	renderer = render.New(!plain)

	// Audit output and history are best-effort: a read-only home must not
	// stop configuration work.
	opts := []audit.LoggerOption{}
	if err := paths.EnsureHome(); err == nil {
		if f, err := os.OpenFile(paths.AuditLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
			auditFile = f
			opts = append(opts, audit.WithOutput(f))
		}
		if s, err := audit.NewStore(paths.HistoryDB); err == nil {
			history = s
			opts = append(opts, audit.WithStore(s))
		}
	}
	auditLogger = audit.NewLogger(opts...)
	return nil
}

func closeApp() {
	if history != nil {
		history.Close()
	}
	if auditFile != nil {
		auditFile.Close()
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("agentwire %s\n", version)
		},
	}
}
