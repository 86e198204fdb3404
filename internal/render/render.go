// Package render provides output formatting for CLI commands. Presentation
// only; commands compute, render formats.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/halden/agentwire/internal/audit"
	"github.com/halden/agentwire/internal/mcp"
	"github.com/halden/agentwire/internal/registry"
)

// Renderer handles output formatting.
type Renderer struct {
	pretty bool
}

// New creates a renderer. With pretty false the output is plain text,
// suitable for pipes.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// StatusRow is one tool's detection result prepared for display. Key is
// expected to be pre-masked.
type StatusRow struct {
	Tool  string
	Title string
	Plan  string
	Key   string
	Model string
}

// Status formats the per-tool configuration table.
func (r *Renderer) Status(rows []StatusRow) string {
	if len(rows) == 0 {
		return "No tools configured"
	}

	var sb strings.Builder
	if r.pretty {
		sb.WriteString(color.CyanString("Tool Configuration\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for _, row := range rows {
		if row.Plan == "" {
			if r.pretty {
				fmt.Fprintf(&sb, "%s %-12s not configured\n", color.HiBlackString("○"), row.Title)
			} else {
				fmt.Fprintf(&sb, "%-12s -\n", row.Tool)
			}
			continue
		}
		if r.pretty {
			fmt.Fprintf(&sb, "%s %-12s plan=%s key=%s", color.GreenString("●"), row.Title, color.YellowString(row.Plan), row.Key)
		} else {
			fmt.Fprintf(&sb, "%-12s plan=%s key=%s", row.Tool, row.Plan, row.Key)
		}
		if row.Model != "" {
			fmt.Fprintf(&sb, " model=%s", row.Model)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Plans formats the available provider plans.
func (r *Renderer) Plans(reg *registry.Registry) string {
	var sb strings.Builder

	for _, id := range reg.Identities() {
		if r.pretty {
			fmt.Fprintf(&sb, "%s (default model %s, context %d)\n", color.CyanString(id.DisplayName), id.DefaultModel, id.MaxContext)
		} else {
			fmt.Fprintf(&sb, "%s model=%s context=%d\n", id.ID, id.DefaultModel, id.MaxContext)
		}
		fmt.Fprintf(&sb, "  %-12s %s\n", id.ID, id.BaseURLs[id.Protocol])
		for _, v := range id.Variants {
			url := v.BaseURL
			if url == "" {
				url = "(requires --base-url)"
			}
			fmt.Fprintf(&sb, "  %-12s %s\n", v.Name, url)
		}
	}
	return sb.String()
}

// History formats recent audit events, newest first.
func (r *Renderer) History(events []audit.Event) string {
	if len(events) == 0 {
		return "No history recorded"
	}

	var sb strings.Builder
	if r.pretty {
		sb.WriteString(color.CyanString("Recent Operations\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for _, e := range events {
		timeStr := e.StartedAt.Format("2006-01-02 15:04:05")
		target := e.Tool
		if e.Plan != "" {
			target += " → " + e.Plan
		}

		if r.pretty {
			icon := color.GreenString("✓")
			if e.Status == audit.StatusError {
				icon = color.RedString("✗")
			} else if e.Status == audit.StatusWarning {
				icon = color.YellowString("!")
			}
			fmt.Fprintf(&sb, "%s %s %-8s %s", icon, color.HiBlackString(timeStr), e.Operation, target)
		} else {
			fmt.Fprintf(&sb, "[%s] %s %-8s %s", timeStr, e.Status, e.Operation, target)
		}
		if e.ErrorMessage != "" {
			fmt.Fprintf(&sb, " (%s)", e.ErrorMessage)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Servers formats the MCP server catalog.
func (r *Renderer) Servers(servers []mcp.Server) string {
	if len(servers) == 0 {
		return "No servers available"
	}

	var sb strings.Builder
	for _, s := range servers {
		name := s.Name
		if r.pretty {
			name = color.CyanString(name)
		}
		fmt.Fprintf(&sb, "%-14s %s\n", name, s.Description)
		fmt.Fprintf(&sb, "  %s %s\n", s.Command, strings.Join(s.Args, " "))
	}
	return sb.String()
}

// Check is one doctor diagnostic result.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Doctor formats environment diagnostics.
func (r *Renderer) Doctor(checks []Check) string {
	var sb strings.Builder
	healthy := true

	for _, c := range checks {
		icon := "ok"
		if r.pretty {
			icon = color.GreenString("✓")
		}
		if !c.OK {
			healthy = false
			icon = "FAIL"
			if r.pretty {
				icon = color.RedString("✗")
			}
		}
		fmt.Fprintf(&sb, "%s %-24s %s\n", icon, c.Name, c.Detail)
	}

	sb.WriteByte('\n')
	if healthy {
		sb.WriteString("Environment OK\n")
	} else {
		sb.WriteString("Problems found; fix the failing checks above\n")
	}
	return sb.String()
}
