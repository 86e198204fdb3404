package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halden/agentwire/internal/audit"
	"github.com/halden/agentwire/internal/provider"
	"github.com/halden/agentwire/internal/tool"
)

func useCmd() *cobra.Command {
	var (
		plan    string
		key     string
		baseURL string
		model   string
	)

	cmd := &cobra.Command{
		Use:   "use <tool>",
		Short: "Configure a tool to use your provider account",
		Long: `Configure one tool to use your provider account.

Plans select the hosting channel: the provider's native API (default),
a gateway (nvidia, openrouter), a regional mirror (glm-global, glm-china)
or a custom endpoint (requires --base-url).

Examples:
  agentwire use pi
  agentwire use claude --plan glm-global --key sk-...
  agentwire use codex --plan openrouter --model moonshotai/kimi-k2-thinking
  agentwire use pi --plan custom --base-url https://gw.corp/v1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := tool.For(managers, args[0])
			if err != nil {
				return err
			}

			apiKey, err := readAPIKey(key)
			if err != nil {
				return err
			}

			opts := provider.Options{BaseURL: baseURL, Model: model, Source: planSource(plan)}

			event := auditLogger.Start(audit.CategoryTool, "use")
			event.Tool = mgr.Name()
			event.Plan = plan

			snapshotTool(mgr)
			if err := mgr.Load(apiKey, opts); err != nil {
				auditLogger.LogError(event, err)
				return err
			}

			d := mgr.Detect()
			event.Plan = d.Plan
			event.Model = d.Model
			auditLogger.LogSuccess(event)

			fmt.Printf("%s configured (plan %s, model %s, key %s)\n", mgr.Title(), d.Plan, d.Model, audit.Mask(d.APIKey))
			return nil
		},
	}

	cmd.Flags().StringVarP(&plan, "plan", "p", "", "Hosting plan (nvidia, openrouter, glm-global, glm-china, custom; default native)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "API key (prompted when omitted)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Override the plan's base URL")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Override the plan's default model")
	return cmd
}

// planSource maps the user-facing --plan value to a registry source. The
// provider's own name selects the native plan.
func planSource(plan string) string {
	if plan == providerID || plan == "native" {
		return ""
	}
	return plan
}
