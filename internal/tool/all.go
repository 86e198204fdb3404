package tool

import "github.com/halden/agentwire/internal/registry"

// All constructs the supported managers for one provider identity with
// explicit file wiring.
func All(reg *registry.Registry, identity string, p Paths) []Manager {
	return []Manager{
		NewPi(reg, identity, p.Pi),
		NewClaude(reg, identity, p.ClaudeSettings, p.ClaudeJSON),
		NewCodex(reg, identity, p.CodexConfig, p.CodexAuth),
	}
}
