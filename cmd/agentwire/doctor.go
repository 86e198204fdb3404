package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halden/agentwire/internal/confstore"
	"github.com/halden/agentwire/internal/render"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the local environment",
		Run: func(cmd *cobra.Command, args []string) {
			var checks []render.Check

			if err := paths.EnsureHome(); err != nil {
				checks = append(checks, render.Check{Name: "home writable", Detail: err.Error()})
			} else {
				checks = append(checks, render.Check{Name: "home writable", OK: true, Detail: paths.Home})
			}

			// Registry already loaded in initApp; report where it came from.
			source := "built-in table"
			if paths.RegistryTable != "" {
				source = paths.RegistryTable
			}
			checks = append(checks, render.Check{Name: "provider registry", OK: true, Detail: source})

			for _, m := range managers {
				checks = append(checks, checkToolFiles(m.Name(), m.Paths())...)
			}

			fmt.Print(renderer.Doctor(checks))
		},
	}
}

// checkToolFiles verifies each existing JSON config file still parses. A
// missing file is healthy (the tool is simply not installed or not yet
// configured); a malformed one is what doctor exists to catch.
func checkToolFiles(toolName string, files []string) []render.Check {
	var checks []render.Check
	for _, path := range files {
		name := fmt.Sprintf("%s config", toolName)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			checks = append(checks, render.Check{Name: name, OK: true, Detail: path + " (absent)"})
			continue
		}
		if !isJSONFile(path) {
			checks = append(checks, render.Check{Name: name, OK: true, Detail: path})
			continue
		}
		if _, err := confstore.New(path).Read(); err != nil {
			checks = append(checks, render.Check{Name: name, Detail: err.Error()})
		} else {
			checks = append(checks, render.Check{Name: name, OK: true, Detail: path})
		}
	}
	return checks
}

func isJSONFile(path string) bool {
	return len(path) > 5 && path[len(path)-5:] == ".json"
}
