// Package mcp holds the built-in catalog of MCP server definitions that can
// be installed into tools supporting extension management. Pure data;
// installation goes through a tool manager.
package mcp

// Server describes one MCP server launch configuration.
type Server struct {
	Name        string
	Description string
	Command     string
	Args        []string
	Env         map[string]string
}

var catalog = []Server{
	{
		Name:        "web-search",
		Description: "Moonshot web search over the native API",
		Command:     "npx",
		Args:        []string{"-y", "@moonshot-ai/mcp-web-search"},
		Env:         map[string]string{"MOONSHOT_API_KEY": ""},
	},
	{
		Name:        "fetch",
		Description: "Fetch and convert web pages for model context",
		Command:     "uvx",
		Args:        []string{"mcp-server-fetch"},
	},
	{
		Name:        "filesystem",
		Description: "Read/write access to the home directory",
		Command:     "npx",
		Args:        []string{"-y", "@modelcontextprotocol/server-filesystem", "~"},
	},
}

// Catalog returns the built-in servers. The slice is a copy.
func Catalog() []Server {
	out := make([]Server, len(catalog))
	copy(out, catalog)
	return out
}

// Find looks up a built-in server by name.
func Find(name string) (Server, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Server{}, false
}
