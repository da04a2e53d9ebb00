// registry.go holds the extensions compiled into the binary and answers the
// cross-extension questions the root command and MCP server ask: which
// commands skip the catalog, which commands write to it, and which MCP tools
// exist.
//
// Extensions register from init(), before main() runs, so a duplicate
// extension name or tool name is a build mistake and panics in the style of
// database/sql.Register. Registration order is kept so commands and tools
// list the same way on every run.

package extension

import "sync"

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string
)

// Register adds an extension. Called from init() functions.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}
	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// StorelessCommands returns the commands extensions run without opening
// the catalog.
func StorelessCommands() map[string]bool {
	out := map[string]bool{}
	for _, ext := range All() {
		if s, ok := ext.(Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				out[name] = true
			}
		}
	}
	return out
}

// WriteCommands returns the commands that stamp audit columns and therefore
// refuse to run without a user.
func WriteCommands() map[string]bool {
	out := map[string]bool{}
	for _, ext := range All() {
		if w, ok := ext.(Writer); ok {
			for _, name := range w.WriteCommands() {
				out[name] = true
			}
		}
	}
	return out
}

// Tools returns every extension's MCP tools in registration order. Two
// tools with one name would shadow each other on the server, so that panics.
func Tools() []MCPTool {
	var tools []MCPTool
	owner := map[string]string{}
	for _, ext := range All() {
		for _, t := range ext.MCPTools() {
			if prev, ok := owner[t.Tool.Name]; ok {
				panic("mcp tool " + t.Tool.Name + " registered by both " + prev + " and " + ext.Name())
			}
			owner[t.Tool.Name] = ext.Name()
			tools = append(tools, t)
		}
	}
	return tools
}
