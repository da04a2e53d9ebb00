// Package extension provides the plugin architecture for darc. Extensions
// encapsulate related functionality (commands, MCP tools) and register at
// init time, enabling modular feature development without touching core code.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for darc extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions can perform setup (migrations, etc).
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a store. Commands returned by NoStoreCommands() will
// not trigger store initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before store exists
// 2. Commands that manage their own service lifecycle
// 3. Utility commands that don't need catalog storage
type Storeless interface {
	NoStoreCommands() []string
}

// Writer is implemented by extensions whose commands change the catalog.
// The root command refuses those commands until a user is configured,
// since every write records an owner and author.
type Writer interface {
	WriteCommands() []string
}
