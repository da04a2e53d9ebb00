// Package all imports all core darc extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/darc/extension/admin"
	_ "github.com/jpl-au/darc/extension/catalog"
	_ "github.com/jpl-au/darc/extension/core"
	_ "github.com/jpl-au/darc/extension/search"
)
