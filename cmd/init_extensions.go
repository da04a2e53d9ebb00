/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the complex initialisation logic that
// discovers the catalog, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the catalog exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/config"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/repo"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built dynamically from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// userRequiredCommands lists commands that write to the catalog and so need
// an identity to stamp on the audit columns. Filled from extension.Writer
// implementations.
var userRequiredCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip store initialisation.
//
// Why this exists: Most commands need the catalog, but some must work
// without it. There are two categories:
//
//  1. Bootstrap commands (init, guide, config) - These help users set up
//     or learn about darc before a catalog exists. Running "darc guide"
//     shouldn't fail just because you haven't run "darc init" yet.
//
//  2. Extension-declared storeless commands - Extensions can implement the
//     Storeless interface to declare commands that manage their own service
//     lifecycle. For example, "serve" must start without a catalog.
//
// When adding a new command: If it's a core bootstrap command, add it here.
// Otherwise, implement extension.Storeless in your extension.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
	}

	for name := range extension.StorelessCommands() {
		cmds[name] = true
	}
	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *catalog.Service
	initOnce   sync.Once
	initErr    error
)

// OpenService opens the catalog named by --db, honouring --dir when set.
// Storeless commands use it to manage their own service lifecycle.
func OpenService() (*catalog.Service, error) {
	if d := Dir(); d != "" {
		path := filepath.Join(d, repo.Dir, repo.DBFileName(DB()))
		if _, err := os.Stat(path); err != nil {
			return nil, repo.ErrNotInitialised
		}
		return catalog.Open(path)
	}
	return catalog.New(DB())
}

// initExtensions creates the catalog service and injects it into extensions.
//
// Why sync.Once: The service is expensive to create (opens DB, sets up WAL mode)
// and must be shared across all extensions. We use sync.Once to guarantee exactly
// one initialisation per process, even if multiple commands somehow trigger it.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := OpenService()
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		// Set project identifier for audit logging
		log.SetProject(svc.Dir())

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, cfg)

		// Inject the shared context into all Initializable extensions.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Both sets need every extension registered first
		noStoreCommands = buildNoStoreCommands()
		userRequiredCommands = extension.WriteCommands()
	})
}
