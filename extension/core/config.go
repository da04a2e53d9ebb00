// config.go implements the "darc config" command for configuration management.
//
// Separated from extension.go to isolate config-specific logic including
// the local vs global config precedence rules.
//
// Design: Config follows a cascade model similar to git: local config
// (.darc/config.yaml) takes precedence over global (~/.darc/config.yaml).
// The --local flag forces use of local config even if it doesn't exist yet,
// enabling config setup during init workflows.

package core

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/config"
	"github.com/jpl-au/darc/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  darc config                          # show config
  darc config user.name                # show user.name
  darc config user.name "Ada Lovelace" # set user.name
  darc config render.indent "  "       # indent trees with two spaces

Configuration locations:
  Global: ~/.darc/config.yaml
  Local:  .darc/config.yaml (created by init)

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.darc/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	// Load config: local if exists, otherwise global
	// --local flag forces local even if it doesn't exist yet
	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		// Show all values
		all := cfg.All()
		if cmd.JSON() {
			log.Event("core:config", "list").Author(cmd.User()).Write(nil)
			return cmd.PrintJSON(all)
		}
		for _, k := range slices.Sorted(maps.Keys(all)) {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}
		log.Event("core:config", "list").Author(cmd.User()).Write(nil)

	case 1:
		// Get single value
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(cmd.User()).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		// Set value - write to same place we read from
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Author(cmd.User()).Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		// Value not logged: user.name is personal data
		log.Event("core:config", "set").Author(cmd.User()).Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}
