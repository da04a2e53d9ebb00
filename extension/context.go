// context.go defines what an extension can reach once the catalog is open.
//
// Extensions register from init() before any database exists, so the
// Context arrives later through Init and only for commands that open the
// catalog. Storeless commands never see one.

package extension

import (
	"github.com/jpl-au/darc/internal/config"
	"github.com/jpl-au/darc/internal/service"
)

// Context is handed to Initializable extensions before their commands run.
type Context interface {
	// Service returns the catalog service.
	Service() service.Service

	// Config is the resolved local-or-global config.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	svc service.Service
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, cfg *config.Config) Context {
	return &extContext{
		svc: svc,
		cfg: cfg,
	}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) Config() *config.Config { return c.cfg }
