// Package api provides the HTTP API for the application
package api

import (
	"crypto/subtle"

	"waxpoll/internal/platform/config"
	perr "waxpoll/internal/platform/errors"
	"waxpoll/internal/platform/logger"
	phttp "waxpoll/internal/platform/net/http"
	"waxpoll/internal/platform/net/middleware"
	"waxpoll/internal/platform/store"

	"waxpoll/internal/modkit"
	"waxpoll/internal/modkit/httpkit"
	"waxpoll/internal/modkit/module"
	"waxpoll/internal/modkit/swaggerkit"

	metamod "waxpoll/internal/services/api/meta/module"
	chartmod "waxpoll/internal/services/chart/module"
	revealmod "waxpoll/internal/services/reveal/module"
	rostermod "waxpoll/internal/services/roster/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Reveal and roster mutations are admin surfaces; gate them with a bearer
	// token when one is configured. Auth with a nil port is a pass-through,
	// which keeps local development friction-free
	adminGate := httpkit.Auth(adminPort(opt.Config))

	// Construct the chart module first and inject its service port into the
	// reveal module, which recomputes missing years before confirming
	chart := chartmod.New(deps)
	reveal := revealmod.New(
		deps,
		modkit.WithMiddlewares(adminGate),
		modkit.WithPorts(revealmod.Ports{
			Chart: chart.Service(),
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		chart,
		reveal,
		rostermod.New(deps, modkit.WithMiddlewares(adminGate)),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

// adminPort builds the bearer-token auth port, or nil when no token is set
func adminPort(cfg config.Conf) middleware.AuthPort {
	token := cfg.MayString("ADMIN_TOKEN", "")
	if token == "" {
		return nil
	}
	return httpkit.NewPortFunc(func(t string) (string, string, error) {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) != 1 {
			return "", "", perr.Unauthorizedf("invalid admin token")
		}
		return "admin", "", nil
	})
}
