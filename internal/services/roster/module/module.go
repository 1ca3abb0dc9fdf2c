// Package module wires the contributor roster into the API using modkit
package module

import (
	"net/http"

	modkit "waxpoll/internal/modkit"
	"waxpoll/internal/modkit/httpkit"
	str "waxpoll/internal/platform/strings"
	rosterhttp "waxpoll/internal/services/roster/http"
	rosterrepo "waxpoll/internal/services/roster/repo"
	rostersvc "waxpoll/internal/services/roster/service"
)

// Module implements the roster module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc rostersvc.Service
}

// New constructs the roster module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("roster"), modkit.WithPrefix("/roster")}, opts...)...)

	repo := rosterrepo.NewPG()
	svc := rostersvc.New(deps.PG, repo)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Roster: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		rosterhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the roster service port for sibling modules
func (m *Module) Service() rostersvc.Service { return m.svc }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
