// Package module wires charts into the API using modkit
package module

import (
	"net/http"

	modkit "waxpoll/internal/modkit"
	"waxpoll/internal/modkit/httpkit"
	str "waxpoll/internal/platform/strings"
	charthttp "waxpoll/internal/services/chart/http"
	chartrepo "waxpoll/internal/services/chart/repo"
	chartsvc "waxpoll/internal/services/chart/service"
)

// Module implements the chart module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc chartsvc.Service
}

// New constructs the chart module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("chart"), modkit.WithPrefix("/chart")}, opts...)...)

	repo := chartrepo.NewPG()
	svc := chartsvc.New(deps.PG, repo)
	if deps.CH != nil {
		svc = svc.WithHistory(deps.CH)
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Chart: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		charthttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the chart service port for sibling modules
func (m *Module) Service() chartsvc.Service { return m.svc }

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
