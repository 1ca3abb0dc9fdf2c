// Package module wires the reveal state machine into the API using modkit
package module

import (
	"context"
	"net/http"

	modkit "waxpoll/internal/modkit"
	"waxpoll/internal/modkit/httpkit"
	str "waxpoll/internal/platform/strings"
	chartdomain "waxpoll/internal/services/chart/domain"
	revealhttp "waxpoll/internal/services/reveal/http"
	revealrepo "waxpoll/internal/services/reveal/repo"
	revealsvc "waxpoll/internal/services/reveal/service"
)

// Module implements the reveal module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc revealsvc.Service
}

// New constructs the reveal module. The chart service port must be injected
// via modkit.WithPorts so confirming a never-computed year can recompute first
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("reveal"), modkit.WithPrefix("/reveal")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Chart == nil {
		panic("reveal module requires a Chart port (modkit.WithPorts(module.Ports{Chart: ...}))")
	}

	repo := revealrepo.NewPG()
	svc := revealsvc.New(deps.PG, repo, recomputer{injected.Chart})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Chart: injected.Chart}

	external := b.Register
	m.register = func(r httpkit.Router) {
		revealhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// recomputer narrows the chart port to what the reveal service needs
type recomputer struct{ chart chartdomain.ServicePort }

func (a recomputer) Recompute(ctx context.Context, year int) error {
	_, err := a.chart.Recompute(ctx, year)
	return err
}

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
