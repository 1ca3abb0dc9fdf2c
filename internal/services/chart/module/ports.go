package module

import (
	"waxpoll/internal/services/chart/domain"
)

// Ports exposes the chart service to other modules, most importantly the
// reveal module, which recomputes implicitly before confirming
type Ports struct {
	Chart domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
