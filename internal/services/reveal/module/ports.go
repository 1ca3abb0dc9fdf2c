package module

import (
	chartdomain "waxpoll/internal/services/chart/domain"
)

// Ports carries the cross-module dependencies of the reveal module
type Ports struct {
	Chart chartdomain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
