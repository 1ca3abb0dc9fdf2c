package module

import (
	"waxpoll/internal/services/roster/domain"
)

// Ports exposes the roster service to other modules
type Ports struct {
	Roster domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
