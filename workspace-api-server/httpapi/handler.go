package httpapi

import (
	"github.com/eoplatform/workspace-api/workspace"
)

var (
	// Service backs every handler in this package.
	Service *workspace.Service

	authMode = "gateway"
)

// Init wires the handlers to the workspace service.
func Init(svc *workspace.Service, mode string) {
	Service = svc
	authMode = mode
}
