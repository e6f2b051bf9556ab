package api

import (
	"github.com/labstack/echo/v4"

	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// Handlers holds all handler instances.
type Handlers struct {
	Health  HealthHandler
	Lattice LatticeHandler
}

// NewHandlers creates the handlers for a model.
func NewHandlers(m *lattice.Model, version string) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(version),
		Lattice: NewLatticeHandler(m),
	}
}

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handlers) {
	g := e.Group("/api")
	g.GET("/health", h.Health.HandleHealth)

	g.GET("/model", h.Lattice.HandleModel)
	g.PUT("/model/default_path", h.Lattice.HandleSetDefaultPath)

	g.GET("/elements", h.Lattice.HandleListElements)
	g.GET("/elements/:name", h.Lattice.HandleGetElement)
	g.GET("/sections", h.Lattice.HandleListSections)
	g.GET("/sections/:name", h.Lattice.HandleGetSection)
	g.GET("/layouts", h.Lattice.HandleListLayouts)
	g.GET("/layouts/:name", h.Lattice.HandleGetLayout)

	g.GET("/between", h.Lattice.HandleBetween)
	g.GET("/svalues", h.Lattice.HandleSValues)
	g.GET("/drifts", h.Lattice.HandleDrifts)
}
