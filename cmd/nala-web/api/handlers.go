// Package api implements the HTTP handlers of nala-web.
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/export"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// MIMEMsgpack is the content type of MessagePack responses.
const MIMEMsgpack = "application/msgpack"

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a health handler reporting version.
func NewHealthHandler(version string) HealthHandler {
	if version == "" {
		version = "dev"
	}
	return HealthHandler{version: version}
}

// HandleHealth returns the server status.
func (h HealthHandler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// LatticeHandler answers model queries.
type LatticeHandler struct {
	model *lattice.Model
}

// NewLatticeHandler creates a handler over m.
func NewLatticeHandler(m *lattice.Model) LatticeHandler {
	return LatticeHandler{model: m}
}

// rangeRequest is the query string of range endpoints.
type rangeRequest struct {
	lattice.Query

	Entrance bool    `query:"entrance"`
	StartS   float64 `query:"s0"`
}

func (r rangeRequest) options() lattice.SOptions {
	return lattice.SOptions{AtEntrance: r.Entrance, StartingS: r.StartS}
}

// BetweenResponse is the body of /api/between.
type BetweenResponse struct {
	Query    lattice.Query `json:"query" msgpack:"query"`
	Elements []string      `json:"elements" msgpack:"elements"`
}

// DefaultPathRequest is the body of PUT /api/model/default_path.
type DefaultPathRequest struct {
	Path string `json:"path"`
}

func bindRange(c echo.Context) (rangeRequest, error) {
	var req rangeRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return req, NewBadRequestError("invalid query parameters", err)
	}
	req.Types = splitValues(req.Types)
	req.Classes = splitValues(req.Classes)
	req.Models = splitValues(req.Models)
	return req, nil
}

// splitValues accepts both repeated and comma-separated filter parameters.
func splitValues(in []string) []string {
	var out []string
	for _, v := range in {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// wantsMsgpack reports whether the client asked for MessagePack, either with
// ?format=msgpack or through the Accept header.
func wantsMsgpack(c echo.Context) bool {
	if f := c.QueryParam("format"); f != "" {
		return strings.EqualFold(f, "msgpack")
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), MIMEMsgpack)
}

// respond writes v as JSON or MessagePack.
func respond(c echo.Context, status int, v any) error {
	if !wantsMsgpack(c) {
		return c.JSON(status, v)
	}
	data, err := msgpack.Marshal(v)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(status, MIMEMsgpack, data)
}

// HandleModel returns the model summary.
func (h LatticeHandler) HandleModel(c echo.Context) error {
	return respond(c, http.StatusOK, h.model.Info())
}

// HandleSetDefaultPath changes the default beam path.
func (h LatticeHandler) HandleSetDefaultPath(c echo.Context) error {
	var req DefaultPathRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.Path == "" {
		return NewBadRequestError("path is required", nil)
	}
	if err := h.model.SetDefaultPath(req.Path); err != nil {
		return err
	}
	return respond(c, http.StatusOK, h.model.Info())
}

// HandleListElements returns the elements on any beam path that pass the
// type, class and model filters.
func (h LatticeHandler) HandleListElements(c echo.Context) error {
	req, err := bindRange(c)
	if err != nil {
		return err
	}
	names := h.model.AllElements(req.Filter)
	out := make([]element.Record, 0, len(names))
	for _, n := range names {
		e, err := h.model.GetElement(n)
		if err != nil {
			return err
		}
		out = append(out, element.ToRecord(e))
	}
	return respond(c, http.StatusOK, out)
}

// HandleGetElement returns one element.
func (h LatticeHandler) HandleGetElement(c echo.Context) error {
	e, err := h.model.GetElement(c.Param("name"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, element.ToRecord(e))
}

// HandleListSections returns every section.
func (h LatticeHandler) HandleListSections(c echo.Context) error {
	return respond(c, http.StatusOK, h.model.Info().Sections)
}

// HandleGetSection returns one section.
func (h LatticeHandler) HandleGetSection(c echo.Context) error {
	name := c.Param("name")
	for _, s := range h.model.Info().Sections {
		if s.Name == name {
			return respond(c, http.StatusOK, s)
		}
	}
	_, err := h.model.Section(name)
	return err
}

// HandleListLayouts returns every beam path.
func (h LatticeHandler) HandleListLayouts(c echo.Context) error {
	return respond(c, http.StatusOK, h.model.Info().Layouts)
}

// HandleGetLayout returns one beam path.
func (h LatticeHandler) HandleGetLayout(c echo.Context) error {
	l, err := h.model.Layout(c.Param("name"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, l.Info())
}

// HandleBetween returns the element names between start and end.
func (h LatticeHandler) HandleBetween(c echo.Context) error {
	req, err := bindRange(c)
	if err != nil {
		return err
	}
	names, err := h.model.ElementsBetween(req.Query)
	if err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}
	return respond(c, http.StatusOK, BetweenResponse{Query: req.Query, Elements: names})
}

// HandleSValues returns s-positions between start and end.
func (h LatticeHandler) HandleSValues(c echo.Context) error {
	req, err := bindRange(c)
	if err != nil {
		return err
	}
	s, err := h.model.SValues(req.Query, req.options())
	if err != nil {
		return err
	}
	if s == nil {
		s = lattice.SPositions{}
	}
	return respond(c, http.StatusOK, s)
}

// HandleDrifts returns the drift-filled table between start and end.
func (h LatticeHandler) HandleDrifts(c echo.Context) error {
	req, err := bindRange(c)
	if err != nil {
		return err
	}
	t, err := export.BuildTable(h.model, req.Query, req.options())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, t)
}
