// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package resources exposes the resource CRUD operations over HTTP.
package resources

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crude/internal/errs"
	"crude/internal/resource"
)

type Handler struct {
	svc *resource.Service
}

func NewHandler(svc *resource.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the CRUD routes on the given group.
func (h *Handler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var in resource.CreateInput
	if err := c.Bind(&in); err != nil {
		return writeError(c, err)
	}
	view, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *Handler) List(c echo.Context) error {
	f := resource.Filter{
		Type:   c.QueryParam("type"),
		Status: c.QueryParam("status"),
		Query:  c.QueryParam("q"),
		Limit:  clampInt(c.QueryParam("limit"), resource.DefaultLimit, 1, resource.MaxLimit),
		Offset: clampInt(c.QueryParam("offset"), 0, 0, resource.MaxOffset),
	}
	page, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) Get(c echo.Context) error {
	view, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Update(c echo.Context) error {
	var p resource.Patch
	if err := c.Bind(&p); err != nil {
		return writeError(c, err)
	}
	view, err := h.svc.Update(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// errorBody is the error envelope for every failure response.
type errorBody struct {
	Error string `json:"error"`
}

// writeError maps service errors onto the HTTP contract: validation to
// 400, missing rows to 404, everything else to a generic 500 that does
// not leak internals.
func writeError(c echo.Context, err error) error {
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, errorBody{Error: ve.Error()})
	}
	if errors.Is(err, errs.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Not found"})
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return c.JSON(he.Code, errorBody{Error: http.StatusText(he.Code)})
	}
	zap.L().Error("resource request failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, errorBody{Error: "Internal Server Error"})
}

// clampInt parses a query value, falling back to def when it is absent
// or not a number, and clamping it into [min, max] otherwise.
func clampInt(raw string, def, min, max int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
