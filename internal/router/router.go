// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package router assembles the HTTP surface: the middleware chain and
// every route the service exposes.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"crude/internal/api/resources"
	"crude/internal/resource"
)

// New builds the request pipeline. Middleware order matters: the
// recoverer wraps everything so a panicking handler still produces a
// 500, and the logger sees the final status code.
func New(svc *resource.Service) http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("256K"))
	e.Use(RequestLogger)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	h := resources.NewHandler(svc)
	h.Register(e.Group("/api/resources"))

	return e
}
