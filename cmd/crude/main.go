// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"crude/internal/config"
	"crude/internal/db"
	"crude/internal/logging"
	"crude/internal/resource"
	"crude/internal/router"
)

func main() {
	logger, err := logging.New()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	cfg := config.FromEnv()

	gdb, err := db.Connect(cfg)
	if err != nil {
		zap.L().Fatal("database connection failed",
			zap.String("driver", cfg.DBDriver),
			zap.Error(err),
		)
	}

	svc := resource.NewService(resource.NewGormStore(gdb))
	handler := router.New(svc)

	srv := &http.Server{
		Addr:           cfg.Addr,
		Handler:        handler,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	zap.L().Info("server starting", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil {
		zap.L().Fatal("http server exited",
			zap.Error(err),
		)
	}
}
