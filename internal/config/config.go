// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads process configuration from the environment.
package config

import "os"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// DBDriver selects the persistence backend: sqlite (embedded,
	// default) or postgres.
	DBDriver string
	// DBPath is the on-disk location of the SQLite database.
	DBPath string
	// PgDSN is the Postgres connection string, required when DBDriver
	// is postgres.
	PgDSN string
}

// FromEnv reads the configuration, applying defaults for anything
// unset.
func FromEnv() Config {
	return Config{
		Addr:     getenv("CRUDE_ADDR", ":3000"),
		DBDriver: getenv("CRUDE_DB_DRIVER", DriverSQLite),
		DBPath:   getenv("CRUDE_DB_PATH", "data/app.db"),
		PgDSN:    os.Getenv("CRUDE_PG_DSN"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
