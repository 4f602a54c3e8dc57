// aupatterns - Android unlock pattern counting and exploration tools.
// Copyright (C) 2012-2026 Zoltan Puskas.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.

// Package storage archives counting runs in Postgres and caches
// per-combination counts in Redis.  Walking the standard grid is
// cheap, but sweeping all combinations through an external
// counter spawns hundreds of processes, so the answers are worth
// remembering.
package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/zpuskas/aupatterns/dbprep"
)

// Connect ensures the database schema and opens the cache and
// database connections.  It returns the URLs connected to, for
// logging.
func Connect(ctx context.Context) (cacheID, databaseID string, err error) {
	// make sure the database is initialized
	if err = dbprep.EnsureSchema(); err != nil {
		err = fmt.Errorf("Couldn't initialize database: %v", err)
		return
	}

	rdInit()
	rdMutex.Lock()
	defer rdMutex.Unlock()
	cacheID, err = rdConnect()
	if err != nil {
		return
	}

	pgInit()
	pgMutex.Lock()
	defer pgMutex.Unlock()
	databaseID, err = pgConnect(ctx)
	if err != nil {
		return
	}
	return
}

// Close shuts both connections down.
func Close() {
	pgMutex.Lock()
	defer pgMutex.Unlock()
	pgClose()
	rdMutex.Lock()
	defer rdMutex.Unlock()
	rdClose()
}

/*

cache using Redis

*/

// Redis connection data
var (
	rdc     redis.Conn // open connection, if any
	rdUrl   string     // URL for the open connection
	rdMutex sync.Mutex // prevent concurrent connection use
)

// rdInit - look up Redis info from the environment
func rdInit() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		rdUrl = "redis://localhost:6379/"
	} else {
		rdUrl = url
	}
}

// rdConnect: connect to the given Redis URL.  Returns the
// connection id, if successful, an error otherwise.
func rdConnect() (string, error) {
	conn, err := redis.DialURL(rdUrl)
	if err != nil {
		return "", fmt.Errorf("Couldn't connect to cache at %q: %v", rdUrl, err)
	}
	rdc = conn
	return rdUrl, nil
}

// rdClose: close the given Redis connection.
func rdClose() {
	if rdc != nil {
		rdc.Close()
		rdc = nil
	}
}

// rdExecute: execute the body with the Redis mutex held.
// Because Redis connections can go away without warning, it
// pings first and reconnects if the connection has died.
func rdExecute(body func(conn redis.Conn) error) (err error) {
	rdMutex.Lock()
	defer rdMutex.Unlock()
	if rdc == nil {
		return fmt.Errorf("No cache connection; call Connect first")
	}
	// wrap the body against runtime failures
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("Caught panic during rdExecute: %v", r)
			}
		}
	}()
	if _, e := rdc.Do("PING"); e != nil {
		rdClose()
		if _, e = rdConnect(); e != nil {
			return fmt.Errorf("Failed to reconnect to cache at %q", rdUrl)
		}
	}
	// connection is good; run the body
	return body(rdc)
}

/*

persistence using Postgres

*/

// Postgres connection data
var (
	pgConn  *pgx.Conn  // open database, if any
	pgUrl   string     // URL for the open connection
	pgMutex sync.Mutex // prevent concurrent connection use
)

// pgInit - look up Postgres info from the environment
func pgInit() {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		pgUrl = "postgres://localhost/aupatterns?sslmode=disable"
	} else {
		pgUrl = url
	}
}

// pgConnect: Open the Postgres database.  Returns any error
// encountered during the open.
func pgConnect(ctx context.Context) (string, error) {
	conn, err := pgx.Connect(ctx, pgUrl)
	if err != nil {
		return "", fmt.Errorf("Couldn't connect to db at %q: %v", pgUrl, err)
	}
	pgConn = conn
	return pgUrl, nil
}

// pgClose: close the given Postgres connection.
func pgClose() {
	if pgConn != nil {
		pgConn.Close(context.Background())
		pgConn = nil
	}
}

// pgExecute: execute the body inside a single transaction.  If
// the body errs out, the transaction is rolled back, otherwise
// it's committed.
func pgExecute(ctx context.Context, body func(tx pgx.Tx) error) (err error) {
	pgMutex.Lock()
	defer pgMutex.Unlock()
	if pgConn == nil {
		return fmt.Errorf("No database connection; call Connect first")
	}
	// wrap the body against runtime failures
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("Caught panic during pgExecute: %v", r)
			}
		}
	}()
	tx, err := pgConn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("Can't open a transaction against database: %v", err)
	}
	if err = body(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
