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

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"
)

/*

run archive

*/

// A Run records one complete counting sweep: which counter
// produced it, over which grid, and the count found for each
// pattern length.
type Run struct {
	ID         int64       // assigned by the database on save
	Source     string      // "internal" or the external tool path
	SideLength int         // grid side the sweep walked
	Started    time.Time   // when the sweep began
	Counts     map[int]int // valid pattern count per length
}

// SaveRun archives a finished run.  On success the run's ID is
// filled in from the database.
func SaveRun(ctx context.Context, run *Run) error {
	if run == nil || len(run.Counts) == 0 {
		return fmt.Errorf("Can't save an empty run")
	}
	return pgExecute(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			"insert into runs (source, side_length, started) values ($1, $2, $3) returning run_id;",
			run.Source, run.SideLength, run.Started)
		if err := row.Scan(&run.ID); err != nil {
			return fmt.Errorf("Couldn't insert run: %v", err)
		}
		for length, count := range run.Counts {
			_, err := tx.Exec(ctx,
				"insert into run_counts (run_id, length, count) values ($1, $2, $3);",
				run.ID, length, count)
			if err != nil {
				return fmt.Errorf("Couldn't insert count for length %d: %v", length, err)
			}
		}
		return nil
	})
}

// RecentRuns returns up to limit archived runs, most recent
// first, each with its per-length counts.
func RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit < 1 {
		limit = 10
	}
	var runs []*Run
	err := pgExecute(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			"select run_id, source, side_length, started from runs order by started desc limit $1;",
			limit)
		if err != nil {
			return fmt.Errorf("Couldn't read runs: %v", err)
		}
		for rows.Next() {
			run := &Run{Counts: make(map[int]int)}
			if err := rows.Scan(&run.ID, &run.Source, &run.SideLength, &run.Started); err != nil {
				rows.Close()
				return fmt.Errorf("Couldn't scan run: %v", err)
			}
			runs = append(runs, run)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("Couldn't read runs: %v", err)
		}
		for _, run := range runs {
			rows, err := tx.Query(ctx,
				"select length, count from run_counts where run_id = $1 order by length;",
				run.ID)
			if err != nil {
				return fmt.Errorf("Couldn't read counts of run %d: %v", run.ID, err)
			}
			for rows.Next() {
				var length, count int
				if err := rows.Scan(&length, &count); err != nil {
					rows.Close()
					return fmt.Errorf("Couldn't scan count of run %d: %v", run.ID, err)
				}
				run.Counts[length] = count
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				return fmt.Errorf("Couldn't read counts of run %d: %v", run.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

/*

count cache

*/

// countKey: the cache key for one combination's count.  Keyed by
// side length as well as digits, because the same digit string
// names different points on different grids.
func countKey(sidelen int, digits string) string {
	return fmt.Sprintf("aupatterns:count:%d:%s", sidelen, digits)
}

// CacheCount remembers the valid pattern count for one
// combination of dots on a grid of the given side length.
func CacheCount(sidelen int, digits string, count int) error {
	return rdExecute(func(conn redis.Conn) error {
		_, err := conn.Do("SET", countKey(sidelen, digits), count)
		return err
	})
}

// CachedCount looks up a remembered count.  The second return is
// false on a cache miss.
func CachedCount(sidelen int, digits string) (int, bool, error) {
	var count int
	var found bool
	err := rdExecute(func(conn redis.Conn) error {
		v, err := redis.Int(conn.Do("GET", countKey(sidelen, digits)))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			return err
		}
		count, found = v, true
		return nil
	})
	return count, found, err
}
