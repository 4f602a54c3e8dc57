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
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

/*

setup

These tests need live Redis and Postgres servers, so they only
run when AUPATTERNS_STORAGE_TEST is set.

*/

func connectOrSkip(t *testing.T) context.Context {
	t.Helper()
	if os.Getenv("AUPATTERNS_STORAGE_TEST") == "" {
		t.Skip("set AUPATTERNS_STORAGE_TEST to run storage tests")
	}
	os.Setenv("DBPREP_PATH", filepath.Join("..", "dbprep"))
	ctx := context.Background()
	cacheID, databaseID, err := Connect(ctx)
	if err != nil {
		t.Fatalf("Connect returned an error: %v", err)
	}
	if cacheID == "" || databaseID == "" {
		t.Fatalf("Connect returned empty ids: %q, %q", cacheID, databaseID)
	}
	t.Cleanup(Close)
	return ctx
}

/*

run archive

*/

func TestSaveAndReadRuns(t *testing.T) {
	ctx := connectOrSkip(t)
	run := &Run{
		Source:     "internal",
		SideLength: 3,
		Started:    time.Now().UTC().Truncate(time.Microsecond),
		Counts:     map[int]int{4: 1624, 5: 7152},
	}
	if err := SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun returned an error: %v", err)
	}
	if run.ID == 0 {
		t.Errorf("SaveRun didn't assign an ID")
	}

	runs, err := RecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("RecentRuns returned an error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns gave %d runs but expected 1", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || got.Source != run.Source || got.SideLength != run.SideLength {
		t.Errorf("RecentRuns gave %+v but expected %+v", got, run)
	}
	if !reflect.DeepEqual(got.Counts, run.Counts) {
		t.Errorf("RecentRuns gave counts %v but expected %v", got.Counts, run.Counts)
	}
}

func TestSaveRunEmpty(t *testing.T) {
	ctx := connectOrSkip(t)
	if err := SaveRun(ctx, &Run{Source: "internal"}); err == nil {
		t.Errorf("SaveRun accepted a run with no counts")
	}
	if err := SaveRun(ctx, nil); err == nil {
		t.Errorf("SaveRun accepted a nil run")
	}
}

/*

count cache

*/

func TestCountCache(t *testing.T) {
	connectOrSkip(t)
	digits := fmt.Sprintf("t%d", time.Now().UnixNano())

	if _, found, err := CachedCount(3, digits); err != nil || found {
		t.Fatalf("CachedCount before caching = (found %v, err %v)", found, err)
	}
	if err := CacheCount(3, digits, 18); err != nil {
		t.Fatalf("CacheCount returned an error: %v", err)
	}
	count, found, err := CachedCount(3, digits)
	if err != nil || !found || count != 18 {
		t.Errorf("CachedCount = (%d, %v, %v) but expected (18, true, nil)", count, found, err)
	}

	// the same digits on another grid are a different entry
	if _, found, err := CachedCount(4, digits); err != nil || found {
		t.Errorf("CachedCount crossed side lengths: (found %v, err %v)", found, err)
	}
}

func TestExecuteWithoutConnect(t *testing.T) {
	if os.Getenv("AUPATTERNS_STORAGE_TEST") != "" {
		t.Skip("connections may be live in a full storage test run")
	}
	if err := CacheCount(3, "1234", 18); err == nil {
		t.Errorf("CacheCount succeeded without a connection")
	}
	if err := SaveRun(context.Background(), &Run{Counts: map[int]int{4: 1}}); err == nil {
		t.Errorf("SaveRun succeeded without a connection")
	}
	if _, err := RecentRuns(context.Background(), 5); err == nil {
		t.Errorf("RecentRuns succeeded without a connection")
	}
}
