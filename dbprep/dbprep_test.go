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

package dbprep

import (
	"os"
	"testing"
)

// These tests need live Redis and Postgres servers, so they only
// run when AUPATTERNS_STORAGE_TEST is set.
func skipWithoutServers(t *testing.T) {
	t.Helper()
	if os.Getenv("AUPATTERNS_STORAGE_TEST") == "" {
		t.Skip("set AUPATTERNS_STORAGE_TEST to run dbprep tests")
	}
}

func TestClearCache(t *testing.T) {
	skipWithoutServers(t)
	if err := ClearCache(); err != nil {
		t.Errorf("Couldn't clear cache: %v", err)
	}
}

func TestSchemaUpDown(t *testing.T) {
	skipWithoutServers(t)
	if err := SchemaUp(); err != nil {
		t.Errorf("Schema up failed: %v", err)
	}
	if err := SchemaDown(); err != nil {
		t.Errorf("Schema down failed: %v", err)
	}
}

func TestSchemaDoubleUp(t *testing.T) {
	skipWithoutServers(t)
	if err := SchemaUp(); err != nil {
		t.Errorf("Schema up failed: %v", err)
	}
	if err := SchemaUp(); err != nil {
		t.Errorf("Schema 2nd up failed: %v", err)
	}
	if err := SchemaDown(); err != nil {
		t.Errorf("Schema down failed: %v", err)
	}
}

func TestSchemaDoubleDown(t *testing.T) {
	skipWithoutServers(t)
	if err := SchemaUp(); err != nil {
		t.Errorf("Schema up failed: %v", err)
	}
	if err := SchemaDown(); err != nil {
		t.Errorf("Schema down failed: %v", err)
	}
	if err := SchemaDown(); err != nil {
		t.Errorf("Schema 2nd down failed: %v", err)
	}
}

func TestEnsureSchema(t *testing.T) {
	skipWithoutServers(t)
	inVersion, err := SchemaVersion()
	if err != nil {
		t.Fatalf("Couldn't get schema inVersion: %v", err)
	}
	if inVersion != 0 {
		t.Fatalf("Starting version was not 0: %v", inVersion)
	}
	if err := EnsureSchema(); err != nil {
		t.Errorf("%v", err)
	}
	outVersion, err := SchemaVersion()
	if err != nil {
		t.Fatalf("Couldn't get schema outVersion: %v", err)
	}
	if inVersion == outVersion {
		t.Errorf("inVersion == outVersion: %v", inVersion)
	}
	if err := SchemaDown(); err != nil {
		t.Errorf("Schema down failed: %v", err)
	}
}

func TestRemoveSchema(t *testing.T) {
	skipWithoutServers(t)
	if err := EnsureSchema(); err != nil {
		t.Fatalf("Couldn't EnsureSchema: %v", err)
	}
	if err := RemoveSchema(); err != nil {
		t.Errorf("%v", err)
	}
	outVersion, err := SchemaVersion()
	if err != nil {
		t.Fatalf("Couldn't get schema outVersion: %v", err)
	}
	if outVersion != 0 {
		t.Errorf("outVersion != 0: %v", outVersion)
	}
}

func TestReinitializeAll(t *testing.T) {
	skipWithoutServers(t)
	if err := ReinitializeAll(); err != nil {
		t.Errorf("%v", err)
	}
	outVersion, err := SchemaVersion()
	if err != nil {
		t.Fatalf("Couldn't get schema outVersion: %v", err)
	}
	if outVersion == 0 {
		t.Errorf("Schema version still 0 after reinitialize")
	}
	if err := SchemaDown(); err != nil {
		t.Errorf("Schema down failed: %v", err)
	}
}
