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

// Package dbprep prepares the run archive's database schema and
// clears the count cache.  It's used both by the storage package
// at connect time and by the prepare-storage and clear-storage
// commands.
package dbprep

import (
	"fmt"
)

// EnsureSchema brings the database schema up to date, creating
// it if needed.
func EnsureSchema() error {
	if err := SchemaUp(); err != nil {
		return fmt.Errorf("Couldn't install schema: %v", err)
	}
	version, err := SchemaVersion()
	if err != nil {
		return fmt.Errorf("Couldn't get schema version: %v", err)
	}
	if version == 0 {
		return fmt.Errorf("Database schema still at version 0, shouldn't be.")
	}
	return nil
}

// RemoveSchema tears the database schema down, dropping the
// archived runs with it.
func RemoveSchema() error {
	version, err := SchemaVersion()
	if err != nil {
		return fmt.Errorf("Couldn't get schema version: %v", err)
	}
	if version > 0 {
		if err := SchemaDown(); err != nil {
			return fmt.Errorf("Couldn't remove tables: %v", err)
		}
	}
	return nil
}

// ReinitializeAll clears the cache and rebuilds the database
// schema from scratch.
func ReinitializeAll() error {
	// clear cache
	if err := ClearCache(); err != nil {
		return fmt.Errorf("Couldn't clear cache: %v", err)
	}
	// clear database
	if err := RemoveSchema(); err != nil {
		return fmt.Errorf("Couldn't clear database: %v", err)
	}
	// rebuild database
	if err := EnsureSchema(); err != nil {
		return fmt.Errorf("Couldn't rebuild database: %v", err)
	}
	return nil
}
