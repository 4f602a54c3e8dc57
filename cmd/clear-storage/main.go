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

// Clear and re-initialize the aupatterns storage system
package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/zpuskas/aupatterns/dbprep"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, nil))
	logger.Info("removing cached counts and archived runs")
	if err := dbprep.ReinitializeAll(); err != nil {
		logger.Error("couldn't clear storage", "err", err)
		os.Exit(1)
	}
	logger.Info("storage re-initialized")
}
