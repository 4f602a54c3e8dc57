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

// Command-line client for the aupatterns counting utilities
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/zpuskas/aupatterns/pattern"
	"github.com/zpuskas/aupatterns/storage"
)

var logger *slog.Logger

func main() {
	logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	// catch signals
	exitOnSignal()

	// serve
	if err := listener(os.Stdout, os.Stdin); err != nil {
		logger.Error("CLI failure", "err", err)
		storageClose()
		os.Exit(1)
	}
	storageClose()
}

// exitOnSignal: catch signals and exit.
func exitOnSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		s := <-c
		logger.Warn("caught signal", "signal", s)
		storageClose()
		os.Exit(1)
	}()
}

/*

CLI listener

*/

type request struct {
	inline  string
	command string
	args    []string
}

// listener reads lines and dispatches them to handlers
func listener(out io.Writer, in io.Reader) error {
	// if we are on a terminal, we do prompting
	prompt := false
	if f, ok := out.(*os.File); ok {
		if stat, _ := f.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
			prompt = true
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprintf(out, "aupatterns> ")
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				if prompt {
					fmt.Fprintf(out, " (read error)\n")
				}
				return err
			}
			// ignore any input before the EOF
			if prompt {
				fmt.Fprintf(out, " (EOF)\n")
			}
			return nil
		}
		r := &request{inline: strings.Trim(scanner.Text(), " \t\r\n")}
		args := strings.Split(r.inline, " ")
		r.command = strings.ToLower(args[0])
		switch r.command {
		case "":
			continue
		case "quit", "exit":
			return nil
		}
		for _, arg := range args[1:] {
			if len(arg) > 0 {
				r.args = append(r.args, arg)
			}
		}
		dispatchCommand(out, r)
	}
}

// command dispatching
type commandInfo struct {
	command     string
	argInfo     string
	description string
	handler     func(io.Writer, *request)
}

// the command dispatch info is sorted for easy usage printing,
// and then hashed for rapid dispatching
var (
	dispatchInfo  []commandInfo
	dispatchTable map[string]*commandInfo
)

func init() {
	dispatchInfo = []commandInfo{
		{"choices", "[length]", "ways to choose dots, per length", choicesHandler},
		{"counts", "[dots]", "count valid patterns, optionally on given dots", countsHandler},
		{"grid", "[side]", "show or set the grid side length", gridHandler},
		{"help", "", "show this usage summary", helpHandler},
		{"random", "[length]", "draw a random valid pattern", randomHandler},
		{"runs", "[n]", "show recent archived runs", runsHandler},
		{"seed", "number", "seed the random command for reproducible output", seedHandler},
		{"valid", "pattern", "check whether a pattern can be drawn", validHandler},
	}
	dispatchTable = make(map[string]*commandInfo, len(dispatchInfo))
	for i := range dispatchInfo {
		dispatchTable[dispatchInfo[i].command] = &dispatchInfo[i]
	}
}

func dispatchCommand(w io.Writer, r *request) {
	defer func() {
		if err := recover(); err != nil {
			errorHandler(err, w, r)
		}
	}()

	ci := dispatchTable[r.command]
	if ci == nil {
		usageHandler(fmt.Sprintf("%q is not a known command", r.command), w, r)
	} else {
		ci.handler(w, r)
	}
}

/*

request handlers

*/

// client state
var currentGrid = pattern.Standard()

func gridHandler(w io.Writer, r *request) {
	if len(r.args) > 0 {
		side, err := strconv.Atoi(r.args[0])
		if err != nil {
			usageHandler(fmt.Sprintf("grid side (%s) must be a number", r.args[0]), w, r)
			return
		}
		g, e := pattern.NewGrid(side)
		if e != nil {
			fmt.Fprintf(w, "Can't use that grid: %v\n", e)
			return
		}
		currentGrid = g
	}
	fmt.Fprintf(w, "Grid is %dx%d with dots 1-%s\n",
		currentGrid.SideLength(), currentGrid.SideLength(),
		pattern.Pattern{pattern.Point(currentGrid.PointCount())})
}

func choicesHandler(w io.Writer, r *request) {
	n := currentGrid.PointCount()
	if len(r.args) > 0 {
		k, err := strconv.Atoi(r.args[0])
		if err != nil {
			usageHandler(fmt.Sprintf("choices length (%s) must be a number", r.args[0]), w, r)
			return
		}
		fmt.Fprintf(w, "Choosing %d dots out of %d allows %d choices\n",
			k, n, pattern.Binomial(n, k))
		return
	}
	for k := 1; k <= n; k++ {
		fmt.Fprintf(w, "Choosing %d dots out of %d allows %d choices\n",
			k, n, pattern.Binomial(n, k))
	}
}

func countsHandler(w io.Writer, r *request) {
	points := pattern.Points(currentGrid.PointCount())
	if len(r.args) > 0 {
		p, err := pattern.Parse(r.args[0])
		if err != nil {
			fmt.Fprintf(w, "Bad dots %q: %v\n", r.args[0], err)
			return
		}
		points = p
	}
	counts, err := currentGrid.CountByLength(points)
	if err != nil {
		fmt.Fprintf(w, "Can't count: %v\n", err)
		return
	}
	total := 0
	for length := 1; length < len(counts); length++ {
		fmt.Fprintf(w, "Number of patterns for length %d: %d\n", length, counts[length])
		total += counts[length]
	}
	fmt.Fprintf(w, "Number of all available patterns: %d\n", total)
}

func validHandler(w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires one argument", r.command), w, r)
		return
	}
	p, err := pattern.Parse(r.args[0])
	if err != nil {
		fmt.Fprintf(w, "Bad pattern %q: %v\n", r.args[0], err)
		return
	}
	if err := currentGrid.Validate(p); err != nil {
		fmt.Fprintf(w, "Pattern %s can't be drawn: %v\n", p, err)
	} else {
		fmt.Fprintf(w, "Pattern %s can be drawn\n", p)
	}
}

func randomHandler(w io.Writer, r *request) {
	length := pattern.MinScreenLength
	if len(r.args) > 0 {
		k, err := strconv.Atoi(r.args[0])
		if err != nil {
			usageHandler(fmt.Sprintf("random length (%s) must be a number", r.args[0]), w, r)
			return
		}
		length = k
	}
	p, err := currentGrid.RandomPattern(length, rng)
	if err != nil {
		fmt.Fprintf(w, "Can't draw a random pattern: %v\n", err)
		return
	}
	fmt.Fprintf(w, "%s\n", p)
}

func seedHandler(w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires one argument", r.command), w, r)
		return
	}
	n, err := strconv.ParseInt(r.args[0], 10, 64)
	if err != nil {
		usageHandler(fmt.Sprintf("seed (%s) must be a number", r.args[0]), w, r)
		return
	}
	rng = rand.New(rand.NewSource(n))
	fmt.Fprintf(w, "Random patterns seeded with %d\n", n)
}

func runsHandler(w io.Writer, r *request) {
	limit := 5
	if len(r.args) > 0 {
		n, err := strconv.Atoi(r.args[0])
		if err != nil {
			usageHandler(fmt.Sprintf("runs count (%s) must be a number", r.args[0]), w, r)
			return
		}
		limit = n
	}
	if err := storageConnect(); err != nil {
		fmt.Fprintf(w, "Storage is not available: %v\n", err)
		return
	}
	runs, err := storage.RecentRuns(context.Background(), limit)
	if err != nil {
		fmt.Fprintf(w, "Can't read runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Fprintf(w, "No archived runs\n")
		return
	}
	for _, run := range runs {
		total := 0
		for _, count := range run.Counts {
			total += count
		}
		fmt.Fprintf(w, "Run %d from %q on %dx%d grid at %s: %d patterns\n",
			run.ID, run.Source, run.SideLength, run.SideLength,
			run.Started.Format("2006-01-02 15:04:05"), total)
	}
}

func helpHandler(w io.Writer, r *request) {
	usageHandler("", w, r)
}

func usageHandler(msg string, w io.Writer, r *request) {
	if msg != "" {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
	fmt.Fprintf(w, "Usage:\n")
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "    %8s %-9s\t%s\n", ci.command, ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  and 'quit' or EOF to exit.\n")
}

func errorHandler(err interface{}, w io.Writer, r *request) {
	fmt.Fprintf(w, "Panic executing %q: %v\n", r.inline, err)
	logger.Error("panic in handler", "request", r.inline, "err", err)
}

/*

supporting state

*/

// randomness for the random command, set by the seed command;
// nil means the package default source
var rng *rand.Rand

// lazy storage connection, only made when a command needs it
var storageUp bool

func storageConnect() error {
	if storageUp {
		return nil
	}
	cacheID, databaseID, err := storage.Connect(context.Background())
	if err != nil {
		return err
	}
	logger.Info("storage connected", "cache", cacheID, "database", databaseID)
	storageUp = true
	return nil
}

func storageClose() {
	if storageUp {
		storage.Close()
		storageUp = false
	}
}
