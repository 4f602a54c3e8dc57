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

// Package counter drives an external pattern-counting executable
// and extracts its per-length counts.
//
// The external tool contract is simple: invoked as
//
//	<path> -g <digits>
//
// it writes, among whatever else it likes, lines of the form
//
//	Number of patterns for length <k>: <n>
//
// to standard output.  The driver scans for the line whose <k>
// matches the length of the combination it asked about and
// reports <n>.  The aupatterns command itself honors this
// contract, so the driver can be pointed at another aupatterns
// binary as easily as at the original C calculator.
package counter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/zpuskas/aupatterns/pattern"
)

// reportPrefix starts every count line the tool emits.
const reportPrefix = "Number of patterns for length "

// DefaultTimeout bounds a single tool invocation.  The original
// script would hang forever on a stuck tool; we don't.
const DefaultTimeout = 30 * time.Second

// A Report pairs one combination (as its digit string) with the
// count of valid patterns of the combination's own length that
// the external tool reported for it.
type Report struct {
	Digits string `json:"digits"`
	Length int    `json:"length"`
	Count  int    `json:"count"`
}

// A Driver invokes one external counting executable.  The zero
// value is not usable; get one from New and adjust the fields
// before the first Count call if the defaults don't suit.
type Driver struct {
	// Path locates the executable.
	Path string
	// Timeout bounds each invocation; DefaultTimeout if zero.
	Timeout time.Duration
	// Strict rejects count lines with malformed integer
	// fields instead of skipping them.  Lines that don't look
	// like count lines at all are always skipped: the tool is
	// free to chat about other things.
	Strict bool
	// Logger receives per-invocation debug records.
	Logger *slog.Logger
}

// New returns a Driver for the executable at the given path,
// with the default timeout and permissive parsing.
func New(path string) *Driver {
	return &Driver{Path: path, Timeout: DefaultTimeout, Logger: slog.Default()}
}

// Count asks the external tool about one combination and
// returns the Report for the combination's own length.  The
// digit string is passed as a discrete argument vector element,
// never through a shell.  A missing or failing executable, a
// timeout, or output with no matching count line all surface as
// errors naming the combination; they are never silently
// dropped.
func (d *Driver) Count(ctx context.Context, p pattern.Pattern) (Report, error) {
	digits := p.String()
	timeout := d.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if d.Logger != nil {
		d.Logger.Debug("running external counter", "path", d.Path, "digits", digits)
	}
	cmd := exec.CommandContext(ctx, d.Path, "-g", digits)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Report{}, fmt.Errorf("counter timed out after %v on %q", timeout, digits)
		}
		if stderr.Len() > 0 {
			return Report{}, fmt.Errorf("counter failed on %q: %v: %s",
				digits, err, strings.TrimSpace(stderr.String()))
		}
		return Report{}, fmt.Errorf("counter failed on %q: %v", digits, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		length, count, ok, err := parseReportLine(scanner.Text(), d.Strict)
		if err != nil {
			return Report{}, fmt.Errorf("counter output for %q: %v", digits, err)
		}
		if !ok || length != len(p) {
			continue
		}
		return Report{Digits: digits, Length: length, Count: count}, nil
	}
	if err := scanner.Err(); err != nil {
		return Report{}, fmt.Errorf("reading counter output for %q: %v", digits, err)
	}
	return Report{}, fmt.Errorf("counter reported no count for length %d on %q", len(p), digits)
}

// parseReportLine decodes one line of tool output.  A line that
// doesn't start with the report prefix is not a count line (ok
// is false, no error).  A line that does is parsed field by
// field: the length integer, the ": " separator, and the count
// integer; text after the count is ignored.  A malformed count
// line is an error in strict mode and a skip otherwise.
func parseReportLine(line string, strict bool) (length, count int, ok bool, err error) {
	rest, found := strings.CutPrefix(line, reportPrefix)
	if !found {
		return 0, 0, false, nil
	}
	malformed := func(what string) (int, int, bool, error) {
		if strict {
			return 0, 0, false, fmt.Errorf("malformed count line (%s): %q", what, line)
		}
		return 0, 0, false, nil
	}
	sep := strings.Index(rest, ":")
	if sep < 0 {
		return malformed("no separator")
	}
	length, e := strconv.Atoi(strings.TrimSpace(rest[:sep]))
	if e != nil || length < 1 {
		return malformed("bad length field")
	}
	fields := strings.Fields(rest[sep+1:])
	if len(fields) == 0 {
		return malformed("no count field")
	}
	count, e = strconv.Atoi(fields[0])
	if e != nil || count < 0 {
		return malformed("bad count field")
	}
	return length, count, true, nil
}
