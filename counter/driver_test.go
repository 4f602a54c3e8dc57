package counter

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/zpuskas/aupatterns/pattern"
)

/*

Count line parsing

*/

func TestParseReportLine(t *testing.T) {
	lines := []string{
		"Number of patterns for length 4: 12",
		"Number of patterns for length 9: 140704",
		"Number of patterns for length 4: 12 (out of 24 permutations)",
		"Number of all available patterns: 389497",
		"some chatter from the tool",
		"",
	}
	lengths := []int{4, 9, 4, 0, 0, 0}
	counts := []int{12, 140704, 12, 0, 0, 0}
	oks := []bool{true, true, true, false, false, false}
	for i, line := range lines {
		length, count, ok, err := parseReportLine(line, false)
		if err != nil {
			t.Errorf("parseReportLine(%q) returned an error: %v", line, err)
		}
		if length != lengths[i] || count != counts[i] || ok != oks[i] {
			t.Errorf("parseReportLine(%q) = (%d, %d, %v) but expected (%d, %d, %v)",
				line, length, count, ok, lengths[i], counts[i], oks[i])
		}
	}
}

func TestParseReportLineMalformed(t *testing.T) {
	malformed := []string{
		"Number of patterns for length four: 12",
		"Number of patterns for length 4 12",
		"Number of patterns for length 4: twelve",
		"Number of patterns for length 4:",
		"Number of patterns for length -4: 12",
		"Number of patterns for length 4: -1",
	}
	for _, line := range malformed {
		// permissive mode skips the line
		_, _, ok, err := parseReportLine(line, false)
		if ok || err != nil {
			t.Errorf("Permissive parseReportLine(%q) = (ok %v, err %v)", line, ok, err)
		}
		// strict mode rejects it
		if _, _, _, err := parseReportLine(line, true); err == nil {
			t.Errorf("Strict parseReportLine(%q) did not fail", line)
		}
	}
}

/*

Driver tests against a scripted fake tool

*/

// fakeTool writes an executable shell script that emits the
// given stdout and returns its path.
func fakeTool(t *testing.T, stdout string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("scripted fake tool requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-counter")
	script := "#!/bin/sh\ncat <<'END'\n" + stdout + "\nEND\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Couldn't write fake tool: %v", err)
	}
	return path
}

func testPattern(t *testing.T, digits string) pattern.Pattern {
	t.Helper()
	p, err := pattern.Parse(digits)
	if err != nil {
		t.Fatalf("Parse(%q) returned an error: %v", digits, err)
	}
	return p
}

func TestDriverCount(t *testing.T) {
	tool := fakeTool(t, strings.Join([]string{
		"Calculating patterns for dots 1234...",
		"Number of patterns for length 3: 18",
		"Number of patterns for length 4: 12",
		"Number of all available patterns: 50",
	}, "\n"))
	d := New(tool)
	report, err := d.Count(context.Background(), testPattern(t, "1234"))
	if err != nil {
		t.Fatalf("Count returned an error: %v", err)
	}
	expected := Report{Digits: "1234", Length: 4, Count: 12}
	if report != expected {
		t.Errorf("Count = %+v but expected %+v", report, expected)
	}
}

// A count line for a different length than requested must not
// produce a report.
func TestDriverCountWrongLength(t *testing.T) {
	tool := fakeTool(t, "Number of patterns for length 5: 99")
	d := New(tool)
	_, err := d.Count(context.Background(), testPattern(t, "1234"))
	if err == nil {
		t.Fatalf("Count accepted a report for the wrong length")
	}
	if !strings.Contains(err.Error(), "1234") {
		t.Errorf("Count error doesn't name the combination: %v", err)
	}
}

func TestDriverStrictMode(t *testing.T) {
	output := strings.Join([]string{
		"Number of patterns for length four: oops",
		"Number of patterns for length 4: 12",
	}, "\n")

	d := New(fakeTool(t, output))
	report, err := d.Count(context.Background(), testPattern(t, "1234"))
	if err != nil || report.Count != 12 {
		t.Errorf("Permissive Count = (%+v, %v)", report, err)
	}

	d = New(fakeTool(t, output))
	d.Strict = true
	if _, err := d.Count(context.Background(), testPattern(t, "1234")); err == nil {
		t.Errorf("Strict Count accepted a malformed count line")
	}
}

func TestDriverMissingTool(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "no-such-tool"))
	if _, err := d.Count(context.Background(), testPattern(t, "1234")); err == nil {
		t.Errorf("Count of a missing tool did not fail")
	}
}

func TestDriverToolFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("scripted fake tool requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "failing-counter")
	script := "#!/bin/sh\necho 'no such pattern' >&2\nexit 2\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Couldn't write failing tool: %v", err)
	}
	d := New(path)
	_, err := d.Count(context.Background(), testPattern(t, "1234"))
	if err == nil {
		t.Fatalf("Count of a failing tool did not fail")
	}
	if !strings.Contains(err.Error(), "no such pattern") {
		t.Errorf("Count error doesn't carry the tool's stderr: %v", err)
	}
}

func TestDriverTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("scripted fake tool requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "hung-counter")
	script := "#!/bin/sh\nsleep 30\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Couldn't write hung tool: %v", err)
	}
	d := New(path)
	d.Timeout = 50 * time.Millisecond
	start := time.Now()
	_, err := d.Count(context.Background(), testPattern(t, "1234"))
	if err == nil {
		t.Fatalf("Count of a hung tool did not fail")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Count took %v to time out", elapsed)
	}
}
