package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zpuskas/aupatterns/pattern"
)

func runCapture(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	code := run(args, &out)
	return out.String(), code
}

func TestRunChoices(t *testing.T) {
	out, code := runCapture(t)
	if code != 0 {
		t.Fatalf("run gave exit code %d", code)
	}
	expected := []string{
		"If choosing 4 dots out of 9 the number of different choices is 126",
		"If choosing 5 dots out of 9 the number of different choices is 126",
		"If choosing 6 dots out of 9 the number of different choices is 84",
		"If choosing 7 dots out of 9 the number of different choices is 36",
		"If choosing 8 dots out of 9 the number of different choices is 9",
		"If choosing 9 dots out of 9 the number of different choices is 1",
		"Total number of choices: 382",
	}
	for _, line := range expected {
		if !strings.Contains(out, line) {
			t.Errorf("Output is missing %q:\n%s", line, out)
		}
	}
}

func TestRunGroup(t *testing.T) {
	out, code := runCapture(t, "-g", "1234")
	if code != 0 {
		t.Fatalf("run gave exit code %d", code)
	}
	expected := []string{
		"Calculating patterns for dots 1234",
		"Number of patterns for length 1: 4",
		"Number of patterns for length 2: 10",
		"Number of patterns for length 3: 18",
		"Number of patterns for length 4: 18",
		"Number of all available patterns: 50",
	}
	for _, line := range expected {
		if !strings.Contains(out, line) {
			t.Errorf("Output is missing %q:\n%s", line, out)
		}
	}
}

func TestRunCounts(t *testing.T) {
	out, code := runCapture(t, "-counts", "-min", "1")
	if code != 0 {
		t.Fatalf("run gave exit code %d", code)
	}
	expected := []string{
		"Number of patterns for length 1: 9",
		"Number of patterns for length 4: 1624",
		"Number of patterns for length 9: 140704",
		"Number of all available patterns: 389,497",
	}
	for _, line := range expected {
		if !strings.Contains(out, line) {
			t.Errorf("Output is missing %q:\n%s", line, out)
		}
	}
}

// A sweep over all combinations of a length must total the same
// as a whole-grid walk of that length.
func TestRunInternalSweep(t *testing.T) {
	out, code := runCapture(t, "-internal", "-min", "4", "-max", "4")
	if code != 0 {
		t.Fatalf("run gave exit code %d", code)
	}
	if !strings.Contains(out, "Number of patterns for length 4: 1624") {
		t.Errorf("Sweep total differs from grid walk:\n%s", out)
	}
	if !strings.Contains(out, "Running 1234\n") || !strings.Contains(out, "1234 18\n") {
		t.Errorf("Sweep progress lines are missing:\n%s", out)
	}
	if strings.Count(out, "Running ") != 126 {
		t.Errorf("Sweep ran %d combinations but expected 126", strings.Count(out, "Running "))
	}
}

func TestRunRandom(t *testing.T) {
	out, code := runCapture(t, "-random", "5", "-seed", "11")
	if code != 0 {
		t.Fatalf("run gave exit code %d", code)
	}
	digits := strings.TrimSpace(out)
	p, err := pattern.Parse(digits)
	if err != nil {
		t.Fatalf("Random output %q doesn't parse: %v", digits, err)
	}
	if len(p) != 5 {
		t.Errorf("Random pattern has length %d: %q", len(p), digits)
	}
	if err := pattern.Standard().Validate(p); err != nil {
		t.Errorf("Random pattern %q is invalid: %v", digits, err)
	}
}

func TestRunBadArguments(t *testing.T) {
	if _, code := runCapture(t, "-side", "9"); code != 2 {
		t.Errorf("Side 9 gave exit code %d", code)
	}
	if _, code := runCapture(t, "-min", "0"); code != 2 {
		t.Errorf("Min 0 gave exit code %d", code)
	}
	if _, code := runCapture(t, "-min", "6", "-max", "5"); code != 2 {
		t.Errorf("Inverted range gave exit code %d", code)
	}
	if _, code := runCapture(t, "-g", "1231"); code != 1 {
		t.Errorf("Repeated dot gave exit code %d", code)
	}
	if _, code := runCapture(t, "-no-such-flag"); code != 2 {
		t.Errorf("Unknown flag gave exit code %d", code)
	}
}
