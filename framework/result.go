package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Results lists the tests that ran. A test that only groups subtests is not listed, unless it
// failed or was skipped by itself.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Skipped returns the number of tests that were skipped.
func (r Results) Skipped() int {
	n := 0
	for _, t := range r.Tests {
		if t.Skipped {
			n++
		}
	}
	return n
}

type TestID struct {
	Path []string
}

// Plus returns the identifier of a subtest of this test.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// PrintResults writes a summary of the test run, listing every failed test.
func PrintResults(w io.Writer, results Results) {
	if results.OK() {
		color.New(color.FgGreen).Fprintf(w, "All tests passed (%d run, %d skipped)\n",
			len(results.Tests), results.Skipped())
		return
	}
	red := color.New(color.FgRed)
	red.Fprintf(w, "FAILED TESTS (%d of %d):\n", len(results.Failures), len(results.Tests))
	for _, f := range results.Failures {
		red.Fprintf(w, "  * %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(reformatError(err).Error(), "\n") {
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
	}
}

// reformatError trims the blank lines and leading tabs that testify puts around its messages.
func reformatError(err error) error {
	lines := strings.Split(err.Error(), "\n")
	var out []string
	for _, line := range lines {
		line = strings.TrimPrefix(line, "\t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return fmt.Errorf("%s", strings.Join(out, "\n"))
}
