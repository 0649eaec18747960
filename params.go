package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/petfriends/api-contract-tests/framework"

	"github.com/alessio/shellescape"
)

const (
	defaultWaitTimeout = time.Second * 10
	maxRerunPatterns   = 20
)

type commandParams struct {
	serviceURL       string
	filters          framework.RegexFilters
	photoPath        string
	invalidPhotoPath string
	cleanup          bool
	debug            bool
	debugAll         bool
	waitTimeout      time.Duration
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "base URL of the PetFriends service (overrides PETFRIENDS_URL)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.photoPath, "photo", "", "image file to upload as a pet photo (default: a generated JPEG)")
	fs.StringVar(&c.invalidPhotoPath, "invalid-photo", "",
		"non-image file that the service must refuse as a photo (default: a generated text file)")
	fs.BoolVar(&c.cleanup, "cleanup", false, "delete pets created by the tests when the test run ends")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.DurationVar(&c.waitTimeout, "wait-timeout", defaultWaitTimeout, "how long to wait for the service to respond")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand returns a command line that runs only the failed tests, with the same settings
// otherwise. It returns "" if there are too many failures for that to be useful.
func (c *commandParams) rerunCommand(program string, results framework.Results) string {
	if len(results.Failures) == 0 || len(results.Failures) > maxRerunPatterns {
		return ""
	}
	var b commandBuilder
	b.add(program)
	if c.serviceURL != "" {
		b.add("-url", c.serviceURL)
	}
	if c.photoPath != "" {
		b.add("-photo", c.photoPath)
	}
	if c.invalidPhotoPath != "" {
		b.add("-invalid-photo", c.invalidPhotoPath)
	}
	if c.cleanup {
		b.add("-cleanup")
	}
	b.add("-debug")
	for _, f := range results.Failures {
		b.add("-run", exactTestPattern(f.TestID))
	}
	return b.String()
}

// exactTestPattern returns a -run pattern that selects only the specified test.
func exactTestPattern(id framework.TestID) string {
	parts := make([]string, 0, len(id.Path))
	for _, name := range id.Path {
		// a slash inside a name cannot be expressed, since patterns are split on slashes
		parts = append(parts, "^"+strings.ReplaceAll(regexp.QuoteMeta(name), "/", ".")+"$")
	}
	return strings.Join(parts, "/")
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
