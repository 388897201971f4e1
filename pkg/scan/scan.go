// Package scan extracts build dependencies from pip download logs.
//
// pip logs the collection of a top-level requirement without indentation
// and logs every further requirement it had to resolve with leading
// whitespace. Because the input requirement files are expected to already
// pin the full recursive set of runtime dependencies, an indented
// "Collecting" line can only mean a build requirement pulled in as a side
// effect. That indentation signal is the single contract this package
// encodes; any change to pip's log format lands here and nowhere else.
package scan

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"sort"
)

// A requirement token is a run of non-whitespace, non-';' characters,
// e.g. "package", "package==1.0" or "package[extra]==1.0". Environment
// markers after ';' are discarded.
var builddepRE = regexp.MustCompile(`^\s+Collecting ([^\s;]+)`)

// Builddeps reads a pip download log and returns the sorted, duplicate-free
// set of requirements that pip collected as build dependencies.
//
// Malformed or unrecognized lines produce no match and are never an error;
// a log with zero matches yields an empty result.
func Builddeps(r io.Reader) ([]string, error) {
	seen := make(map[string]bool)

	// pip output is arbitrary text and single lines can exceed
	// bufio.Scanner's token limit, so lines are read unbounded.
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if m := builddepRE.FindStringSubmatch(line); m != nil {
			seen[m[1]] = true
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	deps := make([]string, 0, len(seen))
	for dep := range seen {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps, nil
}

// BuilddepsFile is a convenience wrapper around Builddeps for a log file
// on disk.
func BuilddepsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Builddeps(f)
}
