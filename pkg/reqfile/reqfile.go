// Package reqfile reads requirements-style dependency files.
//
// A requirements file is a newline-delimited list of
// name[extras][version-specifier] entries. When loading previously
// written output, only the leading token of each line matters: trailing
// inline comments ('#') and environment markers (';') are stripped, and
// fully commented or blank lines are skipped.
package reqfile

import (
	"bufio"
	"io"
	"os"
	"regexp"
)

// A requirement is the leading run of non-whitespace, non-'#', non-';'
// characters on a line. Everything after it is a comment or marker.
var requirementRE = regexp.MustCompile(`^([^\s#;]+)`)

// Load parses the file at path into a set of requirement names.
//
// A missing file is not an error: the first run of the tool has no prior
// output, so it simply yields an empty set.
func Load(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reqs := make(map[string]bool)
	// Lines can exceed bufio.Scanner's token limit, so read unbounded.
	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		if m := requirementRE.FindStringSubmatch(line); m != nil {
			reqs[m[1]] = true
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return reqs, nil
}
