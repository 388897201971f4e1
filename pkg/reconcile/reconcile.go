// Package reconcile decides what to write given freshly discovered build
// dependencies and the contents of an existing output file.
//
// The policy is a pure function of (fresh set, prior set, mode flags) so
// it can be tested without any process or filesystem dependency. The two
// mode flags are independent:
//
//   - Append: merge into the existing output instead of overwriting; only
//     names not already present are kept.
//   - OnlyIfChanged: skip the write entirely when it would not change the
//     output file.
package reconcile

import "sort"

// Mode holds the reconciliation flags selected by the caller.
type Mode struct {
	// Append keeps only names missing from the prior set, for appending
	// to the tail of the existing file.
	Append bool

	// OnlyIfChanged skips the write when nothing would change.
	OnlyIfChanged bool
}

// Plan is the outcome of reconciliation: the effective set of names to
// render and whether the output should be written at all.
type Plan struct {
	Deps  []string
	Write bool
}

// Make computes the reconciliation plan for fresh against prior under mode.
//
// Name comparison is case-sensitive by design: normalizing case could
// change which dependencies count as already known.
func Make(fresh []string, prior map[string]bool, mode Mode) Plan {
	deps := fresh
	if mode.Append {
		deps = subtract(fresh, prior)
	}

	write := true
	if mode.OnlyIfChanged {
		if len(deps) == 0 {
			write = false
		} else if !mode.Append && setEqual(deps, prior) {
			write = false
		}
	}

	return Plan{Deps: deps, Write: write}
}

// subtract returns the sorted elements of fresh not present in prior.
func subtract(fresh []string, prior map[string]bool) []string {
	var out []string
	for _, dep := range fresh {
		if !prior[dep] {
			out = append(out, dep)
		}
	}
	sort.Strings(out)
	return out
}

// setEqual reports whether deps contains exactly the names in prior.
// deps is assumed duplicate-free, as produced by the log scanner.
func setEqual(deps []string, prior map[string]bool) bool {
	if len(deps) != len(prior) {
		return false
	}
	for _, dep := range deps {
		if !prior[dep] {
			return false
		}
	}
	return true
}
