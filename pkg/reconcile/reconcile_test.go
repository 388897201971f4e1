package reconcile

import (
	"reflect"
	"testing"
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func TestMake(t *testing.T) {
	tests := []struct {
		name      string
		fresh     []string
		prior     map[string]bool
		mode      Mode
		wantDeps  []string
		wantWrite bool
	}{
		{
			name:      "overwrite keeps fresh set unchanged",
			fresh:     []string{"a", "c"},
			prior:     set("a", "b"),
			mode:      Mode{},
			wantDeps:  []string{"a", "c"},
			wantWrite: true,
		},
		{
			name:      "append keeps only genuinely new names",
			fresh:     []string{"a", "c"},
			prior:     set("a", "b"),
			mode:      Mode{Append: true},
			wantDeps:  []string{"c"},
			wantWrite: true,
		},
		{
			name:      "append with nothing new yields empty set",
			fresh:     []string{"a", "b"},
			prior:     set("a", "b"),
			mode:      Mode{Append: true},
			wantDeps:  nil,
			wantWrite: true,
		},
		{
			name:      "only-if-changed skips when sets are equal",
			fresh:     []string{"a", "b"},
			prior:     set("a", "b"),
			mode:      Mode{OnlyIfChanged: true},
			wantDeps:  []string{"a", "b"},
			wantWrite: false,
		},
		{
			name:      "only-if-changed writes when sets differ",
			fresh:     []string{"a", "c"},
			prior:     set("a", "b"),
			mode:      Mode{OnlyIfChanged: true},
			wantDeps:  []string{"a", "c"},
			wantWrite: true,
		},
		{
			name:      "only-if-changed skips empty fresh set",
			fresh:     nil,
			prior:     set(),
			mode:      Mode{OnlyIfChanged: true},
			wantDeps:  nil,
			wantWrite: false,
		},
		{
			name:      "append plus only-if-changed skips when nothing new",
			fresh:     []string{"a", "b"},
			prior:     set("a", "b"),
			mode:      Mode{Append: true, OnlyIfChanged: true},
			wantDeps:  nil,
			wantWrite: false,
		},
		{
			name:      "append plus only-if-changed writes new names only",
			fresh:     []string{"a", "c"},
			prior:     set("a", "b"),
			mode:      Mode{Append: true, OnlyIfChanged: true},
			wantDeps:  []string{"c"},
			wantWrite: true,
		},
		{
			name:      "case-sensitive comparison treats different cases as new",
			fresh:     []string{"Wheel"},
			prior:     set("wheel"),
			mode:      Mode{Append: true},
			wantDeps:  []string{"Wheel"},
			wantWrite: true,
		},
		{
			name:      "empty prior set in append mode keeps everything",
			fresh:     []string{"a", "b"},
			prior:     set(),
			mode:      Mode{Append: true},
			wantDeps:  []string{"a", "b"},
			wantWrite: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Make(tt.fresh, tt.prior, tt.mode)
			if !reflect.DeepEqual(got.Deps, tt.wantDeps) {
				t.Errorf("Make().Deps = %v, want %v", got.Deps, tt.wantDeps)
			}
			if got.Write != tt.wantWrite {
				t.Errorf("Make().Write = %v, want %v", got.Write, tt.wantWrite)
			}
		})
	}
}

func TestMakeDoesNotMutateInput(t *testing.T) {
	fresh := []string{"a", "c"}
	prior := set("a")

	Make(fresh, prior, Mode{Append: true})

	if !reflect.DeepEqual(fresh, []string{"a", "c"}) {
		t.Errorf("fresh mutated: %v", fresh)
	}
	if !reflect.DeepEqual(prior, set("a")) {
		t.Errorf("prior mutated: %v", prior)
	}
}
