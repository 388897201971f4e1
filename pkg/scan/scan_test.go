package scan

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestBuilddeps(t *testing.T) {
	tests := []struct {
		name string
		log  string
		want []string
	}{
		{
			name: "empty log",
			log:  "",
			want: []string{},
		},
		{
			name: "no collecting lines",
			log:  "Looking in indexes: https://pypi.org/simple\nSaved ./requests-2.0.tar.gz\n",
			want: []string{},
		},
		{
			name: "unindented lines are runtime deps, not build deps",
			log:  "Collecting requests==2.0\nCollecting idna==3.4\n",
			want: []string{},
		},
		{
			name: "indented line is a build dep",
			log:  "Collecting requests==2.0\n  Collecting setuptools>=40.8.0\n",
			want: []string{"setuptools>=40.8.0"},
		},
		{
			name: "tab indentation counts",
			log:  "\tCollecting wheel\n",
			want: []string{"wheel"},
		},
		{
			name: "environment marker after semicolon is discarded",
			log:  "  Collecting foo==1.2; python_version>='3.8'\n",
			want: []string{"foo==1.2"},
		},
		{
			name: "extras and specifiers are kept as raw tokens",
			log:  "  Collecting package[extra]==1.0\n",
			want: []string{"package[extra]==1.0"},
		},
		{
			name: "duplicates are removed and output sorted",
			log: strings.Join([]string{
				"  Collecting wheel",
				"  Collecting setuptools>=40.8.0",
				"  Collecting wheel",
				"  Collecting flit_core<4,>=3.2",
			}, "\n"),
			want: []string{"flit_core<4,>=3.2", "setuptools>=40.8.0", "wheel"},
		},
		{
			name: "malformed lines never match",
			log:  "  Collecting\n   \nCollecting   \n  collecting wheel\n",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Builddeps(strings.NewReader(tt.log))
			if err != nil {
				t.Fatalf("Builddeps() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Builddeps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuilddepsLongLines(t *testing.T) {
	// pip can emit single lines far beyond bufio.Scanner's default token
	// limit; they must be treated as non-matches, not errors.
	log := strings.Repeat("x", 256*1024) + "\n" +
		"  Collecting wheel\n" +
		"  Collecting " + strings.Repeat("y", 128*1024) + "\n"

	got, err := Builddeps(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Builddeps() error = %v", err)
	}
	want := []string{"wheel", strings.Repeat("y", 128*1024)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Builddeps() lost matches around long lines")
	}
}

func TestBuilddepsNoTrailingNewline(t *testing.T) {
	got, err := Builddeps(strings.NewReader("  Collecting wheel"))
	if err != nil {
		t.Fatalf("Builddeps() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"wheel"}) {
		t.Errorf("Builddeps() = %v, want [wheel]", got)
	}
}

func TestBuilddepsIdempotent(t *testing.T) {
	log := "Collecting requests==2.0\n  Collecting certifi==2023.0\n  Collecting wheel\n"

	first, err := Builddeps(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Builddeps() error = %v", err)
	}
	second, err := Builddeps(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Builddeps() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scans differ: %v vs %v", first, second)
	}
	if !sort.StringsAreSorted(first) {
		t.Errorf("result is not sorted: %v", first)
	}
}

func TestBuilddepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pip-download-output.txt")
	log := "Collecting requests==2.0\n  Collecting certifi==2023.0\n"
	if err := os.WriteFile(path, []byte(log), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := BuilddepsFile(path)
	if err != nil {
		t.Fatalf("BuilddepsFile() error = %v", err)
	}
	want := []string{"certifi==2023.0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuilddepsFile() = %v, want %v", got, want)
	}
}

func TestBuilddepsFileMissing(t *testing.T) {
	if _, err := BuilddepsFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing log file")
	}
}
