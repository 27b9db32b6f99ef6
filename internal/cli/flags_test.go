package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"pblast/core/probmat"
	"pblast/core/scoring"
	"pblast/core/seed"
	"pblast/internal/matrixio"
)

// advertised returns the "a | b" choices at the end of a flag's usage text.
func advertised(t *testing.T, usage string) []string {
	t.Helper()
	_, list, ok := strings.Cut(usage, ": ")
	if !ok {
		t.Fatalf("usage %q lists no choices", usage)
	}
	var out []string
	for _, v := range strings.Split(list, "|") {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

func TestAdvertisedChoicesParse(t *testing.T) {
	root := NewRootCommand(io.Discard, io.Discard)
	for _, name := range []string{"search", "eval", "index"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatalf("find %s: %v", name, err)
		}
		if f := cmd.Flags().Lookup("score-method"); f != nil {
			for _, v := range advertised(t, f.Usage) {
				if _, err := scoring.ParseMethod(v); err != nil {
					t.Errorf("%s --score-method advertises %q: %v", name, v, err)
				}
			}
		}
		f := cmd.Flags().Lookup("seed-policy")
		if f == nil {
			t.Fatalf("%s has no --seed-policy", name)
		}
		for _, v := range advertised(t, f.Usage) {
			if _, err := seed.ParsePolicy(v); err != nil {
				t.Errorf("%s --seed-policy advertises %q: %v", name, v, err)
			}
		}
	}
}

func TestSearchWarnsOnIgnoredFlags(t *testing.T) {
	m, _ := probmat.FromSequence("AAAAACGTTTTT")
	ref := filepath.Join(t.TempDir(), "ref.tsv")
	if err := matrixio.Save(ref, matrixio.FormatAuto, m); err != nil {
		t.Fatal(err)
	}
	run := func(args ...string) string {
		var stdout, stderr bytes.Buffer
		root := NewRootCommand(&stdout, &stderr)
		root.SetArgs(append([]string{"search", "-r", ref, "-k", "2", "-Q", "ACGT"}, args...))
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return stderr.String()
	}
	if log := run("-f", "jsonl", "--pretty"); !strings.Contains(log, "--pretty has no effect with --format jsonl") {
		t.Fatalf("missing --pretty warning:\n%s", log)
	}
	if log := run("--align"); !strings.Contains(log, "--align has no effect with --format text") {
		t.Fatalf("missing --align warning:\n%s", log)
	}
	if log := run("-q", "--align"); strings.Contains(log, "no effect") {
		t.Fatalf("quiet run still warned:\n%s", log)
	}
	if log := run("-f", "jsonl", "--align"); strings.Contains(log, "no effect") {
		t.Fatalf("unexpected warning:\n%s", log)
	}
}
