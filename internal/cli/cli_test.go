package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
	nio "github.com/matzehuels/cutrewrite/pkg/io"
	"github.com/matzehuels/cutrewrite/pkg/io/bench"
	"github.com/matzehuels/cutrewrite/pkg/pipeline"
)

const majority = `INPUT(a)
INPUT(b)
INPUT(c)
OUTPUT(y)
m = LUT 0xe8 (a, b, c)
y = LUT 0xe8 (a, m, c)
unused = AND(a, b)
`

const andOr = `INPUT(a)
INPUT(b)
INPUT(c)
OUTPUT(y)
y = OR(a, b, c)
`

// setup writes the test netlists and points the cache at a temporary
// directory.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for name, src := range map[string]string{"maj.bench": majority, "or.bench": andOr} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOptimizeToStdout(t *testing.T) {
	dir := setup(t)
	out, err := run(t, "optimize", filepath.Join(dir, "maj.bench"), "--passes", "2")
	if err != nil {
		t.Fatalf("optimize error = %v", err)
	}
	d, err := bench.ReadString(out)
	if err != nil {
		t.Fatalf("stdout is not BENCH: %v\n%s", err, out)
	}
	if got := d.Network.NumGates(); got != 1 {
		t.Errorf("optimised netlist has %d gates, want 1", got)
	}
}

func TestOptimizeToFile(t *testing.T) {
	dir := setup(t)
	dst := filepath.Join(dir, "maj.json")
	out, err := run(t, "optimize", filepath.Join(dir, "maj.bench"), "-o", dst, "--verify", "--oracle", "majority")
	if err != nil {
		t.Fatalf("optimize error = %v", err)
	}
	if !strings.Contains(out, "equivalence proven") || !strings.Contains(out, dst) {
		t.Errorf("summary = %q", out)
	}
	d, err := nio.Load(dst)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", dst, err)
	}
	if d.Outputs[0] != "y" {
		t.Errorf("Outputs = %v", d.Outputs)
	}

	out, err = run(t, "optimize", filepath.Join(dir, "maj.bench"), "-o", dst, "--oracle", "majority")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, iconCached) {
		t.Errorf("second run not served from cache: %q", out)
	}
}

func TestOptimizeConfig(t *testing.T) {
	dir := setup(t)
	cfg := filepath.Join(dir, "cutrewrite.toml")
	if err := os.WriteFile(cfg, []byte("oracle = \"bdd\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "optimize", filepath.Join(dir, "maj.bench"), "--config", cfg)
	if !cerrors.Is(err, cerrors.ErrCodeInvalidConfig) {
		t.Errorf("bad oracle in config: error = %v, want INVALID_CONFIG", err)
	}

	// An explicit flag overrides the config file.
	if _, err := run(t, "optimize", filepath.Join(dir, "maj.bench"), "--config", cfg, "--oracle", "lut", "--no-cache"); err != nil {
		t.Errorf("flag override: error = %v", err)
	}
}

func TestOptimizeErrors(t *testing.T) {
	dir := setup(t)
	tests := []struct {
		name string
		args []string
		code cerrors.Code
	}{
		{"missing file", []string{"optimize", filepath.Join(dir, "none.bench")}, cerrors.ErrCodeFileNotFound},
		{"wrong extension", []string{"optimize", filepath.Join(dir, "maj.blif")}, cerrors.ErrCodeInvalidFormat},
		{"cut size", []string{"optimize", filepath.Join(dir, "maj.bench"), "-k", "1"}, cerrors.ErrCodeInvalidConfig},
		{"strategy", []string{"optimize", filepath.Join(dir, "maj.bench"), "--strategy", "random"}, cerrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); !cerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCleanup(t *testing.T) {
	dir := setup(t)
	out, err := run(t, "cleanup", filepath.Join(dir, "maj.bench"))
	if err != nil {
		t.Fatal(err)
	}
	d, err := bench.ReadString(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Network.NumGates(); got != 2 {
		t.Errorf("cleaned netlist has %d gates, want 2", got)
	}
}

func TestStatsJSON(t *testing.T) {
	dir := setup(t)
	path := filepath.Join(dir, "maj.bench")
	out, err := run(t, "stats", "--json", path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]pipeline.NetworkStats
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("stats output is not JSON: %v", err)
	}
	if st := got[path]; st.PIs != 3 || st.POs != 1 || st.Gates != 2 || st.Depth != 2 {
		t.Errorf("stats = %+v", st)
	}

	out, err = run(t, "stats", path, filepath.Join(dir, "or.bench"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "gates") || !strings.Contains(out, "or.bench") {
		t.Errorf("stats output = %q", out)
	}
}

func TestDot(t *testing.T) {
	dir := setup(t)
	out, err := run(t, "dot", filepath.Join(dir, "maj.bench"), "--detailed")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "digraph G {") || !strings.Contains(out, `label="y"`) {
		t.Errorf("dot output = %q", out)
	}
}

func TestCut(t *testing.T) {
	dir := setup(t)
	path := filepath.Join(dir, "maj.bench")
	out, err := run(t, "cut", path, "--output", "y", "-k", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "function") || !strings.Contains(out, "0xe8") {
		t.Errorf("cut output = %q, want the majority function", out)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"no root", []string{"cut", path}},
		{"unknown output", []string{"cut", path, "--output", "z"}},
		{"input node", []string{"cut", path, "--node", "1"}},
		{"both", []string{"cut", path, "--node", "4", "--output", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestVerify(t *testing.T) {
	dir := setup(t)
	maj := filepath.Join(dir, "maj.bench")
	opt := filepath.Join(dir, "opt.bench")
	if _, err := run(t, "optimize", maj, "-o", opt); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "verify", maj, opt); err != nil {
		t.Errorf("verify(original, optimised) error = %v", err)
	}

	out, err := run(t, "verify", maj, filepath.Join(dir, "or.bench"))
	if !cerrors.Is(err, cerrors.ErrCodeNotEquivalent) {
		t.Fatalf("verify(maj, or) error = %v, want NOT_EQUIVALENT", err)
	}
	if !strings.Contains(out, "counterexample: a=") {
		t.Errorf("verify output = %q, want a counterexample", out)
	}
}

func TestCacheClear(t *testing.T) {
	dir := setup(t)
	if _, err := run(t, "optimize", filepath.Join(dir, "maj.bench"), "-o", filepath.Join(dir, "out.bench")); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached results") {
		t.Errorf("cache clear output = %q", out)
	}

	out, err = run(t, "cache", "clear", "--no-cache")
	if err != nil || !strings.Contains(out, "disabled") {
		t.Errorf("cache clear --no-cache = %q, %v", out, err)
	}
}

func TestCounterexample(t *testing.T) {
	got := counterexample([]string{"a", "b"}, []bool{true, false, true})
	if want := "a=1 b=0 ro0=1"; got != want {
		t.Errorf("counterexample() = %q, want %q", got, want)
	}
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"optimize", "x.bench", "--oracle", ""}, []string{"lut", "majority", "shannon", "chain", ":4"}},
		{[]string{"optimize", "x.bench", "--strategy", ""}, []string{"minimize_weight", "greedy", ":4"}},
		{[]string{"stats", ""}, []string{"bench", "json", ":8"}},
		{[]string{"--config", ""}, []string{"toml", ":8"}},
	}
	for _, tt := range tests {
		out, err := run(t, append([]string{"__complete"}, tt.args...)...)
		if err != nil {
			t.Fatalf("__complete %v error = %v", tt.args, err)
		}
		got := strings.Fields(out)
		if strings.Join(got, " ") != strings.Join(tt.want, " ") {
			t.Errorf("__complete %v = %v, want %v", tt.args, got, tt.want)
		}
	}
}
