package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/cutrewrite/pkg/network"
)

func sample() (*network.Network, network.Signal) {
	ntk := network.New()
	a, b := ntk.CreatePI(), ntk.CreatePI()
	x := ntk.CreateAnd(a, b.Not())
	ntk.CreateOr(a, b) // dangling
	ntk.CreatePO(x.Not())
	return ntk, x
}

func TestToDOT(t *testing.T) {
	ntk, _ := sample()
	dot := ToDOT(ntk, Options{Inputs: []string{"a"}, Outputs: []string{"y"}})

	for _, want := range []string{
		"digraph G",
		`label="a"`,
		`label="pi1"`,
		`label="y"`,
		"n1 -> n3;",
		"n2 -> n3 [style=dashed];",
		"n3 -> po0 [style=dashed];",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "n4") {
		t.Error("ToDOT() drew a dangling gate")
	}
	if strings.Contains(dot, `label="0"`) {
		t.Error("ToDOT() drew an unused constant")
	}
}

func TestToDOTDetailed(t *testing.T) {
	ntk, x := sample()
	dot := ToDOT(ntk, Options{Detailed: true, Highlight: []network.Node{x.Node()}, Leaves: ntk.PIs()})

	if !strings.Contains(dot, `n3\n0x8`) {
		t.Errorf("ToDOT() detailed output missing function:\n%s", dot)
	}
	if !strings.Contains(dot, "lightblue") {
		t.Error("ToDOT() did not highlight the gate")
	}
	if strings.Count(dot, "penwidth=3") != 2 {
		t.Error("ToDOT() did not outline both leaves")
	}
}

func TestToDOTConstantOutput(t *testing.T) {
	ntk := network.New()
	ntk.CreatePO(ntk.Constant(true))
	dot := ToDOT(ntk, Options{})
	if !strings.Contains(dot, `label="0"`) || !strings.Contains(dot, "n0 -> po0 [style=dashed];") {
		t.Errorf("ToDOT() constant output:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.Contains(got, `viewBox="0 0 62.00 116.00" width="62" height="116"`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if plain := []byte("<svg></svg>"); string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("normalizeViewBox() changed an svg without viewBox")
	}
}
