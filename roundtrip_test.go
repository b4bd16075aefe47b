package kdl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// roundTrip parses source, stringifies the result, reparses that, and
// returns both documents' canonical text so callers can assert equality
// without repeating the parse/stringify/parse dance.
func roundTrip(t *testing.T, source string) (string, string) {
	t.Helper()
	doc := mustParse(t, source)
	out1 := doc.Stringify(0)
	reparsed, err := Parse(out1)
	require.NoError(t, err)
	out2 := reparsed.Stringify(0)
	return out1, out2
}

func TestRoundTripIdempotentAcrossSamples(t *testing.T) {
	samples := []string{
		"node 1 2 3",
		`node k=1 "s" #true`,
		`parent { child1; child2 "x" }`,
		"/-dropped\nkept",
		"node 0x1_0 0b101 0o7 1_000.5e+2",
		`(tag)node (num)3.5 k=(t2)"v"`,
		`deeply { nested { structure { leaf 1 2 3 } } }`,
		`multi "line\nvalue" another`,
	}
	for _, s := range samples {
		out1, out2 := roundTrip(t, s)
		require.Equalf(t, out1, out2, "source: %q", s)
	}
}

func TestRoundTripStructuralEquality(t *testing.T) {
	doc := mustParse(t, `node k=1 "s" #true`)
	out := doc.Stringify(0)
	reparsed := mustParse(t, out)

	require.Equal(t, len(doc.Nodes), len(reparsed.Nodes))
	a, b := doc.Nodes[0], reparsed.Nodes[0]
	require.Equal(t, a.Name, b.Name)
	require.Equal(t, len(a.Arguments), len(b.Arguments))
	for i := range a.Arguments {
		require.True(t, a.Arguments[i].Value.Equal(b.Arguments[i].Value))
	}
	va, _ := a.Property("k")
	vb, _ := b.Property("k")
	require.True(t, va.Equal(vb))
}

func TestSlashdashElisionLaw(t *testing.T) {
	withArg := mustParse(t, "node 1 /- 2 3")
	withoutArg := mustParse(t, "node 1 3")
	require.Equal(t, withoutArg.Stringify(0), withArg.Stringify(0))
}

func TestDeepNavigationPreOrderLaw(t *testing.T) {
	doc := mustParse(t, `
top {
	x {
		inner "first"
	}
	y {
		x {
			inner "second"
		}
	}
}
`)
	matches := doc.Deep().Named("x")
	require.Equal(t, 2, matches.Len())
}

func TestIndentStrippingLaw(t *testing.T) {
	toks, err := lex("\"\"\"\n  a\n  b\n  c\n  \"\"\"", lexConfig{})
	require.NoError(t, err)
	require.Equal(t, "a\nb\nc", toks[0].text)
}

func TestNumberSemanticsLaw(t *testing.T) {
	doc := mustParse(t, "node 0x1_0")
	i, _ := doc.Nodes[0].Arguments[0].Value.Int()
	require.Equal(t, int64(16), i.Int64())

	doc2 := mustParse(t, "node 1.5e2")
	f, _ := doc2.Nodes[0].Arguments[0].Value.Float()
	require.Equal(t, 150.0, f)
}

func TestErrorDeterminism(t *testing.T) {
	_, err1 := Parse("node {")
	_, err2 := Parse("node {")
	require.Error(t, err1)
	require.Error(t, err2)
	require.Equal(t, err1.Error(), err2.Error())
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Parse("node1\nnode2 \x01")
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 2, se.Line)
}
