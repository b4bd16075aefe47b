package kdl

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string, opts ...ParseOption) *Document {
	t.Helper()
	doc, err := Parse(source, opts...)
	require.NoErrorf(t, err, "parsing %q", source)
	return doc
}

func TestParseBasicArguments(t *testing.T) {
	doc := mustParse(t, "node 1 2 3")
	require.Len(t, doc.Nodes, 1)
	n := doc.Nodes[0]
	require.Equal(t, "node", n.Name)
	require.Len(t, n.Arguments, 3)
	for i, want := range []int64{1, 2, 3} {
		i64, ok := n.Arguments[i].Value.Int()
		require.True(t, ok)
		require.Equal(t, big.NewInt(want), i64)
	}
	require.Empty(t, n.Properties)
	require.Nil(t, n.Children)
}

func TestParsePropertyAndArgument(t *testing.T) {
	doc := mustParse(t, `node k=1 "s" #true`)
	n := doc.Nodes[0]
	require.Len(t, n.Arguments, 2)
	s, ok := n.Arguments[0].Value.String()
	require.True(t, ok)
	require.Equal(t, "s", s)
	b, ok := n.Arguments[1].Value.Bool()
	require.True(t, ok)
	require.True(t, b)

	v, ok := n.Property("k")
	require.True(t, ok)
	i, _ := v.Int()
	require.Equal(t, big.NewInt(1), i)
}

func TestParseChildren(t *testing.T) {
	doc := mustParse(t, `parent { child1; child2 "x" }`)
	parent := doc.Nodes[0]
	require.Equal(t, "parent", parent.Name)
	require.NotNil(t, parent.Children)
	require.Len(t, parent.Children.Nodes, 2)
	require.Equal(t, "child1", parent.Children.Nodes[0].Name)
	require.Equal(t, "child2", parent.Children.Nodes[1].Name)
	arg, err := parent.Children.Nodes[1].ArgAt(0)
	require.NoError(t, err)
	s, _ := arg.String()
	require.Equal(t, "x", s)
}

func TestParseSlashdashTopLevelNode(t *testing.T) {
	doc := mustParse(t, "/-dropped\nkept")
	require.Len(t, doc.Nodes, 1)
	require.Equal(t, "kept", doc.Nodes[0].Name)
}

func TestParseSlashdashArgument(t *testing.T) {
	withSlashdash := mustParse(t, "node 1 /- 2 3")
	without := mustParse(t, "node 1 3")
	require.Equal(t, without.Stringify(0), withSlashdash.Stringify(0))
}

func TestParseSlashdashChildrenBlock(t *testing.T) {
	doc := mustParse(t, "node /- { a; b }")
	n := doc.Nodes[0]
	require.True(t, n.Children == nil || len(n.Children.Nodes) == 0)
}

func TestParseSlashdashNodeWithChildren(t *testing.T) {
	doc := mustParse(t, "/-dropped {\n  a\n}\nkept")
	require.Len(t, doc.Nodes, 1)
	require.Equal(t, "kept", doc.Nodes[0].Name)
}

func TestParseNumberForms(t *testing.T) {
	doc := mustParse(t, "node 0x1_0 0b101 0o7 1_000.5e+2")
	n := doc.Nodes[0]
	i0, _ := n.Arguments[0].Value.Int()
	require.Equal(t, big.NewInt(16), i0)
	i1, _ := n.Arguments[1].Value.Int()
	require.Equal(t, big.NewInt(5), i1)
	i2, _ := n.Arguments[2].Value.Int()
	require.Equal(t, big.NewInt(7), i2)
	f, ok := n.Arguments[3].Value.Float()
	require.True(t, ok)
	require.Equal(t, 100050.0, f)
}

func TestParseFloatSpecials(t *testing.T) {
	doc := mustParse(t, "node #inf #-inf #nan")
	n := doc.Nodes[0]
	f0, _ := n.Arguments[0].Value.Float()
	require.True(t, math.IsInf(f0, 1))
	f1, _ := n.Arguments[1].Value.Float()
	require.True(t, math.IsInf(f1, -1))
	f2, _ := n.Arguments[2].Value.Float()
	require.True(t, math.IsNaN(f2))
}

func TestParseMultilineStringValue(t *testing.T) {
	toks, err := lex("\"\"\"\n    hello\n    world\n    \"\"\"", lexConfig{})
	require.NoError(t, err)
	require.Equal(t, "hello\nworld", toks[0].text)
}

func TestParseTagOnNodeAndArgument(t *testing.T) {
	doc := mustParse(t, `(kelvin)temp (number)300`)
	n := doc.Nodes[0]
	require.Equal(t, "kelvin", n.Annotation.Name)
	require.Equal(t, "number", n.Arguments[0].Annotation.Name)
}

func TestParseTagOnProperty(t *testing.T) {
	doc := mustParse(t, `node k=(tag)1`)
	n := doc.Nodes[0]
	require.Equal(t, "tag", n.Properties[0].Annotation.Name)
}

func TestParseTypeMapAppliesToAnnotatedValue(t *testing.T) {
	tm := map[string]ValueTransform{
		"upper": func(tag string, v Value) (Value, error) {
			s, _ := v.String()
			return StringValue(s + "!"), nil
		},
	}
	doc := mustParse(t, `node (upper)"hi"`, WithTypeMap(tm))
	s, _ := doc.Nodes[0].Arguments[0].Value.String()
	require.Equal(t, "hi!", s)
	require.Equal(t, "upper", doc.Nodes[0].Arguments[0].Annotation.Name)
}

func TestParseNodeMapReplacesNode(t *testing.T) {
	nm := map[string]NodeConstructor{
		"special": func(n *Node) (*Node, error) {
			n.Prop("marked", BoolValue(true))
			return n, nil
		},
	}
	doc := mustParse(t, `special 1`, WithNodeMap(nm))
	v, ok := doc.Nodes[0].Property("marked")
	require.True(t, ok)
	b, _ := v.Bool()
	require.True(t, b)
}

func TestParseDuplicateChildBlockIsError(t *testing.T) {
	_, err := Parse("node { a } { b }")
	require.Error(t, err)
}

func TestParseDuplicateChildBlockOneSlashdashedOK(t *testing.T) {
	doc := mustParse(t, "node /- { a } { b }")
	n := doc.Nodes[0]
	require.Len(t, n.Children.Nodes, 1)
	require.Equal(t, "b", n.Children.Nodes[0].Name)
}

func TestParseMissingNodeNameIsError(t *testing.T) {
	_, err := Parse("{ a }")
	require.Error(t, err)
}

func TestParseMismatchedBraceIsError(t *testing.T) {
	_, err := Parse("node {")
	require.Error(t, err)
}

func TestParseTagThenEqualsIsError(t *testing.T) {
	// (tag)name is parsed as a tagged positional argument, so the '=' that
	// follows has no property name to belong to and is a syntax error.
	_, err := Parse(`node (tag)name=value`)
	require.Error(t, err)
}

func TestParseEmptyTagIsError(t *testing.T) {
	_, err := Parse("()node")
	require.Error(t, err)
}

func TestParseIllegalIdentifierDotDigit(t *testing.T) {
	_, err := Parse("node .5foo")
	require.Error(t, err)
}

func TestParseBareIdentifierReservedKeyword(t *testing.T) {
	// "true" alone collides with the #true keyword spelling and is illegal
	// as a bare identifier.
	_, err := Parse("true")
	require.Error(t, err)
}
