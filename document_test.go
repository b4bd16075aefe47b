package kdl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSampleDocument(t *testing.T) *Document {
	t.Helper()
	return mustParse(t, `
root {
	a x=1 {
		leaf "one"
	}
	b x=2 {
		leaf "two"
	}
	a x=3
}
`)
}

func TestDocumentChildrenNamed(t *testing.T) {
	doc := buildSampleDocument(t)
	root, err := doc.FirstNamed("root")
	require.NoError(t, err)
	as := root.Children.ChildrenNamed("a")
	require.Equal(t, 2, as.Len())
}

func TestDocumentDescendantsNamed(t *testing.T) {
	doc := buildSampleDocument(t)
	leaves := doc.DescendantsNamed("leaf")
	require.Equal(t, 2, leaves.Len())
}

func TestDocumentDeepNavigation(t *testing.T) {
	doc := buildSampleDocument(t)
	leaves := doc.Deep().Named("leaf")
	require.Equal(t, 2, leaves.Len())
	values, err := leaves.ArgsAt(0)
	require.NoError(t, err)
	v0, _ := values[0].String()
	v1, _ := values[1].String()
	require.Equal(t, "one", v0)
	require.Equal(t, "two", v1)
}

func TestDocumentDeepFlagDoesNotPropagate(t *testing.T) {
	doc := buildSampleDocument(t)
	top := doc.Deep()
	step1 := top.Named("root")
	require.False(t, step1.deep)
}

func TestDocumentGetAndHas(t *testing.T) {
	doc := buildSampleDocument(t)
	n, err := doc.Get("root")
	require.NoError(t, err)
	require.Equal(t, "root", n.Name)
	require.True(t, doc.Has("root"))
	require.False(t, doc.Has("nope"))

	_, err = doc.Get("nope")
	require.Error(t, err)
}

func TestDocumentChildrenNamedAny(t *testing.T) {
	doc := buildSampleDocument(t)
	root, err := doc.FirstNamed("root")
	require.NoError(t, err)
	both := root.Children.ChildrenNamedAny("a", "b")
	require.Equal(t, 3, both.Len())
}

func TestNodeCollectionConcat(t *testing.T) {
	doc := buildSampleDocument(t)
	root, _ := doc.FirstNamed("root")
	as := root.Children.ChildrenNamed("a")
	bs := root.Children.ChildrenNamed("b")
	all := as.Concat(bs)
	require.Equal(t, 3, all.Len())
}

func TestNodeCollectionContainsAndHasNamed(t *testing.T) {
	doc := buildSampleDocument(t)
	root, _ := doc.FirstNamed("root")
	as := root.Children.ChildrenNamed("a")
	require.True(t, as.HasNamed("a"))
	require.False(t, as.HasNamed("b"))
	require.True(t, as.Contains(as.Nodes()[0]))
}

func TestNodeCollectionPropsAtMissingErrors(t *testing.T) {
	doc := buildSampleDocument(t)
	root, _ := doc.FirstNamed("root")
	as := root.Children.ChildrenNamed("a")
	_, err := as.PropsAt("x")
	require.NoError(t, err)
	_, err = as.PropsAt("missing")
	require.Error(t, err)
}

func TestNodeArgAtAndPropAtOutOfRange(t *testing.T) {
	n := NewNode("n").Arg(IntValueFromInt64(1))
	_, err := n.ArgAt(1)
	require.Error(t, err)
	_, err = n.PropAt("k")
	require.Error(t, err)
}

func TestDocumentIterationOrder(t *testing.T) {
	doc := mustParse(t, "a\nb\nc")
	var names []string
	for _, n := range doc.All().Nodes() {
		names = append(names, n.Name)
	}
	require.Equal(t, []string{"a", "b", "c"}, names)
}
