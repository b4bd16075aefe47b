package kdl

import "fmt"

// Document is an ordered sequence of nodes: either the top level of a
// parsed KDL file, or a node's children block.
type Document struct {
	Nodes []*Node
}

// Append adds nodes to the end of the document and returns it, for
// convenient chained construction.
func (d *Document) Append(nodes ...*Node) *Document {
	d.Nodes = append(d.Nodes, nodes...)
	return d
}

func (d *Document) childrenNamed(name string) []*Node {
	var out []*Node
	for _, n := range d.Nodes {
		if n.Name == name {
			out = append(out, n)
		}
	}
	return out
}

func (d *Document) descendantsNamed(name string) []*Node {
	var out []*Node
	for _, n := range d.Nodes {
		if n.Name == name {
			out = append(out, n)
		}
		if n.Children != nil {
			out = append(out, n.Children.descendantsNamed(name)...)
		}
	}
	return out
}

// All returns a NodeCollection over this document's immediate nodes.
func (d *Document) All() NodeCollection {
	return NodeCollection{nodes: append([]*Node(nil), d.Nodes...)}
}

// Deep returns a NodeCollection over this document's immediate nodes with
// the deep flag set, so that the next navigation step searches all
// descendants rather than only direct children.
func (d *Document) Deep() NodeCollection {
	return d.All().Deep()
}

// ChildrenNamed returns the immediate child nodes with the given name, in
// document order.
func (d *Document) ChildrenNamed(name string) NodeCollection {
	return NodeCollection{nodes: d.childrenNamed(name)}
}

// DescendantsNamed returns every node with the given name anywhere below
// this document, in depth-first document order.
func (d *Document) DescendantsNamed(name string) NodeCollection {
	return NodeCollection{nodes: d.descendantsNamed(name)}
}

// FirstNamed returns the first immediate child node with the given name,
// or an error if there is none. This is the "//" single-match-or-error
// navigation primitive.
func (d *Document) FirstNamed(name string) (*Node, error) {
	for _, n := range d.Nodes {
		if n.Name == name {
			return n, nil
		}
	}
	return nil, fmt.Errorf("no node named %q", name)
}

// Get is the `doc["name"]` operator: the first immediate child node
// named name, or an error if there is none. It is equivalent to
// FirstNamed, provided as the indexing-operator spelling.
func (d *Document) Get(name string) (*Node, error) {
	return d.FirstNamed(name)
}

// Has reports whether d has an immediate child node named name (the
// `name in doc` operator).
func (d *Document) Has(name string) bool {
	for _, n := range d.Nodes {
		if n.Name == name {
			return true
		}
	}
	return false
}

// ChildrenNamedAny returns the immediate child nodes whose name is any
// of names, in document order (the `doc / ("a", "b")` tuple-selector
// form).
func (d *Document) ChildrenNamedAny(names ...string) NodeCollection {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []*Node
	for _, n := range d.Nodes {
		if want[n.Name] {
			out = append(out, n)
		}
	}
	return NodeCollection{nodes: out}
}

// NodeCollection is the ephemeral result of a navigation query: an
// ordered, possibly empty list of nodes, plus a "deep" flag that, when
// set, makes the next single navigation step search all descendants of
// the current nodes instead of only their immediate children. The flag
// is consumed by that one step and does not propagate further.
type NodeCollection struct {
	nodes []*Node
	deep  bool
}

// Deep sets the deep flag on the collection, affecting only the next
// Named/NamedAny call.
func (nc NodeCollection) Deep() NodeCollection {
	nc.deep = true
	return nc
}

// Named steps into the children of every node in nc, named name. If nc's
// deep flag is set, it searches all descendants instead of only direct
// children; either way, the flag is consumed and does not propagate to
// further steps on the result.
func (nc NodeCollection) Named(name string) NodeCollection {
	var out []*Node
	for _, n := range nc.nodes {
		if n.Children == nil {
			continue
		}
		if nc.deep {
			out = append(out, n.Children.descendantsNamed(name)...)
		} else {
			out = append(out, n.Children.childrenNamed(name)...)
		}
	}
	return NodeCollection{nodes: out}
}

// NamedAny steps into the children of every node in nc, keeping any
// child whose name is in names (the `collection / ("a", "b")`
// tuple-selector form). Deep semantics match Named.
func (nc NodeCollection) NamedAny(names ...string) NodeCollection {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []*Node
	for _, n := range nc.nodes {
		if n.Children == nil {
			continue
		}
		if nc.deep {
			for _, name := range names {
				out = append(out, n.Children.descendantsNamed(name)...)
			}
		} else {
			for _, c := range n.Children.Nodes {
				if want[c.Name] {
					out = append(out, c)
				}
			}
		}
	}
	return NodeCollection{nodes: out}
}

// HasNamed reports whether nc contains a node named name (the
// `name in collection` operator).
func (nc NodeCollection) HasNamed(name string) bool {
	for _, n := range nc.nodes {
		if n.Name == name {
			return true
		}
	}
	return false
}

// ArgsAt returns the i'th positional argument value of every node in the
// collection, in order. It raises an error if any node lacks that
// argument (the `collection[i]` operator).
func (nc NodeCollection) ArgsAt(i int) ([]Value, error) {
	out := make([]Value, 0, len(nc.nodes))
	for _, n := range nc.nodes {
		v, err := n.ArgAt(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// PropsAt returns the property key's value of every node in the
// collection, in order. It raises an error if any node lacks that
// property (the `collection["k"]` operator).
func (nc NodeCollection) PropsAt(key string) ([]Value, error) {
	out := make([]Value, 0, len(nc.nodes))
	for _, n := range nc.nodes {
		v, err := n.PropAt(key)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Len reports the number of nodes in the collection.
func (nc NodeCollection) Len() int { return len(nc.nodes) }

// Nodes returns the collection's nodes as a plain slice, for iteration.
func (nc NodeCollection) Nodes() []*Node { return append([]*Node(nil), nc.nodes...) }

// At returns the node at index i (the "[i]" navigation operator).
func (nc NodeCollection) At(i int) (*Node, error) {
	if i < 0 || i >= len(nc.nodes) {
		return nil, fmt.Errorf("index %d out of range (collection has %d nodes)", i, len(nc.nodes))
	}
	return nc.nodes[i], nil
}

// First returns the first node in the collection, or an error if it is
// empty (the "//" operator applied to an intermediate collection).
func (nc NodeCollection) First() (*Node, error) {
	if len(nc.nodes) == 0 {
		return nil, fmt.Errorf("empty node collection")
	}
	return nc.nodes[0], nil
}

// Concat returns a new collection containing nc's nodes followed by
// other's nodes (the "+" operator).
func (nc NodeCollection) Concat(other NodeCollection) NodeCollection {
	out := make([]*Node, 0, len(nc.nodes)+len(other.nodes))
	out = append(out, nc.nodes...)
	out = append(out, other.nodes...)
	return NodeCollection{nodes: out}
}

// Contains reports whether n is present in the collection (the "in"
// operator).
func (nc NodeCollection) Contains(n *Node) bool {
	for _, c := range nc.nodes {
		if c == n {
			return true
		}
	}
	return false
}

// ArgAt returns the value of the i'th positional argument of n (the
// "[i]" operator applied to a Node).
func (n *Node) ArgAt(i int) (Value, error) {
	if i < 0 || i >= len(n.Arguments) {
		return Value{}, fmt.Errorf("argument index %d out of range (node %q has %d arguments)", i, n.Name, len(n.Arguments))
	}
	return n.Arguments[i].Value, nil
}

// PropAt returns the value of property key on n (the "[\"key\"]"
// operator applied to a Node).
func (n *Node) PropAt(key string) (Value, error) {
	v, ok := n.Property(key)
	if !ok {
		return Value{}, fmt.Errorf("node %q has no property %q", n.Name, key)
	}
	return v, nil
}
