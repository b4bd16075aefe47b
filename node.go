package kdl

// Annotation is a type annotation ("tag") attached to a node or to an
// individual argument or property value: the bare or quoted identifier
// written immediately before the thing it annotates, in parentheses.
type Annotation struct {
	Name string
}

// HasAnnotation reports whether a is present (the zero Annotation, with
// an empty Name, means "no annotation").
func (a Annotation) HasAnnotation() bool { return a.Name != "" }

// Argument is a positional value in a node's argument list, carrying its
// own optional type annotation.
type Argument struct {
	Annotation Annotation
	Value      Value
}

// Property is a single key/value pair in a node's property set. Property
// order within a Node.Properties slice is the order properties were
// first assigned; Stringify always emits properties sorted by key,
// regardless of this order.
type Property struct {
	Key        string
	Annotation Annotation
	Value      Value
}

// Node is a single KDL node: a name, an optional type annotation, an
// ordered list of positional arguments, a set of properties, and an
// optional set of children.
type Node struct {
	Annotation Annotation
	Name       string
	Arguments  []Argument
	Properties []Property
	Children   *Document
}

// NewNode constructs a bare Node with the given name and no arguments,
// properties, or children.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// Arg appends a positional argument with no annotation.
func (n *Node) Arg(v Value) *Node {
	n.Arguments = append(n.Arguments, Argument{Value: v})
	return n
}

// Prop sets a property, replacing any existing value for key.
func (n *Node) Prop(key string, v Value) *Node {
	for i := range n.Properties {
		if n.Properties[i].Key == key {
			n.Properties[i].Value = v
			return n
		}
	}
	n.Properties = append(n.Properties, Property{Key: key, Value: v})
	return n
}

// Property looks up a property by key.
func (n *Node) Property(key string) (Value, bool) {
	for _, p := range n.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// EnsureChildren returns n.Children, allocating an empty Document if nil.
func (n *Node) EnsureChildren() *Document {
	if n.Children == nil {
		n.Children = &Document{}
	}
	return n.Children
}
