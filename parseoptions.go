package kdl

// ParseOption configures a call to Parse. Options are applied in order,
// following the functional-options idiom.
type ParseOption func(*parseConfig)

type parseConfig struct {
	typeMap                map[string]ValueTransform
	nodeMap                map[string]NodeConstructor
	experimentalSuffixTags bool
}

// WithTypeMap registers value transforms keyed by type-annotation name.
// When a value's tag matches an entry, the transform is called with the
// tag and the default-parsed Value, and its result (or error) replaces
// the default. This is the callback half of the schema-binding
// collaborator interface described in SPEC_FULL.md; the binder itself is
// out of scope.
func WithTypeMap(m map[string]ValueTransform) ParseOption {
	return func(c *parseConfig) { c.typeMap = m }
}

// WithNodeMap registers node constructors keyed by node name, called
// after a node's arguments, properties, and children are fully parsed,
// in place of the node being added to the document as-is.
func WithNodeMap(m map[string]NodeConstructor) ParseOption {
	return func(c *parseConfig) { c.nodeMap = m }
}

// WithExperimentalSuffixTags enables the experimental number-suffix
// syntax, both the bare-identifier spelling (123mm) and the explicit
// "#identifier" spelling (123#mm). It defaults to false and is scoped to
// a single Parse call rather than process-wide state.
func WithExperimentalSuffixTags(enabled bool) ParseOption {
	return func(c *parseConfig) { c.experimentalSuffixTags = enabled }
}
