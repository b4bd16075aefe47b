// Package kdl implements a lexer, parser and canonical serializer for KDL,
// a node-oriented configuration language.
//
// A document is a sequence of nodes, each with a name, an optional type
// annotation, ordered positional arguments, an unordered set of properties
// and an optional set of children nodes. Parse reads KDL source text into a
// Document; Document.Stringify renders a Document back to its canonical
// text form.
package kdl
