package kdl

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// StringifyOption configures Document.Stringify. There are currently no
// public options; it exists so the signature can grow without breaking
// callers, following the functional-options shape used throughout this
// package for Parse.
type StringifyOption func(*stringifyConfig)

type stringifyConfig struct{}

// Stringify renders d to its canonical KDL text form: arguments in source
// order, properties sorted by key, 4-space indentation per nesting
// level added to indent, and a newline ending every node's line (a
// document with no nodes renders as the empty string). Re-parsing the
// output and stringifying again always yields the same text (idempotent
// canonicalization).
func (d *Document) Stringify(indent int, opts ...StringifyOption) string {
	cfg := &stringifyConfig{}
	for _, o := range opts {
		o(cfg)
	}
	var b strings.Builder
	d.writeTo(&b, indent)
	return b.String()
}

func (d *Document) writeTo(b *strings.Builder, indent int) {
	for _, n := range d.Nodes {
		n.writeTo(b, indent)
	}
}

func (n *Node) writeTo(b *strings.Builder, indent int) {
	b.WriteString(strings.Repeat(" ", indent))
	if n.Annotation.HasAnnotation() {
		b.WriteByte('(')
		b.WriteString(formatIdentifier(n.Annotation.Name))
		b.WriteByte(')')
	}
	b.WriteString(formatIdentifier(n.Name))

	for _, a := range n.Arguments {
		b.WriteByte(' ')
		if a.Annotation.HasAnnotation() {
			b.WriteByte('(')
			b.WriteString(formatIdentifier(a.Annotation.Name))
			b.WriteByte(')')
		}
		b.WriteString(formatValue(a.Value))
	}

	props := append([]Property(nil), n.Properties...)
	sort.Slice(props, func(i, j int) bool { return props[i].Key < props[j].Key })
	for _, p := range props {
		b.WriteByte(' ')
		b.WriteString(formatIdentifier(p.Key))
		b.WriteByte('=')
		if p.Annotation.HasAnnotation() {
			b.WriteByte('(')
			b.WriteString(formatIdentifier(p.Annotation.Name))
			b.WriteByte(')')
		}
		b.WriteString(formatValue(p.Value))
	}

	if n.Children != nil && len(n.Children.Nodes) > 0 {
		b.WriteString(" {\n")
		n.Children.writeTo(b, indent+4)
		b.WriteString(strings.Repeat(" ", indent))
		b.WriteString("}\n")
	} else {
		b.WriteByte('\n')
	}
}

// formatIdentifier renders s as a bare identifier when legal, or as a
// quoted string otherwise.
func formatIdentifier(s string) string {
	if canBeBareIdentifier(s) {
		return s
	}
	return quoteString(s)
}

func canBeBareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if s == "true" || s == "false" || s == "null" || s == "inf" || s == "-inf" || s == "nan" {
		return false
	}
	runes := []rune(s)
	if !isIdentifierStart(runes[0]) {
		return false
	}
	// A leading sign followed by a digit, or a leading '.' followed by a
	// digit, would lex as a number on re-parse, not an identifier.
	if (runes[0] == '+' || runes[0] == '-') && len(runes) > 1 && isDigit(runes[1]) {
		return false
	}
	if runes[0] == '.' && len(runes) > 1 && isDigit(runes[1]) {
		return false
	}
	for _, r := range runes[1:] {
		if !isIdentifierChar(r) {
			return false
		}
	}
	return true
}

func formatValue(v Value) string {
	switch v.kind {
	case KindString:
		return formatIdentifier(v.str)
	case KindInt:
		return v.int.String()
	case KindFloat:
		return formatFloat(v.flt)
	case KindBool:
		if v.boo {
			return "#true"
		}
		return "#false"
	case KindNull:
		return "#null"
	}
	return ""
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "#nan"
	case math.IsInf(f, 1):
		return "#inf"
	case math.IsInf(f, -1):
		return "#-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// KDL floats always carry a decimal point or exponent so they can
	// never be confused with an integer on re-parse.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
