package kdl

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Parse reads source as a complete KDL document. It either returns a
// fully-populated Document, or the first syntax error encountered; there
// is no partial result and no error recovery, matching this package's
// single-error-category design (see SyntaxError).
func Parse(source string, opts ...ParseOption) (doc *Document, err error) {
	cfg := &parseConfig{}
	for _, o := range opts {
		o(cfg)
	}

	tokens, err := lex(source, lexConfig{experimentalSuffixTags: cfg.experimentalSuffixTags})
	if err != nil {
		return nil, err
	}

	defer recoverError(&err)
	p := &parser{tokens: tokens, cfg: cfg}
	return p.parseDocument(false), nil
}

// parser turns a flat token stream into a Document via recursive
// descent. Errors are raised by panicking with a *SyntaxError (see
// errorf/recoverError) rather than threaded through every return value,
// mirroring the teacher lineage's decoder.errorf/recover pattern.
type parser struct {
	tokens []token
	pos    int
	cfg    *parseConfig
}

func (p *parser) at(i int) token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}

func (p *parser) peek() token  { return p.at(p.pos) }
func (p *parser) peekN(n int) token { return p.at(p.pos + n) }

func (p *parser) next() token {
	t := p.peek()
	if t.typ != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...interface{}) {
	t := p.peek()
	errorf(t.line, t.col, format, args...)
}

// requireAdjacent asserts that the token about to be read is not
// separated from the previous one by whitespace or a comment: type
// annotations must sit directly against the node name or value they
// annotate.
func (p *parser) requireAdjacent() {
	if p.peek().spaceBefore {
		p.errorf("a type annotation must not be separated from its value by whitespace")
	}
}

func (p *parser) expect(typ tokenType) token {
	t := p.peek()
	if t.typ != typ {
		p.errorf("expected %s, got %s", typ, t.typ)
	}
	return p.next()
}

// skipTerminators consumes newlines and semicolons between nodes.
func (p *parser) skipTerminators() {
	for {
		switch p.peek().typ {
		case tokenNewline, tokenSemicolon:
			p.next()
		default:
			return
		}
	}
}

// parseDocument parses a sequence of nodes. If inBlock, it stops at (and
// does not consume) a closing '}'; otherwise it stops at EOF.
func (p *parser) parseDocument(inBlock bool) *Document {
	doc := &Document{}
	p.skipTerminators()
	for {
		t := p.peek().typ
		if t == tokenEOF {
			break
		}
		if inBlock && t == tokenRBrace {
			break
		}
		n := p.parseNodeOrSlashdash()
		if n != nil {
			if p.cfg != nil && p.cfg.nodeMap != nil {
				if ctor, ok := p.cfg.nodeMap[n.Name]; ok {
					built, err := ctor(n)
					if err != nil {
						p.errorf("node constructor for %q: %v", n.Name, err)
					}
					n = built
				}
			}
			if n != nil {
				doc.Nodes = append(doc.Nodes, n)
			}
		}
		p.skipTerminators()
	}
	return doc
}

// parseNodeOrSlashdash parses one node, or, if it is prefixed with '/-',
// parses and discards it, returning nil.
func (p *parser) parseNodeOrSlashdash() *Node {
	elide := false
	if p.peek().typ == tokenSlashdash {
		p.next()
		elide = true
	}
	n := p.parseNode()
	if elide {
		return nil
	}
	return n
}

// parseNode parses a single node: optional type annotation, name,
// argument/property entries, optional children block.
func (p *parser) parseNode() *Node {
	n := &Node{}
	if p.peek().typ == tokenTag {
		n.Annotation = Annotation{Name: p.next().text}
		p.requireAdjacent()
	}
	n.Name = p.parseNodeNameOrValueString()

	for {
		switch p.peek().typ {
		case tokenNewline, tokenSemicolon, tokenEOF, tokenRBrace:
			return n
		case tokenLBrace:
			n.Children = p.parseChildrenBlock()
			return n
		case tokenSlashdash:
			p.next()
			p.parseEntryOrChildrenBlock(n, true)
		default:
			p.parseEntryOrChildrenBlock(n, false)
		}
	}
}

// parseNodeNameOrValueString parses a node name, which lexes as either a
// bare identifier or a (possibly raw, possibly multi-line) string.
func (p *parser) parseNodeNameOrValueString() string {
	t := p.peek()
	switch t.typ {
	case tokenIdent, tokenString:
		p.next()
		return t.text
	default:
		p.errorf("expected node name, got %s", t.typ)
		return ""
	}
}

// parseEntryOrChildrenBlock parses one node-space-separated entry: a
// property ("key=value"), a positional argument, or (at this position
// only) a children block, applying elision if elide is set.
func (p *parser) parseEntryOrChildrenBlock(n *Node, elide bool) {
	if p.peek().typ == tokenLBrace {
		block := p.parseChildrenBlock()
		if !elide {
			n.Children = block
		}
		return
	}

	// Property: bare identifier or string, with no tag, followed
	// directly by '=', directly followed by the value: no whitespace is
	// permitted anywhere inside "key=value".
	if (p.peek().typ == tokenIdent || p.peek().typ == tokenString) &&
		p.peekN(1).typ == tokenEquals && !p.peekN(1).spaceBefore {
		key := p.next().text
		p.next() // '='
		if p.peek().spaceBefore {
			p.errorf("no whitespace permitted between '=' and a property's value")
		}
		ann, val := p.parseAnnotatedValue()
		if elide {
			return
		}
		if p.cfg != nil && p.cfg.typeMap != nil && ann.HasAnnotation() {
			if tr, ok := p.cfg.typeMap[ann.Name]; ok {
				nv, err := tr(ann.Name, val)
				if err != nil {
					p.errorf("type transform %q: %v", ann.Name, err)
				}
				val = nv
			}
		}
		for i := range n.Properties {
			if n.Properties[i].Key == key {
				n.Properties[i] = Property{Key: key, Annotation: ann, Value: val}
				return
			}
		}
		n.Properties = append(n.Properties, Property{Key: key, Annotation: ann, Value: val})
		return
	}

	ann, val := p.parseAnnotatedValue()
	if elide {
		return
	}
	if p.cfg != nil && p.cfg.typeMap != nil && ann.HasAnnotation() {
		if tr, ok := p.cfg.typeMap[ann.Name]; ok {
			nv, err := tr(ann.Name, val)
			if err != nil {
				p.errorf("type transform %q: %v", ann.Name, err)
			}
			val = nv
		}
	}
	n.Arguments = append(n.Arguments, Argument{Annotation: ann, Value: val})
}

// parseAnnotatedValue parses an optional leading type annotation (the
// "(identifier)value" form), a scalar value token, and, only for a
// number with no leading annotation, an optional trailing number-suffix
// tag (the "123#mm" / experimental "123mm" form).
func (p *parser) parseAnnotatedValue() (Annotation, Value) {
	var ann Annotation
	hadLeading := false
	if p.peek().typ == tokenTag {
		ann = Annotation{Name: p.next().text}
		p.requireAdjacent()
		hadLeading = true
	}
	t := p.next()
	var val Value
	switch t.typ {
	case tokenString, tokenIdent:
		val = StringValue(t.text)
	case tokenNumber:
		val = parseNumberToken(t, p)
		if !hadLeading && p.peek().typ == tokenTag && !p.peek().spaceBefore {
			ann = Annotation{Name: p.next().text}
		}
	case tokenKeyword:
		val = parseKeywordToken(t, p)
	default:
		p.errorf("expected a value, got %s", t.typ)
	}
	return ann, val
}

func parseKeywordToken(t token, p *parser) Value {
	switch t.text {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	case "null":
		return NullValue()
	case "inf":
		return FloatValue(math.Inf(1))
	case "-inf":
		return FloatValue(math.Inf(-1))
	case "nan":
		return FloatValue(math.NaN())
	default:
		p.errorf("unknown keyword %q", t.text)
		return Value{}
	}
}

// parseNumberToken converts a lexed number token's raw text into a
// Value, selecting an integer (arbitrary precision) or float
// representation per the presence of a decimal point or exponent.
func parseNumberToken(t token, p *parser) Value {
	text := strings.ReplaceAll(t.text, "_", "")
	neg := false
	switch {
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	case strings.HasPrefix(text, "-"):
		neg = true
		text = text[1:]
	}

	switch {
	case strings.HasPrefix(text, "0x"):
		i, ok := new(big.Int).SetString(text[2:], 16)
		if !ok {
			p.errorf("malformed hexadecimal number %q", t.text)
		}
		return signedInt(i, neg)
	case strings.HasPrefix(text, "0o"):
		i, ok := new(big.Int).SetString(text[2:], 8)
		if !ok {
			p.errorf("malformed octal number %q", t.text)
		}
		return signedInt(i, neg)
	case strings.HasPrefix(text, "0b"):
		i, ok := new(big.Int).SetString(text[2:], 2)
		if !ok {
			p.errorf("malformed binary number %q", t.text)
		}
		return signedInt(i, neg)
	case strings.ContainsAny(text, ".eE"):
		f, err := strconv.ParseFloat(signStr(neg)+text, 64)
		if err != nil {
			p.errorf("malformed number %q", t.text)
		}
		return FloatValue(f)
	default:
		i, ok := new(big.Int).SetString(text, 10)
		if !ok {
			p.errorf("malformed number %q", t.text)
		}
		return signedInt(i, neg)
	}
}

func signStr(neg bool) string {
	if neg {
		return "-"
	}
	return ""
}

func signedInt(i *big.Int, neg bool) Value {
	if neg {
		i = new(big.Int).Neg(i)
	}
	return IntValue(i)
}

// parseChildrenBlock parses a '{' ... '}' children block.
func (p *parser) parseChildrenBlock() *Document {
	p.expect(tokenLBrace)
	doc := p.parseDocument(true)
	p.expect(tokenRBrace)
	return doc
}
