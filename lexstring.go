package kdl

import "strings"

// lexQuotedString lexes a quoted string, either the single-line form
// "..." or the multi-line form """...""", with escape processing common
// to both. l.peek() == '"' on entry.
func lexQuotedString(l *lexer) stateFn {
	l.next() // consume opening '"'

	multiline := false
	if l.peek() == '"' && l.peekAt(1) == '"' {
		l.next()
		l.next()
		multiline = true
	}

	if multiline {
		if err := requireLineEnd(l); err != nil {
			return err
		}
		raw, err := l.scanUntilTripleQuote()
		if err != nil {
			return err
		}
		value, verr := dedentMultiline(raw)
		if verr != "" {
			return l.errorf("%s", verr)
		}
		decoded, derr := unescapeKDL(value)
		if derr != "" {
			return l.errorf("%s", derr)
		}
		l.emitText(tokenString, decoded)
		return lexAfterValue
	}

	var buf strings.Builder
	for {
		r := l.next()
		switch {
		case r == eof:
			return l.errorf("unterminated string")
		case r == '"':
			decoded, derr := unescapeKDL(buf.String())
			if derr != "" {
				return l.errorf("%s", derr)
			}
			l.emitText(tokenString, decoded)
			return lexAfterValue
		case isNewline(r):
			return l.errorf("newline in single-line string")
		default:
			if r == '\\' {
				buf.WriteByte('\\')
				n := l.next()
				if n == eof {
					return l.errorf("unterminated escape sequence")
				}
				buf.WriteRune(n)
				if isNewline(n) || isUnicodeSpace(n) {
					// line continuation: keep all following whitespace,
					// blank lines included, for unescapeKDL to discard.
					for p := l.peek(); isNewline(p) || isUnicodeSpace(p); p = l.peek() {
						buf.WriteRune(l.next())
					}
				}
				if n == 'u' {
					if l.next() != '{' {
						return l.errorf(`expected '{' after \u`)
					}
					buf.WriteByte('{')
					for l.peek() != '}' {
						r2 := l.next()
						if r2 == eof || !isHexDigit(r2) {
							return l.errorf(`invalid \u{...} escape`)
						}
						buf.WriteRune(r2)
					}
					l.next()
					buf.WriteByte('}')
				}
				continue
			}
			buf.WriteRune(r)
		}
	}
}

// requireLineEnd consumes optional inline whitespace followed by a
// mandatory newline, as required immediately after an opening """.
func requireLineEnd(l *lexer) stateFn {
	for isUnicodeSpace(l.peek()) {
		l.next()
	}
	r := l.next()
	if r == '\r' && l.peek() == '\n' {
		l.next()
		return nil
	}
	if !isNewline(r) {
		return l.errorf(`expected newline after opening """`)
	}
	return nil
}

// scanUntilTripleQuote consumes raw (not-yet-unescaped) text up to, but
// not including, an unescaped run of three quote characters, and returns
// that text split into physical lines by raw newline.
func (l *lexer) scanUntilTripleQuote() ([]string, stateFn) {
	var cur strings.Builder
	var lines []string
	for {
		r := l.next()
		switch {
		case r == eof:
			return nil, l.errorf("unterminated multi-line string")
		case r == '\\':
			cur.WriteByte('\\')
			n := l.next()
			if n == eof {
				return nil, l.errorf("unterminated escape sequence")
			}
			cur.WriteRune(n)
		case r == '"' && l.peek() == '"' && l.peekAt(1) == '"':
			l.next()
			l.next()
			lines = append(lines, cur.String())
			return lines, nil
		case r == '\r':
			if l.peek() == '\n' {
				l.next()
			}
			lines = append(lines, cur.String())
			cur.Reset()
		case isNewline(r):
			lines = append(lines, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
}

// dedentMultiline applies KDL's multi-line string indent-stripping rule:
// the final line (which must contain only whitespace, and is discarded
// from the result) determines the required indentation; every other line
// must start with that exact prefix, and the prefix is removed.
func dedentMultiline(lines []string) (string, string) {
	if len(lines) == 0 {
		return "", ""
	}
	closer := lines[len(lines)-1]
	for _, r := range closer {
		if !isUnicodeSpace(r) {
			return "", "the line before a closing \"\"\" must contain only whitespace"
		}
	}
	content := lines[:len(lines)-1]
	out := make([]string, len(content))
	for i, line := range content {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			continue
		}
		if !strings.HasPrefix(line, closer) {
			return "", "inconsistent indentation in multi-line string"
		}
		out[i] = line[len(closer):]
	}
	return strings.Join(out, "\n"), ""
}

// lexRawStringBody lexes the body of a raw string, #"..."# (or the
// multi-line #"""..."""# form), given hashCount '#' characters must match
// on open and close. The opening quote (and all '#'s) has already been
// consumed.
func lexRawStringBody(l *lexer, hashCount int) stateFn {
	multiline := false
	if l.peek() == '"' && l.peekAt(1) == '"' {
		l.next()
		l.next()
		multiline = true
	}

	if multiline {
		if err := requireLineEnd(l); err != nil {
			return err
		}
		var cur strings.Builder
		var lines []string
		for {
			r := l.next()
			if r == eof {
				return l.errorf("unterminated multi-line raw string")
			}
			if r == '"' && l.peek() == '"' && l.peekAt(1) == '"' && rawHashesAhead(l, hashCount, 2) {
				lines = append(lines, cur.String())
				value, verr := dedentMultiline(lines)
				if verr != "" {
					return l.errorf("%s", verr)
				}
				l.emitText(tokenString, value)
				return lexAfterValue
			}
			if r == '\r' {
				if l.peek() == '\n' {
					l.next()
				}
				lines = append(lines, cur.String())
				cur.Reset()
				continue
			}
			if isNewline(r) {
				lines = append(lines, cur.String())
				cur.Reset()
				continue
			}
			cur.WriteRune(r)
		}
	}

	var buf strings.Builder
	for {
		r := l.next()
		switch {
		case r == eof:
			return l.errorf("unterminated raw string")
		case isNewline(r):
			return l.errorf("newline in single-line raw string")
		case r == '"' && rawHashesAhead(l, hashCount, 0):
			l.emitText(tokenString, buf.String())
			return lexAfterValue
		default:
			buf.WriteRune(r)
		}
	}
}

// rawHashesAhead reports whether, after skipping skipQuotes further '"'
// characters, exactly hashCount '#' characters follow (no more, no
// fewer), consuming all of it if so. The caller has already consumed the
// first '"' of the candidate closer.
func rawHashesAhead(l *lexer, hashCount, skipQuotes int) bool {
	save := l.pos
	for i := 0; i < skipQuotes; i++ {
		if l.next() != '"' {
			l.pos = save
			return false
		}
	}
	for i := 0; i < hashCount; i++ {
		if l.next() != '#' {
			l.pos = save
			return false
		}
	}
	if l.peek() == '#' {
		l.pos = save
		return false
	}
	return true
}

// unescapeKDL decodes the standard KDL escape sequences within a
// single-line (or already-dedented multi-line) quoted string body. A
// backslash followed directly by a line terminator, optionally preceded
// and followed by inline whitespace, is a line continuation and
// contributes nothing to the result.
func unescapeKDL(s string) (string, string) {
	var buf strings.Builder
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] != '\\' {
			buf.WriteRune(r[i])
			continue
		}
		i++
		if i >= len(r) {
			return "", `dangling '\' at end of string`
		}
		switch r[i] {
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case '\\':
			buf.WriteByte('\\')
		case '"':
			buf.WriteByte('"')
		case 'b':
			buf.WriteByte('\b')
		case 'f':
			buf.WriteByte('\f')
		case 's':
			buf.WriteRune(' ')
		case 'u':
			if i+1 >= len(r) || r[i+1] != '{' {
				return "", `expected '{' after \u`
			}
			j := i + 2
			start := j
			for j < len(r) && r[j] != '}' {
				j++
			}
			if j >= len(r) || j == start {
				return "", `invalid \u{...} escape`
			}
			cp, ok := parseHexRune(string(r[start:j]))
			if !ok {
				return "", `invalid \u{...} escape`
			}
			buf.WriteRune(cp)
			i = j
		default:
			if isNewline(r[i]) || isUnicodeSpace(r[i]) {
				// backslash-whitespace line continuation: skip forward
				// across all following whitespace, including blank lines,
				// as long as at least one newline appears.
				j := i
				sawNewline := false
				for j < len(r) && (isUnicodeSpace(r[j]) || isNewline(r[j])) {
					if isNewline(r[j]) {
						sawNewline = true
					}
					j++
				}
				if !sawNewline {
					return "", `invalid escape sequence`
				}
				i = j - 1
				continue
			}
			return "", "invalid escape sequence '\\" + string(r[i]) + "'"
		}
	}
	return buf.String(), ""
}

func parseHexRune(s string) (rune, bool) {
	if len(s) == 0 || len(s) > 6 {
		return 0, false
	}
	var v rune
	for _, c := range s {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= c - '0'
		case c >= 'a' && c <= 'f':
			v |= c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v |= c - 'A' + 10
		default:
			return 0, false
		}
	}
	return v, true
}
