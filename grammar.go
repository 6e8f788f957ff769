package gdbmi

import "strconv"

// lineParser drives a recursive-descent reduction of exactly one line's
// worth of tokens, with one token of lookahead.
type lineParser struct {
	s    *lineScanner
	line string
	tok  token
	perr *ParseError
}

func newLineParser(raw []byte) *lineParser {
	p := &lineParser{s: newLineScanner(raw), line: string(raw)}
	p.advance()
	return p
}

func (p *lineParser) advance() {
	if p.perr != nil {
		return
	}
	t, err := p.s.next()
	if err != nil {
		err.Line = p.line
		p.perr = err
		return
	}
	p.tok = t
}

func (p *lineParser) unexpected() *ParseError {
	if p.perr != nil {
		return p.perr
	}
	text := p.tok.text
	if p.tok.kind == tokEOL {
		text = ""
	}
	p.perr = newParseError(ErrUnexpectedToken, p.line, text, Position{Column: p.tok.col})
	return p.perr
}

func (p *lineParser) expectEOL() *ParseError {
	if p.perr != nil {
		return p.perr
	}
	if p.tok.kind == tokEOL {
		return nil
	}
	return p.unexpected()
}

// parseStreamRecord reduces ("~"|"@"|"&") cstring nl. The sigil itself is
// the current token on entry.
func (p *lineParser) parseStreamRecord(kind StreamKind) (*OOBRecord, *ParseError) {
	p.advance() // past sigil
	if p.perr != nil {
		return nil, p.perr
	}
	if p.tok.kind != tokCString {
		return nil, p.unexpected()
	}
	payload := p.tok.text
	p.advance()
	if err := p.expectEOL(); err != nil {
		return nil, err
	}
	return &OOBRecord{Kind: OOBStream, Stream: &StreamRecord{Kind: kind, Payload: payload}}, nil
}

// parseAsyncRecord reduces [token] ("*"|"+"|"=") class ("," result)* nl.
// The sigil is the current token on entry; tok is the already-consumed
// leading token prefix (NoToken if absent).
func (p *lineParser) parseAsyncRecord(kind AsyncKind, tok Token) (*OOBRecord, *ParseError) {
	p.advance() // past sigil
	if p.perr != nil {
		return nil, p.perr
	}
	if p.tok.kind != tokIdent {
		return nil, p.unexpected()
	}
	className := p.tok.text
	p.advance()
	results, err := p.parseResultTail()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOL(); err != nil {
		return nil, err
	}
	return &OOBRecord{
		Kind: OOBAsync,
		Async: &AsyncRecord{
			Token:     tok,
			Kind:      kind,
			Class:     lookupAsyncClass(className),
			ClassName: className,
			Results:   results,
		},
	}, nil
}

// parseResultRecord reduces [token] "^" class ("," result)* nl. The sigil
// is the current token on entry.
func (p *lineParser) parseResultRecord(tok Token) (*ResultRecord, *ParseError) {
	p.advance() // past '^'
	if p.perr != nil {
		return nil, p.perr
	}
	if p.tok.kind != tokIdent {
		return nil, p.unexpected()
	}
	className := p.tok.text
	p.advance()
	results, err := p.parseResultTail()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOL(); err != nil {
		return nil, err
	}
	return &ResultRecord{
		Token:     tok,
		Class:     lookupResultClass(className),
		ClassName: className,
		Results:   results,
	}, nil
}

func (p *lineParser) parseResultTail() ([]*Result, *ParseError) {
	var results []*Result
	for p.perr == nil && p.tok.kind == tokPunct && p.tok.text == "," {
		p.advance()
		r, err := p.parseResult()
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, p.perr
}

// parseResult reduces [variable "="] value.
func (p *lineParser) parseResult() (*Result, *ParseError) {
	if p.perr != nil {
		return nil, p.perr
	}
	if p.tok.kind == tokIdent {
		name := p.tok.text
		p.advance()
		if p.perr != nil {
			return nil, p.perr
		}
		if p.tok.kind == tokPunct && p.tok.text == "=" {
			p.advance()
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			val.Variable = name
			return val, nil
		}
		return nil, p.unexpected()
	}
	return p.parseValue()
}

// parseValue reduces cstring | tuple | list.
func (p *lineParser) parseValue() (*Result, *ParseError) {
	if p.perr != nil {
		return nil, p.perr
	}
	switch {
	case p.tok.kind == tokCString:
		v := newCString("", p.tok.text)
		p.advance()
		return v, nil
	case p.tok.kind == tokPunct && p.tok.text == "{":
		return p.parseTuple()
	case p.tok.kind == tokPunct && p.tok.text == "[":
		return p.parseList()
	default:
		return nil, p.unexpected()
	}
}

// parseTuple reduces "{}" | "{" result ("," result)* "}". Every child of a
// tuple must carry a "variable=" prefix; a bare value is rejected.
func (p *lineParser) parseTuple() (*Result, *ParseError) {
	p.advance() // past '{'
	t := newTuple("")
	if p.perr != nil {
		return nil, p.perr
	}
	if p.tok.kind == tokPunct && p.tok.text == "}" {
		p.advance()
		return t, nil
	}
	for {
		if p.tok.kind != tokIdent {
			return nil, p.unexpected()
		}
		r, err := p.parseResult()
		if err != nil {
			return nil, err
		}
		t.appendChild(r)
		if p.tok.kind == tokPunct && p.tok.text == "," {
			p.advance()
			continue
		}
		break
	}
	if p.perr != nil {
		return nil, p.perr
	}
	if !(p.tok.kind == tokPunct && p.tok.text == "}") {
		return nil, p.unclosed()
	}
	p.advance()
	return t, p.perr
}

// parseList reduces "[]" | "[" value ("," value)* "]" | "[" result ("," result)* "]".
// parseResult already falls back to a bare value when no "variable=" prefix
// is present, so one loop handles both alternatives of the production.
func (p *lineParser) parseList() (*Result, *ParseError) {
	p.advance() // past '['
	l := newList("")
	if p.perr != nil {
		return nil, p.perr
	}
	if p.tok.kind == tokPunct && p.tok.text == "]" {
		p.advance()
		return l, nil
	}
	for {
		r, err := p.parseResult()
		if err != nil {
			return nil, err
		}
		l.appendChild(r)
		if p.tok.kind == tokPunct && p.tok.text == "," {
			p.advance()
			continue
		}
		break
	}
	if p.perr != nil {
		return nil, p.perr
	}
	if !(p.tok.kind == tokPunct && p.tok.text == "]") {
		return nil, p.unclosed()
	}
	p.advance()
	return l, p.perr
}

// unclosed reports the two distinct ways a tuple/list loop can fail to
// land on its closing bracket: running off the end of the line entirely
// (a genuinely mismatched/missing bracket), or finding another token
// where a "," or the closing bracket was expected (two results glued
// together without the separating comma).
func (p *lineParser) unclosed() *ParseError {
	if p.tok.kind == tokEOL {
		return newParseError(ErrMismatchedBracket, p.line, p.tok.text, Position{Column: p.tok.col})
	}
	return newParseError(ErrMissingComma, p.line, p.tok.text, Position{Column: p.tok.col})
}

func parseTokenPrefix(text string) Token {
	v, _ := strconv.ParseInt(text, 10, 64)
	return Token(v)
}

// grammarEngine reduces a stream of complete lines into Output commands,
// one per "(gdb)" prompt seen, per spec §4.C. It holds the accumulation
// state for the output currently being built across lines, and implements
// the error-recovery policy of spec §7: after a syntax error, lines are
// discarded until the next "(gdb)\n" is seen.
type grammarEngine struct {
	current    *Output
	lineNo     int
	recovering bool
}

func newGrammarEngine() *grammarEngine {
	return &grammarEngine{current: &Output{}, lineNo: 1}
}

// feedLine reduces one complete line (trailing "\r" already stripped by
// the caller, trailing "\n" included if the input had one). It returns a
// non-nil Output exactly when that line was a "(gdb)" prompt completing a
// command, and a non-nil *ParseError exactly when the line violated the
// grammar.
func (g *grammarEngine) feedLine(raw []byte) (*Output, *ParseError) {
	if g.recovering {
		if isPromptLine(raw) {
			g.recovering = false
			g.current = &Output{}
		}
		g.lineNo++
		return nil, nil
	}

	p := newLineParser(raw)
	out, perr := g.reduceLine(p)
	if perr != nil {
		perr.Pos.Line = g.lineNo
		g.lineNo++
		g.current = &Output{}
		g.recovering = true
		return nil, perr
	}
	g.lineNo++
	return out, nil
}

func (g *grammarEngine) reduceLine(p *lineParser) (*Output, *ParseError) {
	if p.perr != nil {
		return nil, p.perr
	}
	switch p.tok.kind {
	case tokEOL:
		return nil, nil
	case tokPrompt:
		p.advance()
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		out := g.current
		g.current = &Output{}
		return out, nil
	case tokPunct:
		return g.reduceSigilLine(p, NoToken)
	case tokInt:
		tok := parseTokenPrefix(p.tok.text)
		p.advance()
		if p.perr != nil {
			return nil, p.perr
		}
		if p.tok.kind != tokPunct {
			return nil, p.unexpected()
		}
		return g.reduceSigilLine(p, tok)
	default:
		return nil, p.unexpected()
	}
}

func (g *grammarEngine) reduceSigilLine(p *lineParser, tok Token) (*Output, *ParseError) {
	switch p.tok.text {
	case "~", "@", "&":
		kind := map[string]StreamKind{"~": StreamConsole, "@": StreamTarget, "&": StreamLog}[p.tok.text]
		rec, err := p.parseStreamRecord(kind)
		if err != nil {
			return nil, err
		}
		g.current.OOB = append(g.current.OOB, rec)
		return nil, nil
	case "*", "+", "=":
		kind := map[string]AsyncKind{"*": AsyncExec, "+": AsyncStatus, "=": AsyncNotify}[p.tok.text]
		rec, err := p.parseAsyncRecord(kind, tok)
		if err != nil {
			return nil, err
		}
		g.current.OOB = append(g.current.OOB, rec)
		return nil, nil
	case "^":
		rec, err := p.parseResultRecord(tok)
		if err != nil {
			return nil, err
		}
		g.current.Result = rec
		return nil, nil
	default:
		return nil, newParseError(ErrBadSigil, p.line, p.tok.text, Position{Column: p.tok.col})
	}
}

// isPromptLine reports whether raw is exactly "(gdb)" followed by
// optional insignificant space and a newline (or end of input).
func isPromptLine(raw []byte) bool {
	p := newLineParser(raw)
	if p.perr != nil || p.tok.kind != tokPrompt {
		return false
	}
	p.advance()
	return p.perr == nil && p.tok.kind == tokEOL
}
