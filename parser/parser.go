// Package parser implements the statement parser for rule files.
//
// Rule files hold one statement per line:
//
//	NAME :- "text"            constant definition
//	NAME :: body              rule definition
//	option NAME on|off        option setting
//	stopword "w", -"file" ... stopword list
//	c <= text                 normalisation (c may be a class like [éè])
//
// Blank lines and comments are no-ops. Statements are returned one at a
// time, as soon as they are complete, so that callers can evaluate them in
// source order.
//
package parser

import (
	"github.com/db47h/nlex/diag"
	"github.com/db47h/nlex/lexer"
	"github.com/db47h/nlex/token"
)

// A Parser reads statements from a lexer.
//
// Lexical errors are reported as diagnostics of kind diag.IllegalCharacter
// and the offending token is skipped. A token that does not fit the grammar
// is reported as a diag.SyntaxError; the rest of the line is then discarded.
//
type Parser struct {
	l *lexer.Lexer
	r diag.Reporter
	n *token.Token
}

// New returns a new Parser reading tokens from l and reporting diagnostics
// to r. If r is nil, diagnostics are discarded.
//
func New(l *lexer.Lexer, r diag.Reporter) *Parser {
	if r == nil {
		r = diag.Discard
	}
	return &Parser{l: l, r: r}
}

// Next returns the next statement. It returns false once the end of input
// has been reached.
//
func (p *Parser) Next() (Statement, bool) {
	for {
		var s Statement
		t := p.next()
		switch t.Kind {
		case token.EOF:
			p.putBack(t)
			return nil, false
		case token.EOL:
			continue
		case token.Name:
			s = p.definition(t)
		case token.Option:
			s = p.option()
		case token.Stopword:
			s = p.stopwords(t)
		case token.OpNorm:
			n := t.Value.(token.Norm)
			s = &Normalise{Chars: n.Chars, Text: n.Text, At: t.At(1)}
		default:
			p.unexpected(t)
			continue
		}
		if s != nil && p.expectEOL() {
			return s, true
		}
	}
}

func (p *Parser) definition(name token.Token) Statement {
	id := name.Value.(string)
	at := name.At(len(id))
	switch t := p.next(); t.Kind {
	case token.OpConst:
		if s, ok := p.expect(token.String); ok {
			if lit := s.Value.(token.StringLiteral); lit.Kind == token.Literal {
				return &DefineConst{Name: id, Text: lit.Text, At: at}
			}
			p.unexpected(s)
		}
	case token.OpRule:
		return &DefineRule{Name: id, Body: t.Value.(string), At: at}
	default:
		p.unexpected(t)
	}
	return nil
}

func (p *Parser) option() Statement {
	name, ok := p.expect(token.Name)
	if !ok {
		return nil
	}
	val, ok := p.expect(token.Bool)
	if !ok {
		return nil
	}
	id := name.Value.(string)
	return &SetOption{Name: id, Value: val.Value.(bool), At: name.At(len(id))}
}

func (p *Parser) stopwords(kw token.Token) Statement {
	s := &Stopwords{At: kw.At(len("stopword"))}
	comma := false // a comma may follow
	for {
		t := p.next()
		switch t.Kind {
		case token.String:
			s.Entries = append(s.Entries, Entry{StringLiteral: t.Value.(token.StringLiteral), At: t.Span()})
			comma = true
		case token.Comma:
			if !comma {
				p.unexpected(t)
				return nil
			}
			comma = false
		case token.EOL, token.EOF:
			p.putBack(t)
			return s
		default:
			p.unexpected(t)
			return nil
		}
	}
}

// expectEOL checks that the current statement ends here. The end of line
// token is never consumed.
//
func (p *Parser) expectEOL() bool {
	t := p.next()
	switch t.Kind {
	case token.EOL, token.EOF:
		p.putBack(t)
		return true
	}
	p.unexpected(t)
	return false
}

func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	t := p.next()
	if t.Kind != k {
		p.unexpected(t)
		return t, false
	}
	return t, true
}

// unexpected reports t as a syntax error and skips to the end of the line.
//
func (p *Parser) unexpected(t token.Token) {
	p.r.Report(diag.New(diag.SyntaxError, t.At(1), t.Describe()))
	if t.Kind == token.EOL || t.Kind == token.EOF {
		p.putBack(t)
		return
	}
	p.skipToEOL()
}

func (p *Parser) skipToEOL() {
	for {
		t := p.next()
		if t.Kind == token.EOL || t.Kind == token.EOF {
			p.putBack(t)
			return
		}
	}
}

// next returns the next token that is not a lexical error. Lexical errors
// are reported on the fly.
//
func (p *Parser) next() token.Token {
	if t := p.n; t != nil {
		p.n = nil
		return *t
	}
	for {
		t := p.l.Next()
		if t.Kind != token.Error {
			return t
		}
		p.r.Report(diag.New(diag.IllegalCharacter, t.At(1), t.Value))
	}
}

func (p *Parser) putBack(t token.Token) {
	if p.n != nil {
		panic("putBack() called twice.")
	}
	p.n = &t
}
