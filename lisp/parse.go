package lisp

import "io"

// Parser consumes tokens from a Lexer and produces Values, keeping exactly
// one token of lookahead (cur).
type Parser struct {
	lex *Lexer
	cur token
}

// NewParser returns a parser reading from r.
func NewParser(r io.Reader) *Parser {
	lex := NewLexer(r)
	return &Parser{lex: lex, cur: lex.Next()}
}

func (p *Parser) advance() token {
	old := p.cur
	p.cur = p.lex.Next()
	return old
}

// ParseValue parses exactly one expression.
func (p *Parser) ParseValue() (Value, error) {
	tok := p.advance()
	switch tok.kind {
	case tokLParen:
		return p.parseList()
	case tokRParen:
		return Value{}, &ParseError{Kind: ErrUnexpectedRParen}
	case tokQuote:
		v, err := p.ParseValue()
		if err != nil {
			if IsEndOfStream(err) {
				return Value{}, &ParseError{Kind: ErrNoQuoteArg}
			}
			return Value{}, err
		}
		return Quote(v), nil
	case tokNumber:
		return NewNumber(tok.num), nil
	case tokIdentifier:
		return NewSymbol(tok.text), nil
	case tokString:
		return NewString(tok.text), nil
	case tokLexError:
		return Value{}, &ParseError{Kind: tok.errKind}
	default: // tokEOF
		return Value{}, &ParseError{Kind: ErrEndOfStream}
	}
}

// parseList reads the contents of a list; the opening '(' has already been
// consumed.
func (p *Parser) parseList() (Value, error) {
	var items []Value
	for {
		if p.cur.kind == tokRParen {
			p.advance()
			return NewListValue(FromSlice(items)), nil
		}
		if p.cur.kind == tokEOF {
			return Value{}, &ParseError{Kind: ErrUnclosedList}
		}
		v, err := p.ParseValue()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}

// Parse repeatedly parses expressions until end of stream, which terminates
// normally rather than being reported as an error.
func (p *Parser) Parse() ([]Value, error) {
	var out []Value
	for {
		v, err := p.ParseValue()
		if err != nil {
			if IsEndOfStream(err) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}
