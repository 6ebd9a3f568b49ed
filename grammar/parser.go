package grammar

import (
	"fmt"

	lerr "github.com/nihei9/rpmlicense/error"
	"github.com/nihei9/rpmlicense/expr"
)

// Parse parses a license string according to the grammar of the format. Both grammars share the
// following rules, where AND binds tighter than OR and both operators are right-associative:
//
//	start      → expression EOF
//	expression → and_expr (OR expression)?
//	and_expr   → atom (AND and_expr)?
//	atom       → '(' expression ')' | identifier
//
// Every error Parse returns is an *error.ExprError. A string that cannot even be tokenized, for example
// because the format is unknown, is reported with the lexer error as the cause and no column.
func Parse(src string, f Format) (*expr.Node, error) {
	p, err := newParser(src, f)
	if err != nil {
		return nil, &lerr.ExprError{
			Cause:  err,
			Format: f.String(),
			Source: src,
		}
	}
	return p.parse()
}

type parser struct {
	format    Format
	src       string
	lex       *lexer
	peekedTok *Token
	lastTok   *Token
}

func newParser(src string, f Format) (*parser, error) {
	lex, err := newLexer(src, f)
	if err != nil {
		return nil, err
	}
	return &parser{
		format: f,
		src:    src,
		lex:    lex,
	}, nil
}

func (p *parser) parse() (root *expr.Node, retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			panic(v)
		}
		retErr = err
	}()

	if p.peek().Kind == TokenKindEOF {
		p.raiseSyntaxError(synErrEmptyExpression, p.peek())
	}
	root = p.parseExpression()
	if !p.consume(TokenKindEOF) {
		p.raiseSyntaxError(synErrTrailingInput, p.peek())
	}
	return root, nil
}

func (p *parser) parseExpression() *expr.Node {
	left := p.parseAndExpression()
	if !p.consume(TokenKindOr) {
		return left
	}
	return expr.NewOr(left, p.parseExpression())
}

func (p *parser) parseAndExpression() *expr.Node {
	left := p.parseAtom()
	if !p.consume(TokenKindAnd) {
		return left
	}
	return expr.NewAnd(left, p.parseAndExpression())
}

func (p *parser) parseAtom() *expr.Node {
	switch {
	case p.consume(TokenKindIdentifier):
		return expr.NewIdentifier(p.lastTok.Text)
	case p.consume(TokenKindLParen):
		if p.peek().Kind == TokenKindRParen {
			p.raiseSyntaxError(synErrEmptyGroup, p.peek())
		}
		e := p.parseExpression()
		if !p.consume(TokenKindRParen) {
			p.raiseSyntaxError(synErrUnclosedGroup, p.peek())
		}
		return e
	}
	p.raiseSyntaxError(synErrNoOperand, p.peek())
	return nil
}

func (p *parser) raiseSyntaxError(synErr *SyntaxError, tok *Token) {
	var detail string
	switch tok.Kind {
	case TokenKindEOF:
		detail = "<eof>"
	case TokenKindInvalid:
		detail = fmt.Sprintf("'%v' (<invalid>)", tok.Text)
	default:
		detail = fmt.Sprintf("'%v' (%v)", tok.Text, tok.Kind)
	}
	panic(&lerr.ExprError{
		Cause:  synErr,
		Detail: detail,
		Format: p.format.String(),
		Source: p.src,
		Col:    tok.Col,
	})
}

func (p *parser) peek() *Token {
	if p.peekedTok == nil {
		p.peekedTok = p.read()
	}
	return p.peekedTok
}

func (p *parser) read() *Token {
	tok, err := p.lex.next()
	if err != nil {
		panic(&lerr.ExprError{
			Cause:  err,
			Format: p.format.String(),
			Source: p.src,
		})
	}
	if tok.Kind == TokenKindInvalid {
		p.raiseSyntaxError(synErrInvalidToken, tok)
	}
	return tok
}

func (p *parser) consume(expected TokenKind) bool {
	tok := p.peek()
	if tok.Kind != expected {
		return false
	}
	p.peekedTok = nil
	p.lastTok = tok
	return true
}
