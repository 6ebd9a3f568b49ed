package grammar

import (
	"strings"

	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type TokenKind string

const (
	TokenKindIdentifier = TokenKind("identifier")
	TokenKindAnd        = TokenKind("and")
	TokenKindOr         = TokenKind("or")
	TokenKindLParen     = TokenKind("(")
	TokenKindRParen     = TokenKind(")")
	TokenKindEOF        = TokenKind("eof")
	TokenKindInvalid    = TokenKind("invalid")
)

type Token struct {
	Kind TokenKind
	Text string

	// Col is a 1-based column counted in code points.
	Col int
}

func newSymbolToken(kind TokenKind, text string, col int) *Token {
	return &Token{
		Kind: kind,
		Text: text,
		Col:  col,
	}
}

func newIDToken(text string, col int) *Token {
	return &Token{
		Kind: TokenKindIdentifier,
		Text: text,
		Col:  col,
	}
}

func newEOFToken(col int) *Token {
	return &Token{
		Kind: TokenKindEOF,
		Col:  col,
	}
}

func newInvalidToken(text string, col int) *Token {
	return &Token{
		Kind: TokenKindInvalid,
		Text: text,
		Col:  col,
	}
}

// Tokenize splits a license string into the tokens the parser of the format sees. The last token is
// always an EOF token. Invalid tokens are included rather than reported as errors.
func Tokenize(src string, f Format) ([]*Token, error) {
	l, err := newLexer(src, f)
	if err != nil {
		return nil, err
	}
	var toks []*Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenKindEOF {
			return toks, nil
		}
	}
}

type lexer struct {
	s   *mlspec.CompiledLexSpec
	d   *mldriver.Lexer
	buf []*mldriver.Token
}

func newLexer(src string, f Format) (*lexer, error) {
	s, err := compiledLexSpec(f)
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

func (l *lexer) next() (*Token, error) {
	var tok *mldriver.Token
	for {
		var err error
		tok, err = l.read()
		if err != nil {
			return nil, err
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), tok.Col+1), nil
		}
		if tok.EOF {
			return newEOFToken(tok.Col + 1), nil
		}
		if l.kindName(tok) == lexKindWhiteSpace {
			continue
		}

		break
	}

	switch l.kindName(tok) {
	case lexKindKWAnd:
		return newSymbolToken(TokenKindAnd, string(tok.Lexeme), tok.Col+1), nil
	case lexKindKWOr:
		return newSymbolToken(TokenKindOr, string(tok.Lexeme), tok.Col+1), nil
	case lexKindLParen:
		return newSymbolToken(TokenKindLParen, string(tok.Lexeme), tok.Col+1), nil
	case lexKindRParen:
		return newSymbolToken(TokenKindRParen, string(tok.Lexeme), tok.Col+1), nil
	case lexKindIdentifier:
		return newIDToken(string(tok.Lexeme), tok.Col+1), nil
	case lexKindWord:
		return l.lexWords(tok)
	default:
		return newInvalidToken(string(tok.Lexeme), tok.Col+1), nil
	}
}

// lexWords combines a word and the following words separated only by white spaces into one
// identifier. White spaces between the words are kept as they are.
func (l *lexer) lexWords(first *mldriver.Token) (*Token, error) {
	var b strings.Builder
	b.Write(first.Lexeme)
	for {
		ws, err := l.read()
		if err != nil {
			return nil, err
		}
		if ws.EOF || ws.Invalid || l.kindName(ws) != lexKindWhiteSpace {
			l.unread(ws)
			break
		}
		word, err := l.read()
		if err != nil {
			return nil, err
		}
		if word.EOF || word.Invalid || l.kindName(word) != lexKindWord {
			l.unread(word)
			break
		}
		b.Write(ws.Lexeme)
		b.Write(word.Lexeme)
	}
	return newIDToken(b.String(), first.Col+1), nil
}

func (l *lexer) read() (*mldriver.Token, error) {
	if len(l.buf) > 0 {
		tok := l.buf[len(l.buf)-1]
		l.buf = l.buf[:len(l.buf)-1]
		return tok, nil
	}
	return l.d.Next()
}

func (l *lexer) unread(tok *mldriver.Token) {
	l.buf = append(l.buf, tok)
}

func (l *lexer) kindName(tok *mldriver.Token) mlspec.LexKindName {
	if int(tok.KindID) >= len(l.s.KindNames) {
		return mlspec.LexKindNameNil
	}
	return l.s.KindNames[tok.KindID]
}
