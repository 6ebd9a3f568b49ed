// Package rpmlicense parses the License field of Fedora RPM spec files.
//
// A license string is a boolean expression over license identifiers written in one of two formats: the
// legacy Fedora format (`GPLv3+ and (ASL 2.0 or MIT)`) or the SPDX format
// (`(GPL-1.0-or-later OR Artistic-1.0-Perl) AND MIT`). A Parser detects the format, parses the string, and
// holds the format and the set of identifiers of the most recent successful parse.
package rpmlicense

import (
	"errors"

	lerr "github.com/nihei9/rpmlicense/error"
	"github.com/nihei9/rpmlicense/expr"
	"github.com/nihei9/rpmlicense/grammar"
	"github.com/nihei9/rpmlicense/spdx"
)

// Format is the textual convention a license string is written in.
type Format = grammar.Format

// Formats a Parser can detect.
const (
	FormatLegacy = grammar.FormatLegacy
	FormatSPDX   = grammar.FormatSPDX
)

var (
	// ErrNotReady is returned when a result is queried before a successful parse or after a reset.
	ErrNotReady = errors.New("no parse result is available")

	// ErrMalformedExpression matches every error Parse returns for a string that doesn't conform to the
	// grammar of its format. Use errors.As with *error.ExprError to get the position.
	ErrMalformedExpression = lerr.ErrMalformedExpression
)

type parseResult struct {
	input    string
	format   Format
	root     *expr.Node
	licenses []string
}

// ParserOption configures a Parser created by NewParser.
type ParserOption func(p *Parser) error

// Oracle replaces the oracle used to classify a string consisting of a single identifier. The default is
// the SPDX license list embedded in the spdx package. A nil oracle recognizes nothing, so such strings are
// always classified as the legacy format.
func Oracle(o grammar.Oracle) ParserOption {
	return func(p *Parser) error {
		p.oracle = o
		return nil
	}
}

// Parser holds the result of the most recent parse. A Parser is not safe for concurrent use; independent
// Parsers can be used concurrently.
type Parser struct {
	oracle grammar.Oracle
	result *parseResult
}

// NewParser returns a Parser that holds no result yet.
func NewParser(opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		oracle: spdx.Default(),
	}
	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Parse discards the current result, then classifies and parses the license string. When the string is
// malformed, Parse returns an error matching ErrMalformedExpression and the parser stays not ready.
func (p *Parser) Parse(s string) error {
	p.Reset()

	f := grammar.Classify(s, p.oracle)
	root, err := grammar.Parse(s, f)
	if err != nil {
		return err
	}

	p.result = &parseResult{
		input:    s,
		format:   f,
		root:     root,
		licenses: expr.Licenses(root),
	}
	return nil
}

// Reset discards the current result. The parser is not ready afterward.
func (p *Parser) Reset() {
	p.result = nil
}

// Ready reports whether the parser holds the result of a successful parse.
func (p *Parser) Ready() bool {
	return p.result != nil
}

// Format returns the format the parsed string was classified as.
func (p *Parser) Format() (Format, error) {
	if p.result == nil {
		return 0, ErrNotReady
	}
	return p.result.format, nil
}

// Licenses returns the distinct identifiers of the parsed string in ascending order. The returned slice is
// a copy.
func (p *Parser) Licenses() ([]string, error) {
	if p.result == nil {
		return nil, ErrNotReady
	}
	licenses := make([]string, len(p.result.licenses))
	copy(licenses, p.result.licenses)
	return licenses, nil
}

// Input returns the parsed string as it was given to Parse.
func (p *Parser) Input() (string, error) {
	if p.result == nil {
		return "", ErrNotReady
	}
	return p.result.input, nil
}

// Expression returns a copy of the expression tree of the parsed string.
func (p *Parser) Expression() (*expr.Node, error) {
	if p.result == nil {
		return nil, ErrNotReady
	}
	return p.result.root.Copy(), nil
}
