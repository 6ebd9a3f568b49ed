package grammar

import (
	"errors"
	"fmt"
	"testing"

	lerr "github.com/nihei9/rpmlicense/error"
	"github.com/nihei9/rpmlicense/expr"
)

func TestParse(t *testing.T) {
	id := expr.NewIdentifier
	and := expr.NewAnd
	or := expr.NewOr

	tests := []struct {
		caption string
		src     string
		format  Format
		root    *expr.Node
		synErr  *SyntaxError
	}{
		{
			caption: "a single SPDX identifier",
			src:     "MIT",
			format:  FormatSPDX,
			root:    id("MIT"),
		},
		{
			caption: "an SPDX conjunction",
			src:     "MIT AND GPL",
			format:  FormatSPDX,
			root:    and(id("MIT"), id("GPL")),
		},
		{
			caption: "SPDX identifiers can contain hyphens and dots",
			src:     "(GPL-1.0-or-later OR Artistic-1.0-Perl) AND MIT",
			format:  FormatSPDX,
			root:    and(or(id("GPL-1.0-or-later"), id("Artistic-1.0-Perl")), id("MIT")),
		},
		{
			caption: "a chain of conjunctions leans to the right",
			src:     "A AND B AND C",
			format:  FormatSPDX,
			root:    and(id("A"), and(id("B"), id("C"))),
		},
		{
			caption: "a chain of disjunctions leans to the right",
			src:     "A OR B OR C",
			format:  FormatSPDX,
			root:    or(id("A"), or(id("B"), id("C"))),
		},
		{
			caption: "AND binds tighter than OR (1)",
			src:     "A OR B AND C",
			format:  FormatSPDX,
			root:    or(id("A"), and(id("B"), id("C"))),
		},
		{
			caption: "AND binds tighter than OR (2)",
			src:     "A AND B OR C",
			format:  FormatSPDX,
			root:    or(and(id("A"), id("B")), id("C")),
		},
		{
			caption: "parentheses override the precedence",
			src:     "A AND (B OR C)",
			format:  FormatSPDX,
			root:    and(id("A"), or(id("B"), id("C"))),
		},
		{
			caption: "redundant parentheses are allowed",
			src:     "((MIT))",
			format:  FormatSPDX,
			root:    id("MIT"),
		},
		{
			caption: "SPDX keywords are matched only as whole words",
			src:     "ORACLE AND ANDROID",
			format:  FormatSPDX,
			root:    and(id("ORACLE"), id("ANDROID")),
		},
		{
			caption: "white spaces around SPDX tokens are ignored",
			src:     "  MIT\tAND  ( GPL )  ",
			format:  FormatSPDX,
			root:    and(id("MIT"), id("GPL")),
		},
		{
			caption: "lowercase keywords are identifiers in the SPDX format",
			src:     "MIT and GPL",
			format:  FormatSPDX,
			synErr:  synErrTrailingInput,
		},
		{
			caption: "an SPDX identifier cannot contain white spaces",
			src:     "ASL 2.0",
			format:  FormatSPDX,
			synErr:  synErrTrailingInput,
		},
		{
			caption: "an SPDX identifier cannot contain a plus sign",
			src:     "GPL-2.0+",
			format:  FormatSPDX,
			synErr:  synErrInvalidToken,
		},
		{
			caption: "an operator needs a right operand",
			src:     "MIT AND",
			format:  FormatSPDX,
			synErr:  synErrNoOperand,
		},
		{
			caption: "an operator needs a left operand",
			src:     "OR MIT",
			format:  FormatSPDX,
			synErr:  synErrNoOperand,
		},
		{
			caption: "operators cannot be placed consecutively",
			src:     "MIT AND OR GPL",
			format:  FormatSPDX,
			synErr:  synErrNoOperand,
		},
		{
			caption: "a parenthesized group must be closed",
			src:     "(MIT OR GPL",
			format:  FormatSPDX,
			synErr:  synErrUnclosedGroup,
		},
		{
			caption: "a closing parenthesis needs an opening one",
			src:     "MIT)",
			format:  FormatSPDX,
			synErr:  synErrTrailingInput,
		},
		{
			caption: "a parenthesized group cannot be empty",
			src:     "MIT AND ()",
			format:  FormatSPDX,
			synErr:  synErrEmptyGroup,
		},
		{
			caption: "an empty string is not an expression",
			src:     "",
			format:  FormatSPDX,
			synErr:  synErrEmptyExpression,
		},
		{
			caption: "a string consisting only of white spaces is not an expression",
			src:     " \t ",
			format:  FormatLegacy,
			synErr:  synErrEmptyExpression,
		},
		{
			caption: "a legacy disjunction whose identifier contains a space",
			src:     "ASL 2.0 or MIT",
			format:  FormatLegacy,
			root:    or(id("ASL 2.0"), id("MIT")),
		},
		{
			caption: "a legacy expression with a parenthesized group",
			src:     "GPLv3+ and (ASL 2.0 or MIT)",
			format:  FormatLegacy,
			root:    and(id("GPLv3+"), or(id("ASL 2.0"), id("MIT"))),
		},
		{
			caption: "a legacy identifier consisting of several words",
			src:     "Public Domain",
			format:  FormatLegacy,
			root:    id("Public Domain"),
		},
		{
			caption: "white spaces inside a legacy identifier are kept as they are",
			src:     " ASL  2.0\tor MIT ",
			format:  FormatLegacy,
			root:    or(id("ASL  2.0"), id("MIT")),
		},
		{
			caption: "legacy keywords are matched only as whole words",
			src:     "android and orca",
			format:  FormatLegacy,
			root:    and(id("android"), id("orca")),
		},
		{
			caption: "a legacy keyword can be adjacent to parentheses",
			src:     "MIT and(BSD or ISC)",
			format:  FormatLegacy,
			root:    and(id("MIT"), or(id("BSD"), id("ISC"))),
		},
		{
			caption: "uppercase keywords are parts of identifiers in the legacy format",
			src:     "MIT AND BSD",
			format:  FormatLegacy,
			root:    id("MIT AND BSD"),
		},
		{
			caption: "a legacy identifier cannot contain a hyphen",
			src:     "GPL-2.0 or MIT",
			format:  FormatLegacy,
			synErr:  synErrInvalidToken,
		},
		{
			caption: "a legacy operator needs a right operand",
			src:     "MIT or",
			format:  FormatLegacy,
			synErr:  synErrNoOperand,
		},
		{
			caption: "a legacy parenthesized group must be closed",
			src:     "MIT and (BSD or ISC",
			format:  FormatLegacy,
			synErr:  synErrUnclosedGroup,
		},
		{
			caption: "newlines are not white spaces",
			src:     "MIT\nand BSD",
			format:  FormatLegacy,
			synErr:  synErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			root, err := Parse(tt.src, tt.format)
			if tt.synErr != nil {
				if err == nil {
					t.Fatalf("an error must occur; want: %v, got tree: %v", tt.synErr, root)
				}
				if !errors.Is(err, lerr.ErrMalformedExpression) {
					t.Fatalf("the error must be a malformed expression error: %v", err)
				}
				var exprErr *lerr.ExprError
				if !errors.As(err, &exprErr) {
					t.Fatalf("unexpected error type; want: %T, got: %T", exprErr, err)
				}
				if exprErr.Cause != tt.synErr {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, exprErr.Cause)
				}
				if exprErr.Format != tt.format.String() {
					t.Fatalf("unexpected format; want: %v, got: %v", tt.format, exprErr.Format)
				}
				if exprErr.Source != tt.src {
					t.Fatalf("unexpected source; want: %q, got: %q", tt.src, exprErr.Source)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !root.Equal(tt.root) {
				t.Fatalf("unexpected tree; want: %v, got: %v", tt.root, root)
			}
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	tests := []struct {
		src    string
		format Format
		col    int
	}{
		{
			src:    "MIT)",
			format: FormatSPDX,
			col:    4,
		},
		{
			src:    "MIT AND OR GPL",
			format: FormatSPDX,
			col:    9,
		},
		{
			src:    "ASL 2.0 or -MIT",
			format: FormatLegacy,
			col:    12,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			_, err := Parse(tt.src, tt.format)
			var exprErr *lerr.ExprError
			if !errors.As(err, &exprErr) {
				t.Fatalf("unexpected error; want: %T, got: %v", exprErr, err)
			}
			if exprErr.Col != tt.col {
				t.Fatalf("unexpected column; want: %v, got: %v", tt.col, exprErr.Col)
			}
		})
	}
}

func TestParse_LexerFailure(t *testing.T) {
	_, err := Parse("MIT", Format(0))
	if !errors.Is(err, lerr.ErrMalformedExpression) {
		t.Fatalf("unexpected error; want: %v, got: %v", lerr.ErrMalformedExpression, err)
	}
	var exprErr *lerr.ExprError
	if !errors.As(err, &exprErr) {
		t.Fatalf("unexpected error; want: %T, got: %v", exprErr, err)
	}
	if exprErr.Col != 0 || exprErr.Source != "MIT" {
		t.Fatalf("unexpected error: %+v", exprErr)
	}
}
