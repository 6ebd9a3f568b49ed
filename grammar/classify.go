package grammar

import "strings"

// Oracle tells whether a token is a recognized license identifier.
type Oracle interface {
	IsRecognized(token string) bool
}

type OracleFunc func(token string) bool

func (f OracleFunc) IsRecognized(token string) bool {
	return f(token)
}

// Classify decides the format of a license string. Uppercase keywords mean the SPDX format and
// lowercase keywords mean the legacy format; substrings are enough, so `ORACLE` counts as a keyword
// here even though the lexer treats it as an identifier. A string without keywords is an SPDX
// string only when the oracle recognizes the whole string. A nil oracle recognizes nothing.
func Classify(src string, o Oracle) Format {
	switch {
	case strings.Contains(src, "AND") || strings.Contains(src, "OR"):
		return FormatSPDX
	case strings.Contains(src, "and") || strings.Contains(src, "or"):
		return FormatLegacy
	}
	if o != nil && o.IsRecognized(src) {
		return FormatSPDX
	}
	return FormatLegacy
}
