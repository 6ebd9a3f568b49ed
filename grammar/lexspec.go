package grammar

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"
)

const (
	lexKindKWAnd      = mlspec.LexKindName("kw_and")
	lexKindKWOr       = mlspec.LexKindName("kw_or")
	lexKindLParen     = mlspec.LexKindName("l_paren")
	lexKindRParen     = mlspec.LexKindName("r_paren")
	lexKindWhiteSpace = mlspec.LexKindName("white_space")
	lexKindIdentifier = mlspec.LexKindName("identifier")

	// lexKindWord is a fragment of a legacy identifier. Consecutive words separated by white spaces
	// form one identifier.
	lexKindWord = mlspec.LexKindName("word")
)

// The keywords precede the identifier patterns because the lexer adopts the entry defined first when
// several patterns match a lexeme of the same length. A longer match always wins, so `android` and
// `ORACLE` are identifiers, not keywords.
var (
	legacyLexSpec = &mlspec.LexSpec{
		Name: "legacy",
		Entries: []*mlspec.LexEntry{
			newLexEntry(lexKindKWAnd, `and`),
			newLexEntry(lexKindKWOr, `or`),
			newLexEntry(lexKindLParen, `\(`),
			newLexEntry(lexKindRParen, `\)`),
			newLexEntry(lexKindWhiteSpace, `[\u{0009}\u{0020}]+`),
			newLexEntry(lexKindWord, `[0-9A-Za-z_.+]+`),
		},
	}

	spdxLexSpec = &mlspec.LexSpec{
		Name: "spdx",
		Entries: []*mlspec.LexEntry{
			newLexEntry(lexKindKWAnd, `AND`),
			newLexEntry(lexKindKWOr, `OR`),
			newLexEntry(lexKindLParen, `\(`),
			newLexEntry(lexKindRParen, `\)`),
			newLexEntry(lexKindWhiteSpace, `[\u{0009}\u{0020}]+`),
			newLexEntry(lexKindIdentifier, `[0-9A-Za-z_.\-]+`),
		},
	}
)

func newLexEntry(kind mlspec.LexKindName, pattern string) *mlspec.LexEntry {
	return &mlspec.LexEntry{
		Kind:    kind,
		Pattern: mlspec.LexPattern(pattern),
	}
}

var (
	compileLexSpecsOnce sync.Once
	compiledLexSpecs    map[Format]*mlspec.CompiledLexSpec
	compileLexSpecsErr  error
)

// compiledLexSpec returns the compiled lexical specification of a format. The specifications are
// compiled once per process and shared by all parsers.
func compiledLexSpec(f Format) (*mlspec.CompiledLexSpec, error) {
	compileLexSpecsOnce.Do(func() {
		specs := map[Format]*mlspec.LexSpec{
			FormatLegacy: legacyLexSpec,
			FormatSPDX:   spdxLexSpec,
		}
		compiled := make(map[Format]*mlspec.CompiledLexSpec, len(specs))
		for f, s := range specs {
			cs, err := compileLexSpec(s)
			if err != nil {
				compileLexSpecsErr = fmt.Errorf("cannot compile the lexical specification of the %v format: %w", f, err)
				return
			}
			compiled[f] = cs
		}
		compiledLexSpecs = compiled
	})
	if compileLexSpecsErr != nil {
		return nil, compileLexSpecsErr
	}
	cs, ok := compiledLexSpecs[f]
	if !ok {
		return nil, fmt.Errorf("unknown format: %v", f)
	}
	return cs, nil
}

func compileLexSpec(s *mlspec.LexSpec) (*mlspec.CompiledLexSpec, error) {
	cs, err, cErrs := mlcompiler.Compile(s, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr)
			}
			return nil, fmt.Errorf("%v", b.String())
		}
		return nil, err
	}
	return cs, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}
