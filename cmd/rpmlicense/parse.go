package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/nihei9/rpmlicense"
	"github.com/nihei9/rpmlicense/expr"
	"github.com/nihei9/rpmlicense/grammar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var parseFlags = struct {
	source *string
	output *string
	tree   *bool
	tokens *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse [<license string>...]",
		Short: "Parse license strings",
		Long: `parse classifies each license string as the legacy format or the SPDX format, parses it,
and prints the licenses it refers to. When no license string is given, each line of the source
is parsed.`,
		Example: `  rpmlicense parse 'GPLv3+ and (ASL 2.0 or MIT)'
  rpmspec -q --qf '%{LICENSE}\n' foo.spec | rpmlicense parse --output json`,
		RunE: runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.output = cmd.Flags().StringP("output", "o", outputText, "output format: text, json, or yaml")
	parseFlags.tree = cmd.Flags().Bool("tree", false, "print the expression tree (text output only)")
	parseFlags.tokens = cmd.Flags().Bool("tokens", false, "print the tokens the parser reads (text output only)")
	rootCmd.AddCommand(cmd)
}

type parseReport struct {
	Input      string          `json:"input" yaml:"input"`
	Format     *grammar.Format `json:"format,omitempty" yaml:"format,omitempty"`
	Licenses   []string        `json:"licenses,omitempty" yaml:"licenses,omitempty"`
	Expression string          `json:"expression,omitempty" yaml:"expression,omitempty"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`

	root   *expr.Node
	tokens []*grammar.Token
}

func runParse(cmd *cobra.Command, args []string) error {
	switch *parseFlags.output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format: %v", *parseFlags.output)
	}

	logger, err := newLogger(*rootFlags.verbose)
	if err != nil {
		return fmt.Errorf("Cannot create a logger: %w", err)
	}
	defer logger.Sync()

	list, err := readLicenseList(*rootFlags.licenseList)
	if err != nil {
		return fmt.Errorf("Cannot read a license list: %w", err)
	}
	oracle := &loggingOracle{
		list:   list,
		logger: logger,
	}

	srcs := args
	if len(srcs) == 0 {
		src := os.Stdin
		if *parseFlags.source != "" {
			f, err := os.Open(*parseFlags.source)
			if err != nil {
				return fmt.Errorf("Cannot open the source file %s: %w", *parseFlags.source, err)
			}
			defer f.Close()
			src = f
		}
		srcs, err = readLines(src)
		if err != nil {
			return err
		}
	}

	p, err := rpmlicense.NewParser(rpmlicense.Oracle(oracle))
	if err != nil {
		return err
	}

	var reports []*parseReport
	malformed := 0
	for _, src := range srcs {
		r := parse(p, src, oracle, logger)
		if r.Error != "" {
			malformed++
			if *parseFlags.output == outputText {
				fmt.Fprintf(os.Stderr, "%v\n", r.Error)
			}
		}
		reports = append(reports, r)
	}

	err = writeParseReports(os.Stdout, reports)
	if err != nil {
		return err
	}

	if malformed > 0 {
		return fmt.Errorf("%v of %v license strings are malformed", malformed, len(srcs))
	}
	return nil
}

func parse(p *rpmlicense.Parser, src string, oracle grammar.Oracle, logger *zap.Logger) *parseReport {
	r := &parseReport{
		Input: src,
	}

	if *parseFlags.tokens {
		toks, err := grammar.Tokenize(src, grammar.Classify(src, oracle))
		if err != nil {
			r.Error = err.Error()
			return r
		}
		r.tokens = toks
	}

	err := p.Parse(src)
	if err != nil {
		logger.Debug("failed to parse a license string", zap.String("input", src), zap.Error(err))
		r.Error = err.Error()
		return r
	}
	f, err := p.Format()
	if err != nil {
		r.Error = err.Error()
		return r
	}
	licenses, err := p.Licenses()
	if err != nil {
		r.Error = err.Error()
		return r
	}
	root, err := p.Expression()
	if err != nil {
		r.Error = err.Error()
		return r
	}
	logger.Debug("parsed a license string",
		zap.String("input", src),
		zap.Stringer("format", f),
		zap.Strings("licenses", licenses))

	r.Format = &f
	r.Licenses = licenses
	r.Expression = root.Format(f.Keywords())
	r.root = root
	return r
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

const parseReportTemplate = `{{ range . -}}
{{ if not .Error -}}
{{ .Input }}
    format: {{ .Format }}
    licenses:
{{- range .Licenses }}
        {{ . }}
{{- end }}
{{ printTokens . }}{{ printTree . }}{{ end -}}
{{ end -}}`

func writeParseReports(w io.Writer, reports []*parseReport) error {
	switch *parseFlags.output {
	case outputJSON:
		b, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v\n", string(b))
		return nil
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(reports)
		if err != nil {
			return err
		}
		return enc.Close()
	}

	fns := template.FuncMap{
		"printTokens": func(r *parseReport) string {
			if len(r.tokens) == 0 {
				return ""
			}
			var b strings.Builder
			fmt.Fprintf(&b, "    tokens:\n")
			for _, tok := range r.tokens {
				if tok.Kind == grammar.TokenKindEOF {
					fmt.Fprintf(&b, "        %v: %v\n", tok.Col, tok.Kind)
					continue
				}
				fmt.Fprintf(&b, "        %v: %v %#v\n", tok.Col, tok.Kind, tok.Text)
			}
			return b.String()
		},
		"printTree": func(r *parseReport) string {
			if !*parseFlags.tree || r.root == nil {
				return ""
			}
			var b strings.Builder
			fmt.Fprintf(&b, "    tree:\n")
			var t strings.Builder
			expr.PrintTree(&t, r.root)
			for _, line := range strings.Split(strings.TrimSuffix(t.String(), "\n"), "\n") {
				fmt.Fprintf(&b, "        %v\n", line)
			}
			return b.String()
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(parseReportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, reports)
}
