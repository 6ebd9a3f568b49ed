package tester

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/rpmlicense"
)

type Diff struct {
	Expected string
	Actual   string
	Message  string
}

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*Diff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.Message)
			diffLines = append(diffLines, fmt.Sprintf("%vexpected: %v", indent1, diff.Expected))
			diffLines = append(diffLines, fmt.Sprintf("%vactual:   %v", indent1, diff.Actual))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCase(f)
}

type Tester struct {
	// Options configure the parser that runs every test case.
	Options []rpmlicense.ParserOption
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, t.runTest(c))
	}
	return rs
}

func (t *Tester) runTest(c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	p, err := rpmlicense.NewParser(t.Options...)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	exp := c.TestCase.Expected
	err = p.Parse(c.TestCase.Source)
	if err != nil {
		if exp.Error && errors.Is(err, rpmlicense.ErrMalformedExpression) {
			return &TestResult{
				TestCasePath: c.FilePath,
			}
		}
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	if exp.Error {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("the license string must be malformed, but it was parsed"),
		}
	}

	f, err := p.Format()
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	licenses, err := p.Licenses()
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	diffs := diffResult(exp, f, licenses)
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func diffResult(exp *Expectation, f rpmlicense.Format, licenses []string) []*Diff {
	var diffs []*Diff
	if f != exp.Format {
		diffs = append(diffs, &Diff{
			Expected: exp.Format.String(),
			Actual:   f.String(),
			Message:  "unexpected format",
		})
	}
	if len(licenses) != len(exp.Licenses) {
		diffs = append(diffs, &Diff{
			Expected: fmt.Sprintf("%q", exp.Licenses),
			Actual:   fmt.Sprintf("%q", licenses),
			Message:  fmt.Sprintf("unexpected license count: expected %v but got %v", len(exp.Licenses), len(licenses)),
		})
		return diffs
	}
	for i, l := range exp.Licenses {
		if licenses[i] != l {
			diffs = append(diffs, &Diff{
				Expected: l,
				Actual:   licenses[i],
				Message:  fmt.Sprintf("unexpected license at #%v", i),
			})
		}
	}
	return diffs
}
