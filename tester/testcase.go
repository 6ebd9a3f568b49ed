package tester

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nihei9/rpmlicense/grammar"
)

// expectedError is the expectation part of a test case whose license string must be malformed.
const expectedError = "error"

type Expectation struct {
	Error    bool
	Format   grammar.Format
	Licenses []string
}

// TestCase consists of three parts separated by `---` lines: a description, a license string, and an
// expectation. The expectation is either the word `error` or a format name followed by one license per line.
//
//	Fedora legacy string
//	---
//	GPLv3+ and (ASL 2.0 or MIT)
//	---
//	legacy
//	ASL 2.0
//	GPLv3+
//	MIT
type TestCase struct {
	Description string
	Source      string
	Expected    *Expectation
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	exp, err := parseExpectation(parts[2].buf, parts[0].lineCount+parts[1].lineCount+2)
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      string(parts[1].buf),
		Expected:    exp,
	}, nil
}

func parseExpectation(buf []byte, lineOffset int) (*Expectation, error) {
	exp := &Expectation{}
	s := bufio.NewScanner(bytes.NewReader(buf))
	row := lineOffset
	formatRead := false
	for s.Scan() {
		row++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if !formatRead {
			formatRead = true
			if line == expectedError {
				exp.Error = true
				continue
			}
			f, err := grammar.ParseFormat(line)
			if err != nil {
				return nil, fmt.Errorf("%v: %w", row, err)
			}
			exp.Format = f
			continue
		}
		if exp.Error {
			return nil, fmt.Errorf("%v: an error expectation cannot take licenses: %v", row, line)
		}
		exp.Licenses = append(exp.Licenses, line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !formatRead {
		return nil, fmt.Errorf("an expectation needs a format name or `%v`", expectedError)
	}
	return exp, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
